package announcement

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/resource"
	"dinas-portal/internal/usecase/content"
)

const Prefix = "/announcements"

// Register mounts the CRUD routes under /announcements. Lists are newest publication_date first.
func Register(mux *http.ServeMux, svc *content.AnnouncementService, authz resource.Middleware) {
	resource.Routes[entity.Announcement, entity.AnnouncementPatch, CreateRequest, UpdateRequest]{
		Prefix: Prefix,
		Kind:   svc.Kind,
		Svc:    svc,
		Authz:  authz,
	}.Register(mux)
}
