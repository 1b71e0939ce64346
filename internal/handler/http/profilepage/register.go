package profilepage

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/resource"
	"dinas-portal/internal/usecase/content"
)

const Prefix = "/profile-pages"

// Register mounts the CRUD routes under /profile-pages plus
//
//	GET /profile-pages/type/{page_type}
func Register(mux *http.ServeMux, svc *content.ProfilePageService, authz resource.Middleware) {
	resource.Routes[entity.ProfilePage, entity.ProfilePagePatch, CreateRequest, UpdateRequest]{
		Prefix: Prefix,
		Kind:   svc.Kind,
		Svc:    svc,
		Authz:  authz,
	}.Register(mux)

	mux.Handle("GET    "+Prefix+"/type/{page_type}", GetByTypeHandler{Svc: svc})
}
