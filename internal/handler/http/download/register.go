package download

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/resource"
	"dinas-portal/internal/usecase/content"
)

const Prefix = "/downloads"

// Register mounts the CRUD routes under /downloads plus the public
//
//	POST /downloads/{id}/hits
//
// which is wrapped by limit instead of authz.
func Register(mux *http.ServeMux, svc *content.DownloadService, authz, limit resource.Middleware) {
	resource.Routes[entity.Download, entity.DownloadPatch, CreateRequest, UpdateRequest]{
		Prefix: Prefix,
		Kind:   svc.Kind,
		Svc:    svc,
		Authz:  authz,
	}.Register(mux)

	var hits http.Handler = HitsHandler{Svc: svc}
	if limit != nil {
		hits = limit(hits)
	}
	mux.Handle("POST   "+Prefix+"/{id}/hits", hits)
}
