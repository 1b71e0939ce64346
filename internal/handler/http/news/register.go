package news

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/resource"
	"dinas-portal/internal/usecase/content"
)

// Prefix is the collection path.
const Prefix = "/news"

// Register mounts:
//
//	POST   /news        create (authz)
//	GET    /news        list, newest publication_date first
//	GET    /news/{id}   get
//	PUT    /news/{id}   update (authz)
//	PATCH  /news/{id}   update (authz)
//	DELETE /news/{id}   delete (authz)
func Register(mux *http.ServeMux, svc *content.NewsService, authz resource.Middleware) {
	resource.Routes[entity.News, entity.NewsPatch, CreateRequest, UpdateRequest]{
		Prefix: Prefix,
		Kind:   svc.Kind,
		Svc:    svc,
		Authz:  authz,
	}.Register(mux)
}
