package resource

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
)

// Routes mounts the five CRUD routes of one collection under Prefix.
type Routes[E any, P entity.Patch, C CreateRequest[E], U UpdateRequest[P]] struct {
	Prefix string
	Kind   string
	Svc    Service[E, P]
	// Authz guards create, update and delete.
	Authz Middleware
}

func (rt Routes[E, P, C, U]) Register(mux *http.ServeMux) {
	protect := orIdentity(rt.Authz)
	item := rt.Prefix + "/{id}"

	update := protect(UpdateHandler[E, P, U]{Svc: rt.Svc})

	mux.Handle("POST   "+rt.Prefix, protect(CreateHandler[E, P, C]{Svc: rt.Svc}))
	mux.Handle("GET    "+rt.Prefix, ListHandler[E, P]{Svc: rt.Svc})
	mux.Handle("GET    "+item, GetHandler[E, P]{Svc: rt.Svc, Kind: rt.Kind})
	mux.Handle("PUT    "+item, update)
	mux.Handle("PATCH  "+item, update)
	mux.Handle("DELETE "+item, protect(DeleteHandler[E, P]{Svc: rt.Svc}))
}
