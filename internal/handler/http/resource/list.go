package resource

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/respond"
)

// ListHandler returns the whole collection in its natural order.
type ListHandler[E any, P entity.Patch] struct {
	Svc Service[E, P]
}

func (h ListHandler[E, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	if out == nil {
		out = []*E{}
	}
	respond.JSON(w, http.StatusOK, out)
}
