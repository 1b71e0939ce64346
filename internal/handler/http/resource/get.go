package resource

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/pathutil"
	"dinas-portal/internal/handler/http/respond"
)

// GetHandler answers 404 when the row does not exist.
type GetHandler[E any, P entity.Patch] struct {
	Svc  Service[E, P]
	Kind string
}

func (h GetHandler[E, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	if out == nil {
		respond.NotFound(w, h.Kind, id)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
