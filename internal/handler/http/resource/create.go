package resource

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/payload"
	"dinas-portal/internal/handler/http/respond"
)

// CreateHandler decodes C, validates it and stores the resulting entity.
type CreateHandler[E any, P entity.Patch, C CreateRequest[E]] struct {
	Svc Service[E, P]
}

func (h CreateHandler[E, P, C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req C
	if err := payload.Decode(r, &req); err != nil {
		respond.FromError(w, err)
		return
	}
	out, err := h.Svc.Create(r.Context(), req.Entity())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, out)
}
