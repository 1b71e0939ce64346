package resource

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/pathutil"
	"dinas-portal/internal/handler/http/payload"
	"dinas-portal/internal/handler/http/respond"
)

// UpdateHandler applies the fields present in the body. It serves both PUT and PATCH.
type UpdateHandler[E any, P entity.Patch, U UpdateRequest[P]] struct {
	Svc Service[E, P]
}

func (h UpdateHandler[E, P, U]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var req U
	if err := payload.Decode(r, &req); err != nil {
		respond.FromError(w, err)
		return
	}
	out, err := h.Svc.Update(r.Context(), id, req.Patch())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
