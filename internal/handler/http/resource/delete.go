package resource

import (
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/pathutil"
	"dinas-portal/internal/handler/http/respond"
)

// DeleteHandler answers {"success": false} for a missing row.
type DeleteHandler[E any, P entity.Patch] struct {
	Svc Service[E, P]
}

func (h DeleteHandler[E, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, DeleteResponse{Success: deleted})
}
