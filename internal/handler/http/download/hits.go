package download

import (
	"net/http"

	"dinas-portal/internal/handler/http/pathutil"
	"dinas-portal/internal/handler/http/respond"
	"dinas-portal/internal/usecase/content"
)

// HitsHandler records one access and returns the updated download.
type HitsHandler struct {
	Svc *content.DownloadService
}

func (h HitsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.Svc.IncrementHits(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
