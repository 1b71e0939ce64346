package profilepage

import (
	"fmt"
	"net/http"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/respond"
	"dinas-portal/internal/usecase/content"
)

// GetByTypeHandler returns the oldest page of the requested type.
type GetByTypeHandler struct {
	Svc *content.ProfilePageService
}

func (h GetByTypeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pageType := entity.PageType(r.PathValue("page_type"))
	out, err := h.Svc.GetByType(r.Context(), pageType)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	if out == nil {
		respond.JSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("profile page of type %s not found", pageType),
		})
		return
	}
	respond.JSON(w, http.StatusOK, out)
}
