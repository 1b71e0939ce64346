// Package profilepage mounts the profile page routes, including lookup by page type.
package profilepage

import (
	"dinas-portal/internal/domain/entity"
)

// CreateRequest is the body of POST /profile-pages.
type CreateRequest struct {
	PageType string `json:"page_type" validate:"required,page_type" enums:"visi_misi,struktur_organisasi,sejarah" example:"sejarah"`
	Title    string `json:"title" validate:"required" example:"Sejarah Dinas"`
	Content  string `json:"content" validate:"required" example:"Dinas dibentuk pada tahun..."`
}

func (c CreateRequest) Entity() entity.ProfilePage {
	return entity.ProfilePage{
		PageType: entity.PageType(c.PageType),
		Title:    c.Title,
		Content:  c.Content,
	}
}

// UpdateRequest is the body of PUT and PATCH /profile-pages/{id}.
type UpdateRequest struct {
	PageType entity.Optional[entity.PageType] `json:"page_type" swaggertype:"string" enums:"visi_misi,struktur_organisasi,sejarah"`
	Title    entity.Optional[string]          `json:"title" swaggertype:"string"`
	Content  entity.Optional[string]          `json:"content" swaggertype:"string"`
}

func (u UpdateRequest) Patch() entity.ProfilePagePatch {
	return entity.ProfilePagePatch{PageType: u.PageType, Title: u.Title, Content: u.Content}
}
