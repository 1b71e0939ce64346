// Package download mounts the download routes and the public hit counter.
package download

import (
	"dinas-portal/internal/domain/entity"
)

// CreateRequest is the body of POST /downloads. Hits always start at zero.
type CreateRequest struct {
	Title     string `json:"title" validate:"required" example:"Renstra 2025-2029"`
	Category  string `json:"category" validate:"required" example:"Perencanaan"`
	Publisher string `json:"publisher" validate:"required" example:"Sekretariat"`
	FileURL   string `json:"file_url" validate:"required,url" example:"https://cdn.example.go.id/renstra.pdf"`
	FileName  string `json:"file_name" validate:"required" example:"renstra.pdf"`
}

func (c CreateRequest) Entity() entity.Download {
	return entity.Download{
		Title:     c.Title,
		Category:  c.Category,
		Publisher: c.Publisher,
		FileURL:   c.FileURL,
		FileName:  c.FileName,
	}
}

// UpdateRequest is the body of PUT and PATCH /downloads/{id}. Hits may be overwritten.
type UpdateRequest struct {
	Title     entity.Optional[string] `json:"title" swaggertype:"string"`
	Category  entity.Optional[string] `json:"category" swaggertype:"string"`
	Publisher entity.Optional[string] `json:"publisher" swaggertype:"string"`
	FileURL   entity.Optional[string] `json:"file_url" swaggertype:"string"`
	FileName  entity.Optional[string] `json:"file_name" swaggertype:"string"`
	Hits      entity.Optional[int64]  `json:"hits" swaggertype:"integer"`
}

func (u UpdateRequest) Patch() entity.DownloadPatch {
	return entity.DownloadPatch{
		Title:     u.Title,
		Category:  u.Category,
		Publisher: u.Publisher,
		FileURL:   u.FileURL,
		FileName:  u.FileName,
		Hits:      u.Hits,
	}
}
