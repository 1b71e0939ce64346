// Package news mounts the news routes.
package news

import (
	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/payload"
)

// CreateRequest is the body of POST /news.
type CreateRequest struct {
	Title           string        `json:"title" validate:"required" example:"Musrenbang 2025"`
	Content         string        `json:"content" validate:"required" example:"Pelaksanaan musyawarah perencanaan..."`
	PublicationDate *payload.Date `json:"publication_date" validate:"required" swaggertype:"string" example:"2025-01-15"`
	ThumbnailURL    *string       `json:"thumbnail_url" validate:"omitempty,url" example:"https://cdn.example.go.id/news/1.jpg"`
}

func (c CreateRequest) Entity() entity.News {
	n := entity.News{
		Title:        c.Title,
		Content:      c.Content,
		ThumbnailURL: c.ThumbnailURL,
	}
	if c.PublicationDate != nil {
		n.PublicationDate = c.PublicationDate.Time
	}
	return n
}

// UpdateRequest is the body of PUT and PATCH /news/{id}. Absent fields are left untouched;
// "thumbnail_url": null clears the thumbnail.
type UpdateRequest struct {
	Title           entity.Optional[string]       `json:"title" swaggertype:"string"`
	Content         entity.Optional[string]       `json:"content" swaggertype:"string"`
	PublicationDate entity.Optional[payload.Date] `json:"publication_date" swaggertype:"string"`
	ThumbnailURL    entity.Optional[*string]      `json:"thumbnail_url" swaggertype:"string"`
}

func (u UpdateRequest) Patch() entity.NewsPatch {
	return entity.NewsPatch{
		Title:           u.Title,
		Content:         u.Content,
		PublicationDate: payload.DateOption(u.PublicationDate),
		ThumbnailURL:    u.ThumbnailURL,
	}
}
