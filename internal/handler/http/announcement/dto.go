// Package announcement mounts the announcement routes.
package announcement

import (
	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/payload"
)

// CreateRequest is the body of POST /announcements.
type CreateRequest struct {
	Title           string        `json:"title" validate:"required" example:"Libur Nasional"`
	Content         string        `json:"content" validate:"required" example:"Kantor tutup pada tanggal..."`
	PublicationDate *payload.Date `json:"publication_date" validate:"required" swaggertype:"string" example:"2025-01-15T08:00:00Z"`
}

func (c CreateRequest) Entity() entity.Announcement {
	a := entity.Announcement{Title: c.Title, Content: c.Content}
	if c.PublicationDate != nil {
		a.PublicationDate = c.PublicationDate.Time
	}
	return a
}

// UpdateRequest is the body of PUT and PATCH /announcements/{id}.
type UpdateRequest struct {
	Title           entity.Optional[string]       `json:"title" swaggertype:"string"`
	Content         entity.Optional[string]       `json:"content" swaggertype:"string"`
	PublicationDate entity.Optional[payload.Date] `json:"publication_date" swaggertype:"string"`
}

func (u UpdateRequest) Patch() entity.AnnouncementPatch {
	return entity.AnnouncementPatch{
		Title:           u.Title,
		Content:         u.Content,
		PublicationDate: payload.DateOption(u.PublicationDate),
	}
}
