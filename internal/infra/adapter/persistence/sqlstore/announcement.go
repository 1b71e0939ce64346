package sqlstore

import (
	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/repository"
)

var announcementSchema = schema[entity.Announcement]{
	kind:    "announcement",
	table:   "announcements",
	columns: []string{"title", "content", "publication_date"},
	values: func(a *entity.Announcement) []any {
		return []any{a.Title, a.Content, a.PublicationDate}
	},
	updatable: []string{"title", "content", "publication_date"},
	orderBy:   "publication_date DESC, id DESC",
}

func AnnouncementStore(db *DB) repository.AnnouncementStore {
	return newTable[entity.Announcement, entity.AnnouncementPatch](db, announcementSchema)
}
