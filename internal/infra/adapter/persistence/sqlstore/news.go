package sqlstore

import (
	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/repository"
)

var newsSchema = schema[entity.News]{
	kind:    "news",
	table:   "news",
	columns: []string{"title", "content", "publication_date", "thumbnail_url"},
	values: func(n *entity.News) []any {
		return []any{n.Title, n.Content, n.PublicationDate, n.ThumbnailURL}
	},
	updatable: []string{"title", "content", "publication_date", "thumbnail_url"},
	orderBy:   "publication_date DESC, id DESC",
}

// NewsStore persists news items, newest publication first.
func NewsStore(db *DB) repository.NewsStore {
	return newTable[entity.News, entity.NewsPatch](db, newsSchema)
}
