package sqlstore

import (
	"context"
	"time"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/repository"
)

// hits is omitted on insert so the column default of 0 applies.
var downloadSchema = schema[entity.Download]{
	kind:    "download",
	table:   "downloads",
	columns: []string{"title", "category", "publisher", "file_url", "file_name"},
	values: func(d *entity.Download) []any {
		return []any{d.Title, d.Category, d.Publisher, d.FileURL, d.FileName}
	},
	updatable: []string{"title", "category", "publisher", "file_url", "file_name", "hits"},
	orderBy:   "created_at DESC, id DESC",
}

type downloadTable struct {
	*table[entity.Download, entity.DownloadPatch]
}

func DownloadStore(db *DB) repository.DownloadStore {
	return downloadTable{newTable[entity.Download, entity.DownloadPatch](db, downloadSchema)}
}

// IncrementHits adds one to the counter inside the database so concurrent calls never
// lose an update.
func (t downloadTable) IncrementHits(ctx context.Context, id int64) (*entity.Download, error) {
	defer t.observe("increment_hits", time.Now())

	const query = `UPDATE downloads SET hits = hits + 1, updated_at = ? WHERE id = ?`
	return t.modify(ctx, "IncrementHits", id, query, []any{t.db.now(), id})
}
