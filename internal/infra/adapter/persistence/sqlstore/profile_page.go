package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/repository"
)

var profilePageSchema = schema[entity.ProfilePage]{
	kind:    "profile_page",
	table:   "profile_pages",
	columns: []string{"page_type", "title", "content"},
	values: func(p *entity.ProfilePage) []any {
		return []any{string(p.PageType), p.Title, p.Content}
	},
	updatable: []string{"page_type", "title", "content"},
	orderBy:   "id ASC",
}

type profilePageTable struct {
	*table[entity.ProfilePage, entity.ProfilePagePatch]
}

// ProfilePageStore persists profile pages. Page types are not unique; lookups by type
// resolve to the oldest row.
func ProfilePageStore(db *DB) repository.ProfilePageStore {
	return profilePageTable{newTable[entity.ProfilePage, entity.ProfilePagePatch](db, profilePageSchema)}
}

func (t profilePageTable) GetByType(ctx context.Context, pageType entity.PageType) (*entity.ProfilePage, error) {
	defer t.observe("get_by_type", time.Now())

	query := fmt.Sprintf("SELECT %s FROM %s WHERE page_type = ? ORDER BY id ASC LIMIT 1",
		t.schema.selectList(), t.schema.table)
	var p entity.ProfilePage
	err := t.db.x.GetContext(ctx, &p, t.db.x.Rebind(query), string(pageType))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, t.fail("GetByType", err)
	}
	return &p, nil
}
