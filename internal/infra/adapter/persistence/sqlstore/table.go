package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/observability/metrics"
)

// schema describes how one entity maps onto its table.
type schema[E any] struct {
	kind  string
	table string
	// columns are written on insert, in the order returned by values.
	columns []string
	values  func(*E) []any
	// updatable lists the columns a patch may assign.
	updatable []string
	orderBy   string
}

func (s schema[E]) selectList() string {
	cols := make([]string, 0, len(s.updatable)+3)
	cols = append(cols, "id")
	cols = append(cols, s.updatable...)
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

func (s schema[E]) allows(column string) bool {
	for _, c := range s.updatable {
		if c == column {
			return true
		}
	}
	return false
}

// table is the generic store engine shared by every collection.
type table[E any, P entity.Patch] struct {
	db     *DB
	schema schema[E]
}

func newTable[E any, P entity.Patch](db *DB, s schema[E]) *table[E, P] {
	return &table[E, P]{db: db, schema: s}
}

func (t *table[E, P]) fail(op string, err error) error {
	return &entity.PersistenceError{Op: t.schema.kind + "." + op, Err: err}
}

func (t *table[E, P]) observe(op string, start time.Time) {
	metrics.DBQueryDuration.WithLabelValues(t.schema.kind + "." + op).Observe(time.Since(start).Seconds())
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (t *table[E, P]) Create(ctx context.Context, e *E) error {
	defer t.observe("create", time.Now())

	cols := append(append([]string{}, t.schema.columns...), "created_at")
	args := append(t.schema.values(e), t.db.now())
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.schema.table, strings.Join(cols, ", "), placeholders(len(cols)))

	if t.db.dialect.Returning {
		query += " RETURNING " + t.schema.selectList()
		if err := t.db.x.GetContext(ctx, e, t.db.x.Rebind(query), args...); err != nil {
			return t.fail("Create", err)
		}
		return nil
	}

	res, err := t.db.x.ExecContext(ctx, t.db.x.Rebind(query), args...)
	if err != nil {
		return t.fail("Create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return t.fail("Create", err)
	}
	if err := t.getInto(ctx, e, id); err != nil {
		return t.fail("Create", err)
	}
	return nil
}

func (t *table[E, P]) getInto(ctx context.Context, dst *E, id int64) error {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.schema.selectList(), t.schema.table)
	return t.db.x.GetContext(ctx, dst, t.db.x.Rebind(query), id)
}

func (t *table[E, P]) Get(ctx context.Context, id int64) (*E, error) {
	defer t.observe("get", time.Now())

	var e E
	err := t.getInto(ctx, &e, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, t.fail("Get", err)
	}
	return &e, nil
}

func (t *table[E, P]) List(ctx context.Context) ([]*E, error) {
	defer t.observe("list", time.Now())

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		t.schema.selectList(), t.schema.table, t.schema.orderBy)
	out := make([]*E, 0, 50)
	if err := t.db.x.SelectContext(ctx, &out, query); err != nil {
		return nil, t.fail("List", err)
	}
	return out, nil
}

// Update writes the present patch fields and updated_at in a single statement.
func (t *table[E, P]) Update(ctx context.Context, id int64, patch P) (*E, error) {
	defer t.observe("update", time.Now())

	assignments := patch.Assignments()
	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+2)
	for _, a := range assignments {
		if !t.schema.allows(a.Column) {
			return nil, t.fail("Update", fmt.Errorf("column %q is not updatable", a.Column))
		}
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, t.db.now(), id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.schema.table, strings.Join(sets, ", "))
	return t.modify(ctx, "Update", id, query, args)
}

// modify runs a single-row UPDATE and returns the row as it is after the statement.
func (t *table[E, P]) modify(ctx context.Context, op string, id int64, query string, args []any) (*E, error) {
	var e E
	if t.db.dialect.Returning {
		query += " RETURNING " + t.schema.selectList()
		err := t.db.x.GetContext(ctx, &e, t.db.x.Rebind(query), args...)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &entity.NotFoundError{Kind: t.schema.kind, ID: id}
		}
		if err != nil {
			return nil, t.fail(op, err)
		}
		return &e, nil
	}

	// Without RETURNING the matched-row count decides existence; the DSN must report
	// found rows rather than changed rows.
	res, err := t.db.x.ExecContext(ctx, t.db.x.Rebind(query), args...)
	if err != nil {
		return nil, t.fail(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, t.fail(op, err)
	}
	if n == 0 {
		return nil, &entity.NotFoundError{Kind: t.schema.kind, ID: id}
	}
	err = t.getInto(ctx, &e, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &entity.NotFoundError{Kind: t.schema.kind, ID: id}
	}
	if err != nil {
		return nil, t.fail(op, err)
	}
	return &e, nil
}

func (t *table[E, P]) Delete(ctx context.Context, id int64) (bool, error) {
	defer t.observe("delete", time.Now())

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.schema.table)
	res, err := t.db.x.ExecContext(ctx, t.db.x.Rebind(query), id)
	if err != nil {
		return false, t.fail("Delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, t.fail("Delete", err)
	}
	return n > 0, nil
}
