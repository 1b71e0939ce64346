package news_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/news"
	"dinas-portal/internal/infra/adapter/persistence/sqlstore"
	"dinas-portal/internal/infra/db"
	"dinas-portal/internal/usecase/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	raw, dialect, err := db.Open(ctx, db.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	require.NoError(t, db.MigrateUp(ctx, raw, dialect))

	mux := http.NewServeMux()
	news.Register(mux, content.NewNewsService(sqlstore.NewsStore(sqlstore.New(raw, dialect))), nil)
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string, out any) int {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestNews_Lifecycle(t *testing.T) {
	srv := newServer(t)

	var created entity.News
	code := do(t, srv, http.MethodPost, "/news",
		`{"title":"Musrenbang","content":"Isi","publication_date":"2025-01-15","thumbnail_url":"https://cdn.example.go.id/a.jpg"}`, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.NotZero(t, created.ID)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), created.PublicationDate.UTC())
	require.NotNil(t, created.ThumbnailURL)
	assert.Nil(t, created.UpdatedAt)

	target := "/news/" + itoa(created.ID)

	var got entity.News
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, target, "", &got))
	assert.Equal(t, "Musrenbang", got.Title)

	// null clears the thumbnail, absent fields stay
	var patched entity.News
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPatch, target, `{"thumbnail_url":null}`, &patched))
	assert.Nil(t, patched.ThumbnailURL)
	assert.Equal(t, "Musrenbang", patched.Title)
	require.NotNil(t, patched.UpdatedAt)

	var put entity.News
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, target, `{"title":"Baru","publication_date":1736899200000}`, &put))
	assert.Equal(t, "Baru", put.Title)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), put.PublicationDate.UTC())

	var del map[string]bool
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, target, "", &del))
	assert.True(t, del["success"])

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, target, "", &del))
	assert.False(t, del["success"])

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, target, "", nil))
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPatch, target, `{"title":"x"}`, nil))
}

func TestNews_ListNewestFirst(t *testing.T) {
	srv := newServer(t)
	for _, d := range []string{"2024-01-01", "2024-03-01T10:00:00", "2024-02-01T00:00:00+07:00"} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/news",
			`{"title":"`+d+`","content":"c","publication_date":"`+d+`"}`, nil))
	}

	var list []entity.News
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/news", "", &list))
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-01T10:00:00", list[0].Title)
	assert.Equal(t, "2024-02-01T00:00:00+07:00", list[1].Title)
	assert.Equal(t, "2024-01-01", list[2].Title)
}

func TestNews_ValidationErrors(t *testing.T) {
	srv := newServer(t)
	tests := map[string]string{
		"missing date":       `{"title":"t","content":"c"}`,
		"bad date":           `{"title":"t","content":"c","publication_date":"15/01/2025"}`,
		"relative thumbnail": `{"title":"t","content":"c","publication_date":"2025-01-15","thumbnail_url":"/a.jpg"}`,
		"empty content":      `{"title":"t","content":"","publication_date":"2025-01-15"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/news", body, nil))
		})
	}

	var list []entity.News
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/news", "", &list))
	assert.Empty(t, list)
}

func TestNews_PatchRejectsNullRequiredField(t *testing.T) {
	srv := newServer(t)
	var created entity.News
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/news",
		`{"title":"t","content":"c","publication_date":"2025-01-15"}`, &created))

	target := "/news/" + itoa(created.ID)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPatch, target, `{"title":null}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPatch, target, `{"publication_date":null}`, nil))
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
