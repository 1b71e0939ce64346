package profilepage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/profilepage"
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
	store := sqlstore.ProfilePageStore(sqlstore.New(raw, dialect))
	profilepage.Register(mux, content.NewProfilePageService(store), nil)
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

func TestProfilePage_GetByType(t *testing.T) {
	srv := newServer(t)

	var first, second entity.ProfilePage
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/profile-pages",
		`{"page_type":"sejarah","title":"Sejarah","content":"Awal"}`, &first))
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/profile-pages",
		`{"page_type":"sejarah","title":"Sejarah 2","content":"Lanjutan"}`, &second))

	var got entity.ProfilePage
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/profile-pages/type/sejarah", "", &got))
	assert.Equal(t, first.ID, got.ID)

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/profile-pages/type/visi_misi", "", &body))
	assert.Equal(t, "profile page of type visi_misi not found", body["error"])

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/profile-pages/type/faq", "", &body))
	assert.Equal(t, "page_type", body["field"])
}

func TestProfilePage_CRUD(t *testing.T) {
	srv := newServer(t)

	var created entity.ProfilePage
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/profile-pages",
		`{"page_type":"visi_misi","title":"Visi","content":"Misi"}`, &created))
	assert.Equal(t, entity.PageTypeVisiMisi, created.PageType)

	target := "/profile-pages/" + strings.TrimSpace(mustJSON(t, created.ID))

	var updated entity.ProfilePage
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPatch, target, `{"page_type":"struktur_organisasi"}`, &updated))
	assert.Equal(t, entity.PageTypeStrukturOrganisasi, updated.PageType)
	assert.Equal(t, "Visi", updated.Title)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPatch, target, `{"page_type":"faq"}`, nil))

	var list []entity.ProfilePage
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/profile-pages", "", &list))
	assert.Len(t, list, 1)

	var del map[string]bool
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, target, "", &del))
	assert.True(t, del["success"])
}

func TestProfilePage_CreateRejectsUnknownType(t *testing.T) {
	srv := newServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/profile-pages",
		`{"page_type":"faq","title":"t","content":"c"}`, &body))
	assert.Equal(t, "page_type", body["field"])
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
