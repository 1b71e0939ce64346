package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dinas-portal/internal/config"
	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/infra/adapter/persistence/sqlstore"
	"dinas-portal/internal/infra/db"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig(t *testing.T, withAuth bool) *config.Config {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Addr:           ":0",
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 16,
			CORSOrigins:    []string{"https://portal.example.go.id"},
		},
		Database: config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"},
		Hits:     config.HitsConfig{RatePerSecond: 0.001, Burst: 3, IdleTTL: time.Minute},
		Version:  "test",
	}
	if withAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
		require.NoError(t, err)
		cfg.Auth = config.AuthConfig{
			JWTSecret:         testSecret,
			AdminUsername:     "admin",
			AdminPasswordHash: string(hash),
			TokenTTL:          time.Hour,
		}
	}
	return cfg
}

func newTestServer(t *testing.T, withAuth bool) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	database, dialect, err := db.Open(ctx, db.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.MigrateUp(ctx, database, dialect))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := newServer(testConfig(t, withAuth), logger, database, sqlstore.New(database, dialect))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func send(t *testing.T, ts *httptest.Server, method, path, body, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestServer_OpenWhenAuthDisabled(t *testing.T) {
	ts := newTestServer(t, false)

	resp, body := send(t, ts, http.MethodPost, "/news",
		`{"title":"Rapat","content":"Isi","publication_date":"2025-01-15"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, _ = send(t, ts, http.MethodPost, "/auth/token", `{"username":"admin","password":"x"}`, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_AdminFlow(t *testing.T) {
	ts := newTestServer(t, true)
	page := `{"page_type":"sejarah","title":"Sejarah","content":"Didirikan 1950"}`

	resp, _ := send(t, ts, http.MethodPost, "/profile-pages", page, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = send(t, ts, http.MethodPost, "/auth/token", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := send(t, ts, http.MethodPost, "/auth/token", `{"username":"admin","password":"s3cret-pass"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tok))
	require.NotEmpty(t, tok.Token)

	resp, body = send(t, ts, http.MethodPost, "/profile-pages", page, tok.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// reads stay public
	resp, body = send(t, ts, http.MethodGet, "/profile-pages/type/sejarah", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got entity.ProfilePage
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Didirikan 1950", got.Content)

	resp, _ = send(t, ts, http.MethodDelete, "/profile-pages/"+strconv.FormatInt(got.ID, 10), "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, body = send(t, ts, http.MethodDelete, "/profile-pages/"+strconv.FormatInt(got.ID, 10), "", tok.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true}`, string(body))
}

func TestServer_HitsArePublicAndLimited(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := send(t, ts, http.MethodPost, "/auth/token", `{"username":"admin","password":"s3cret-pass"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tok))

	resp, body = send(t, ts, http.MethodPost, "/downloads",
		`{"title":"Renstra","category":"Perencanaan","publisher":"Sekretariat","file_url":"https://x.go.id/r.pdf","file_name":"r.pdf"}`, tok.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var d entity.Download
	require.NoError(t, json.Unmarshal(body, &d))

	path := "/downloads/" + strconv.FormatInt(d.ID, 10) + "/hits"
	for i := 0; i < 3; i++ {
		resp, _ = send(t, ts, http.MethodPost, path, "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ = send(t, ts, http.MethodPost, path, "", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestServer_OpsEndpoints(t *testing.T) {
	ts := newTestServer(t, false)

	resp, body := send(t, ts, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"version":"test"`)

	resp, _ = send(t, ts, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = send(t, ts, http.MethodGet, "/live", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	send(t, ts, http.MethodGet, "/news", "", "")
	resp, body = send(t, ts, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `http_requests_total`)

	resp, body = send(t, ts, http.MethodGet, "/swagger/doc.json", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/downloads/{id}/hits")
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/news", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://portal.example.go.id")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://portal.example.go.id", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_BodyLimit(t *testing.T) {
	ts := newTestServer(t, false)

	big := `{"title":"` + strings.Repeat("a", 1<<17) + `","content":"c","publication_date":"2025-01-01"}`
	resp, body := send(t, ts, http.MethodPost, "/announcements", big, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "too large")
}
