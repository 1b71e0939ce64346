package resource_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/handler/http/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createNews struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (c createNews) Entity() entity.News {
	return entity.News{Title: c.Title, Content: c.Content, PublicationDate: time.Unix(0, 0).UTC()}
}

type updateNews struct {
	Title entity.Optional[string] `json:"title"`
}

func (u updateNews) Patch() entity.NewsPatch { return entity.NewsPatch{Title: u.Title} }

// stubService returns canned results and counts calls.
type stubService struct {
	calls   int
	created *entity.News
	got     *entity.News
	list    []*entity.News
	deleted bool
	patch   entity.NewsPatch
	err     error
}

func (s *stubService) Create(_ context.Context, n entity.News) (*entity.News, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	n.ID = 1
	s.created = &n
	return &n, nil
}

func (s *stubService) Get(_ context.Context, _ int64) (*entity.News, error) {
	s.calls++
	return s.got, s.err
}

func (s *stubService) List(_ context.Context) ([]*entity.News, error) {
	s.calls++
	return s.list, s.err
}

func (s *stubService) Update(_ context.Context, id int64, p entity.NewsPatch) (*entity.News, error) {
	s.calls++
	s.patch = p
	if s.err != nil {
		return nil, s.err
	}
	return &entity.News{ID: id, Title: p.Title.Value}, nil
}

func (s *stubService) Delete(_ context.Context, _ int64) (bool, error) {
	s.calls++
	return s.deleted, s.err
}

func newMux(svc *stubService, authz resource.Middleware) *http.ServeMux {
	mux := http.NewServeMux()
	resource.Routes[entity.News, entity.NewsPatch, createNews, updateNews]{
		Prefix: "/news",
		Kind:   "news",
		Svc:    svc,
		Authz:  authz,
	}.Register(mux)
	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreate(t *testing.T) {
	svc := &stubService{}
	rec := do(newMux(svc, nil), http.MethodPost, "/news", `{"title":"T","content":"C"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "T", svc.created.Title)
	var out entity.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(1), out.ID)
}

func TestCreate_InvalidNeverReachesService(t *testing.T) {
	for name, body := range map[string]string{
		"missing title": `{"content":"C"}`,
		"empty title":   `{"title":"","content":"C"}`,
		"unknown field": `{"title":"T","content":"C","author":"x"}`,
		"not json":      `title=T`,
		"empty body":    ``,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &stubService{}
			rec := do(newMux(svc, nil), http.MethodPost, "/news", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubService{got: &entity.News{ID: 7, Title: "T"}}
		rec := do(newMux(svc, nil), http.MethodGet, "/news/7", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("missing", func(t *testing.T) {
		rec := do(newMux(&stubService{}, nil), http.MethodGet, "/news/7", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "news with id 7 not found", errorBody(t, rec))
	})
	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		t.Run("bad id "+id, func(t *testing.T) {
			svc := &stubService{}
			rec := do(newMux(svc, nil), http.MethodGet, "/news/"+id, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid id", errorBody(t, rec))
			assert.Zero(t, svc.calls)
		})
	}
}

func TestList(t *testing.T) {
	t.Run("empty is an array", func(t *testing.T) {
		rec := do(newMux(&stubService{}, nil), http.MethodGet, "/news", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
	t.Run("persistence failure is masked", func(t *testing.T) {
		svc := &stubService{err: &entity.PersistenceError{Op: "news.list", Err: errors.New("dial tcp: connection refused")}}
		rec := do(newMux(svc, nil), http.MethodGet, "/news", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", errorBody(t, rec))
	})
}

func TestUpdate(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			svc := &stubService{}
			rec := do(newMux(svc, nil), method, "/news/3", `{"title":"New"}`)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, svc.patch.Title.Set)
			assert.False(t, svc.patch.Content.Set)
		})
	}

	t.Run("not found", func(t *testing.T) {
		svc := &stubService{err: &entity.NotFoundError{Kind: "news", ID: 3}}
		rec := do(newMux(svc, nil), http.MethodPatch, "/news/3", `{"title":"New"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("service validation", func(t *testing.T) {
		svc := &stubService{err: &entity.ValidationError{Field: "title", Message: "is required"}}
		rec := do(newMux(svc, nil), http.MethodPatch, "/news/3", `{"title":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := &stubService{}
		rec := do(newMux(svc, nil), http.MethodPatch, "/news/x", `{"title":"New"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.calls)
	})
}

func TestDelete(t *testing.T) {
	rec := do(newMux(&stubService{deleted: true}, nil), http.MethodDelete, "/news/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(newMux(&stubService{}, nil), http.MethodDelete, "/news/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())
}

func TestAuthzGuardsOnlyMutations(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	mux := newMux(&stubService{got: &entity.News{ID: 1}}, deny)

	assert.Equal(t, http.StatusOK, do(mux, http.MethodGet, "/news", "").Code)
	assert.Equal(t, http.StatusOK, do(mux, http.MethodGet, "/news/1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodPost, "/news", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodPut, "/news/1", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodPatch, "/news/1", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodDelete, "/news/1", "").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(newMux(&stubService{}, nil), http.MethodDelete, "/news", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
