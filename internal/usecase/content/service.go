package content

import (
	"context"
	"fmt"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/observability/metrics"
	"dinas-portal/internal/observability/tracing"
	"dinas-portal/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Validator is implemented by every entity that can be created.
type Validator interface {
	Validate() error
}

// Service provides the CRUD use cases shared by every collection.
// Input is validated before the store is touched; store errors are wrapped with the operation.
type Service[E Validator, P entity.Patch] struct {
	Repo repository.Store[E, P]
	// Kind labels spans, metrics and NotFoundError values (e.g. "news").
	Kind string
}

// operation tracks one use case invocation.
type operation struct {
	kind string
	name string
	span trace.Span
}

func (s *Service[E, P]) begin(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	return start(ctx, s.Kind, name, attrs...)
}

func start(ctx context.Context, kind, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	attrs = append(attrs, attribute.String("content.kind", kind))
	ctx, span := tracing.GetTracer().Start(ctx, kind+"."+name, trace.WithAttributes(attrs...))
	return ctx, &operation{kind: kind, name: name, span: span}
}

func (op *operation) end(err error) {
	result := classify(err)
	if result == resultError {
		tracing.RecordError(op.span, err)
	}
	op.span.SetAttributes(attribute.String("content.result", result))
	op.span.End()
	metrics.RecordContentOperation(op.kind, op.name, result)
}

// Create validates e and persists it, returning the stored row with id and timestamps set.
func (s *Service[E, P]) Create(ctx context.Context, e E) (out *E, err error) {
	ctx, op := s.begin(ctx, "create")
	defer func() { op.end(err) }()

	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, &e); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.Kind, err)
	}
	return &e, nil
}

// Get returns the row with the given id, or nil when it does not exist.
func (s *Service[E, P]) Get(ctx context.Context, id int64) (out *E, err error) {
	ctx, op := s.begin(ctx, "get", tracing.IDAttr(id))
	defer func() {
		if err == nil && out == nil {
			op.span.SetAttributes(attribute.Bool("content.found", false))
		}
		op.end(err)
	}()

	if err := invalidID(id); err != nil {
		return nil, err
	}
	out, err = s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.Kind, err)
	}
	return out, nil
}

// List returns every row in the collection's order. The result is never nil.
func (s *Service[E, P]) List(ctx context.Context) (out []*E, err error) {
	ctx, op := s.begin(ctx, "list")
	defer func() { op.end(err) }()

	out, err = s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Kind, err)
	}
	if out == nil {
		out = []*E{}
	}
	return out, nil
}

// Update applies the fields present in patch. updated_at always moves, even for an
// empty patch. Returns a NotFoundError when the row does not exist.
func (s *Service[E, P]) Update(ctx context.Context, id int64, patch P) (out *E, err error) {
	ctx, op := s.begin(ctx, "update", tracing.IDAttr(id))
	defer func() { op.end(err) }()

	if err := invalidID(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	out, err = s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.Kind, err)
	}
	return out, nil
}

// Delete removes the row and reports whether one existed.
func (s *Service[E, P]) Delete(ctx context.Context, id int64) (deleted bool, err error) {
	ctx, op := s.begin(ctx, "delete", tracing.IDAttr(id))
	defer func() { op.end(err) }()

	if err := invalidID(id); err != nil {
		return false, err
	}
	deleted, err = s.Repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", s.Kind, err)
	}
	op.span.SetAttributes(attribute.Bool("content.deleted", deleted))
	return deleted, nil
}

// NewsService manages news items.
type NewsService = Service[entity.News, entity.NewsPatch]

// AnnouncementService manages announcements.
type AnnouncementService = Service[entity.Announcement, entity.AnnouncementPatch]

func NewNewsService(repo repository.NewsStore) *NewsService {
	return &NewsService{Repo: repo, Kind: "news"}
}

func NewAnnouncementService(repo repository.AnnouncementStore) *AnnouncementService {
	return &AnnouncementService{Repo: repo, Kind: "announcement"}
}
