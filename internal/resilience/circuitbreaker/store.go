package circuitbreaker

import (
	"context"

	"dinas-portal/internal/domain/entity"
	"dinas-portal/internal/repository"
)

// run executes fn through cb. Breaker rejections surface as persistence errors so
// callers handle them like any other database outage.
func run[T any](cb *CircuitBreaker, op string, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if IsRejection(err) {
			return zero, &entity.PersistenceError{Op: op, Err: err}
		}
		return zero, err
	}
	return out.(T), nil
}

// Store guards every call of a content store with a circuit breaker.
type Store[E any, P entity.Patch] struct {
	next repository.Store[E, P]
	cb   *CircuitBreaker
	kind string
}

// Guard wraps next with a breaker named after the collection kind.
func Guard[E any, P entity.Patch](next repository.Store[E, P], kind string, cfg Config) *Store[E, P] {
	return &Store[E, P]{next: next, cb: New(cfg), kind: kind}
}

// Breaker exposes the underlying breaker, mainly for health reporting.
func (s *Store[E, P]) Breaker() *CircuitBreaker { return s.cb }

func (s *Store[E, P]) Create(ctx context.Context, e *E) error {
	_, err := run(s.cb, s.kind+".Create", func() (struct{}, error) {
		return struct{}{}, s.next.Create(ctx, e)
	})
	return err
}

func (s *Store[E, P]) Get(ctx context.Context, id int64) (*E, error) {
	return run(s.cb, s.kind+".Get", func() (*E, error) {
		return s.next.Get(ctx, id)
	})
}

func (s *Store[E, P]) List(ctx context.Context) ([]*E, error) {
	return run(s.cb, s.kind+".List", func() ([]*E, error) {
		return s.next.List(ctx)
	})
}

func (s *Store[E, P]) Update(ctx context.Context, id int64, patch P) (*E, error) {
	return run(s.cb, s.kind+".Update", func() (*E, error) {
		return s.next.Update(ctx, id, patch)
	})
}

func (s *Store[E, P]) Delete(ctx context.Context, id int64) (bool, error) {
	return run(s.cb, s.kind+".Delete", func() (bool, error) {
		return s.next.Delete(ctx, id)
	})
}

// ProfilePages is the guarded profile page store.
type ProfilePages struct {
	*Store[entity.ProfilePage, entity.ProfilePagePatch]
	next repository.ProfilePageStore
}

func GuardProfilePages(next repository.ProfilePageStore, cfg Config) *ProfilePages {
	return &ProfilePages{
		Store: Guard[entity.ProfilePage, entity.ProfilePagePatch](next, "profile_page", cfg),
		next:  next,
	}
}

func (s *ProfilePages) GetByType(ctx context.Context, pageType entity.PageType) (*entity.ProfilePage, error) {
	return run(s.cb, "profile_page.GetByType", func() (*entity.ProfilePage, error) {
		return s.next.GetByType(ctx, pageType)
	})
}

// Downloads is the guarded download store.
type Downloads struct {
	*Store[entity.Download, entity.DownloadPatch]
	next repository.DownloadStore
}

func GuardDownloads(next repository.DownloadStore, cfg Config) *Downloads {
	return &Downloads{
		Store: Guard[entity.Download, entity.DownloadPatch](next, "download", cfg),
		next:  next,
	}
}

func (s *Downloads) IncrementHits(ctx context.Context, id int64) (*entity.Download, error) {
	return run(s.cb, "download.IncrementHits", func() (*entity.Download, error) {
		return s.next.IncrementHits(ctx, id)
	})
}

var (
	_ repository.NewsStore         = (*Store[entity.News, entity.NewsPatch])(nil)
	_ repository.AnnouncementStore = (*Store[entity.Announcement, entity.AnnouncementPatch])(nil)
	_ repository.ProfilePageStore  = (*ProfilePages)(nil)
	_ repository.DownloadStore     = (*Downloads)(nil)
)
