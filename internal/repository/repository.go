// Package repository declares the persistence contracts for the content collections.
package repository

import (
	"context"

	"dinas-portal/internal/domain/entity"
)

// Store is the contract shared by every content collection.
//
// Get returns (nil, nil) when no row matches. Update returns *entity.NotFoundError when
// no row matches. Delete reports whether a row was removed.
type Store[E any, P entity.Patch] interface {
	Create(ctx context.Context, e *E) error
	Get(ctx context.Context, id int64) (*E, error)
	List(ctx context.Context) ([]*E, error)
	Update(ctx context.Context, id int64, patch P) (*E, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type NewsStore = Store[entity.News, entity.NewsPatch]

type AnnouncementStore = Store[entity.Announcement, entity.AnnouncementPatch]

// ProfilePageStore adds lookup by page type. With several rows of one type the lowest id wins.
type ProfilePageStore interface {
	Store[entity.ProfilePage, entity.ProfilePagePatch]
	GetByType(ctx context.Context, pageType entity.PageType) (*entity.ProfilePage, error)
}

// DownloadStore adds the atomic hit counter.
type DownloadStore interface {
	Store[entity.Download, entity.DownloadPatch]
	IncrementHits(ctx context.Context, id int64) (*entity.Download, error)
}
