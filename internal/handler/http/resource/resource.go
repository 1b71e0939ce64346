// Package resource implements the CRUD handlers shared by every content collection.
// Each collection package supplies its request DTOs and registers the routes under its prefix.
package resource

import (
	"context"
	"net/http"

	"dinas-portal/internal/domain/entity"
)

// Service is the use case surface shared by every collection.
type Service[E any, P entity.Patch] interface {
	Create(ctx context.Context, e E) (*E, error)
	Get(ctx context.Context, id int64) (*E, error)
	List(ctx context.Context) ([]*E, error)
	Update(ctx context.Context, id int64, patch P) (*E, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateRequest is a validated create body convertible to the entity.
type CreateRequest[E any] interface {
	Entity() E
}

// UpdateRequest is a presence-aware update body convertible to the domain patch.
type UpdateRequest[P entity.Patch] interface {
	Patch() P
}

// Middleware wraps a handler.
type Middleware = func(http.Handler) http.Handler

// DeleteResponse reports whether a row was removed.
type DeleteResponse struct {
	Success bool `json:"success"`
}

func orIdentity(mw Middleware) Middleware {
	if mw == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return mw
}
