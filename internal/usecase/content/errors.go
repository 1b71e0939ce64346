// Package content provides the use cases for the portal's content collections: news,
// announcements, profile pages and downloads. It validates input before any store call
// and instruments every operation with a span and an outcome counter.
package content

import (
	"errors"

	"dinas-portal/internal/domain/entity"
)

// Outcome labels recorded for every operation.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

func invalidID(id int64) error {
	if id > 0 {
		return nil
	}
	return &entity.ValidationError{Field: "id", Message: "must be positive"}
}

func classify(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, entity.ErrValidationFailed):
		return resultInvalid
	case errors.Is(err, entity.ErrNotFound):
		return resultNotFound
	default:
		return resultError
	}
}
