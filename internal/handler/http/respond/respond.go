// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"dinas-portal/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeErrors are substrings of messages that may be shown to clients as-is.
var safeErrors = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"must not",
	"cannot be",
	"too large",
	"unknown field",
	"rate limit",
	"unauthorized",
	"forbidden",
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., database errors) are returned as "internal server error",
// with details logged for debugging. Safe errors (validation errors) are returned as-is.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 5xx is always masked
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// StatusFor maps a use case error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the response for a use case error. Validation and not-found errors carry
// their own message; everything else is masked as an internal error.
func FromError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	if code >= 500 {
		SafeError(w, code, err)
		return
	}
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		JSON(w, code, map[string]string{"error": ve.Error(), "field": ve.Field})
		return
	}
	var nf *entity.NotFoundError
	if errors.As(err, &nf) {
		JSON(w, code, map[string]string{"error": nf.Error()})
		return
	}
	JSON(w, code, map[string]string{"error": err.Error()})
}

// NotFound writes the 404 body used when a lookup returns no row.
func NotFound(w http.ResponseWriter, kind string, id int64) {
	FromError(w, &entity.NotFoundError{Kind: kind, ID: id})
}
