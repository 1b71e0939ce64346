// Package payload decodes and validates JSON request bodies. Every failure is reported as an
// *entity.ValidationError so handlers answer 400 before any use case is invoked.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"dinas-portal/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator. Field names in errors are the JSON names.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("page_type", func(fl validator.FieldLevel) bool {
			return entity.PageType(fl.Field().String()).IsValid()
		})
		validate = v
	})
	return validate
}

// Decode reads one JSON object from the request body into dst and validates it.
// Unknown fields and trailing data are rejected.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return &entity.ValidationError{Field: "body", Message: "is required"}
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &entity.ValidationError{Field: "body", Message: "must contain a single JSON object"}
	}
	return Validate(dst)
}

// Validate runs the struct tags of v and converts the first failure.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &entity.ValidationError{Field: fe.Field(), Message: message(fe)}
	}
	return &entity.ValidationError{Field: "body", Message: "is invalid"}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_url":
		return "must be an absolute URL"
	case "page_type":
		names := make([]string, len(entity.PageTypes))
		for i, pt := range entity.PageTypes {
			names[i] = string(pt)
		}
		return "must be one of " + strings.Join(names, ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func decodeError(err error) error {
	var (
		ve        *entity.ValidationError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve):
		return ve
	case errors.Is(err, io.EOF):
		return &entity.ValidationError{Field: "body", Message: "is required"}
	case errors.As(err, &maxErr):
		return &entity.ValidationError{Field: "body", Message: fmt.Sprintf("request body too large (limit %d bytes)", maxErr.Limit)}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &entity.ValidationError{Field: "body", Message: "is invalid JSON"}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &entity.ValidationError{Field: field, Message: "must be of type " + typeErr.Type.String()}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &entity.ValidationError{Field: field, Message: "unknown field"}
	default:
		return &entity.ValidationError{Field: "body", Message: "is invalid JSON"}
	}
}
