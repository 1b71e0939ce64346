package entity

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a field was present in a partial update.
// For nullable columns use Optional[*T]: Set with a nil Value means "clear the column".
// Null records an explicit JSON null, which non-pointer fields reject.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as present. A JSON null decodes into the zero value of T,
// which for pointer types is an explicit nil.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Null = bytes.Equal(bytes.TrimSpace(b), []byte("null"))
	return json.Unmarshal(b, &o.Value)
}

// notNull rejects an explicit null for a column that cannot be cleared.
func notNull[T any](field string, o Optional[T]) error {
	if o.Set && o.Null {
		return &ValidationError{Field: field, Message: "must not be null"}
	}
	return nil
}

// Assignment is one column write produced by a patch.
type Assignment struct {
	Column string
	Value  any
}

// Patch is implemented by every partial-update payload.
type Patch interface {
	Validate() error
	Assignments() []Assignment
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func appendIfSet[T any](out []Assignment, column string, o Optional[T]) []Assignment {
	if !o.Set {
		return out
	}
	return append(out, Assignment{Column: column, Value: o.Value})
}
