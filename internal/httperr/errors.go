package httperr

import (
	"errors"
	"sort"
	"strings"
)

// ValidationError carries a field -> message map.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func ErrValidation(fields map[string]string) error {
	return ValidationError{Fields: fields}
}

func ErrField(field, message string) error {
	return ValidationError{Fields: map[string]string{field: message}}
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// NotFoundError also covers resources the caller does not own.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + "_not_found"
}

func ErrNotFound(resource string) error {
	return NotFoundError{Resource: resource}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ConflictError rejects a template assignment; Details holds every overlap found.
type ConflictError struct {
	Details any
}

func (e ConflictError) Error() string {
	return "schedule_conflict"
}

func ErrConflict(details any) error {
	return ConflictError{Details: details}
}

func AsConflict(err error) (ConflictError, bool) {
	var ce ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
