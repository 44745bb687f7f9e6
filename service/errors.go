package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation   = errors.New("failed validation")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotPermitted       = errors.New("not permitted")
)

// ValidationError carries the field-to-message map collected by a validator.
// It matches ErrFailedValidation under errors.Is so callers can branch on the
// sentinel and still recover the individual field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps a validation error map into a ValidationError.
func (s *service) failedValidation(errorMap map[string]string) error {
	return &ValidationError{Fields: errorMap}
}
