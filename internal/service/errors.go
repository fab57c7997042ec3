package service

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// FieldError describes one violated constraint on a request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every violated field of a request, so the client
// sees the full list in one response instead of fixing fields one at a time.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type validator struct {
	fields []FieldError
}

func (v *validator) add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
