package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated means the request carries no valid identity
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is a failed login; it maps to Unauthenticated
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden means the caller does not own the resource
	ErrForbidden = errors.New("you don't have permission to modify this resource")
	// ErrNotFound covers absent resources and, on public routes, private ones
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidOrder is a reorder whose ids are not the project's chapter set
	ErrInvalidOrder = errors.New("ordered chapter ids must match the project's chapters exactly")
	// ErrEmailTaken is a registration with an email already in use
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError is malformed input, with one message per offending field
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Details[field])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records a problem with field
func (e *ValidationError) Add(field, message string) {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[field] = message
}

// OrNil returns e when it holds at least one problem
func (e *ValidationError) OrNil() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}

func invalidField(field, message string) error {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}
