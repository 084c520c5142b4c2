package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a referenced entity is missing
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, rejected before any write
	ValidationError struct {
		Message string
		Fields  []string // human-readable per-field errors, when available
	}

	// CapacityError indicates a resource ceiling was reached (e.g. the
	// notification channel's subscription limit); callers should retry later
	CapacityError struct {
		Message string
	}

	// StorageError wraps a low-level store failure. The original error is
	// kept for server-side logs only and never exposed to clients.
	StorageError struct {
		Message string
		Err     error
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *CapacityError) Error() string   { return e.Message }
func (e *StorageError) Error() string    { return e.Message }
func (e *StorageError) Unwrap() error    { return e.Err }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *CapacityError) StatusCode() int   { return http.StatusServiceUnavailable }
func (e *StorageError) StatusCode() int    { return http.StatusInternalServerError }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrCapacity   = errors.New("capacity reached")
	ErrStorage    = errors.New("storage failure")
)

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *CapacityError) Is(target error) bool   { return target == ErrCapacity }
func (e *StorageError) Is(target error) bool    { return target == ErrStorage }

// ConflictError represents a state conflict: deleting a checked-out folder,
// opening a second checkout, mutating a disposed folder.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, checkout, department)
	ResourceID   string // ID of the conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
