// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that engines and services can return.
// An operation that returns one of these has not changed any state.
var (
	// ErrOutOfRange is returned when a logical index is outside [0, size).
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidRating is returned when a rating is outside 1-5.
	ErrInvalidRating = errors.New("invalid rating: must be between 1 and 5")

	// ErrInvalidCriterion is returned for an unknown sort key.
	ErrInvalidCriterion = errors.New("invalid sort criterion")

	// ErrAlreadyPinned is returned when pinning an identity that already has a pin.
	ErrAlreadyPinned = errors.New("song is already pinned")

	// ErrIndexOccupied is returned when pinning to an index held by another identity.
	ErrIndexOccupied = errors.New("index is already pinned")

	// ErrNotFound is returned when a song cannot be located.
	ErrNotFound = errors.New("song not found")

	// ErrHistoryEmpty is returned when undoing a play with no history.
	ErrHistoryEmpty = errors.New("playback history is empty")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "PlaylistService", "RatingService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s.%s failed: %s: %v", e.Service, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IndexError describes which index was rejected and against what size.
type IndexError struct {
	Index int
	Size  int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Size)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}

// NewIndexError creates an IndexError for index against size.
func NewIndexError(index, size int) *IndexError {
	return &IndexError{Index: index, Size: size}
}
