/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to insert an entity whose keys are taken
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrPreconditionFailed is returned when the stored ETag no longer matches the caller's copy
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrStorage is matched by every StorageError
	ErrStorage = errors.New("storage request failed")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PreconditionFailedError represents a conditional write rejected because of a stale ETag
type PreconditionFailedError struct {
	Operation string
	Key       string
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("precondition failed for %s operation on key %q: entity was modified", e.Operation, e.Key)
}

func (e *PreconditionFailedError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// StorageError wraps any other failure reported by the underlying store:
// throttling, authorization, transport. StatusCode and ErrorCode are passed
// through from the provider unchanged.
type StorageError struct {
	Operation  string
	StatusCode int
	ErrorCode  string
	Err        error
}

func (e *StorageError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s failed (status %d, code %s): %v", e.Operation, e.StatusCode, e.ErrorCode, e.Err)
	}
	return fmt.Sprintf("%s failed (status %d): %v", e.Operation, e.StatusCode, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewPreconditionFailedError creates a new PreconditionFailedError
func NewPreconditionFailedError(operation, key string) error {
	return &PreconditionFailedError{Operation: operation, Key: key}
}

// NewStorageError creates a new StorageError
func NewStorageError(operation string, statusCode int, errorCode string, err error) error {
	return &StorageError{Operation: operation, StatusCode: statusCode, ErrorCode: errorCode, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPreconditionFailed checks if an error is an optimistic concurrency failure
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsStorageError checks if an error was reported by the underlying store
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// StatusCode returns the HTTP-style status carried by err.
// Semantic errors map to 404, 409 and 412; anything else without a
// StorageError in its chain reports 0.
func StatusCode(err error) int {
	var se *StorageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &se):
		return se.StatusCode
	case IsNotFound(err):
		return 404
	case IsAlreadyExists(err):
		return 409
	case IsPreconditionFailed(err):
		return 412
	case IsValidationError(err):
		return 400
	}
	return 0
}
