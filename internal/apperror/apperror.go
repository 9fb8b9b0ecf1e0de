// Package apperror defines the error kinds the HTTP layer knows how to render.
package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports an unknown entity identifier. Key holds the raw
// identifier when it could not be parsed as an ID.
type NotFoundError struct {
	Entity string
	ID     int64
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}

	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness or reference conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
