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
	// ErrInvalidConfiguration is returned when a class fails registration checks
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotFound is returned when a named class or alias is not known
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// Requirement names the predicate a class failed.
type Requirement string

const (
	// RequirementEntity means the class must produce a model.Model.
	RequirementEntity Requirement = "model.Model"
	// RequirementSwappable means the class must use the model.Swappable trait.
	RequirementSwappable Requirement = "model.Swappable"
)

// InvalidConfigurationError represents a class rejected by Register or Override
type InvalidConfigurationError struct {
	Type        string
	Requirement Requirement
}

func (e *InvalidConfigurationError) Error() string {
	switch e.Requirement {
	case RequirementEntity:
		return fmt.Sprintf("invalid configuration: given [%s] does not implement [%s]", e.Type, e.Requirement)
	case RequirementSwappable:
		return fmt.Sprintf("invalid configuration: given [%s] does not use [%s] trait", e.Type, e.Requirement)
	default:
		return fmt.Sprintf("invalid configuration: given [%s] does not satisfy [%s]", e.Type, e.Requirement)
	}
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NotFoundError represents an error when a named item is not found
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

// Helper functions for creating errors

// NewInvalidConfigurationError creates a new InvalidConfigurationError
func NewInvalidConfigurationError(typeName string, requirement Requirement) error {
	return &InvalidConfigurationError{Type: typeName, Requirement: requirement}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsInvalidConfiguration checks if an error is an invalid configuration error
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
