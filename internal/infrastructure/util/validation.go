package util

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("A parameter %s %s.", e.Field, e.Message)
}

// ValidateRequired checks if a string value is not empty
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return ValidationError{Field: fieldName, Message: "is required"}
	}
	return nil
}

// ValidatePositive checks if a numeric value is positive
func ValidatePositive(value int, fieldName string) error {
	if value <= 0 {
		return ValidationError{Field: fieldName, Message: "must be positive"}
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed
func ValidateOneOf(value string, allowed []string, fieldName string) error {
	if !slices.Contains(allowed, value) {
		return ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("must be one of %s: %s", strings.Join(allowed, ", "), value),
		}
	}
	return nil
}
