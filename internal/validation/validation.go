// Package validation validates drafts and patches before they reach a
// backend. Errors accumulate per field so a caller sees every problem
// in one round trip.
package validation

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// Required returns an error if the value is empty or whitespace-only.
func Required(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// Enum returns an error unless the value's Valid() method accepts it.
func Enum(field string, value interface{ Valid() bool }) *ValidationError {
	if !value.Valid() {
		return &ValidationError{
			Field:   field,
			Message: "is not a recognized value",
		}
	}
	return nil
}

// NonNegative returns an error if the amount is below zero.
func NonNegative(field string, value float64) *ValidationError {
	if value < 0 {
		return &ValidationError{
			Field:   field,
			Message: "must not be negative",
		}
	}
	return nil
}

// Positive returns an error unless the amount is strictly above zero.
func Positive(field string, value float64) *ValidationError {
	if value <= 0 {
		return &ValidationError{
			Field:   field,
			Message: "must be greater than zero",
		}
	}
	return nil
}

// DateSet returns an error if the date is the zero time.
func DateSet(field string, value time.Time) *ValidationError {
	if value.IsZero() {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// Dependencies returns an error if a task's dependency list references
// the task itself or contains duplicates.
func Dependencies(field, selfID string, ids []string) *ValidationError {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if selfID != "" && id == selfID {
			return &ValidationError{
				Field:   field,
				Message: "must not reference the task itself",
			}
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("contains duplicate reference %q", id),
			}
		}
		seen[id] = struct{}{}
	}
	return nil
}
