package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every ValidationError.
	ErrInvalidInput      = errors.New("invalid calculator input")
	ErrUnknownCalculator = errors.New("unknown calculator")
	ErrNoScenarios       = errors.New("calculator has no scenarios")
)

// ValidationError rejects raw input before any formula runs.
type ValidationError struct {
	Calculator Kind
	Field      string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Calculator, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Calculator, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(k Kind, field, msg string) error {
	return &ValidationError{Calculator: k, Field: field, Message: msg}
}
