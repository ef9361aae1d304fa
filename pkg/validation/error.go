package validation

import (
	"fmt"

	"github.com/goliatone/go-formvalidate/pkg/forms"
)

// ValidationError is the failure selected for display on a control.
type ValidationError struct {
	Control forms.Control
	Key     string
	Payload forms.Payload
}

// NewValidationError builds a ValidationError from its parts.
func NewValidationError(control forms.Control, key string, payload forms.Payload) *ValidationError {
	return &ValidationError{Control: control, Key: key, Payload: payload}
}

// FirstError returns the failure reported first by control's validators, or
// nil when control has no failures. The result is computed on every call.
func FirstError(control forms.Control) *ValidationError {
	if control == nil {
		return nil
	}
	first, ok := control.Errors().First()
	if !ok {
		return nil
	}
	return &ValidationError{Control: control, Key: first.Key, Payload: first.Payload}
}

// HasMessage reports whether the failure carries a non-empty message.
func (e *ValidationError) HasMessage() bool {
	return e != nil && e.Payload.HasMessage()
}

// Message returns the failure's message, or "" when it has none.
func (e *ValidationError) Message() string {
	if e == nil {
		return ""
	}
	return e.Payload.Message()
}

// Error implements error, preferring the human-readable message.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.HasMessage() {
		return e.Message()
	}
	return fmt.Sprintf("validation: %s failed", e.Key)
}
