package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider defines the interface for email delivery providers.
// Implementations handle provider-specific logic for delivering a task.
type Provider interface {
	// Send delivers a single task using the provider's API.
	Send(ctx context.Context, task *Task) (*SendResult, error)

	// ValidateConfig validates the provider configuration.
	// Returns an error if the configuration is invalid or incomplete.
	ValidateConfig() error

	// Name returns the provider's name for identification and logging.
	Name() string
}

// ProviderSettings represents configuration settings for delivery providers.
type ProviderSettings map[string]string

// Get retrieves a configuration value by key.
func (ps ProviderSettings) Get(key string) string {
	return ps[key]
}

// Set sets a configuration value.
func (ps ProviderSettings) Set(key, value string) {
	ps[key] = value
}

// Task represents a single logical email send. Identity is ID alone; the
// remaining fields are opaque payload passed through to providers. A task is
// immutable once submitted.
type Task struct {
	ID        string `json:"id"`        // Caller-supplied, globally unique per logical send
	Recipient string `json:"recipient"` // Destination address
	Subject   string `json:"subject"`   // Message subject
	Body      string `json:"body"`      // Message body
}

// Validate checks that the task carries every required field.
func (t *Task) Validate() error {
	if t == nil {
		return &ValidationError{Field: "task", Message: "task is required"}
	}
	if strings.TrimSpace(t.ID) == "" {
		return &ValidationError{Field: "id", Message: "task id is required"}
	}
	if strings.TrimSpace(t.Recipient) == "" {
		return &ValidationError{Field: "recipient", Message: "recipient is required"}
	}
	if strings.TrimSpace(t.Subject) == "" {
		return &ValidationError{Field: "subject", Message: "subject is required"}
	}
	if strings.TrimSpace(t.Body) == "" {
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return nil
}

// Status describes the lifecycle state of a task.
type Status string

const (
	// StatusPending indicates the task is queued awaiting admission.
	StatusPending Status = "pending"

	// StatusProcessing indicates delivery is in progress.
	StatusProcessing Status = "processing"

	// StatusSent indicates a provider accepted the task.
	StatusSent Status = "sent"

	// StatusFailed indicates every eligible provider was exhausted.
	StatusFailed Status = "failed"
)

// Terminal reports whether the status is a final state. Terminal states
// never revert to an earlier state for the same id.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// SendResult contains the outcome of a completed submission.
type SendResult struct {
	// MessageID is the unique identifier assigned by the provider.
	MessageID string

	// Provider is the name of the provider that delivered the task.
	Provider string

	// Timestamp when the task was accepted by the provider.
	Timestamp time.Time

	// Duplicate indicates the submission was collapsed into a previous one
	// for the same task id. No provider was contacted.
	Duplicate bool

	// Status is the task's lifecycle state at the time the result was
	// produced. For duplicates this is the state recorded by the first
	// submission, which may still be in progress.
	Status Status
}

// ValidationError represents a validation error with specific field information.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ProviderError represents an error from a delivery provider.
type ProviderError struct {
	// Provider is the name of the provider that generated the error.
	Provider string

	// Code is the provider-specific error code.
	Code string

	// Message is the error message from the provider.
	Message string

	// StatusCode is the HTTP status code (for HTTP-based providers).
	StatusCode int

	// Cause is the underlying error that caused this provider error.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s error [%s] (status: %d): %s",
			e.Provider, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s error [%s]: %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *ProviderError) Is(target error) bool {
	pe, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Provider == pe.Provider && e.Code == pe.Code
}

// NewProviderError creates a new provider error.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidation reports whether err is a task or configuration field
// validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
