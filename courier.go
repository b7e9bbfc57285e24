package courier

import (
	"context"
	"time"

	"github.com/lattiq/courier/internal/core"
)

// Type aliases to re-export core types for the public API.
// This allows users to access types like courier.Task instead of core.Task,
// maintaining a clean public interface while keeping implementation details
// internal.
type (
	Provider         = core.Provider
	ProviderSettings = core.ProviderSettings
	Task             = core.Task
	Status           = core.Status
	SendResult       = core.SendResult
	ValidationError  = core.ValidationError
	ProviderError    = core.ProviderError
)

// Task status constants
const (
	StatusPending    = core.StatusPending
	StatusProcessing = core.StatusProcessing
	StatusSent       = core.StatusSent
	StatusFailed     = core.StatusFailed
)

// Error constructor functions
var (
	NewValidationError = core.NewValidationError
	NewProviderError   = core.NewProviderError
	IsValidation       = core.IsValidation
)

// Dispatcher defines the core submission interface.
// All methods are safe for concurrent use.
type Dispatcher interface {
	// Send submits a task for delivery. It returns once the task reaches a
	// terminal state, which may be after a wait in the pending queue, or
	// immediately with a duplicate notice if the task id was submitted
	// before.
	Send(ctx context.Context, task *Task) (*SendResult, error)

	// StatusOf returns the lifecycle state recorded for a task id and
	// whether the id is known. It never returns an error.
	StatusOf(id string) (Status, bool)

	// Close closes the dispatcher and releases any resources.
	// After calling Close, the dispatcher should not be used.
	Close() error
}

// SendFunc is the signature of a plain delivery capability: it accepts the
// task payload and returns a provider message id.
type SendFunc func(ctx context.Context, recipient, subject, body string) (string, error)

// providerFunc adapts a SendFunc to the Provider interface so integrators
// can supply simulated or ad-hoc transports.
type providerFunc struct {
	name string
	fn   SendFunc
}

// NewProviderFunc wraps fn as a named Provider.
func NewProviderFunc(name string, fn SendFunc) Provider {
	return &providerFunc{name: name, fn: fn}
}

func (p *providerFunc) Send(ctx context.Context, task *Task) (*SendResult, error) {
	messageID, err := p.fn(ctx, task.Recipient, task.Subject, task.Body)
	if err != nil {
		return nil, err
	}
	return &SendResult{
		MessageID: messageID,
		Provider:  p.name,
		Timestamp: time.Now(),
	}, nil
}

func (p *providerFunc) ValidateConfig() error {
	if p.fn == nil {
		return core.NewValidationError("send_func", "send function is required")
	}
	return nil
}

func (p *providerFunc) Name() string {
	return p.name
}
