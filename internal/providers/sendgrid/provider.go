package sendgrid

import (
	"context"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/lattiq/courier/internal/core"
)

// Provider implements the core.Provider interface for SendGrid.
type Provider struct {
	client *sendgrid.Client
	config core.ProviderSettings
}

// NewProvider creates a new SendGrid provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "SendGrid API key is required")
	}

	if settings.Get("sender") == "" {
		return nil, core.NewValidationError("sender", "sender address is required")
	}

	return &Provider{
		client: sendgrid.NewSendClient(apiKey),
		config: settings,
	}, nil
}

// Send delivers a single task using SendGrid.
func (p *Provider) Send(ctx context.Context, task *core.Task) (*core.SendResult, error) {
	from := mail.NewEmail(p.config.Get("sender_name"), p.config.Get("sender"))
	to := mail.NewEmail("", task.Recipient)

	message := mail.NewSingleEmail(from, task.Subject, to, task.Body, "")

	response, err := p.client.Send(message)
	if err != nil {
		return nil, core.NewProviderError("sendgrid", "send_error", "failed to send email: "+err.Error())
	}

	if response.StatusCode >= 400 {
		return nil, &core.ProviderError{
			Provider:   "sendgrid",
			Code:       "api_error",
			Message:    "SendGrid API error: " + response.Body,
			StatusCode: response.StatusCode,
		}
	}

	// SendGrid reports the message id via the X-Message-Id header.
	messageID := "unknown"
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}

	return &core.SendResult{
		MessageID: messageID,
		Provider:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "SendGrid API key is required")
	}
	if p.config.Get("sender") == "" {
		return core.NewValidationError("sender", "sender address is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "sendgrid"
}
