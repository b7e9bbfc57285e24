package mailgun

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/lattiq/courier/internal/core"
)

// Provider implements the core.Provider interface for Mailgun.
type Provider struct {
	client mailgun.Mailgun
	config core.ProviderSettings
}

// NewProvider creates a new Mailgun provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "Mailgun API key is required")
	}

	domain := settings.Get("domain")
	if domain == "" {
		return nil, core.NewValidationError("domain", "Mailgun domain is required")
	}

	if settings.Get("sender") == "" {
		return nil, core.NewValidationError("sender", "sender address is required")
	}

	client := mailgun.NewMailgun(domain, apiKey)

	// EU customers use a different API base.
	if baseURL := settings.Get("base_url"); baseURL != "" {
		client.SetAPIBase(baseURL)
	}

	return &Provider{
		client: client,
		config: settings,
	}, nil
}

// Send delivers a single task using Mailgun.
func (p *Provider) Send(ctx context.Context, task *core.Task) (*core.SendResult, error) {
	message := mailgun.NewMessage(p.config.Get("sender"), task.Subject, task.Body, task.Recipient)

	_, id, err := p.client.Send(ctx, message)
	if err != nil {
		return nil, core.NewProviderError("mailgun", "send_failed", err.Error())
	}

	return &core.SendResult{
		MessageID: id,
		Provider:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// ValidateConfig validates the Mailgun provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "Mailgun API key is required")
	}
	if p.config.Get("domain") == "" {
		return core.NewValidationError("domain", "Mailgun domain is required")
	}
	if p.config.Get("sender") == "" {
		return core.NewValidationError("sender", "sender address is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mailgun"
}
