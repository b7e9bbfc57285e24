package courier

import (
	"fmt"

	"github.com/lattiq/courier/internal/providers/mailgun"
	"github.com/lattiq/courier/internal/providers/sendgrid"
	"github.com/lattiq/courier/internal/providers/ses"
	"github.com/lattiq/courier/internal/providers/smtp"
)

// ProviderType represents the type of delivery provider.
type ProviderType string

const (
	// ProviderAWSSES represents Amazon Simple Email Service.
	ProviderAWSSES ProviderType = "aws_ses"

	// ProviderSendGrid represents the SendGrid email service.
	ProviderSendGrid ProviderType = "sendgrid"

	// ProviderMailgun represents the Mailgun email service.
	ProviderMailgun ProviderType = "mailgun"

	// ProviderSMTP represents a generic SMTP server.
	ProviderSMTP ProviderType = "smtp"
)

// String returns the string representation of the provider type.
func (pt ProviderType) String() string {
	return string(pt)
}

// Valid checks if the provider type is supported.
func (pt ProviderType) Valid() bool {
	switch pt {
	case ProviderAWSSES, ProviderSendGrid, ProviderMailgun, ProviderSMTP:
		return true
	default:
		return false
	}
}

// NewProvider creates a provider instance based on type and settings. The
// returned provider is supplied to New alongside the others in fallback
// order.
func NewProvider(providerType ProviderType, settings ProviderSettings) (Provider, error) {
	switch providerType {
	case ProviderAWSSES:
		return ses.NewProvider(settings)
	case ProviderSendGrid:
		return sendgrid.NewProvider(settings)
	case ProviderMailgun:
		return mailgun.NewProvider(settings)
	case ProviderSMTP:
		return smtp.NewProvider(settings)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
