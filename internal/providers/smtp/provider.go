package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/lattiq/courier/internal/core"
)

// Provider implements the core.Provider interface for a generic SMTP server.
type Provider struct {
	config core.ProviderSettings
}

// NewProvider creates a new SMTP provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	host := settings.Get("host")
	if host == "" {
		return nil, core.NewValidationError("host", "SMTP host is required")
	}

	port := settings.Get("port")
	if port == "" {
		return nil, core.NewValidationError("port", "SMTP port is required")
	}
	if _, err := strconv.Atoi(port); err != nil {
		return nil, core.NewValidationError("port", "invalid port number: "+port)
	}

	if settings.Get("sender") == "" {
		return nil, core.NewValidationError("sender", "sender address is required")
	}

	return &Provider{config: settings}, nil
}

// Send delivers a single task over SMTP.
func (p *Provider) Send(ctx context.Context, task *core.Task) (*core.SendResult, error) {
	host := p.config.Get("host")
	addr := host + ":" + p.config.Get("port")
	sender := p.config.Get("sender")

	var auth smtp.Auth
	if username := p.config.Get("username"); username != "" {
		auth = smtp.PlainAuth("", username, p.config.Get("password"), host)
	}

	message := p.buildMessage(sender, task)

	if err := smtp.SendMail(addr, auth, sender, []string{task.Recipient}, message); err != nil {
		return nil, core.NewProviderError("smtp", "send_error", "failed to send email: "+err.Error())
	}

	// SMTP doesn't hand back a message id; synthesize one.
	messageID := fmt.Sprintf("%d@%s", time.Now().UnixNano(), host)

	return &core.SendResult{
		MessageID: messageID,
		Provider:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("host") == "" {
		return core.NewValidationError("host", "SMTP host is required")
	}

	port := p.config.Get("port")
	if port == "" {
		return core.NewValidationError("port", "SMTP port is required")
	}
	if _, err := strconv.Atoi(port); err != nil {
		return core.NewValidationError("port", "invalid port number: "+port)
	}

	if p.config.Get("sender") == "" {
		return core.NewValidationError("sender", "sender address is required")
	}

	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "smtp"
}

// buildMessage builds the message in RFC 5322 format.
func (p *Provider) buildMessage(sender string, task *core.Task) []byte {
	var message strings.Builder

	message.WriteString("From: " + sender + "\r\n")
	message.WriteString("To: " + task.Recipient + "\r\n")
	message.WriteString("Subject: " + task.Subject + "\r\n")
	message.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(task.Body + "\r\n")

	return []byte(message.String())
}
