// Package email queues, renders and delivers the account emails.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// ResendProvider delivers email through the Resend API.
type ResendProvider struct {
	client *resend.Client
	from   string
}

// NewResendProvider creates a provider sending as "fromName <fromEmail>".
// A non-empty baseURL overrides the Resend API endpoint.
func NewResendProvider(apiKey, baseURL, fromName, fromEmail string) (*ResendProvider, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendProvider{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}, nil
}

// Deliver sends msg and returns the Resend message id.
func (p *ResendProvider) Deliver(ctx context.Context, msg adapter.OutgoingEmail) (string, error) {
	resp, err := p.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    p.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		if rejected(err) {
			return "", domainerror.NewEmailError(
				domainerror.ErrCodeEmailRejected,
				"resend rejected the email",
				fmt.Errorf("%w: %v", domainerror.ErrEmailRejected, err),
			)
		}
		return "", domainerror.NewEmailError(
			domainerror.ErrCodeEmailUnavailable,
			"resend is unavailable",
			fmt.Errorf("%w: %v", domainerror.ErrEmailUnavailable, err),
		)
	}
	return resp.Id, nil
}

// rejected reports whether Resend refused the request itself (401, 403, 422)
// as opposed to failing transiently (429, 5xx).
func rejected(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// LogProvider writes emails to the log. It stands in for Resend when no API
// key is configured.
type LogProvider struct{}

// Deliver logs msg and reports a synthetic message id.
func (LogProvider) Deliver(ctx context.Context, msg adapter.OutgoingEmail) (string, error) {
	id := "log-" + uuid.NewString()
	slog.Info("Email not delivered, no provider configured",
		"to", msg.To,
		"subject", msg.Subject,
		"providerID", id,
		"body", msg.Text,
	)
	return id, nil
}

var (
	_ adapter.MailProvider = (*ResendProvider)(nil)
	_ adapter.MailProvider = LogProvider{}
)
