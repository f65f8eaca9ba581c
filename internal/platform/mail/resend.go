// Package mail provides the Resend-backed transactional mail dispatcher.
package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// ResendMailer sends HTML mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a mailer with the given API key and default
// from-address.
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send dispatches a single HTML email and returns the provider message ID.
// If the provider response carries no ID, a fallback UUID is returned so
// tracking records stay unique.
func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return "fallback-" + uuid.NewString(), nil
	}
	return sent.Id, nil
}

// SendBroadcast dispatches one HTML email to many recipients via BCC so the
// addresses stay hidden from each other. The from-address doubles as the
// visible To recipient.
func (m *ResendMailer) SendBroadcast(ctx context.Context, bcc []string, subject, html string) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.from},
		Bcc:     bcc,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return "fallback-" + uuid.NewString(), nil
	}
	return sent.Id, nil
}
