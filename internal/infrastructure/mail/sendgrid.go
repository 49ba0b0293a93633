package mail

import (
	"fmt"

	"github.com/lead-capture-api/internal/config"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridMailer struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridMailer creates a Mailer backed by the SendGrid v3 API.
func NewSendGridMailer(cfg *config.Config) Mailer {
	return &sendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   cfg.SendGridFrom,
	}
}

func (m *sendGridMailer) SendEmail(to, subject, body string) error {
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail("", m.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		body,
	)
	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
