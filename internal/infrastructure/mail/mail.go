package mail

import (
	"github.com/lead-capture-api/internal/config"
)

// Mailer sends emails. The OTP workflow treats it as a fallible, slow,
// opaque capability; which provider backs it is a deployment decision.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// NewFromConfig selects the mailer implementation from cfg.MailProvider.
// Returns nil when delivery is unconfigured; the workflow reports that as
// a configuration error at issuance time rather than failing startup.
func NewFromConfig(cfg *config.Config) Mailer {
	switch cfg.MailProvider {
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil
		}
		return NewSMTPMailer(cfg)
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil
		}
		return NewSendGridMailer(cfg)
	default:
		return nil
	}
}
