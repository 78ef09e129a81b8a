// Package mailer delivers transactional mail. Only verification mail
// is sent today; delivery goes over plain SMTP, or to the log when
// mail is disabled (the default for local development).
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/blog-platform-api/internal/config"
	"github.com/rs/zerolog"
)

// Mailer sends transactional mail to a single recipient
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, verifyURL string) error
}

// New selects the SMTP mailer or the log fallback based on configuration
func New(cfg *config.MailConfig, log zerolog.Logger) Mailer {
	if cfg.Enabled {
		return &smtpMailer{
			cfg: cfg,
			log: log.With().Str("component", "mailer").Logger(),
		}
	}
	return &logMailer{log: log.With().Str("component", "mailer").Logger()}
}

// smtpMailer delivers mail over SMTP with PLAIN auth
type smtpMailer struct {
	cfg *config.MailConfig
	log zerolog.Logger
}

func (m *smtpMailer) SendVerificationEmail(ctx context.Context, to, verifyURL string) error {
	subject := "Please verify your email"
	body := fmt.Sprintf(
		"Thanks for signing up!\r\n\r\n"+
			"Please confirm your email address by opening the link below:\r\n\r\n"+
			"%s\r\n\r\n"+
			"The link expires after a short time. If you did not create an account, ignore this mail.\r\n",
		verifyURL,
	)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.cfg.From, to, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}

	m.log.Info().Str("to", to).Msg("Verification mail sent")
	return nil
}

// logMailer writes mail to the log instead of sending it
type logMailer struct {
	log zerolog.Logger
}

func (m *logMailer) SendVerificationEmail(ctx context.Context, to, verifyURL string) error {
	m.log.Info().
		Str("to", to).
		Str("verify_url", verifyURL).
		Msg("Mail disabled; verification link logged")
	return nil
}
