// Package mailer wraps the SMTP transport used for best-effort notification
// email. Delivery never blocks a request and never surfaces an error to the
// triggering business action.
package mailer

import (
	"crypto/tls"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a single message to one recipient. Implementations report
// whether the message was handed to the transport successfully.
type Mailer interface {
	Send(to, subject, plainBody, htmlBody string) error
	Enabled() bool
}

// Config holds the SMTP settings for the transport.
type Config struct {
	Server        string
	Port          int
	Username      string
	Password      string
	DefaultSender string
	UseTLS        bool
}

type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
	logger zerolog.Logger
}

// New builds an SMTP mailer. When Username or Password is empty the returned
// mailer is disabled: Send is a logged no-op returning ErrDisabled.
func New(cfg Config, logger zerolog.Logger) Mailer {
	log := logger.With().Str("component", "mailer").Logger()

	if cfg.Username == "" || cfg.Password == "" {
		log.Info().Msg("mail credentials not configured, outbound email disabled")
		return &disabledMailer{logger: log}
	}

	dialer := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	if cfg.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Server}
	}

	return &smtpMailer{
		dialer: dialer,
		sender: cfg.DefaultSender,
		logger: log,
	}
}

func (m *smtpMailer) Enabled() bool { return true }

func (m *smtpMailer) Send(to, subject, plainBody, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

// ErrDisabled is returned by a disabled mailer's Send.
var ErrDisabled = fmt.Errorf("mailer disabled")

type disabledMailer struct {
	logger zerolog.Logger
}

func (m *disabledMailer) Enabled() bool { return false }

func (m *disabledMailer) Send(to, subject, _, _ string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email not sent (no credentials)")
	return ErrDisabled
}
