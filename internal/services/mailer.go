package services

import (
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/streamflix/streamflix/internal/config"
	"github.com/streamflix/streamflix/pkg/logger"
)

// Mailer defines the outbound notification contract. Send reports delivery
// failure synchronously; there is no queueing or retry.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail over SMTP with STARTTLS.
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger logger.Logger
}

// NewSMTPMailer creates a mailer from the configured SMTP account.
func NewSMTPMailer(cfg *config.Config, log logger.Logger) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.MailServer,
		mail.WithPort(cfg.MailPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.MailUsername),
		mail.WithPassword(cfg.MailPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.MailUsername,
		logger: log,
	}, nil
}

// Send delivers one plain-text message. The call blocks until the SMTP
// transaction completes or fails.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// SimulatedMailer logs messages instead of delivering them and always
// reports success so dependent flows proceed. Used when SMTP credentials
// are absent or MAIL_SIMULATE is set.
type SimulatedMailer struct {
	logger logger.Logger
}

// NewSimulatedMailer creates a log-only mailer.
func NewSimulatedMailer(log logger.Logger) *SimulatedMailer {
	return &SimulatedMailer{logger: log}
}

// Send logs the message and reports success.
func (m *SimulatedMailer) Send(to, subject, body string) error {
	m.logger.Infof("[Mailer] simulating email to %s: %s", to, subject)
	m.logger.Debugf("[Mailer] body: %s", body)
	return nil
}

// NewMailer returns the SMTP mailer, or the simulated one when the
// configuration requests it.
func NewMailer(cfg *config.Config, log logger.Logger) (Mailer, error) {
	if cfg.MailSimulate {
		log.Warnf("[Mailer] mail delivery disabled, messages will be logged only")
		return NewSimulatedMailer(log), nil
	}
	return NewSMTPMailer(cfg, log)
}
