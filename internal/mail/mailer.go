package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer sends plain-text mail to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer for the given relay address (host:port).
// Username may be empty for unauthenticated relays.
func NewSMTPMailer(addr, from, username, passwd string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if idx := strings.IndexByte(addr, ':'); idx >= 0 {
			host = addr[:idx]
		}
		auth = smtp.PlainAuth("", username, passwd, host)
	}
	return &SMTPMailer{addr: addr, from: from, auth: auth}
}

// Send delivers the message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}

// LogMailer logs instead of sending. Used in development when no SMTP relay
// is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer returns a log-only mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message body at debug level.
func (m *LogMailer) Send(to, subject, body string) error {
	m.logger.Info("mail suppressed, no smtp relay configured",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	m.logger.Debug("mail body", zap.String("body", body))
	return nil
}
