// Package mailer delivers out-of-band password-reset links. The core only
// depends on the Mailer interface; SMTP is one implementation.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// Mailer sends transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTP builds a mailer. user may be empty for unauthenticated relays.
func NewSMTP(host, port, from, user, pass string) *SMTPMailer {
	m := &SMTPMailer{host: host, port: port, from: from}
	if user != "" {
		m.auth = smtp.PlainAuth("", user, pass, host)
	}
	return m
}

// SendPasswordReset emails a minimal reset link.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Reset your password\r\n\r\n"+
			"A password reset was requested for your account.\r\n\r\n"+
			"Reset link (valid briefly, single use): %s\r\n\r\n"+
			"If you did not request this, ignore this email.\r\n",
		m.from, to, resetLink,
	)

	if err := smtp.SendMail(m.host+":"+m.port, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
