// Package mailer sends transactional mail over SMTP. Without a configured
// mail host it logs the message instead, which keeps local development from
// needing a mail server.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"nova_crm/config"
	"nova_crm/internal/logger"
)

// Mailer sends mail through the configured SMTP server.
type Mailer struct {
	cfg *config.Configuration
}

// New creates a Mailer from the server configuration.
func New(cfg *config.Configuration) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether a mail host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.MailHost != ""
}

// Send delivers a single HTML mail. With no SMTP host configured the message
// body is written to the application log.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		logger.GetAppLogger().WithField("to", to).Infof("Mail delivery disabled, message %q: %s", subject, htmlBody)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.MailHost, m.cfg.MailPort, m.cfg.MailUser, m.cfg.MailPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendVerificationOTP mails the 6-digit verification code to a new account.
func (m *Mailer) SendVerificationOTP(to, firstName, otp string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires in 10 minutes.</p>",
		firstName, otp,
	)
	return m.Send(to, "Verify your email address", body)
}
