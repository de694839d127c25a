package jobs

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// MailerConfig holds the SMTP relay settings.
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends plain-text mail over SMTP. With no host configured it logs
// the message instead, which is what development environments want.
type Mailer struct {
	cfg    MailerConfig
	logger *slog.Logger
}

// NewMailer constructs a Mailer.
func NewMailer(cfg MailerConfig, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// headerSanitizer strips the CR/LF bytes that would let a caller-supplied
// value terminate a header line and inject its own.
var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// buildMessage renders the RFC 822 message. Header values pass through the
// sanitizer; the subject may carry text taken from public form input.
func buildMessage(from, to, subject, body string) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", headerSanitizer.Replace(from))
	fmt.Fprintf(&msg, "To: %s\r\n", headerSanitizer.Replace(to))
	fmt.Fprintf(&msg, "Subject: %s\r\n", headerSanitizer.Replace(subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)
	return msg.String()
}

// Send delivers one message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" {
		if m.logger != nil {
			m.logger.Info("mailer: no SMTP host configured, logging message",
				slog.String("to", to),
				slog.String("subject", subject))
		}
		return nil
	}

	msg := buildMessage(m.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
