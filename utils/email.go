package utils

import (
	"fmt"
	"net/smtp"
)

// SMTPMailer sends mail through a plain-auth SMTP relay (gmail in the default
// deployment).
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

// NewSMTPMailer returns nil when the required settings are absent, which the
// caller treats as "mail not configured".
func NewSMTPMailer(host, port, from, password string) *SMTPMailer {
	if host == "" || from == "" || password == "" {
		return nil
	}
	if port == "" {
		port = "587"
	}
	return &SMTPMailer{Host: host, Port: port, From: from, Password: password}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		htmlBody + "\r\n")

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
