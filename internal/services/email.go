package services

import (
	"fmt"
	"html"
	"net/smtp"

	"github.com/dstanic/folio-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != "" && s.cfg.NotifyTo != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// NotifyContactMessage forwards a contact form submission to the
// configured notification address.
func (s *EmailService) NotifyContactMessage(senderName, senderEmail, subject, body string) error {
	mailSubject := fmt.Sprintf("New contact message from %s", senderName)
	mailBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Contact Message</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p><strong>Subject:</strong> %s</p>
			<p>%s</p>
		</body>
		</html>
	`, html.EscapeString(senderName), html.EscapeString(senderEmail),
		html.EscapeString(subject), html.EscapeString(body))

	return s.Send(s.cfg.NotifyTo, mailSubject, mailBody)
}
