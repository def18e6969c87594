package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Universal interface for mail service
type MailService interface {
	SendEmail(to, subject, body string) error
}

// SMTP-backed sender for the console's outbound email: the notification worker
// mails recipients a rendition of each queued notification (invitation issued,
// event updates)
type EmailService struct {
	host  string
	port  string
	email string
	auth  smtp.Auth
}

// Constructor for the email service. Host and port come from config so the
// platform mailbox can move off Gmail without a code change
func NewEmailService(host, port, email, password string) *EmailService {
	return &EmailService{
		host:  host,
		port:  port,
		email: email,
		auth:  smtp.PlainAuth("", email, password, host),
	}
}

// Send one HTML email from the platform mailbox
func (service *EmailService) SendEmail(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", service.host, service.port)
	return smtp.SendMail(
		addr,
		service.auth,
		service.email,
		[]string{to},
		service.message(to, subject, body),
	)
}

// Build the wire message: MIME headers in a fixed order, blank line, HTML body
func (service *EmailService) message(to, subject, body string) []byte {
	var message strings.Builder
	fmt.Fprintf(&message, "From: %s\r\n", service.email)
	fmt.Fprintf(&message, "To: %s\r\n", to)
	fmt.Fprintf(&message, "Subject: %s\r\n", subject)
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)
	return []byte(message.String())
}
