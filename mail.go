package main

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Notifier is told about every stored contact message.
type Notifier interface {
	Notify(ctx context.Context, m ContactMessage) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, ContactMessage) error { return nil }

// smtpNotifier mails each contact message to the site owner.
type smtpNotifier struct {
	cfg      SMTPConfig
	to       string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newNotifier(cfg Config) Notifier {
	if !cfg.SMTP.Enabled() {
		log.Println("SMTP credentials not configured; contact messages are stored without email notification")
		return nopNotifier{}
	}
	return &smtpNotifier{cfg: cfg.SMTP, to: cfg.ContactEmail, sendMail: smtp.SendMail}
}

func (n *smtpNotifier) Notify(ctx context.Context, m ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
	addr := n.cfg.Host + ":" + n.cfg.Port
	if err := n.sendMail(addr, auth, n.cfg.User, []string{n.to}, composeContactEmail(n.cfg.User, n.to, m)); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	log.Printf("Email sent for contact message %s (%s)", m.ID, m.Lang)
	return nil
}

// composeContactEmail builds the RFC 5322 message. Header values are
// stripped of line breaks so a submitted name cannot inject headers.
func composeContactEmail(from, to string, m ContactMessage) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(m.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Language: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Lang, m.Message)

	return []byte("To: " + headerSafe(to) + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + headerSafe(from) + "\r\n" +
		"Reply-To: " + headerSafe(m.Email) + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
