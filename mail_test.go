package main

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestComposeContactEmailHeaders(t *testing.T) {
	m := ContactMessage{
		ID:      "id-1",
		Name:    "Eve\r\nBcc: victim@example.com",
		Email:   "eve@example.com",
		Message: "hello",
		Lang:    LangEN,
	}
	raw := string(composeContactEmail("site@example.com", "owner@example.com", m))

	headers, body, ok := strings.Cut(raw, "\r\n\r\n")
	if !ok {
		t.Fatalf("no header/body separator in %q", raw)
	}
	for _, line := range strings.Split(headers, "\r\n") {
		if strings.HasPrefix(line, "Bcc:") {
			t.Errorf("header injection: %q", line)
		}
	}
	for _, want := range []string{"To: owner@example.com", "Reply-To: eve@example.com", "Subject: Portfolio Contact: Eve  Bcc: victim@example.com"} {
		if !strings.Contains(headers, want) {
			t.Errorf("headers missing %q:\n%s", want, headers)
		}
	}
	if !strings.Contains(body, "Language: en") || !strings.Contains(body, "hello") {
		t.Errorf("body = %q", body)
	}
}

func TestSMTPNotifier(t *testing.T) {
	var gotAddr string
	var gotTo []string
	n := &smtpNotifier{
		cfg: SMTPConfig{Host: "smtp.example.com", Port: "2525", User: "site@example.com", Pass: "pw"},
		to:  "owner@example.com",
		sendMail: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr = addr
			gotTo = to
			return nil
		},
	}
	if err := n.Notify(context.Background(), ContactMessage{ID: "x", Name: "A", Email: "a@example.com", Message: "m"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if gotAddr != "smtp.example.com:2525" || len(gotTo) != 1 || gotTo[0] != "owner@example.com" {
		t.Errorf("sendMail(%q, %v)", gotAddr, gotTo)
	}

	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	if err := n.Notify(context.Background(), ContactMessage{}); err == nil || !strings.Contains(err.Error(), "refused") {
		t.Errorf("Notify error = %v, want wrapped refused", err)
	}
}

func TestNewNotifierWithoutCredentials(t *testing.T) {
	if _, ok := newNotifier(testConfig()).(nopNotifier); !ok {
		t.Errorf("newNotifier without SMTP credentials should be a no-op")
	}
	cfg := testConfig()
	cfg.SMTP = SMTPConfig{Host: "h", Port: "25", User: "u", Pass: "p"}
	if _, ok := newNotifier(cfg).(*smtpNotifier); !ok {
		t.Errorf("newNotifier with credentials should send mail")
	}
}
