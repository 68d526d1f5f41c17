package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.DatabasePath != "portfolio.db" || cfg.ContactEmail != "mco@mucahitozcan.com" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != "587" || cfg.SMTP.Enabled() {
		t.Errorf("unexpected SMTP defaults: %+v", cfg.SMTP)
	}
	if cfg.VisitorRetention != 8760*time.Hour || cfg.ContactRateWindow != 10*time.Minute {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.AdminPassword == "" || !cfg.adminEnabled() {
		t.Errorf("debug mode should fall back to a development admin password")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("SMTP_USER", "site@example.com")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("CONTACT_RATE_WINDOW", "1m")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != "9090" || !cfg.SMTP.Enabled() || cfg.ContactRateWindow != time.Minute {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.adminEnabled() {
		t.Errorf("release mode without password must disable admin")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("CONTACT_RATE_LIMIT", "0")
	if _, err := loadConfig(); err == nil {
		t.Error("zero rate limit accepted")
	}

	t.Setenv("CONTACT_RATE_LIMIT", "5")
	t.Setenv("VISITOR_RETENTION", "forever")
	if _, err := loadConfig(); err == nil {
		t.Error("unparseable duration accepted")
	}
}
