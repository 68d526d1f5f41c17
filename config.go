package main

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
)

// Config is read from the environment (and .env through godotenv autoload).
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	GinMode      string `env:"GIN_MODE" envDefault:"debug"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	ContactEmail string `env:"CONTACT_EMAIL" envDefault:"mco@mucahitozcan.com"`

	// Proxies allowed to set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	SMTP SMTPConfig `envPrefix:"SMTP_"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	VisitorRetention  time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"5"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"10m"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SMTPConfig holds the outgoing mail settings for contact notifications.
type SMTPConfig struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

// Enabled reports whether credentials are present.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ContactRateLimit <= 0 {
		return Config{}, fmt.Errorf("CONTACT_RATE_LIMIT must be positive, got %d", cfg.ContactRateLimit)
	}
	if cfg.ContactRateWindow <= 0 {
		return Config{}, fmt.Errorf("CONTACT_RATE_WINDOW must be positive, got %s", cfg.ContactRateWindow)
	}

	// Default credentials for development only
	if cfg.AdminPassword == "" && cfg.GinMode == gin.DebugMode {
		cfg.AdminPassword = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return cfg, nil
}

// adminEnabled is false in release mode when no password was configured.
func (c Config) adminEnabled() bool {
	return c.AdminPassword != ""
}
