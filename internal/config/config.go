package config

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/leadintake/internal/auth"
	"github.com/leadintake/internal/mailer"
)

type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"` // development, production

	// Security
	SecureCookies      bool   `env:"SECURE_COOKIES" envDefault:"false"`
	CSRFKey            string `env:"CSRF_KEY"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	// Identity table. Each entry is email|secret|role|Display Name; secret
	// may be a bcrypt hash.
	Identities []auth.Entry `env:"IDENTITIES" envSeparator:";" envDefault:"admin@tryalma.ai|admin123|admin|Admin User;user@tryalma.ai|user123|user|Regular User"`

	// Simulated latency standing in for the future network calls.
	LoginDelay  time.Duration `env:"LOGIN_DELAY" envDefault:"500ms"`
	SubmitDelay time.Duration `env:"SUBMIT_DELAY" envDefault:"1500ms"`

	// Leads
	MaxLeads      int  `env:"MAX_LEADS" envDefault:"10000"`
	SeedDemoLeads bool `env:"SEED_DEMO_LEADS" envDefault:"true"`

	// Email notifications; leave SMTP_HOST empty to disable delivery.
	SMTPHost        string        `env:"SMTP_HOST"`
	SMTPPort        int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser        string        `env:"SMTP_USER"`
	SMTPPass        string        `env:"SMTP_PASS"`
	SMTPFromName    string        `env:"SMTP_FROM_NAME" envDefault:"Alma"`
	SMTPFromAddress string        `env:"SMTP_FROM_ADDRESS" envDefault:"hello@tryalma.ai"`
	NotifyTo        []string      `env:"NOTIFY_TO" envSeparator:","`
	MailRate        time.Duration `env:"MAIL_RATE" envDefault:"1s"`
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535")
	}

	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return fmt.Errorf("CSRF_KEY must be exactly 32 bytes")
	}

	if len(c.Identities) == 0 {
		return fmt.Errorf("IDENTITIES must contain at least one entry")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	if c.MaxLeads < 1 {
		return fmt.Errorf("MAX_LEADS must be positive")
	}

	if c.LoginDelay < 0 || c.SubmitDelay < 0 {
		return fmt.Errorf("LOGIN_DELAY and SUBMIT_DELAY must not be negative")
	}

	if c.SMTPHost != "" && (c.SMTPPort < 1 || c.SMTPPort > 65535) {
		return fmt.Errorf("SMTP_PORT must be a number between 1 and 65535")
	}

	if c.MailRate <= 0 {
		return fmt.Errorf("MAIL_RATE must be positive")
	}
	return nil
}

// CSRFAuthKey returns the configured key, or a random one when none is set.
// A random key invalidates outstanding forms on every restart.
func (c *Config) CSRFAuthKey() []byte {
	if c.CSRFKey != "" {
		return []byte(c.CSRFKey)
	}
	slog.Warn("CSRF_KEY not set, using a random per-process key")
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

// IdentityTable returns the configured identities as an auth.Table.
func (c *Config) IdentityTable() auth.Table {
	return auth.Table(c.Identities)
}

// MailerConfig returns the SMTP settings for the notification mailer.
func (c *Config) MailerConfig() mailer.Config {
	return mailer.Config{
		Host:        c.SMTPHost,
		Port:        c.SMTPPort,
		User:        c.SMTPUser,
		Pass:        c.SMTPPass,
		FromName:    c.SMTPFromName,
		FromAddress: c.SMTPFromAddress,
		To:          c.NotifyTo,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
