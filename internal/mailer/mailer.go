package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
)

// Config holds the SMTP settings. An empty Host disables delivery.
type Config struct {
	Host        string
	Port        int
	User        string
	Pass        string
	FromName    string
	FromAddress string
	// To receives a notice for every new lead.
	To []string
}

// Enabled reports whether SMTP delivery is configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends emails via SMTP.
type Mailer struct {
	mu     sync.RWMutex
	cfg    Config
	logger *slog.Logger
	// sendFn replaces SMTP delivery in tests.
	sendFn func(Message) error
}

func New(cfg Config, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

func (m *Mailer) config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

func (m *Mailer) send(msg Message) error {
	if m.sendFn != nil {
		return m.sendFn(msg)
	}

	cfg := m.config()
	if !cfg.Enabled() {
		m.logger.Debug("mailer: SMTP not configured, message not sent", "to", msg.To, "subject", msg.Subject)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, cfg.FromAddress, msg.To, []byte(m.formatMessage(msg))); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *Mailer) formatMessage(msg Message) string {
	cfg := m.config()

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\r\n", headerValue(cfg.FromName), headerValue(cfg.FromAddress))
	fmt.Fprintf(&sb, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	fmt.Fprintf(&sb, "Subject: %s\r\n", headerValue(msg.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(msg.Body)
	return sb.String()
}

var headerReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerValue keeps a value on a single header line.
func headerValue(s string) string {
	return headerReplacer.Replace(s)
}
