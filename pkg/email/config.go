package email

import (
	"fmt"
	"strings"
	"time"
)

// TLS modes understood by SMTPClient. Both refuse to authenticate over an
// unencrypted connection: starttls fails when the relay does not offer the
// upgrade, tls wraps the connection from the first byte (usually port 465).
const (
	TLSModeStartTLS = "starttls"
	TLSModeTLS      = "tls"
)

// Config holds SMTP relay settings.
//
// From falls back to User when empty, matching relays that require the
// envelope sender to equal the authenticated account.
type Config struct {
	Host               string        `env:"SMTP_HOST"`
	Port               int           `env:"SMTP_PORT" envDefault:"587"`
	User               string        `env:"SMTP_USER"`
	Password           string        `env:"SMTP_PASS"`
	From               string        `env:"SMTP_FROM"`
	To                 string        `env:"SMTP_TO"`
	TLSMode            string        `env:"SMTP_TLS_MODE" envDefault:"starttls"`
	InsecureSkipVerify bool          `env:"SMTP_INSECURE_SKIP_VERIFY" envDefault:"false"`
	Timeout            time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// IsConfigured reports whether host, user, password and destination are all set.
func (c Config) IsConfigured() bool {
	return c.Host != "" && c.User != "" && c.Password != "" && c.To != ""
}

// Sender returns the address used in the From header.
func (c Config) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

// Validate checks settings that are wrong regardless of whether delivery
// is configured. Missing credentials are not an error here; see IsConfigured.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: SMTP_PORT must be between 1 and 65535", ErrInvalidConfig)
	}
	switch strings.ToLower(c.TLSMode) {
	case TLSModeStartTLS, TLSModeTLS:
	default:
		return fmt.Errorf("%w: SMTP_TLS_MODE must be %q or %q", ErrInvalidConfig, TLSModeStartTLS, TLSModeTLS)
	}
	return nil
}
