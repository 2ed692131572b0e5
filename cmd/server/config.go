package main

import (
	"fmt"
	"strings"

	"github.com/ruhtouch/contactapi/modules/contact"
	"github.com/ruhtouch/contactapi/pkg/clientip"
	"github.com/ruhtouch/contactapi/pkg/cors"
	"github.com/ruhtouch/contactapi/pkg/email"
	"github.com/ruhtouch/contactapi/pkg/httpserver"
	"github.com/ruhtouch/contactapi/pkg/logger"
	"github.com/ruhtouch/contactapi/pkg/ratelimit"
	"github.com/ruhtouch/contactapi/pkg/redis"
)

const (
	mailDriverSMTP = "smtp"
	mailDriverFile = "file"
)

// Config is the process configuration. Nested structs read their own env
// variables; see each package.
type Config struct {
	AppName    string `env:"APP_NAME" envDefault:"contactapi"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL"`
	LogFormat  string `env:"LOG_FORMAT"`
	MailDriver string `env:"MAIL_DRIVER" envDefault:"smtp"`
	MailDevDir string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`
	MountPath  string `env:"CONTACT_PATH" envDefault:"/api/contact"`

	Server    httpserver.Config
	SMTP      email.Config
	Contact   contact.Config
	RateLimit ratelimit.Config
	Redis     redis.Config
	CORS      cors.Config
	ClientIP  clientip.Config
}

// Validate runs after parsing.
func (c Config) Validate() error {
	switch strings.ToLower(c.MailDriver) {
	case mailDriverSMTP, mailDriverFile:
	default:
		return fmt.Errorf("MAIL_DRIVER must be %q or %q", mailDriverSMTP, mailDriverFile)
	}
	if c.LogFormat != "" {
		if _, err := logger.ParseFormat(c.LogFormat); err != nil {
			return fmt.Errorf("LOG_FORMAT: %w", err)
		}
	}
	if !strings.HasPrefix(c.MountPath, "/") {
		return fmt.Errorf("CONTACT_PATH must start with /")
	}
	if c.RateLimit.Points < 1 || c.RateLimit.Duration < 1 {
		return fmt.Errorf("RATE_LIMIT_POINTS and RATE_LIMIT_DURATION must be positive")
	}
	if _, err := clientip.NewResolver(c.ClientIP); err != nil {
		return fmt.Errorf("CLIENTIP_TRUSTED_PROXIES: %w", err)
	}
	if err := c.SMTP.Validate(); err != nil {
		return err
	}
	return c.Contact.Validate()
}
