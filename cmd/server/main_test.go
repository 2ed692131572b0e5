package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruhtouch/contactapi/modules/contact"
	"github.com/ruhtouch/contactapi/pkg/email"
	"github.com/ruhtouch/contactapi/pkg/logger"
	"github.com/ruhtouch/contactapi/pkg/ratelimit"
)

func validConfig() Config {
	return Config{
		MailDriver: mailDriverSMTP,
		MountPath:  "/api/contact",
		SMTP:       email.Config{Port: 587, TLSMode: email.TLSModeStartTLS},
		Contact:    contact.Config{HoneypotField: "website", Timezone: "UTC"},
		RateLimit:  ratelimit.Config{Points: 5, Duration: 900},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.MailDriver = "pigeon" }},
		{"bad trusted proxy", func(c *Config) { c.ClientIP.TrustedProxies = []string{"not-an-ip"} }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"relative path", func(c *Config) { c.MountPath = "api/contact" }},
		{"zero points", func(c *Config) { c.RateLimit.Points = 0 }},
		{"zero duration", func(c *Config) { c.RateLimit.Duration = 0 }},
		{"bad port", func(c *Config) { c.SMTP.Port = 0 }},
		{"bad timezone", func(c *Config) { c.Contact.Timezone = "Nowhere/Special" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewMail(t *testing.T) {
	t.Parallel()

	t.Run("smtp not configured", func(t *testing.T) {
		t.Parallel()
		mail, err := newMail(validConfig(), logger.Discard())
		require.NoError(t, err)
		assert.Nil(t, mail.Dispatcher)
	})

	t.Run("smtp configured", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.SMTP.Host = "smtp.example.com"
		cfg.SMTP.User = "relay@example.com"
		cfg.SMTP.Password = "secret"
		cfg.SMTP.To = "inbox@example.com"
		cfg.Contact.MailPerMinute = 30
		cfg.Contact.MailBurst = 5

		mail, err := newMail(cfg, logger.Discard())
		require.NoError(t, err)
		assert.IsType(t, &email.Throttle{}, mail.Dispatcher)
		assert.Equal(t, "relay@example.com", mail.From)
		assert.Equal(t, "inbox@example.com", mail.To)
	})

	t.Run("file driver", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MailDriver = mailDriverFile
		cfg.MailDevDir = t.TempDir()

		mail, err := newMail(cfg, logger.Discard())
		require.NoError(t, err)
		assert.IsType(t, &email.DevSender{}, mail.Dispatcher)
		assert.NotEmpty(t, mail.From)
		assert.NotEmpty(t, mail.To)
	})
}
