package contact

import (
	"fmt"
	"strings"
	"time"
)

// Config holds settings of the contact form endpoint.
type Config struct {
	// HoneypotField names the hidden form field real visitors leave empty.
	HoneypotField string `env:"HONEYPOT_FIELD_NAME" envDefault:"website"`
	// Brand appears in the notification heading and footer.
	Brand string `env:"CONTACT_BRAND" envDefault:"RuhTouch"`
	// Timezone is the IANA zone used for the submission timestamp.
	Timezone string `env:"CONTACT_TIMEZONE" envDefault:"UTC"`
	// MaxBodyBytes caps JSON and urlencoded bodies and the in-memory part of
	// multipart bodies. Zero keeps the binder defaults.
	MaxBodyBytes int64 `env:"CONTACT_MAX_BODY_BYTES" envDefault:"1048576"`

	// MailPerMinute caps notifications sent per minute across all clients.
	// Zero disables the cap.
	MailPerMinute int `env:"MAIL_SEND_PER_MINUTE" envDefault:"30"`
	MailBurst     int `env:"MAIL_SEND_BURST" envDefault:"10"`
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: CONTACT_TIMEZONE: %v", ErrInvalidConfig, err)
	}
	return loc, nil
}

// Validate is called by config.Load.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HoneypotField) == "" {
		return fmt.Errorf("%w: HONEYPOT_FIELD_NAME must not be empty", ErrInvalidConfig)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: CONTACT_MAX_BODY_BYTES must not be negative", ErrInvalidConfig)
	}
	if c.MailPerMinute < 0 || c.MailBurst < 0 {
		return fmt.Errorf("%w: mail send limits must not be negative", ErrInvalidConfig)
	}
	_, err := c.Location()
	return err
}
