package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/go-gomail/gomail"
)

// SMTPClient sends mail through an authenticated SMTP relay.
type SMTPClient struct {
	cfg    Config
	dialer *gomail.Dialer
	now    func() time.Time
}

// ClientOption configures an SMTPClient.
type ClientOption func(*SMTPClient)

// WithClock overrides the time source used for the Date header.
func WithClock(now func() time.Time) ClientOption {
	return func(c *SMTPClient) {
		if now != nil {
			c.now = now
		}
	}
}

// NewSMTPClient validates cfg and prepares a dialer. It performs no I/O.
//
// Credentials are sent with PLAIN auth and only once the connection is
// encrypted, loopback relays included. In tls mode the connection is wrapped
// in TLS from the start; in starttls mode gomail upgrades it when the relay
// advertises STARTTLS, and a relay that does not is rejected with
// ErrTLSRequired before any credentials leave the process.
func NewSMTPClient(cfg Config, opts ...ClientOption) (*SMTPClient, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.Auth = encryptedAuth{smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)}
	d.SSL = strings.EqualFold(cfg.TLSMode, TLSModeTLS)
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for relays with self-signed certificates
		MinVersion:         tls.VersionTLS12,
	}

	c := &SMTPClient{
		cfg:    cfg,
		dialer: d,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Verify connects, authenticates and quits.
func (c *SMTPClient) Verify(ctx context.Context) error {
	err := c.run(ctx, func() error {
		sc, err := c.dialer.Dial()
		if err != nil {
			return err
		}
		return sc.Close()
	})
	if err != nil {
		return errors.Join(ErrConnectionFailed, err)
	}
	return nil
}

// Send delivers msg over a fresh connection.
func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m, _ := compose(msg, c.now())
	if err := c.run(ctx, func() error { return c.dialer.DialAndSend(m) }); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

// run executes fn and gives up waiting once ctx or the configured timeout
// expires. gomail has no context support, so fn may outlive the call.
func (c *SMTPClient) run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("smtp %s:%d: %w", c.cfg.Host, c.cfg.Port, ctx.Err())
	}
}

// encryptedAuth refuses to start authentication on a plaintext connection.
type encryptedAuth struct {
	smtp.Auth
}

func (a encryptedAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS {
		return "", nil, ErrTLSRequired
	}
	return a.Auth.Start(server)
}
