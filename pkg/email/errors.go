package email

import "errors"

var (
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrNotConfigured     = errors.New("email: delivery credentials are not configured")
	ErrConnectionFailed  = errors.New("email: relay connection failed")
	ErrFailedToSendEmail = errors.New("email: failed to send email")
	ErrInvalidMessage    = errors.New("email: invalid message")
	ErrThrottled         = errors.New("email: send budget exhausted")
	ErrTLSRequired       = errors.New("email: relay connection is not encrypted")
)
