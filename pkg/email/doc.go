// Package email delivers contact notifications through an SMTP relay.
//
// The Dispatcher interface has two operations: Verify checks that the relay
// accepts a connection and the configured credentials, and Send delivers one
// Message. Implementations:
//
//   - SMTPClient composes multipart/alternative MIME messages and talks SMTP
//     through github.com/go-gomail/gomail. Every call dials its own
//     connection; nothing is pooled or retried.
//   - DevSender writes messages to a directory for local development.
//   - Throttle wraps another Dispatcher with a global send budget.
//
// Config is read from SMTP_* environment variables. IsConfigured reports
// whether the credentials needed for delivery are present so callers can fail
// closed before any network I/O.
//
// Errors are sentinel values (ErrNotConfigured, ErrConnectionFailed,
// ErrFailedToSendEmail, ...) wrapped with the underlying cause and matched
// with errors.Is.
package email
