package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Dispatcher verifies relay connectivity and sends messages.
type Dispatcher interface {
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound notification.
type Message struct {
	From     string `json:"from"`
	FromName string `json:"from_name,omitempty"`
	To       string `json:"to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	Subject  string `json:"subject"`
	HTML     string `json:"-"`
	Text     string `json:"-"`
}

// Validate checks that addresses parse and that there is something to send.
func (m Message) Validate() error {
	if err := checkAddress("from", m.From); err != nil {
		return err
	}
	if err := checkAddress("to", m.To); err != nil {
		return err
	}
	if m.ReplyTo != "" {
		if err := checkAddress("reply-to", m.ReplyTo); err != nil {
			return err
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if strings.ContainsAny(m.Subject+m.FromName, "\r\n") {
		return fmt.Errorf("%w: header values must be single line", ErrInvalidMessage)
	}
	if m.HTML == "" && m.Text == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

func checkAddress(field, addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("%w: %s address is required", ErrInvalidMessage, field)
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		return fmt.Errorf("%w: %s address is invalid", ErrInvalidMessage, field)
	}
	return nil
}
