package main

import (
	"log/slog"
	"strings"

	"github.com/ruhtouch/contactapi/modules/contact"
	"github.com/ruhtouch/contactapi/pkg/email"
	"github.com/ruhtouch/contactapi/pkg/logger"
)

// newMail picks the dispatcher for MAIL_DRIVER. An incomplete SMTP setup
// yields an unconfigured Mail so the endpoint reports it per request
// instead of refusing to start.
func newMail(cfg Config, log *slog.Logger) (contact.Mail, error) {
	mail := contact.Mail{From: cfg.SMTP.Sender(), To: cfg.SMTP.To}

	var d email.Dispatcher
	switch strings.ToLower(cfg.MailDriver) {
	case mailDriverFile:
		if mail.From == "" {
			mail.From = "contact@localhost"
		}
		if mail.To == "" {
			mail.To = "inbox@localhost"
		}
		d = email.NewDevSender(cfg.MailDevDir)
		log.Info("mail is written to disk", logger.Component("mail"), slog.String("dir", cfg.MailDevDir))

	default:
		if !cfg.SMTP.IsConfigured() {
			log.Warn("SMTP is not configured, submissions will be rejected", logger.Component("mail"))
			return mail, nil
		}
		client, err := email.NewSMTPClient(cfg.SMTP)
		if err != nil {
			return contact.Mail{}, err
		}
		d = client
	}

	if cfg.Contact.MailPerMinute > 0 {
		d = email.NewThrottle(d, cfg.Contact.MailPerMinute, cfg.Contact.MailBurst)
	}
	mail.Dispatcher = d
	return mail, nil
}
