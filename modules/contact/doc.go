// Package contact implements the contact form endpoint of the website.
//
// A submission goes through a fixed sequence of steps and stops at the first
// failure:
//
//  1. Rate limiting per client IP (ratelimit.Middleware, 429 on rejection).
//  2. Body decoding from JSON or form encodings (400 on malformed input).
//  3. Validation and sanitization (Validator, 400 with every failed rule).
//  4. Mail configuration check (500, no network I/O).
//  5. Relay verification (500 "temporarily unavailable").
//  6. Rendering of the HTML and plain-text notification (Renderer).
//  7. Delivery through the email.Dispatcher.
//
// Nothing is retried and nothing is stored. Every response is JSON.
//
// Usage:
//
//	svc, err := contact.NewService(cfg, limiter, contact.Mail{
//		Dispatcher: smtpClient,
//		From:       mailCfg.Sender(),
//		To:         mailCfg.To,
//	}, contact.WithLogger(log))
//	r.Mount("/api/contact", svc.Handle())
package contact
