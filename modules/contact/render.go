package contact

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ruhtouch/contactapi/modules/contact/templates"
	emailtemplates "github.com/ruhtouch/contactapi/pkg/email/templates"
	"github.com/ruhtouch/contactapi/pkg/sanitizer"
)

const (
	notSpecified = "Not specified"
	timeLayout   = "2006-01-02 15:04:05 MST"
)

// RenderContext is request metadata that does not come from the visitor.
type RenderContext struct {
	ClientIP    string
	SubmittedAt time.Time
	// ServiceLabel overrides the catalog lookup when set.
	ServiceLabel string
}

// Rendered is a notification ready for sending.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer turns a sanitized submission into the notification email.
// Output depends only on its inputs.
type Renderer struct {
	catalog  *Catalog
	brand    string
	location *time.Location
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithBrand sets the site name shown in the email.
func WithBrand(brand string) RendererOption {
	return func(r *Renderer) {
		if brand != "" {
			r.brand = brand
		}
	}
}

// WithLocation sets the zone used to format the submission time.
func WithLocation(loc *time.Location) RendererOption {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// NewRenderer creates a Renderer using catalog for service labels.
func NewRenderer(catalog *Catalog, opts ...RendererOption) *Renderer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	r := &Renderer{catalog: catalog, brand: "RuhTouch", location: time.UTC}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the subject line and both bodies.
func (r *Renderer) Render(ctx context.Context, s Submission, rc RenderContext) (Rendered, error) {
	label := rc.ServiceLabel
	if label == "" {
		label = r.ServiceLabel(s.Service)
	}

	p := templates.NotificationParams{
		Brand:        r.brand,
		Preheader:    fmt.Sprintf("New contact from %s — %s", s.Name, label),
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		ServiceLabel: label,
		Message:      s.Message,
		SubmittedAt:  rc.SubmittedAt.In(r.location).Format(timeLayout),
		ClientIP:     rc.ClientIP,
		MailtoHref:   "mailto:" + url.PathEscape(s.Email),
		ReplyHref:    r.replyHref(s.Email),
	}
	if s.Phone != "" {
		p.PhoneHref = "tel:" + sanitizer.StripPhoneFormatting(s.Phone)
	}

	html, err := emailtemplates.Render(ctx, templates.Notification(p))
	if err != nil {
		return Rendered{}, fmt.Errorf("%w: html: %v", ErrRender, err)
	}

	var text bytes.Buffer
	if err := templates.PlainText(&text, p); err != nil {
		return Rendered{}, fmt.Errorf("%w: text: %v", ErrRender, err)
	}

	return Rendered{
		Subject: r.Subject(s, label),
		HTML:    html,
		Text:    text.String(),
	}, nil
}

// ServiceLabel resolves key against the catalog, "Not specified" if unknown.
func (r *Renderer) ServiceLabel(key string) string {
	if label, ok := r.catalog.Label(key); ok {
		return label
	}
	return notSpecified
}

// Subject builds the single-line subject header.
func (r *Renderer) Subject(s Submission, label string) string {
	subject := fmt.Sprintf("New Contact — %s — %s", label, s.Name)
	return sanitizer.Apply(subject, sanitizer.PreventHeaderInjection, strings.TrimSpace)
}

func (r *Renderer) replyHref(email string) string {
	q := url.Values{}
	q.Set("subject", "Re: "+r.brand+" inquiry")
	q.Set("body", "\n\n— Sent from "+r.brand)
	// mail clients expect %20, not +, in mailto queries
	return "mailto:" + url.PathEscape(email) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
