package templates

// NotificationParams is the fully resolved view of one contact submission.
// Values are plain text; both renderers escape for their own output.
type NotificationParams struct {
	Brand        string
	Preheader    string
	Name         string
	Email        string
	Phone        string
	ServiceLabel string
	Message      string
	SubmittedAt  string
	ClientIP     string

	// Precomputed link targets, already URL-encoded.
	MailtoHref string
	PhoneHref  string
	ReplyHref  string
}
