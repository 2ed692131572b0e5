package contact

import "github.com/ruhtouch/contactapi/pkg/binder"

// Field names accepted from the form.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldService  = "service"
	FieldMessage  = "message"
	FieldHoneypot = "honeypot"
)

// Submission is one contact request. It lives for a single request and is
// never stored.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Service  string `json:"service,omitempty"`
	Message  string `json:"message"`
	Honeypot string `json:"-"`
}

// ValidationResult is the outcome of Validator.Validate. SanitizedData is
// filled even when IsValid is false.
type ValidationResult struct {
	IsValid       bool
	Errors        []string
	SanitizedData Submission
}

// submissionFrom reads raw fields. The honeypot is taken from the configured
// field, falling back to the "honeypot" key used by JSON clients.
func submissionFrom(v binder.Values, honeypotField string) Submission {
	honeypot := v.Get(honeypotField)
	if honeypot == "" && honeypotField != FieldHoneypot {
		honeypot = v.Get(FieldHoneypot)
	}
	return Submission{
		Name:     v.Get(FieldName),
		Email:    v.Get(FieldEmail),
		Phone:    v.Get(FieldPhone),
		Service:  v.Get(FieldService),
		Message:  v.Get(FieldMessage),
		Honeypot: honeypot,
	}
}
