package contact

import (
	"regexp"
	"slices"

	"github.com/ruhtouch/contactapi/pkg/binder"
	"github.com/ruhtouch/contactapi/pkg/sanitizer"
	"github.com/ruhtouch/contactapi/pkg/validator"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 100
	emailMaxLen   = 254
	messageMinLen = 10
	messageMaxLen = 2000
)

// Letters of any script, combining marks, spaces, hyphens and apostrophes.
var nameRegex = regexp.MustCompile(`^[\p{L}\p{M}\s'’-]+$`)

// Validator checks and sanitizes raw form fields.
// Sanitization runs before validation, so length limits apply to the text
// that would actually be mailed. A filled honeypot field short-circuits
// everything else with a single generic message.
type Validator struct {
	catalog       *Catalog
	honeypotField string
}

// NewValidator creates a Validator. An empty honeypotField means "website".
func NewValidator(catalog *Catalog, honeypotField string) *Validator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if honeypotField == "" {
		honeypotField = "website"
	}
	return &Validator{catalog: catalog, honeypotField: honeypotField}
}

// Sanitize strips markup and normalizes every field of s.
func (v *Validator) Sanitize(s Submission) Submission {
	return Submission{
		Name:     sanitizer.SanitizeLine(s.Name),
		Email:    sanitizer.SanitizeEmail(s.Email),
		Phone:    sanitizer.SanitizeLine(s.Phone),
		Service:  sanitizer.Apply(s.Service, sanitizer.SanitizeLine, sanitizer.ToLower),
		Message:  sanitizer.SanitizeText(s.Message),
		Honeypot: s.Honeypot,
	}
}

// Validate runs every rule and collects all failures in rule order.
//
// Rules are checked against sanitized values, so content that only consisted
// of markup counts as missing. The honeypot is checked raw: any
// non-whitespace value fails.
func (v *Validator) Validate(fields binder.Values) ValidationResult {
	raw := submissionFrom(fields, v.honeypotField)
	clean := v.Sanitize(raw)

	err := validator.Apply(
		validator.Blank("honeypot", raw.Honeypot).WithMessage(MsgSuspectedAbuse),

		validator.LengthBetween(FieldName, clean.Name, nameMinLen, nameMaxLen).WithMessage(MsgNameLength),
		validator.When(clean.Name != "",
			validator.MatchesRegex(FieldName, clean.Name, nameRegex, "letters, spaces, hyphens and apostrophes"),
		).WithMessage(MsgNameCharacters),

		validator.ValidEmail(FieldEmail, clean.Email).WithMessage(MsgEmailInvalid),
		validator.MaxLenString(FieldEmail, clean.Email, emailMaxLen).WithMessage(MsgEmailTooLong),

		validator.When(clean.Phone != "",
			validator.ValidPhone(FieldPhone, clean.Phone),
		).WithMessage(MsgPhoneInvalid),

		validator.When(clean.Service != "",
			validator.InList(FieldService, clean.Service, v.catalog.Keys()),
		).WithMessage(MsgServiceInvalid),

		validator.LengthBetween(FieldMessage, clean.Message, messageMinLen, messageMaxLen).WithMessage(MsgMessageLength),
	)

	errs := validator.ExtractValidationErrors(err)
	return ValidationResult{
		IsValid:       len(errs) == 0,
		Errors:        errs.Messages(),
		SanitizedData: clean,
	}
}

// suspectedAbuse reports whether the honeypot rule failed.
func suspectedAbuse(res ValidationResult) bool {
	return slices.Contains(res.Errors, MsgSuspectedAbuse)
}
