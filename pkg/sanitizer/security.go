package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every element and attribute; script and style bodies
// are dropped together with their tags.
var strictPolicy = bluemonday.StrictPolicy()

// maxMarkupPasses bounds StripMarkup on nested entity-encoded input.
const maxMarkupPasses = 4

// StripMarkup removes all HTML markup, including script contents and event
// handler attributes, and returns plain text.
//
// The strict policy emits entity-escaped text, which is decoded so that the
// result can be escaped once at render time. Decoding may surface markup that
// was entity-encoded in the input, so the pass repeats until the output is
// stable. If it never settles, the escaped form is returned.
func StripMarkup(s string) string {
	for range maxMarkupPasses {
		escaped := strictPolicy.Sanitize(s)
		plain := html.UnescapeString(escaped)
		if plain == s {
			return plain
		}
		s = plain
	}
	return strictPolicy.Sanitize(s)
}

// RemoveNullBytes removes NUL bytes.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// PreventHeaderInjection removes characters that could split a mail or HTTP header.
func PreventHeaderInjection(s string) string {
	return strings.NewReplacer("\r", "", "\n", "", "\x00", "").Replace(s)
}

// SanitizeText is the pipeline for free-text form fields. Line breaks are kept.
var SanitizeText = Compose(
	RemoveNullBytes,
	RemoveControlChars,
	NormalizeNewlines,
	NormalizeUnicode,
	StripMarkup,
	Trim,
)

// SanitizeLine is SanitizeText for single-line fields such as names.
var SanitizeLine = Compose(
	SanitizeText,
	SingleLine,
)

// SanitizeEmail prepares an e-mail address for validation and use in headers.
var SanitizeEmail = Compose(
	RemoveNullBytes,
	RemoveControlChars,
	NormalizeUnicode,
	StripMarkup,
	PreventHeaderInjection,
	NormalizeEmail,
)
