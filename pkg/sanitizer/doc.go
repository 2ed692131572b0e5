// Package sanitizer cleans untrusted form input before it is validated,
// logged or interpolated into outgoing mail.
//
// Helpers are small pure string functions grouped as:
//
//   - Strings: trimming, case folding, Unicode normalization, control
//     character removal.
//   - Format: e-mail and phone normalization.
//   - Security: markup removal backed by bluemonday's strict policy, HTML
//     escaping and header injection prevention.
//
// Apply and Compose chain helpers into reusable pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.RemoveControlChars,
//	    sanitizer.NormalizeUnicode,
//	    sanitizer.StripMarkup,
//	    sanitizer.Trim,
//	)
//
//	safe := clean(" <b>Jane</b><script>alert(1)</script> ") // "Jane"
//
// None of the helpers returns an error and all are safe for concurrent use.
package sanitizer
