package sanitizer

import "strings"

// NormalizeEmail removes all whitespace and lowercases an address. The
// address is otherwise left as typed, so a malformed one stays malformed.
func NormalizeEmail(email string) string {
	return strings.ToLower(whitespaceRegex.ReplaceAllString(email, ""))
}

// StripPhoneFormatting removes whitespace, parentheses, dashes and dots
// from a phone number, keeping digits and a leading plus.
func StripPhoneFormatting(phone string) string {
	return phoneSeparatorRegex.ReplaceAllString(phone, "")
}
