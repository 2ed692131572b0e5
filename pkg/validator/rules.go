package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	// E.164: optional plus, no leading zero, 7 to 15 digits.
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

	domainLabelRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

	phoneSeparators = strings.NewReplacer(" ", "", "\t", "", "(", "", ")", "", "-", "", ".", "")
)

// Required fails on values that are empty after trimming.
func Required(field, value string) Rule {
	return newRule(field, "required", "is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// Blank fails on values that are not empty after trimming.
func Blank(field, value string) Rule {
	return newRule(field, "blank", "must be empty", func() bool {
		return strings.TrimSpace(value) == ""
	})
}

// LengthBetween counts characters of the trimmed value, inclusive on both ends.
func LengthBetween(field, value string, min, max int) Rule {
	msg := fmt.Sprintf("must be between %d and %d characters", min, max)
	return newRule(field, "length", msg, func() bool {
		n := utf8.RuneCountInString(strings.TrimSpace(value))
		return n >= min && n <= max
	})
}

// MaxLenString counts bytes, matching mail protocol limits.
func MaxLenString(field, value string, max int) Rule {
	return newRule(field, "max_length", fmt.Sprintf("must be at most %d characters long", max), func() bool {
		return len(value) <= max
	})
}

// MatchesRegex fails when pattern does not match. description names the
// expected shape in the default message.
func MatchesRegex(field, value string, pattern *regexp.Regexp, description string) Rule {
	return newRule(field, "pattern", "must match "+description, func() bool {
		return pattern.MatchString(value)
	})
}

// InList fails unless value is one of allowed.
func InList[T comparable](field string, value T, allowed []T) Rule {
	return newRule(field, "in_list", "must be one of the allowed values", func() bool {
		return slices.Contains(allowed, value)
	})
}

// ValidEmail accepts a bare addr-spec such as jane@example.com.
// Display names, comments, single-label domains and local parts with
// leading, trailing or doubled dots are rejected.
func ValidEmail(field, value string) Rule {
	return newRule(field, "email", "must be a valid email address", func() bool {
		return isAddrSpec(value)
	})
}

func isAddrSpec(value string) bool {
	if value == "" || strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || len(local) > 64 {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) > 63 || !domainLabelRegex.MatchString(label) {
			return false
		}
	}
	return true
}

// ValidPhone checks the number once spaces, tabs, parentheses, dots and
// dashes are removed.
func ValidPhone(field, value string) Rule {
	return newRule(field, "phone", "must be a valid phone number", func() bool {
		return phoneRegex.MatchString(phoneSeparators.Replace(value))
	})
}
