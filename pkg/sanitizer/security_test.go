package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruhtouch/contactapi/pkg/sanitizer"
)

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "Hello there", expected: "Hello there"},
		{name: "bold tag", input: "<b>Jane</b> Doe", expected: "Jane Doe"},
		{name: "script with content", input: "Hi<script>alert('x')</script>!", expected: "Hi!"},
		{name: "uppercase script", input: "<SCRIPT SRC=//evil.example/x.js></SCRIPT>ok", expected: "ok"},
		{name: "event handler", input: `<img src=x onerror="alert(1)">pic`, expected: "pic"},
		{name: "style body dropped", input: "<style>body{}</style>text", expected: "text"},
		{name: "apostrophe survives", input: "O'Brien", expected: "O'Brien"},
		{name: "ampersand survives", input: "Tom & Jerry", expected: "Tom & Jerry"},
		{name: "less than sign survives", input: "2 < 3", expected: "2 < 3"},
		{name: "entity encoded script", input: "&lt;script&gt;alert(1)&lt;/script&gt;safe", expected: "safe"},
		{name: "newlines kept", input: "line one\nline two", expected: "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := sanitizer.StripMarkup(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, strings.ToLower(got), "<script")
		})
	}
}

func TestPreventHeaderInjection(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "JaneBcc: x@y.z", sanitizer.PreventHeaderInjection("Jane\r\nBcc: x@y.z"))
	assert.Equal(t, "ab", sanitizer.PreventHeaderInjection("a\x00b"))
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims", input: "  hello  ", expected: "hello"},
		{name: "control characters", input: "he\x00l\x07lo\x1b[31m", expected: "hello"},
		{name: "crlf normalized", input: "a\r\nb\rc", expected: "a\nb\nc"},
		{name: "nfc", input: "Cafe\u0301", expected: "Caf\u00e9"},
		{name: "markup", input: " <p>I need <em>help</em></p><script>steal()</script> ", expected: "I need help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeText(tt.input))
		})
	}
}

func TestSanitizeLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Jane Doe", sanitizer.SanitizeLine("  Jane\n\t  Doe "))
	assert.Equal(t, "Jane", sanitizer.SanitizeLine("<i>Jane</i><script>x</script>"))
}

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase and trim", input: "  Jane@Example.COM ", expected: "jane@example.com"},
		{name: "inner whitespace", input: "jane @ example.com", expected: "jane@example.com"},
		{name: "header injection", input: "jane@example.com\r\nBcc: spam@example.com", expected: "jane@example.combcc:spam@example.com"},
		{name: "dots kept as typed", input: "John..Doe.@Example.com", expected: "john..doe.@example.com"},
		{name: "markup removed", input: "<b>jane@example.com</b>", expected: "jane@example.com"},
		{name: "not an email", input: "Not-An-Email", expected: "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeEmail(tt.input))
		})
	}
}
