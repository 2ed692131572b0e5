package sanitizer

import "regexp"

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

	// Separators people type into phone numbers.
	phoneSeparatorRegex = regexp.MustCompile(`[\s()\-.]`)
)
