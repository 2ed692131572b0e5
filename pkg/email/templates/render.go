// Package templates renders templ components into email bodies.
package templates

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// Render renders tpl to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	if tpl == nil {
		return "", fmt.Errorf("templates: nil component")
	}
	var buf bytes.Buffer
	if err := tpl.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("templates: render: %w", err)
	}
	return buf.String(), nil
}
