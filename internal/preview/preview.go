// Package preview renders a report for display in the terminal.
package preview

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word-wrap width used when none is given.
const DefaultWidth = 80

// Style selects the glamour style.
type Style string

const (
	StyleAuto  Style = "auto"
	StyleDark  Style = "dark"
	StyleLight Style = "light"
	StyleNoTTY Style = "notty"
)

// Render returns markdown rendered for the terminal.
func Render(markdown []byte, style Style, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(string(style)))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.RenderBytes(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return string(out), nil
}
