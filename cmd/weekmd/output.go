package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"weekmd/internal/preview"
	"weekmd/internal/report"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func printWritten(w io.Writer, cfg *report.Config) {
	files := 0
	for _, g := range cfg.Groups {
		files += len(g)
	}
	kind := strings.ToLower(cfg.Kind.String())
	fmt.Fprintf(w, "%s %s %s\n",
		successStyle.Render("✓ Wrote"),
		cfg.OutputPath(),
		mutedStyle.Render(fmt.Sprintf("(%s, %s)", plural(len(cfg.Groups), kind), plural(files, "file"))))
}

func printPreview(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &report.IOError{Op: "read", Path: path, Err: err}
	}
	rendered, err := preview.Render(data, preview.StyleAuto, preview.DefaultWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(w, rendered)
	return nil
}
