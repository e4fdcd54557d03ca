package schedule

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format selects how a schedule table is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name. An empty name means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown, or html)", s)
	}
}

// RenderOptions controls table rendering.
type RenderOptions struct {
	Format Format

	// Highlight marks one cycle day (typically today). Nil means none.
	Highlight *int

	// Styled enables terminal styling of the highlighted row in text output.
	Styled bool
}

func (o RenderOptions) highlights(day int) bool {
	return o.Highlight != nil && *o.Highlight == day
}

var highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7"))

// Render writes one row per cycle day and one column per level.
func Render(w io.Writer, s *Schedule, opts RenderOptions) error {
	switch opts.Format {
	case "", FormatText:
		_, err := io.WriteString(w, renderText(s, opts))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, renderMarkdown(s, opts))
		return err
	case FormatHTML:
		return goldmark.New(goldmark.WithExtensions(extension.GFM)).
			Convert([]byte(renderMarkdown(s, opts)), w)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

// RenderString is Render into a string.
func RenderString(s *Schedule, opts RenderOptions) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, s, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderText(s *Schedule, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString(" day | levels\n")
	b.WriteString("-----|--------\n")
	for day := range s.Len() {
		var row strings.Builder
		fmt.Fprintf(&row, "%4d | ", day)
		due := s.cycle[day]
		for level := 1; level <= s.NumLevels(); level++ {
			if slices.Contains(due, level) {
				fmt.Fprintf(&row, "%d ", level)
			} else {
				row.WriteString("  ")
			}
		}
		line := row.String()
		if opts.Styled && opts.highlights(day) {
			line = highlightStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderMarkdown(s *Schedule, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString("| day |")
	for level := 1; level <= s.NumLevels(); level++ {
		fmt.Fprintf(&b, " %d |", level)
	}
	b.WriteString("\n|----:|")
	for range s.NumLevels() {
		b.WriteString(":-:|")
	}
	b.WriteString("\n")

	for day := range s.Len() {
		if opts.highlights(day) {
			fmt.Fprintf(&b, "| **%d** |", day)
		} else {
			fmt.Fprintf(&b, "| %d |", day)
		}
		due := s.cycle[day]
		for level := 1; level <= s.NumLevels(); level++ {
			if slices.Contains(due, level) {
				b.WriteString(" x |")
			} else {
				b.WriteString("   |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
