package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

// TypesMarkdown renders descriptors as a markdown table.
func TypesMarkdown(types []schema.Descriptor) string {
	var b strings.Builder
	b.WriteString("| Type | Description |\n")
	b.WriteString("|------|-------------|\n")
	for _, d := range types {
		fmt.Fprintf(&b, "| `%s` | %s |\n", d.Name, escapeCell(d.Info))
	}
	return b.String()
}

// TypesPlain renders descriptors one per line, name and info separated by a tab.
func TypesPlain(types []schema.Descriptor) string {
	var b strings.Builder
	for _, d := range types {
		fmt.Fprintf(&b, "%s\t%s\n", d.Name, d.Info)
	}
	return b.String()
}

// CommandsMarkdown renders a catalog as a markdown list of synopses.
func CommandsMarkdown(cmds []domain.Command) string {
	var b strings.Builder
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "- `%s`", cmd.Synopsis())
		if cmd.Description != "" {
			fmt.Fprintf(&b, ": %s", cmd.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatError renders err for a terminal. With color, the message is red and
// argument errors get a caret line pointing at the offending token.
func FormatError(err error, tokens []string, color bool) string {
	p := termenv.Ascii
	if color {
		p = termenv.ColorProfile()
	}

	msg := p.String("error: " + err.Error()).Foreground(p.Color("#f87171")).String()

	var argErr *schema.ArgumentError
	if !errors.As(err, &argErr) || len(tokens) == 0 || argErr.Position >= len(tokens) {
		return msg
	}

	// Point at the token: "  a b c\n    ^"
	offset := 2
	for _, t := range tokens[:argErr.Position] {
		offset += len(t) + 1
	}
	line := "  " + strings.Join(tokens, " ")
	caret := strings.Repeat(" ", offset) + p.String("^").Foreground(p.Color("#fbbf24")).String()
	return msg + "\n" + line + "\n" + caret
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
