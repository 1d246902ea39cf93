package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the argot banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	s1 := termenv.String("   __ _ _ __ __ _  ___ | |_ ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  / _` | '__/ _` |/ _ \\| __|").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" | (_| | | | (_| | (_) | |_ ").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("  \\__,_|_|  \\__, |\\___/ \\__|").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("            |___/           ").Foreground(p.Color("#f472b6"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, s5)
	fmt.Fprintln(w)
}
