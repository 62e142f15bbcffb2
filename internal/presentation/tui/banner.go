package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the walkthrough banner with the mode it will tour.
func PrintBanner(w io.Writer, mode string) {
	p := termenv.ColorProfile()
	title := termenv.String("  ▸ walkthrough").Foreground(p.Color("#a78bfa")).Bold()
	sub := termenv.String("    " + mode + " mode, press Enter to advance").Foreground(p.Color("#f472b6"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, sub)
	fmt.Fprintln(w)
}
