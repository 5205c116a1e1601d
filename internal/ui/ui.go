package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	// ANSI Colors
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorBold  = "\033[1m"
)

// Printer writes status lines, optionally coloured.
type Printer struct {
	W     io.Writer
	Color bool
}

// NewPrinter returns a Printer for w. Colour is enabled only when w is a
// character device.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{W: w, Color: isTerminal(w)}
}

func (p *Printer) paint(color, s string) string {
	if !p.Color {
		return s
	}
	return color + s + ColorReset
}

func (p *Printer) PrintHeader(msg string) {
	fmt.Fprintf(p.W, "\n%s\n", p.paint(ColorBold, msg))
}

func (p *Printer) PrintSuccess(label, detail string) {
	fmt.Fprintf(p.W, "  %s %-15s %s\n", p.paint(ColorGreen, "✔"), label, p.paint(ColorGreen, detail))
}

func (p *Printer) PrintError(label, detail string) {
	fmt.Fprintf(p.W, "  %s %-15s %s\n", p.paint(ColorRed, "✘"), label, p.paint(ColorRed, detail))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
