package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer writes marked status lines. Success lines start with a check
// mark, failures with a cross.
type Printer struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
	header  *color.Color
}

// New returns a Printer writing to w. Colors are used only when colored is true.
func New(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		header:  color.New(color.FgCyan, color.Underline),
	}
	for _, c := range []*color.Color{p.success, p.failure, p.header} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Stdout returns a Printer for os.Stdout, colored when it is a terminal.
func Stdout() *Printer {
	return New(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// Success prints a line marked with a check mark.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s%s\n", p.success.Sprint("✓  "), fmt.Sprintf(format, args...))
}

// Error prints a line marked with a cross.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s%s\n", p.failure.Sprint("✗  "), fmt.Sprintf(format, args...))
}

// Header prints a section title surrounded by blank lines.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, " %s\n", p.header.Sprint(title))
	fmt.Fprintln(p.w)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}
