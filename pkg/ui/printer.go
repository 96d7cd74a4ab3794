// Package ui renders dt's line-oriented terminal output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared with the picker.
var (
	salmonPink = lipgloss.Color("#FFB3BA")
	coralPink  = lipgloss.Color("#FFCCCB")
	mintGreen  = lipgloss.Color("#A8E6CF")
	skyBlue    = lipgloss.Color("#A7C7E7")
	mutedGray  = lipgloss.Color("#6B7280")
)

// Printer writes styled lines. Styles degrade to plain text when the
// destination is not a terminal or NO_COLOR is set.
type Printer struct {
	w     io.Writer
	color bool

	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	label   lipgloss.Style
	hint    lipgloss.Style
}

// NewPrinter returns a printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		color:   isTerminal(w) && os.Getenv("NO_COLOR") == "",
		success: r.NewStyle().Foreground(mintGreen).Bold(true),
		warn:    r.NewStyle().Foreground(coralPink),
		err:     r.NewStyle().Foreground(salmonPink).Bold(true),
		label:   r.NewStyle().Foreground(skyBlue).Bold(true),
		hint:    r.NewStyle().Foreground(mutedGray).Italic(true),
	}
}

// Writer returns the destination.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Color reports whether ANSI styling reaches the destination.
func (p *Printer) Color() bool {
	return p.color
}

// Println writes a plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Print writes text as is.
func (p *Printer) Print(s string) {
	fmt.Fprint(p.w, s)
}

// Success writes a line marking a completed step.
func (p *Printer) Success(s string) {
	p.line(p.success, s)
}

// Warn writes a line that needs the user's attention.
func (p *Printer) Warn(s string) {
	p.line(p.warn, s)
}

// Error writes a failure line.
func (p *Printer) Error(s string) {
	p.line(p.err, s)
}

// Label writes a section heading.
func (p *Printer) Label(s string) {
	p.line(p.label, s)
}

// Hint writes a dimmed tip.
func (p *Printer) Hint(s string) {
	p.line(p.hint, s)
}

// Prompt writes s without a newline, for a question answered on stdin.
func (p *Printer) Prompt(s string) {
	fmt.Fprint(p.w, p.render(p.warn, s))
}

func (p *Printer) line(style lipgloss.Style, s string) {
	fmt.Fprintln(p.w, p.render(style, s))
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
