// Package differ renders the comparison report between two executions of
// one command.
package differ

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// Options control report rendering.
type Options struct {
	// Color enables ANSI styling of headers and diff lines.
	Color bool
	// Location is used to display timestamps; nil means time.Local.
	Location *time.Location
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	earlierStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	laterStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	stdoutStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	stderrStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	identicalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// Diff compares executions[0] (earlier) with executions[1] (later). The
// caller orders the slice; entries past the second are ignored. It returns
// false when fewer than two executions are given.
func Diff(executions []*types.CommandExecution, tr *i18n.Translator, opts Options) (string, bool) {
	if len(executions) < 2 {
		return "", false
	}
	earlier, later := executions[0], executions[1]
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	var out strings.Builder
	out.WriteString(style(headerStyle, tr.Tf(i18n.DiffCommand, later.Record.Command)))
	out.WriteByte('\n')

	earlierLabel := tr.T(i18n.DiffEarlierLabel)
	laterLabel := tr.T(i18n.DiffLaterLabel)
	width := max(runewidth.StringWidth(earlierLabel), runewidth.StringWidth(laterLabel))
	codeLabel := tr.T(i18n.ShortCodeLabel)

	out.WriteString(style(earlierStyle, stampLine("-", runewidth.FillRight(earlierLabel, width), codeLabel, earlier.Record, loc)))
	out.WriteByte('\n')
	out.WriteString(style(laterStyle, stampLine("+", runewidth.FillRight(laterLabel, width), codeLabel, later.Record, loc)))
	out.WriteByte('\n')

	if earlier.Record.ExitCode != later.Record.ExitCode {
		out.WriteString(tr.Tf(i18n.DiffExitCode, earlier.Record.ExitCode, later.Record.ExitCode))
		out.WriteByte('\n')
	}
	out.WriteString(tr.Tf(i18n.DiffExecutionTime, earlier.Record.DurationMS, later.Record.DurationMS))
	out.WriteString("\n\n")

	if earlier.Stdout != later.Stdout {
		out.WriteString(style(stdoutStyle, tr.T(i18n.StdoutDiff)))
		out.WriteByte('\n')
		out.WriteString(renderLines(earlier.Stdout, later.Stdout, opts.Color))
		out.WriteByte('\n')
	}
	if earlier.Stderr != later.Stderr {
		out.WriteString(style(stderrStyle, tr.T(i18n.StderrDiff)))
		out.WriteByte('\n')
		out.WriteString(renderLines(earlier.Stderr, later.Stderr, opts.Color))
		out.WriteByte('\n')
	}
	if earlier.Stdout == later.Stdout && earlier.Stderr == later.Stderr {
		out.WriteString(style(identicalStyle, tr.T(i18n.OutputIdentical)))
		out.WriteByte('\n')
	}
	return out.String(), true
}

func stampLine(sign, label, codeLabel string, r types.CommandRecord, loc *time.Location) string {
	line := fmt.Sprintf("%s %s: %s", sign, label, r.Timestamp.In(loc).Format(timeLayout))
	if code := r.Code(); code != "" {
		line += fmt.Sprintf(" [%s: %s]", codeLabel, code)
	}
	return line
}

func renderLines(old, next string, color bool) string {
	body := LineDiff(old, next)
	if !color {
		return body
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, body, "diff", "terminal256", "monokai"); err != nil {
		return body
	}
	return buf.String()
}

// LineDiff returns a line diff of old and next where every line is prefixed
// with "-" (removed), "+" (added) or " " (unchanged).
func LineDiff(old, next string) string {
	a, b := splitLines(old), splitLines(next)
	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)

	var out strings.Builder
	emit := func(prefix string, lines []string) {
		for _, l := range lines {
			out.WriteString(prefix)
			out.WriteString(l)
			if !strings.HasSuffix(l, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(" ", a[op.I1:op.I2])
		case 'd':
			emit("-", a[op.I1:op.I2])
		case 'i':
			emit("+", b[op.J1:op.J2])
		case 'r':
			emit("-", a[op.I1:op.I2])
			emit("+", b[op.J1:op.J2])
		}
	}
	return out.String()
}

// splitLines splits s after each newline. A final line without a newline
// is kept as is, so "a" and "a\n" differ.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
