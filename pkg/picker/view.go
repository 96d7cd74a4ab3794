package picker

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/entrhq/dt/pkg/i18n"
)

const (
	// previewMinWidth is the narrowest terminal that gets a preview pane.
	previewMinWidth = 100
	minListWidth    = 24
	maxListWidth    = 60
	columnSeparator = " │ "
	tabWidth        = 4
)

// View implements tea.Model.
func (m *Model[T]) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	title := m.title
	if title == "" {
		title = m.prompt()
	}
	b.WriteString(headerStyle.Render(truncate(title, m.width)))
	b.WriteString("\n")
	b.WriteString(filterStyle.Render(truncate(m.tr.T(i18n.FilterLabel)+": "+m.filter, m.width)))
	b.WriteString("\n")

	if m.width >= previewMinWidth && m.hasPreview() {
		left := clamp(m.width/3, minListWidth, maxListWidth)
		right := m.width - left - runewidth.StringWidth(columnSeparator)
		rows := m.listLines(left, true)
		preview := m.previewLines(right, m.viewport())
		for i := 0; i < m.viewport(); i++ {
			l := strings.Repeat(" ", left)
			if i < len(rows) {
				l = rows[i]
			}
			r := ""
			if i < len(preview) {
				r = preview[i]
			}
			b.WriteString(l + columnSeparator + r + "\n")
		}
	} else {
		for _, row := range m.listLines(m.width, false) {
			b.WriteString(row + "\n")
		}
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model[T]) prompt() string {
	if m.required < 2 {
		return m.tr.T(i18n.PickOne)
	}
	switch len(m.selected) {
	case 0:
		return m.tr.T(i18n.PickFirst)
	case 1:
		return m.tr.T(i18n.PickSecond)
	default:
		return m.tr.T(i18n.SelectionComplete)
	}
}

// listLines renders the visible window of rows. With pad set every row is
// filled to exactly width cells so a second column can follow it.
func (m *Model[T]) listLines(width int, pad bool) []string {
	if len(m.filtered) == 0 {
		line := truncate(m.tr.T(i18n.NoMatches), width)
		if pad {
			line = runewidth.FillRight(line, width)
		}
		return []string{statusBarStyle.Render(line)}
	}

	end := min(m.offset+m.viewport(), len(m.filtered))
	lines := make([]string, 0, end-m.offset)
	for pos := m.offset; pos < end; pos++ {
		it := m.items[m.filtered[pos]]
		marked := m.isSelected(it.ID)

		prefix := "  "
		if marked {
			prefix = "✓ "
		}
		line := truncate(prefix+it.Label, width)
		if pad {
			line = runewidth.FillRight(line, width)
		}

		switch {
		case pos == m.cursor:
			line = cursorRowStyle.Render(line)
		case marked:
			line = markStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

// previewLines renders the selected stream of the row under the cursor,
// wrapped to width and cut to height lines.
func (m *Model[T]) previewLines(width, height int) []string {
	it, ok := m.current()
	if !ok || it.Preview == nil || width <= 0 {
		return nil
	}

	title, path, content := m.tr.T(i18n.PreviewStdout), it.Preview.StdoutPath, it.Preview.Stdout
	if m.showStderr {
		title, path, content = m.tr.T(i18n.PreviewStderr), it.Preview.StderrPath, it.Preview.Stderr
	}

	var lines []string
	if path != "" {
		lines = append(lines, previewPathStyle.Render(truncate(path, width)))
	}
	lines = append(lines, previewTitleStyle.Render(truncate(title, width)))

	if strings.TrimSpace(content) == "" {
		return append(lines, statusBarStyle.Render(m.tr.T(i18n.PreviewEmpty)))
	}

	content = strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		for _, seg := range wrap(line, width) {
			if len(lines) == height {
				lines[height-1] = "…"
				return lines
			}
			lines = append(lines, seg)
		}
	}
	return lines
}

func (m *Model[T]) statusLine() string {
	status := m.prompt() + " | " + m.tr.T(i18n.NavHints)
	if m.status == "" {
		return statusBarStyle.Render(truncate(status, m.width))
	}
	msg := truncate(m.status, m.width)
	rest := " | " + status
	if m.width > 0 {
		rest = truncate(rest, max(m.width-runewidth.StringWidth(msg), 1))
	}
	return errorStyle.Render(msg) + statusBarStyle.Render(rest)
}

// wrap splits line into segments of at most width cells.
func wrap(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var (
		segs []string
		cur  strings.Builder
		w    int
	)
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && w > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
			w = 0
		}
		cur.WriteRune(r)
		w += rw
	}
	if cur.Len() > 0 {
		segs = append(segs, cur.String())
	}
	return segs
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
