package picker

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/dt/pkg/fuzzy"
	"github.com/entrhq/dt/pkg/i18n"
)

const (
	// reservedRows are the header, filter and status lines around the list.
	reservedRows  = 3
	minViewport   = 5
	minMaxShown   = 3
	defaultHeight = 24
)

// Model is the bubbletea model behind the interactive picker.
// It is single threaded: every key press runs to completion, including the
// synchronous reload of the data source, before the next frame is drawn.
type Model[T any] struct {
	src      Source[T]
	tr       *i18n.Translator
	keys     keyMap
	title    string
	required int
	maxShown int
	escEmpty bool

	original []Item[T]
	items    []Item[T]
	filtered []int

	filter     string
	cursor     int
	offset     int
	selected   []Item[T]
	showStderr bool
	status     string

	width  int
	height int

	done        bool
	interrupted bool
	result      []Item[T]
}

// NewModel loads the source once and returns a picker positioned on the
// first row.
func NewModel[T any](src Source[T], opts Options) *Model[T] {
	opts = opts.withDefaults()
	m := &Model[T]{
		src:      src,
		tr:       opts.Translator,
		keys:     defaultKeyMap(),
		title:    opts.Title,
		required: opts.Required,
		maxShown: opts.MaxShown,
		escEmpty: opts.EscapeReturnsEmpty,
		height:   defaultHeight,
	}
	if m.required < 2 {
		m.keys.Toggle.SetEnabled(false)
		m.keys.ToggleDown.SetEnabled(false)
	}
	m.keys.Delete.SetEnabled(src.Delete != nil)

	m.items = src.Load()
	m.original = m.items
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.interrupted = true
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.done = true
		if m.required > 1 && !m.escEmpty {
			m.result = firstN(m.original, m.required)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		if m.selectCurrent() {
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.viewport())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.viewport())
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = max(len(m.filtered)-1, 0)

	case key.Matches(msg, m.keys.Toggle):
		m.toggle(false)
	case key.Matches(msg, m.keys.ToggleDown):
		m.toggle(true)

	case key.Matches(msg, m.keys.Backspace):
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
		m.reload()
	case key.Matches(msg, m.keys.ClearFilter):
		m.filter = ""
		m.reload()
	case key.Matches(msg, m.keys.KillWord):
		m.filter = strings.TrimRightFunc(m.filter, unicode.IsSpace)
		m.filter = strings.TrimRightFunc(m.filter, func(r rune) bool { return !unicode.IsSpace(r) })
		m.reload()

	case key.Matches(msg, m.keys.Delete):
		m.deleteCurrent()
	case key.Matches(msg, m.keys.Preview) && m.hasPreview():
		m.showStderr = !m.showStderr

	case msg.Type == tea.KeySpace:
		m.filter += " "
		m.reload()
	case msg.Type == tea.KeyRunes:
		m.filter += string(msg.Runes)
		m.reload()
	}

	m.scroll()
	return m, nil
}

// selectCurrent marks the row under the cursor and reports whether the
// required number of rows is now selected.
func (m *Model[T]) selectCurrent() bool {
	if len(m.selected) < m.required {
		it, ok := m.current()
		if !ok {
			return false
		}
		if !m.isSelected(it.ID) {
			m.selected = append(m.selected, it)
		}
	}
	if len(m.selected) < m.required {
		return false
	}

	m.result = append([]Item[T](nil), m.selected[:m.required]...)
	sort.SliceStable(m.result, func(i, j int) bool {
		return m.result[i].Time.Before(m.result[j].Time)
	})
	m.done = true
	return true
}

func (m *Model[T]) toggle(stepDown bool) {
	it, ok := m.current()
	if !ok {
		return
	}
	if m.isSelected(it.ID) {
		m.unselect(it.ID)
	} else if len(m.selected) < m.required {
		m.selected = append(m.selected, it)
	}
	if stepDown {
		m.move(1)
	}
}

func (m *Model[T]) deleteCurrent() {
	it, ok := m.current()
	if !ok || m.src.Delete == nil {
		return
	}
	if err := m.src.Delete(it.Value); err != nil {
		m.status = m.tr.Tf(i18n.DeleteFailed, err)
		return
	}
	m.status = ""
	m.unselect(it.ID)
	m.original = without(m.original, it.ID)

	cursor := m.cursor
	m.items = m.src.Load()
	m.refilter()
	m.cursor = cursor
}

// reload fetches the data source again and re-ranks it against the filter.
func (m *Model[T]) reload() {
	m.cursor = 0
	m.offset = 0
	m.items = m.src.Load()
	m.refilter()
}

func (m *Model[T]) refilter() {
	m.filtered = m.filtered[:0]
	if m.filter == "" {
		for i := range m.items {
			m.filtered = append(m.filtered, i)
		}
		return
	}

	candidates := make([]fuzzy.Candidate[int], len(m.items))
	for i, it := range m.items {
		candidates[i] = fuzzy.Candidate[int]{Item: i, Text: it.Search}
	}
	for _, r := range fuzzy.MatchAndSort(m.filter, candidates) {
		m.filtered = append(m.filtered, r.Item)
	}
}

func (m *Model[T]) move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if last := len(m.filtered) - 1; m.cursor > last {
		m.cursor = max(last, 0)
	}
}

// scroll keeps the cursor inside the visible window.
func (m *Model[T]) scroll() {
	if last := len(m.filtered) - 1; m.cursor > last {
		m.cursor = max(last, 0)
	}
	vp := m.viewport()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vp {
		m.offset = m.cursor + 1 - vp
	}
}

// viewport is the number of list rows: the terminal height minus the
// header and status lines, optionally capped by MaxShown.
func (m *Model[T]) viewport() int {
	fit := max(m.height-reservedRows, minViewport)
	if m.maxShown > 0 {
		return min(max(m.maxShown, minMaxShown), fit)
	}
	return fit
}

func (m *Model[T]) current() (Item[T], bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return Item[T]{}, false
	}
	return m.items[m.filtered[m.cursor]], true
}

func (m *Model[T]) isSelected(id string) bool {
	for _, it := range m.selected {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (m *Model[T]) unselect(id string) {
	for i, it := range m.selected {
		if it.ID == id {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			return
		}
	}
}

func (m *Model[T]) hasPreview() bool {
	for _, it := range m.items {
		if it.Preview != nil {
			return true
		}
	}
	return false
}

// Result returns the selection once the picker finished. It is empty when
// the user backed out of a single selection or interrupted the picker.
func (m *Model[T]) Result() []Item[T] {
	if m.interrupted {
		return nil
	}
	return m.result
}

// Interrupted reports whether the picker was closed with ctrl+c or ctrl+d.
func (m *Model[T]) Interrupted() bool {
	return m.interrupted
}

// without returns a copy of items lacking the item with id.
func without[T any](items []Item[T], id string) []Item[T] {
	out := make([]Item[T], 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func firstN[T any](items []Item[T], n int) []Item[T] {
	if len(items) < n {
		n = len(items)
	}
	return append([]Item[T](nil), items[:n]...)
}
