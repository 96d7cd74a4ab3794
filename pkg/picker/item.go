package picker

import (
	"io"
	"time"
)

// Item is one selectable row.
type Item[T any] struct {
	// ID identifies the row across reloads.
	ID string
	// Label is the text shown in the list.
	Label string
	// Search is the text the filter is matched against.
	Search string
	// Time orders the final selection, oldest first.
	Time time.Time
	// Preview is shown beside the list on wide terminals. Optional.
	Preview *Preview
	Value   T
}

// Preview is the captured output shown for the row under the cursor.
type Preview struct {
	Stdout     string
	Stderr     string
	StdoutPath string
	StderrPath string
}

// Source supplies the rows of a picker.
type Source[T any] struct {
	// Load returns the current rows. It is called again after every filter edit
	// so the picker sees data that changed while it was open.
	Load func() []Item[T]
	// Delete removes a value from its backing store. Nil disables ctrl+x.
	Delete func(T) error
	// Fallback selects rows without a terminal UI. Nil uses a numbered prompt.
	Fallback func(r io.Reader, w io.Writer, items []Item[T]) []Item[T]
}
