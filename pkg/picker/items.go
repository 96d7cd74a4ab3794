package picker

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// ExecutionItems turns executions into rows numbered from 1 in slice order.
// Times are shown in loc; nil means local time.
func ExecutionItems(executions []*types.CommandExecution, tr *i18n.Translator, loc *time.Location) []Item[*types.CommandExecution] {
	if loc == nil {
		loc = time.Local
	}
	items := make([]Item[*types.CommandExecution], 0, len(executions))
	for i, e := range executions {
		n := i + 1
		date := e.Record.Timestamp.In(loc).Format(timeLayout)
		code := e.Record.Code()

		label := fmt.Sprintf("%d: %s: %s", n, tr.T(i18n.TimeLabel), date)
		search := fmt.Sprintf("%d %s %s", n, date, e.Record.Command)
		if code != "" {
			label = fmt.Sprintf("%d: %s:%s %s: %s", n, tr.T(i18n.ShortCodeLabel), code, tr.T(i18n.TimeLabel), date)
			search += " " + code
		}

		items = append(items, Item[*types.CommandExecution]{
			ID:     e.Record.RecordID,
			Label:  label,
			Search: search,
			Time:   e.Record.Timestamp,
			Preview: &Preview{
				Stdout:     e.Stdout,
				Stderr:     e.Stderr,
				StdoutPath: e.StdoutPath,
				StderrPath: e.StderrPath,
			},
			Value: e,
		})
	}
	return items
}

// GroupItems turns command groups into rows showing the run count and how
// long ago the command last ran.
func GroupItems(groups []store.CommandGroup, tr *i18n.Translator) []Item[store.CommandGroup] {
	items := make([]Item[store.CommandGroup], 0, len(groups))
	for _, g := range groups {
		items = append(items, Item[store.CommandGroup]{
			ID:     g.Hash,
			Label:  fmt.Sprintf("%s  (%s, %s)", g.Command, tr.Tf(i18n.RunsCount, g.Count), humanize.Time(g.Latest)),
			Search: g.Command,
			Time:   g.Latest,
			Value:  g,
		})
	}
	return items
}

// StringItems turns plain strings into rows.
func StringItems(values []string) []Item[string] {
	items := make([]Item[string], 0, len(values))
	for _, v := range values {
		items = append(items, Item[string]{ID: v, Label: v, Search: v, Value: v})
	}
	return items
}
