package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/types"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type lsOptions struct {
	format  string
	pattern string
}

func newLsCmd(a *app) *cobra.Command {
	var opts lsOptions
	cmd := &cobra.Command{
		Use:     "ls [query]",
		Aliases: []string{"list"},
		Short:   a.tr.T(i18n.HelpLs),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return a.list(query, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", formatText, a.tr.T(i18n.HelpFormat))
	cmd.Flags().StringVar(&opts.pattern, "glob", "", a.tr.T(i18n.HelpGlob))
	return cmd
}

func (a *app) list(query string, opts lsOptions) error {
	records, err := a.store.GetAllRecords()
	if err != nil {
		return err
	}
	records, err = filterRecords(records, query, opts.pattern)
	if err != nil {
		return err
	}

	switch strings.ToLower(opts.format) {
	case formatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		a.out.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return err
		}
		a.out.Print(string(data))
	case formatText:
		for _, r := range records {
			a.out.Println(recordLine(r, time.Local))
		}
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", opts.format, formatText, formatJSON, formatYAML)
	}
	return nil
}

// filterRecords keeps records matching the clean query rule and, when set,
// the glob pattern. The result is never nil so JSON renders [].
func filterRecords(records []types.CommandRecord, query, pattern string) ([]types.CommandRecord, error) {
	var g glob.Glob
	if pattern != "" {
		var err error
		if g, err = glob.Compile(pattern); err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
	}

	out := make([]types.CommandRecord, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(query) != "" && !store.MatchesQuery(r.Command, query) {
			continue
		}
		if g != nil && !g.Match(r.Command) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func recordLine(r types.CommandRecord, loc *time.Location) string {
	ts := r.Timestamp.In(loc).Format("2006-01-02 15:04:05")
	if code := r.Code(); code != "" {
		return fmt.Sprintf("%s exit=%d dur=%dms [code:%s] %s", ts, r.ExitCode, r.DurationMS, code, r.Command)
	}
	return fmt.Sprintf("%s exit=%d dur=%dms %s", ts, r.ExitCode, r.DurationMS, r.Command)
}
