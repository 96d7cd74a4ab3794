package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/picker"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/types"
)

func newCleanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: a.tr.T(i18n.HelpClean),
	}
	cmd.AddCommand(newCleanSearchCmd(a))
	cmd.AddCommand(newCleanFileCmd(a))
	cmd.AddCommand(newCleanAllCmd(a))
	return cmd
}

func newCleanSearchCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: a.tr.T(i18n.HelpCleanSearch),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if query == "" {
				query = a.pickCommand()
				if query == "" {
					return nil
				}
			}
			return a.cleanByQuery(query, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, a.tr.T(i18n.HelpDryRun))
	return cmd
}

func newCleanFileCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "file [file]",
		Short: a.tr.T(i18n.HelpCleanFile),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			} else {
				var err error
				if target, err = a.pickRelatedFile(); err != nil || target == "" {
					return err
				}
			}
			return a.cleanByFile(target, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, a.tr.T(i18n.HelpDryRun))
	return cmd
}

func newCleanAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: a.tr.T(i18n.HelpCleanAll),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cleanAll()
		},
	}
}

// pickCommand offers the recorded commands and returns the chosen one.
func (a *app) pickCommand() string {
	simple, alt := a.cfg.ResolveTUI(a.getenv)
	if groups, err := a.store.CommandGroups(); err == nil && len(groups) == 0 {
		a.out.Warn(a.tr.T(i18n.NoRecords))
		return ""
	}
	chosen := picker.Run(picker.Source[store.CommandGroup]{
		Load: a.groupLoader(),
	}, a.pickerOptions(a.tr.T(i18n.SelectCommand), 1, 0, simple, alt))
	if len(chosen) == 0 {
		return ""
	}
	return chosen[0].Command
}

// pickRelatedFile offers the paths mentioned by recorded commands.
func (a *app) pickRelatedFile() (string, error) {
	files, err := a.store.RelatedFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		a.out.Println(a.tr.T(i18n.NoRelatedFiles))
		return "", nil
	}

	simple, alt := a.cfg.ResolveTUI(a.getenv)
	chosen := picker.Run(picker.Source[string]{
		Load: func() []picker.Item[string] { return picker.StringItems(files) },
	}, a.pickerOptions(a.tr.T(i18n.SelectFile), 1, 0, simple, alt))
	if len(chosen) == 0 {
		return "", nil
	}
	return chosen[0], nil
}

func (a *app) cleanByQuery(query string, dryRun bool) error {
	if dryRun {
		return a.dryRun(func(r types.CommandRecord) bool { return store.MatchesQuery(r.Command, query) })
	}
	count, err := a.store.CountByQuery(query)
	if err != nil {
		return err
	}
	if count == 0 {
		a.out.Warn(a.tr.T(i18n.DeleteNothing))
		return nil
	}

	a.out.Println(a.tr.Tf(i18n.DeleteSummaryQuery, count, query))
	if !a.confirm() {
		a.out.Warn(a.tr.T(i18n.ConfirmAborted))
		return nil
	}
	cleaned, err := a.store.CleanByQuery(query)
	if err != nil {
		return err
	}
	a.reportCleaned(cleaned)
	return nil
}

func (a *app) cleanByFile(target string, dryRun bool) error {
	if dryRun {
		return a.dryRun(store.NewFileMatcher(target).Match)
	}
	count, err := a.store.CountByFile(target)
	if err != nil {
		return err
	}
	if count == 0 {
		a.out.Warn(a.tr.T(i18n.DeleteNothing))
		return nil
	}

	a.out.Println(a.tr.Tf(i18n.DeleteSummaryFile, count, target))
	if !a.confirm() {
		a.out.Warn(a.tr.T(i18n.ConfirmAborted))
		return nil
	}
	cleaned, err := a.store.CleanByFile(target)
	if err != nil {
		return err
	}
	a.reportCleaned(cleaned)
	return nil
}

// dryRun lists the records a clean would delete without touching them.
func (a *app) dryRun(match func(types.CommandRecord) bool) error {
	records, err := a.store.GetAllRecords()
	if err != nil {
		return err
	}
	count := 0
	for _, r := range records {
		if match(r) {
			a.out.Println(recordLine(r, time.Local))
			count++
		}
	}
	if count == 0 {
		a.out.Warn(a.tr.T(i18n.DeleteNothing))
		return nil
	}
	a.out.Println(a.tr.Tf(i18n.DryRunTotal, count))
	return nil
}

func (a *app) reportCleaned(cleaned []types.CommandRecord) {
	for _, r := range cleaned {
		a.out.Hint(a.tr.Tf(i18n.CleanRecord, r.Command, r.Timestamp.Local().Format("2006-01-02 15:04:05")))
	}
	a.out.Success(a.tr.Tf(i18n.CleanedRecords, len(cleaned)))
}

func (a *app) cleanAll() error {
	a.out.Error(a.tr.T(i18n.ConfirmCleanAllTitle))

	records, err := a.store.GetAllRecords()
	if err != nil {
		return err
	}
	commands := make(map[string]struct{}, len(records))
	for _, r := range records {
		commands[r.CommandHash] = struct{}{}
	}
	a.out.Println(a.tr.Tf(i18n.CleanAllSummary, len(commands), len(records)))

	if !a.confirm() {
		a.out.Warn(a.tr.T(i18n.ConfirmAborted))
		return nil
	}
	if err := a.store.CleanAll(); err != nil {
		return err
	}
	a.out.Success(a.tr.T(i18n.CleanedAll))
	return nil
}
