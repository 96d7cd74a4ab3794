package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/entrhq/dt/pkg/differ"
	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/picker"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/types"
)

type diffOptions struct {
	maxShown   int
	copyReport bool
}

func newDiffCmd(a *app) *cobra.Command {
	var opts diffOptions
	cmd := &cobra.Command{
		Use:   "diff [command]...",
		Short: a.tr.T(i18n.HelpDiff),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.maxShown <= 0 {
				opts.maxShown = a.cfg.Display.MaxHistoryShown
			}
			if len(args) == 0 {
				return a.commandThenDiff(opts)
			}
			return a.diffCommand(joinArgs(args), opts)
		},
	}
	cmd.Flags().IntVar(&opts.maxShown, "max-shown", 0, a.tr.T(i18n.HelpMaxShown))
	cmd.Flags().BoolVar(&opts.copyReport, "copy", false, a.tr.T(i18n.HelpCopy))
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) diffCommand(command string, opts diffOptions) error {
	hash := types.HashCommand(types.NormalizeCommand(command))
	executions, err := a.store.FindExecutions(hash)
	if err != nil {
		return err
	}
	if len(executions) < 2 {
		a.out.Error(a.tr.T(i18n.NeedAtLeastTwo))
		return nil
	}
	if len(executions) > 2 {
		executions = a.pickExecutions(hash, opts, false)
	}
	return a.printDiff(executions, opts)
}

// commandThenDiff lets the user choose a command, then two of its runs.
// Backing out of the run picker returns to the command list.
func (a *app) commandThenDiff(opts diffOptions) error {
	simple, alt := a.cfg.ResolveTUI(a.getenv)
	for {
		groups, err := a.store.CommandGroups()
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			a.out.Warn(a.tr.T(i18n.NoRecords))
			return nil
		}

		chosen := picker.Run(picker.Source[store.CommandGroup]{
			Load: a.groupLoader(),
		}, a.pickerOptions(a.tr.T(i18n.SelectCommand), 1, opts.maxShown, simple, alt))
		if len(chosen) == 0 {
			return nil
		}

		hash := chosen[0].Hash
		executions, err := a.store.FindExecutions(hash)
		if err != nil {
			return err
		}
		if len(executions) < 2 {
			a.out.Error(a.tr.T(i18n.NeedAtLeastTwo))
			continue
		}
		if len(executions) > 2 {
			executions = a.pickExecutions(hash, opts, true)
			if len(executions) < 2 {
				continue
			}
		}
		return a.printDiff(executions, opts)
	}
}

// pickExecutions narrows the runs of one command down to two. Every
// keystroke reloads the runs from disk and ctrl+x deletes one.
func (a *app) pickExecutions(hash string, opts diffOptions, escBack bool) []*types.CommandExecution {
	simple, alt := a.cfg.ResolveTUI(a.getenv)
	src := picker.Source[*types.CommandExecution]{
		Load: func() []picker.Item[*types.CommandExecution] {
			executions, err := a.store.FindExecutions(hash)
			if err != nil {
				a.logger.Warnf("reload executions for %s: %v", hash, err)
				return nil
			}
			return picker.ExecutionItems(executions, a.tr, nil)
		},
		Delete: func(e *types.CommandExecution) error {
			return a.store.DeleteExecution(e.Record)
		},
		Fallback: picker.ExecutionFallback(a.tr, nil),
	}
	po := a.pickerOptions("", 2, opts.maxShown, simple, alt)
	po.EscapeReturnsEmpty = escBack
	return picker.Run(src, po)
}

func (a *app) groupLoader() func() []picker.Item[store.CommandGroup] {
	return func() []picker.Item[store.CommandGroup] {
		groups, err := a.store.CommandGroups()
		if err != nil {
			a.logger.Warnf("reload command groups: %v", err)
			return nil
		}
		return picker.GroupItems(groups, a.tr)
	}
}

func (a *app) pickerOptions(title string, required, maxShown int, simple, alt bool) picker.Options {
	return picker.Options{
		Title:      title,
		Required:   required,
		MaxShown:   maxShown,
		AltScreen:  alt,
		Simple:     simple,
		Translator: a.tr,
		Logger:     a.logger.With("picker"),
		In:         a.pickerInput(),
		Out:        a.out.Writer(),
	}
}

func (a *app) printDiff(executions []*types.CommandExecution, opts diffOptions) error {
	report, ok := differ.Diff(executions, a.tr, differ.Options{Color: a.out.Color()})
	if !ok {
		a.out.Error(a.tr.T(i18n.NeedAtLeastTwo))
		return nil
	}
	a.out.Print(report)

	if opts.copyReport {
		plain, _ := differ.Diff(executions, a.tr, differ.Options{})
		if err := clipboard.WriteAll(plain); err != nil {
			a.logger.Warnf("copy diff to clipboard: %v", err)
			a.errOut.Warn(err.Error())
			return nil
		}
		a.out.Success(a.tr.T(i18n.CopiedToClipboard))
	}
	return nil
}
