package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/entrhq/dt/pkg/capture"
	"github.com/entrhq/dt/pkg/differ"
	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/types"
)

func newRunCmd(a *app) *cobra.Command {
	var diffCode string
	cmd := &cobra.Command{
		Use:   "run [-d CODE] <command>...",
		Short: a.tr.T(i18n.HelpRun),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.run(ctx, joinArgs(args), diffCode)
		},
	}
	cmd.Flags().StringVarP(&diffCode, "diff-code", "d", "", a.tr.T(i18n.HelpDiffCode))
	// Everything after the command name belongs to the command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// joinArgs turns the run arguments into one shell command line. A single
// argument is taken verbatim so quoted pipelines keep working.
func joinArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellquote.Join(args...)
}

// outputSize summarizes a captured stream as "<label> 1.2 kB, 3 lines".
func outputSize(tr *i18n.Translator, label i18n.Key, text string) string {
	lines := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		lines++
	}
	return tr.Tf(i18n.OutputSize, tr.T(label), humanize.Bytes(uint64(len(text))), lines)
}

func (a *app) run(ctx context.Context, command, diffCode string) error {
	ex := capture.New()
	ex.Stdin = a.in
	ex.Stdout = a.out.Writer()
	ex.Stderr = a.errOut.Writer()

	exec, err := ex.Execute(ctx, command)
	if err != nil {
		return fmt.Errorf("%s: %w", a.tr.T(i18n.ErrExecuteCommand), err)
	}
	a.logger.Infof("ran %q exit=%d in %dms", exec.Record.Command, exec.Record.ExitCode, exec.Record.DurationMS)

	if err := a.store.AssignShortCode(&exec.Record); err != nil {
		return err
	}

	a.out.Success(a.tr.Tf(i18n.CommandCompleted, exec.Record.ExitCode))
	a.out.Println(fmt.Sprintf("%s: %dms", a.tr.T(i18n.ExecutionTime), exec.Record.DurationMS))
	// The streams were already echoed live; only their sizes are repeated.
	a.out.Println(outputSize(a.tr, i18n.StdoutLabel, exec.Stdout))
	a.out.Println(outputSize(a.tr, i18n.StderrLabel, exec.Stderr))

	if err := a.store.Save(exec); err != nil {
		return err
	}
	a.out.Success(a.tr.T(i18n.ResultSaved))
	if code := exec.Record.Code(); code != "" {
		a.out.Warn(a.tr.Tf(i18n.AssignedShortCode, code))
		a.out.Hint(a.tr.Tf(i18n.HintDiffWithCode, code))
	}

	if diffCode != "" {
		return a.diffWithCode(exec, diffCode)
	}
	return nil
}

// diffWithCode compares a fresh execution against the earlier one of the
// same command carrying code.
func (a *app) diffWithCode(exec *types.CommandExecution, code string) error {
	target, err := a.store.FindByShortCode(exec.Record.CommandHash, code)
	if errors.Is(err, store.ErrNotFound) || (err == nil && target.Record.RecordID == exec.Record.RecordID) {
		a.out.Println(a.tr.Tf(i18n.DiffCodeNotFound, code))
		return nil
	}
	if err != nil {
		return err
	}

	pair := []*types.CommandExecution{target, exec}
	if exec.Record.Timestamp.Before(target.Record.Timestamp) {
		pair[0], pair[1] = exec, target
	}
	report, _ := differ.Diff(pair, a.tr, differ.Options{Color: a.out.Color()})
	a.out.Print(report)
	return nil
}
