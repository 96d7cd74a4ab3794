package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/entrhq/dt/pkg/config"
	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/logging"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/ui"
)

const dataDirFlag = "data-dir"

// app carries what every subcommand needs. Config and translator exist
// before the command tree is built so help text is localized; the logger
// and store are opened once a command actually runs.
type app struct {
	root   string
	cfg    *config.Config
	tr     *i18n.Translator
	logger *logging.Logger
	store  *store.Store

	in     io.Reader
	lines  *bufio.Reader
	out    *ui.Printer
	errOut *ui.Printer
	getenv func(string) string

	// confirmAll is set once the user answers "all" to a delete prompt.
	confirmAll bool
}

func execute(args []string, in io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	a := &app{
		in:     in,
		lines:  bufio.NewReader(in),
		out:    ui.NewPrinter(stdout),
		errOut: ui.NewPrinter(stderr),
		getenv: getenv,
	}

	root, err := config.ResolveRoot(dataDirFromArgs(args))
	if err != nil {
		a.errOut.Error(err.Error())
		return 1
	}
	a.root = root

	cfg, cfgErr := config.Load(filepath.Join(root, config.FileName))
	if cfgErr != nil {
		cfg = config.Default()
	}
	a.cfg = cfg
	a.tr = i18n.New(cfg.EffectiveLanguage(getenv))
	if cfgErr != nil {
		a.errOut.Warn(a.tr.T(i18n.ErrLoadConfig) + ": " + cfgErr.Error())
	}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err = cmd.Execute()
	if a.logger != nil {
		if err != nil {
			a.logger.Errorf("%v", err)
		}
		a.logger.Close()
	}
	if err != nil {
		a.errOut.Error(err.Error())
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "dt",
		Short:         a.tr.T(i18n.HelpAbout),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	// Resolved before the tree is built; registered so it parses and shows in help.
	root.PersistentFlags().String(dataDirFlag, "", a.tr.T(i18n.HelpDataDir))

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newDiffCmd(a))
	root.AddCommand(newLsCmd(a))
	root.AddCommand(newCleanCmd(a))
	return root
}

// open starts the session log and the record store under the data directory.
func (a *app) open() error {
	logging.SetDirectory(filepath.Join(a.root, "logs"))
	// On failure NewLogger still returns a logger writing to stderr.
	a.logger, _ = logging.NewLogger("cli")

	st, err := store.New(a.root, a.cfg.Storage, a.tr, a.logger.With("store"))
	if err != nil {
		return err
	}
	a.store = st
	return nil
}

// pickerInput is the terminal itself when there is one, so the picker can
// take it over, and the shared line reader otherwise.
func (a *app) pickerInput() io.Reader {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return f
	}
	return a.lines
}

// confirm asks before deleting. "yes" confirms once; "all" confirms this
// and every later prompt of the invocation.
func (a *app) confirm() bool {
	if a.confirmAll {
		return true
	}
	a.out.Prompt(a.tr.T(i18n.ConfirmDeletePrompt))
	line, err := a.lines.ReadString('\n')
	if err != nil && line == "" {
		a.out.Println()
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "all":
		a.confirmAll = true
		return true
	case "yes":
		return true
	}
	return false
}

// dataDirFromArgs finds --data-dir ahead of cobra so configuration can be
// loaded from the right place before the commands are built.
func dataDirFromArgs(args []string) string {
	flag := "--" + dataDirFlag
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v
		}
	}
	return ""
}
