// Package picker narrows a list of items down to a required selection,
// either through an interactive filterable terminal UI or a line-oriented
// prompt when no terminal is available.
package picker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/logging"
)

// InterruptedExitCode is the process exit status after ctrl+c.
const InterruptedExitCode = 130

// restoreTimeout bounds how long an interrupt waits for the terminal to be
// restored before exiting anyway.
const restoreTimeout = 2 * time.Second

// Options configure one picker session.
type Options struct {
	// Title is the header line. Empty shows the selection prompt.
	Title string
	// Required is how many rows must be chosen: 1 or 2.
	Required int
	// MaxShown fixes the list height. Zero sizes it to the terminal.
	MaxShown int
	// AltScreen draws the picker on the alternate screen.
	AltScreen bool
	// Simple skips the interactive UI.
	Simple bool
	// EscapeReturnsEmpty makes Esc select nothing even when two rows are
	// required, so callers can treat it as "go back".
	EscapeReturnsEmpty bool

	Translator *i18n.Translator
	Logger     *logging.Logger
	In         io.Reader
	Out        io.Writer
}

func (o Options) withDefaults() Options {
	if o.Required < 1 {
		o.Required = 1
	}
	if o.Translator == nil {
		o.Translator = i18n.New("en")
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

var (
	interruptOnce sync.Once

	activeMu sync.Mutex
	active   *tea.Program

	osExit = os.Exit
)

// installInterruptHandler makes SIGINT and SIGTERM restore the terminal
// and end the process with InterruptedExitCode. It is installed on the
// first interactive session and stays for the life of the process.
func installInterruptHandler() {
	interruptOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		go watchInterrupts(ch)
	})
}

// watchInterrupts waits for one signal, shuts down the active program so
// it restores the terminal, then exits.
func watchInterrupts(ch <-chan os.Signal) {
	<-ch
	activeMu.Lock()
	p := active
	activeMu.Unlock()
	if p != nil {
		p.Kill()
		// Wait blocks forever if the program was never started.
		done := make(chan struct{})
		go func() {
			p.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(restoreTimeout):
		}
	}
	osExit(InterruptedExitCode)
}

func setActive(p *tea.Program) {
	activeMu.Lock()
	active = p
	activeMu.Unlock()
}

// Run lets the user choose opts.Required items from src and returns their
// values, oldest first. It returns nothing when the source is empty or the
// user backed out of a single selection. Ctrl+c ends the process.
func Run[T any](src Source[T], opts Options) []T {
	opts = opts.withDefaults()

	m := NewModel(src, opts)
	if len(m.items) == 0 {
		return nil
	}

	if opts.Simple || !isTerminal(opts.In) || !isTerminal(opts.Out) {
		return values(fallback(src, opts, m.items))
	}

	installInterruptHandler()

	progOpts := []tea.ProgramOption{tea.WithInput(opts.In), tea.WithOutput(opts.Out)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, progOpts...)
	setActive(p)
	final, err := p.Run()
	setActive(nil)
	return finish(src, opts, m, final, err)
}

// finish turns the outcome of an interactive session into the selection.
func finish[T any](src Source[T], opts Options, m *Model[T], final tea.Model, err error) []T {
	if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
		osExit(InterruptedExitCode)
		return nil
	}
	if err != nil {
		opts.Logger.Warnf("interactive picker unavailable: %v", err)
		fmt.Fprintln(opts.Out, opts.Translator.T(i18n.WarningInteractiveFailed))
		return values(fallback(src, opts, m.original))
	}

	fm, ok := final.(*Model[T])
	if !ok {
		return nil
	}
	if fm.Interrupted() {
		osExit(InterruptedExitCode)
		return nil
	}
	return values(fm.Result())
}

func fallback[T any](src Source[T], opts Options, items []Item[T]) []Item[T] {
	if src.Fallback != nil {
		return src.Fallback(opts.In, opts.Out, items)
	}
	if opts.Required > 1 {
		return firstN(items, opts.Required)
	}
	return SimpleSelectOne(opts.In, opts.Out, items, opts.Translator)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func values[T any](items []Item[T]) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}
