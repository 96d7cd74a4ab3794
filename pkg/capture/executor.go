// Package capture runs a shell command while echoing its output live and
// keeping a copy of both streams for storage.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/entrhq/dt/pkg/types"
)

const (
	defaultShell     = "sh"
	defaultChunkSize = 4096
)

// Error is returned when the command could not be run or its output could
// not be collected. A non-zero exit status is not an Error.
type Error struct {
	Op  string // "spawn", "pipe", "drain" or "wait"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Executor runs commands through the host shell.
type Executor struct {
	// Shell is invoked as `Shell -c <command>`.
	Shell string
	// Dir is the working directory; empty means the current one.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ChunkSize is the read size used when draining each pipe.
	ChunkSize int

	now func() time.Time
}

// New returns an executor wired to the process's own standard streams.
func New() *Executor {
	return &Executor{
		Shell:     defaultShell,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		ChunkSize: defaultChunkSize,
		now:       time.Now,
	}
}

// Execute runs command, tees its output and returns the finished execution.
// Cancelling ctx kills the child.
func (e *Executor) Execute(ctx context.Context, command string) (*types.CommandExecution, error) {
	workDir := e.Dir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, &Error{Op: "spawn", Err: err}
		}
		workDir = wd
	}

	cmd := exec.CommandContext(ctx, e.shell(), "-c", command)
	cmd.Dir = workDir
	cmd.Stdin = e.Stdin

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &Error{Op: "pipe", Err: fmt.Errorf("stdout: %w", err)}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &Error{Op: "pipe", Err: fmt.Errorf("stderr: %w", err)}
	}

	start := e.clock()
	if err := cmd.Start(); err != nil {
		return nil, &Error{Op: "spawn", Err: err}
	}

	var (
		wg                   sync.WaitGroup
		stdoutBuf, stderrBuf strings.Builder
		stdoutErr, stderrErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stdoutErr = e.drain(stdoutPipe, e.Stdout, &stdoutBuf)
	}()
	go func() {
		defer wg.Done()
		stderrErr = e.drain(stderrPipe, e.Stderr, &stderrBuf)
	}()

	// Both pipes must be read to EOF before Wait closes them.
	wg.Wait()
	waitErr := cmd.Wait()
	duration := e.clock().Sub(start)

	if err := errors.Join(stdoutErr, stderrErr); err != nil {
		return nil, &Error{Op: "drain", Err: err}
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, &Error{Op: "wait", Err: waitErr}
		}
		// -1 when the child was killed by a signal.
		exitCode = exitErr.ExitCode()
	}

	record := types.NewRecord(command, workDir, exitCode, duration, e.clock())
	return &types.CommandExecution{
		Record: record,
		Stdout: strings.ToValidUTF8(stdoutBuf.String(), "�"),
		Stderr: strings.ToValidUTF8(stderrBuf.String(), "�"),
	}, nil
}

// drain copies r to console chunk by chunk while accumulating into buf.
// Console write failures do not stop the read loop, so the child never
// blocks on a full pipe.
func (e *Executor) drain(r io.Reader, console io.Writer, buf *strings.Builder) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("drain panic: %v", p)
		}
	}()

	size := e.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	chunk := make([]byte, size)
	for {
		n, readErr := r.Read(chunk)
		if n > 0 {
			if console != nil {
				_, _ = console.Write(chunk[:n])
			}
			buf.Write(chunk[:n])
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func (e *Executor) shell() string {
	if e.Shell == "" {
		return defaultShell
	}
	return e.Shell
}

func (e *Executor) clock() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}
