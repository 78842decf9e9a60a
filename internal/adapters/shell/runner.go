// Package shell provides the subprocess runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxStderrTail bounds how much stderr is attached to an error.
const maxStderrTail = 4096

// waitDelay bounds how long Run waits for output pipes after the process was killed.
const waitDelay = 5 * time.Second

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger  ports.Logger
	timeout time.Duration
}

// NewRunner creates a Runner. A zero timeout disables the per-command limit.
func NewRunner(logger ports.Logger, timeout time.Duration) *Runner {
	return &Runner{
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes cmd to completion with stdout and stderr fully buffered.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // argv built by adapters, never a shell string
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger.Debug("$ " + cmd.String())
	start := time.Now()
	runErr := c.Run()

	res := domain.CommandResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	r.logLines(res.Stderr)

	if runErr == nil {
		r.logger.Debug(cmd.Name + " finished in " + time.Since(start).Round(time.Millisecond).String())
		return res, nil
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err := zerr.With(zerr.Wrap(runErr, domain.ErrCommandTimedOut.Error()), "command", cmd.String())
		return res, domain.Tag(domain.ErrProcess, zerr.With(err, "timeout", r.timeout.String()))
	case ctx.Err() != nil:
		return res, domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(ctx.Err(), "command interrupted"), "command", cmd.String()))
	case exitErr == nil:
		return res, domain.Tag(domain.ErrProcess, zerr.With(zerr.Wrap(runErr, domain.ErrCommandStartFailed.Error()), "command", cmd.Name))
	}

	err := zerr.Wrap(runErr, domain.ErrCommandFailed.Error())
	err = zerr.With(err, "command", cmd.String())
	err = zerr.With(err, "exit_code", res.ExitCode)
	if tail := stderrTail(res.Stderr); tail != "" {
		err = zerr.With(err, "stderr", tail)
	}
	return res, domain.Tag(domain.ErrProcess, err)
}

// logLines forwards subprocess diagnostics line by line at debug level.
func (r *Runner) logLines(p []byte) {
	text := strings.TrimRight(string(p), "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		r.logger.Debug("  " + line)
	}
}

// stderrTail returns at most the last maxStderrTail bytes of p, cut at a rune boundary.
func stderrTail(p []byte) string {
	s := strings.TrimSpace(string(p))
	if len(s) <= maxStderrTail {
		return s
	}
	start := len(s) - maxStderrTail
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return "..." + s[start:]
}
