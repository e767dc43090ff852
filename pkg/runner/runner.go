// Package runner invokes the sfboot utility and hands back its captured report.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

const (
	DefaultBinary  = "sfboot"
	DefaultShell   = "/bin/sh"
	DefaultTimeout = 2 * time.Minute
)

// Runner runs sfboot with args and returns its standard output.
// A failed run returns a *nxerrors.ExecError and no output.
type Runner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// Func adapts a function to Runner.
type Func func(ctx context.Context, args []string) ([]byte, error)

func (f Func) Run(ctx context.Context, args []string) ([]byte, error) {
	return f(ctx, args)
}

// ExecRunner runs sfboot on the host.
//
// With Shell set, the arguments are joined into one shell command line so the
// single-quoted flag=value tokens reach sfboot unquoted. With Shell empty, the
// arguments are passed to the binary exactly as given.
type ExecRunner struct {
	Binary  string
	Shell   string
	Timeout time.Duration
	Env     []string
	Logger  *zap.Logger
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

func WithBinary(path string) Option {
	return func(r *ExecRunner) { r.Binary = path }
}

func WithShell(shell string) Option {
	return func(r *ExecRunner) { r.Shell = shell }
}

func WithTimeout(d time.Duration) Option {
	return func(r *ExecRunner) { r.Timeout = d }
}

func WithEnv(env []string) Option {
	return func(r *ExecRunner) { r.Env = env }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *ExecRunner) { r.Logger = l }
}

// NewExecRunner creates a runner with the package defaults.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		Binary:  DefaultBinary,
		Shell:   DefaultShell,
		Timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	return r
}

// Run executes sfboot once.
func (r *ExecRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	execCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	if r.Shell != "" {
		line := shellQuote(binary)
		if len(args) > 0 {
			line += " " + strings.Join(args, " ")
		}
		cmd = exec.CommandContext(execCtx, r.Shell, "-c", line)
	} else {
		cmd = exec.CommandContext(execCtx, binary, args...)
	}
	if len(r.Env) > 0 {
		cmd.Env = r.Env
	}
	// Children of the shell may keep the pipes open after a kill.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running sfboot", zap.String("binary", binary), zap.Strings("args", args))
	started := time.Now()
	err := cmd.Run()
	elapsed := time.Since(started)

	if err != nil {
		execErr := &nxerrors.ExecError{
			Args:     append([]string(nil), args...),
			ExitCode: -1,
			Stderr:   stderr.String(),
			Err:      err,
		}
		switch {
		case errors.Is(execCtx.Err(), context.DeadlineExceeded):
			execErr.Err = fmt.Errorf("timeout after %s: %w", r.Timeout, context.DeadlineExceeded)
		case errors.Is(execCtx.Err(), context.Canceled):
			execErr.Err = context.Canceled
		default:
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				execErr.ExitCode = exitErr.ExitCode()
			}
		}
		logger.Warn("sfboot failed",
			zap.Strings("args", args),
			zap.Int("exit_code", execErr.ExitCode),
			zap.Duration("elapsed", elapsed),
			zap.Error(execErr.Err))
		return nil, execErr
	}

	logger.Debug("sfboot finished",
		zap.Int("stdout_bytes", stdout.Len()),
		zap.Duration("elapsed", elapsed))
	return stdout.Bytes(), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
