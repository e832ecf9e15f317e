// Package delegate hands control of the current process to another program.
//
// In exec mode the process image is replaced and Run does not return on
// success. In spawn mode the child runs with the parent's stdio and
// environment, and the parent exits with the child's exact status code.
package delegate

import (
	"context"
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
)

// Mode selects how control is handed over.
type Mode int

const (
	// Exec replaces the current process image.
	Exec Mode = iota
	// Spawn runs a child, waits for it and exits with its status.
	Spawn
)

func (m Mode) String() string {
	switch m {
	case Exec:
		return "exec"
	case Spawn:
		return "spawn"
	}
	return "unknown"
}

// Process delegates to external programs.
type Process struct {
	mode   Mode
	logger hclog.Logger

	// Env overrides the inherited environment when non-nil.
	Env []string

	// exit terminates the process in spawn mode.
	exit func(code int)
}

// New returns a Process using mode. A nil logger discards output.
func New(mode Mode, logger hclog.Logger) *Process {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Process{mode: mode, logger: logger, exit: os.Exit}
}

// Mode reports the delegation mode.
func (p *Process) Mode() Mode {
	return p.mode
}

// Run hands the process over to name with args. Exec mode only returns on
// failure; spawn mode terminates the process once the child finishes and
// returns an error only when the child could not be started.
func (p *Process) Run(ctx context.Context, name string, args []string) error {
	binary, err := exec.LookPath(name)
	if err != nil {
		return errors.Wrapf(err, "failed to find %s", name)
	}
	env := p.Env
	if env == nil {
		env = os.Environ()
	}
	p.logger.Info("delegating", "mode", p.mode, "path", binary)
	p.logger.Debug("delegated command", "args", args)

	if p.mode == Exec {
		return execProcess(binary, append([]string{name}, args...), env, p.logger)
	}
	return p.spawn(ctx, binary, args, env)
}

func (p *Process) spawn(ctx context.Context, binary string, args, env []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start process")
	}
	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return errors.Wrap(err, "process error")
		}
		code = exitErr.ExitCode()
	}
	p.logger.Debug("process exited", "code", code)
	p.exit(code)
	return nil
}
