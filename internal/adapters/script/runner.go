// Package script launches the external render and repath scripts.
package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"

	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/ports"
)

// Runner implements ports.ScriptRunner with a host interpreter such as mayapy
type Runner struct {
	interpreter string
	log         zerolog.Logger
}

// Ensure Runner implements ScriptRunner
var _ ports.ScriptRunner = (*Runner)(nil)

// NewRunner creates a runner for the given interpreter
func NewRunner(interpreter string, log zerolog.Logger) *Runner {
	return &Runner{
		interpreter: interpreter,
		log:         logging.Component(log, "script"),
	}
}

// Run executes interpreter args... and waits for it to exit.
// Combined output is forwarded line by line to the log.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r.interpreter == "" {
		return fmt.Errorf("%w: no script interpreter configured", domain.ErrInvalidArgument)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no script given", domain.ErrInvalidArgument)
	}

	cmd := exec.CommandContext(ctx, r.interpreter, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	r.log.Info().Str("interpreter", r.interpreter).Strs("args", args).Msg("starting script")
	err := cmd.Run()

	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		r.log.Debug().Str("script", args[0]).Msg(sc.Text())
	}

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.log.Error().Int("exit_code", exitErr.ExitCode()).Str("script", args[0]).Msg("script failed")
			return domain.NewPathError("run script", args[0], domain.ErrIOFailure, err)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return domain.NewPathError("run script", r.interpreter, domain.ErrNotFound, err)
		}
		return domain.NewPathError("run script", args[0], domain.ErrIOFailure, err)
	}

	r.log.Info().Str("script", args[0]).Msg("script finished")
	return nil
}
