// Package runner abstracts launching external processes (the simulator, condor_submit and the
// kinematics helper) so that sweep logic can be tested without spawning anything.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/wcsim/macgen/internal/common/sweeperrors"
)

// Command describes one process invocation.
type Command struct {
	// Path of the executable. Bare names are looked up in $PATH.
	Path string
	Args []string
	// Working directory of the process. Empty means the current directory.
	Dir string
	// If set, stdout and stderr are both redirected to this file, relative to Dir.
	LogFile string
}

// String renders the command the way an operator would type it into a shell.
func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(c.Path)
	for _, arg := range c.Args {
		sb.WriteString(" ")
		sb.WriteString(arg)
	}
	if c.LogFile != "" {
		sb.WriteString(" &> ")
		sb.WriteString(c.LogFile)
	}
	return sb.String()
}

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec, blocking until the process exits.
type ExecRunner struct {
	// Used for process output when the command has no LogFile.
	Stdout io.Writer
	Stderr io.Writer

	// Stubbable for testing
	environ func() []string
}

// NewExecRunner returns an ExecRunner that inherits the current environment and writes
// process output to the given writers.
func NewExecRunner(stdout io.Writer, stderr io.Writer) *ExecRunner {
	return &ExecRunner{
		Stdout:  stdout,
		Stderr:  stderr,
		environ: os.Environ,
	}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if r.environ != nil {
		cmd.Env = r.environ()
	}

	if c.LogFile != "" {
		f, err := os.Create(filepath.Join(c.Dir, c.LogFile))
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		cmd.Stdout = f
		cmd.Stderr = f
	} else {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}

	log.Debugf("running %s in %q", c, c.Dir)
	if err := cmd.Run(); err != nil {
		return errors.WithStack(&sweeperrors.ErrCommandFailed{Command: c.String(), Err: err})
	}
	return nil
}
