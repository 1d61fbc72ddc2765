// Package submit runs generated macro files, either directly on this machine or through an
// HTCondor batch queue.
package submit

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/wcsim/macgen/internal/common/runner"
	"github.com/wcsim/macgen/internal/common/sweeperrors"
	"github.com/wcsim/macgen/internal/macgen/options"
)

const (
	// ExecutableName is the name of the simulator binary, and of the link condor jobs run.
	ExecutableName = "WCSim"
	condorSubmit   = "condor_submit"
	requestMemory  = "1000"
)

// Executable returns the path of the simulator built for g4System inside wcsimDir.
func Executable(wcsimDir string, g4System string) string {
	return filepath.Join(wcsimDir, "bin", g4System, ExecutableName)
}

// Submission records what was done with one macro file.
type Submission struct {
	Stub string `json:"stub"`
	// Job descriptor written for the batch system, empty for local runs.
	DescriptorFile string `json:"descriptorFile,omitempty"`
	Command        string `json:"command"`
	// False when only the files were created.
	Ran bool `json:"ran"`
}

// Submitter turns macro files into running jobs.
type Submitter struct {
	// One of options.BatchModeLocal or options.BatchModeCondor.
	Mode string
	// Directory holding the macro files; every command runs there.
	Dir string
	// Simulator binary.
	Executable string
	// If set, commands are printed but not run.
	DryRun bool
	Runner runner.Runner
	Out    io.Writer
}

// Prepare sets up Dir before the first submission. For condor it links the simulator into
// Dir so that job descriptors can refer to it by name; an existing link is left alone.
func (s *Submitter) Prepare() error {
	if s.Mode != options.BatchModeCondor {
		return nil
	}
	link := filepath.Join(s.Dir, ExecutableName)
	if _, err := os.Lstat(link); err == nil {
		log.Debugf("%s already exists, not linking %s", link, s.Executable)
		return nil
	}
	if err := os.Symlink(s.Executable, link); err != nil {
		return errors.Wrapf(err, "error linking %s", s.Executable)
	}
	log.Infof("linked %s to %s", link, s.Executable)
	return nil
}

// Submit runs or queues the job for stub, whose macro file is <stub>.mac.
func (s *Submitter) Submit(ctx context.Context, stub string) (*Submission, error) {
	var cmd runner.Command
	submission := &Submission{Stub: stub}
	switch s.Mode {
	case options.BatchModeLocal:
		cmd = runner.Command{
			Path:    s.Executable,
			Args:    []string{stub + ".mac"},
			Dir:     s.Dir,
			LogFile: stub + ".out",
		}
	case options.BatchModeCondor:
		submission.DescriptorFile = stub + ".jdl"
		if err := os.WriteFile(filepath.Join(s.Dir, submission.DescriptorFile), []byte(JobDescriptor(stub)), 0o644); err != nil {
			return nil, errors.Wrapf(err, "error writing job descriptor %s", submission.DescriptorFile)
		}
		cmd = runner.Command{
			Path: condorSubmit,
			Args: []string{submission.DescriptorFile},
			Dir:  s.Dir,
		}
	default:
		return nil, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "batchMode",
			Value:   s.Mode,
			Message: "unknown batch mode",
		})
	}
	submission.Command = cmd.String()

	fmt.Fprintln(s.Out, submission.Command)
	if s.DryRun {
		fmt.Fprintln(s.Out, "test run; not actually running WCSim")
		return submission, nil
	}

	log.Infof("submitting %s", stub)
	if err := s.Runner.Run(ctx, cmd); err != nil {
		return nil, errors.WithMessagef(err, "error submitting %s", stub)
	}
	submission.Ran = true
	return submission, nil
}

// JobDescriptor returns the HTCondor submit description for the job running <stub>.mac.
func JobDescriptor(stub string) string {
	lines := [][2]string{
		{"executable", ExecutableName},
		{"universe", "vanilla"},
		{"arguments", stub + ".mac"},
		{"output", stub + ".out"},
		{"error", stub + ".err"},
		{"log", stub + ".log"},
		{"request_memory", requestMemory},
		{"getenv", "True"},
	}
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "%-14s = %s\n", l[0], l[1])
	}
	sb.WriteString("queue 1\n")
	return sb.String()
}
