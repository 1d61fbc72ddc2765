// Package kinematics drives the MakeKin.py helper that turns a symbolic particle gun position and
// direction (e.g. "random" and "4pi") into a vector file the simulator can read.
package kinematics

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/wcsim/macgen/internal/common/runner"
	"github.com/wcsim/macgen/internal/common/sweeperrors"
)

// ScriptPath is the location of the helper relative to the WCSim installation.
const ScriptPath = "sample-root-scripts/MakeKin.py"

// Request describes one vector file.
type Request struct {
	Events    int
	Particle  string
	Energy    string // MeV
	Position  string
	Direction string
}

// FileName returns the name MakeKin.py gives the first (and only) vector file it writes for r.
func FileName(r Request) (string, error) {
	energy, err := strconv.ParseFloat(r.Energy, 64)
	if err != nil {
		return "", errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "gunEnergy",
			Value:   r.Energy,
			Message: "must be a number",
		})
	}
	particle := strings.NewReplacer("+", "plus", "-", "minus").Replace(r.Particle)
	return fmt.Sprintf("%s_%.0fMeV__%s_%s_%03d.kin", particle, energy, r.Position, r.Direction, 0), nil
}

// MakeKin runs the helper script through a runner.
type MakeKin struct {
	// Full path to MakeKin.py.
	Script string
	// Directory the vector files are written to.
	Dir    string
	Runner runner.Runner
}

// NewMakeKin returns a MakeKin using the helper shipped with the WCSim installation in wcsimDir.
func NewMakeKin(wcsimDir string, dir string, r runner.Runner) *MakeKin {
	return &MakeKin{
		Script: filepath.Join(wcsimDir, ScriptPath),
		Dir:    dir,
		Runner: r,
	}
}

// Command returns the helper invocation for r.
func (m *MakeKin) Command(r Request) runner.Command {
	return runner.Command{
		Path: m.Script,
		Args: []string{
			"-N", "1",
			"-n", strconv.Itoa(r.Events),
			"-t", r.Particle,
			"-e", r.Energy,
			"-v", r.Position,
			"-d", r.Direction,
		},
		Dir: m.Dir,
	}
}

// Generate runs the helper for r and returns the name of the vector file it produced.
func (m *MakeKin) Generate(ctx context.Context, r Request) (string, error) {
	name, err := FileName(r)
	if err != nil {
		return "", err
	}
	cmd := m.Command(r)
	log.Infof("generating vector file %s: %s", name, cmd)
	if err := m.Runner.Run(ctx, cmd); err != nil {
		return "", errors.WithMessagef(err, "error generating vector file %s", name)
	}
	return name, nil
}
