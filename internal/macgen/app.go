// Package macgen generates WCSim macro files for every combination of a parameter sweep and
// runs or queues them.
package macgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"

	"github.com/wcsim/macgen/internal/common/runner"
	"github.com/wcsim/macgen/internal/macgen/build"
	"github.com/wcsim/macgen/internal/macgen/emit"
	"github.com/wcsim/macgen/internal/macgen/kinematics"
	"github.com/wcsim/macgen/internal/macgen/options"
	"github.com/wcsim/macgen/internal/macgen/section"
	"github.com/wcsim/macgen/internal/macgen/submit"
	"github.com/wcsim/macgen/internal/macgen/sweep"
)

// App generates, runs and reports parameter sweeps.
type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
	// Runs the simulator, condor_submit and the kinematics helper. Tests replace it
	// to avoid spawning processes.
	Runner runner.Runner
}

// Params struct holds all user-customizable parameters.
type Params struct {
	Sweep *options.Options
}

// New instantiates an App with default parameters, writing to standard output
// and running commands with os/exec.
func New() *App {
	return &App{
		Params: &Params{},
		Out:    os.Stdout,
		Runner: runner.NewExecRunner(os.Stdout, os.Stderr),
	}
}

// Generate writes one macro file per sweep combination into the output directory and submits
// each one as soon as it is written. Submission stops at the first failure.
func (a *App) Generate(ctx context.Context) (*Manifest, error) {
	o := a.Params.Sweep
	if o == nil {
		return nil, errors.New("no sweep options provided")
	}

	// Commands run inside the output directory, so paths into the installation must not be relative.
	wcsimDir, err := filepath.Abs(o.WCSimDir)
	if err != nil {
		return nil, errors.Wrapf(err, "error resolving wcsimDir %s", o.WCSimDir)
	}
	o.WCSimDir = wcsimDir

	if err := os.MkdirAll(o.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "error creating output directory %s", o.OutputDir)
	}
	if err := StageTemplates(o.WCSimDir, o.OutputDir); err != nil {
		return nil, err
	}

	axes, skipped, err := a.axes(ctx, o)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warnf("skipped %d incompatible digitizer/trigger pairing(s); %s only works with itself", skipped, options.SKDetSimDAQ)
	}
	combinations, err := sweep.Expand(axes...)
	if err != nil {
		return nil, err
	}
	log.Infof("sweep expands to %d macro file(s)", len(combinations))

	emitter := &emit.Emitter{
		Dir:     o.OutputDir,
		Out:     a.Out,
		SavePi0: o.SavePi0,
		NEvents: o.NEvents,
	}
	submitter := &submit.Submitter{
		Mode:       o.BatchMode,
		Dir:        o.OutputDir,
		Executable: submit.Executable(o.WCSimDir, o.G4System),
		DryRun:     o.OnlyCreateFiles,
		Runner:     a.Runner,
		Out:        a.Out,
	}
	if err := submitter.Prepare(); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		BatchMode:       o.BatchMode,
		OnlyCreateFiles: o.OnlyCreateFiles,
		SkippedPairings: skipped,
	}
	for _, c := range combinations {
		job, err := emitter.Emit(c)
		if err != nil {
			return nil, err
		}
		submission, err := submitter.Submit(ctx, job.Stub)
		if err != nil {
			return nil, err
		}
		manifest.Jobs = append(manifest.Jobs, ManifestJob{
			Stub:           job.Stub,
			MacroFile:      job.MacroFile,
			DescriptorFile: submission.DescriptorFile,
			Command:        submission.Command,
			Ran:            submission.Ran,
		})
	}

	if err := manifest.Write(o.OutputDir); err != nil {
		return nil, err
	}
	log.Infof("wrote %d macro file(s) to %s", emitter.Count(), o.OutputDir)
	return manifest, nil
}

// axes builds the sweep axes in iteration order; the particle gun varies fastest.
// Names start with the gun, followed by detector, acquisition and noise settings.
func (a *App) axes(ctx context.Context, o *options.Options) ([]sweep.Axis, int, error) {
	noise, err := section.DarkNoise(o)
	if err != nil {
		return nil, 0, err
	}
	daq, skipped := section.DAQ(o)
	gun, err := section.ParticleGun(ctx, o, kinematics.NewMakeKin(o.WCSimDir, o.OutputDir, a.Runner))
	if err != nil {
		return nil, 0, err
	}
	return []sweep.Axis{
		{Name: "verbosity", Sections: section.Verbosity(o)},
		{Name: "geometry", Sections: section.Geometry(o), NameRank: 1},
		{Name: "pmt", Sections: section.PMT(o), NameRank: 2},
		{Name: "daq", Sections: daq, NameRank: 3},
		{Name: "darkNoise", Sections: noise, NameRank: 4},
		{Name: "gun", Sections: gun},
	}, skipped, nil
}

// Choices prints every allow-list as YAML.
func (a *App) Choices() error {
	b, err := yaml.Marshal(options.AllChoices())
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = a.Out.Write(b)
	return errors.WithStack(err)
}

// Version prints build information (e.g., current git commit) to the app output.
func (a *App) Version() error {
	w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Version:\t%s\n", build.ReleaseVersion)
	fmt.Fprintf(w, "Commit:\t%s\n", build.GitCommit)
	fmt.Fprintf(w, "Go version:\t%s\n", build.GoVersion)
	fmt.Fprintf(w, "Built:\t%s\n", build.BuildTime)
	return nil
}
