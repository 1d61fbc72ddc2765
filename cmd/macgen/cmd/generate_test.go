package cmd

/*
These tests check that command-line flags, environment variables and config files reach the
sweep correctly. The app's runner is replaced so that no process is ever started; the options
are still loaded by the real PreRunE.
*/

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcsim/macgen/internal/common/runner"
	"github.com/wcsim/macgen/internal/common/sweeperrors"
	"github.com/wcsim/macgen/internal/macgen"
	"github.com/wcsim/macgen/internal/macgen/options"
)

type recordingRunner struct {
	commands []runner.Command
}

func (r *recordingRunner) Run(_ context.Context, cmd runner.Command) error {
	r.commands = append(r.commands, cmd)
	return nil
}

type failingRunner struct{}

func (failingRunner) Run(context.Context, runner.Command) error {
	return errors.New("exit status 1")
}

func fakeWCSimDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range macgen.Templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	return dir
}

func executeGenerate(t *testing.T, args ...string) (*macgen.App, *recordingRunner, string, error) {
	t.Helper()
	r := &recordingRunner{}
	a := macgen.New()
	a.Runner = r
	cmd := generateCmdWithApp(a)
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return a, r, out.String(), err
}

func TestGenerate_Flags(t *testing.T) {
	t.Setenv("WCSIMDIR", "")
	t.Setenv("G4SYSTEM", "")
	wcsimDir := fakeWCSimDir(t)
	outputDir := t.TempDir()

	a, r, out, err := executeGenerate(t,
		"--wcsimDir", wcsimDir,
		"--g4System", "Linux-g++",
		"--outputDir", outputDir,
		"--darkNoiseRate", "0,8.4",
		"--gunEnergy", "5,10,20,50",
		"--nEvents", "10000",
	)
	require.NoError(t, err)

	o := a.Params.Sweep
	assert.Equal(t, options.List{"0", "8.4"}, o.DarkNoiseRate)
	assert.Equal(t, options.List{"5", "10", "20", "50"}, o.GunEnergy)
	assert.Equal(t, 10000, o.NEvents)
	assert.Equal(t, options.Vec("0", "0", "0"), o.GunPosition)

	paths, err := filepath.Glob(filepath.Join(outputDir, "wcsim_*.mac"))
	require.NoError(t, err)
	assert.Len(t, paths, 8)
	assert.Len(t, r.commands, 8)
	assert.Contains(t, out, "file: 8")
	assert.NotContains(t, out, "Usage:")
}

func TestGenerate_Environment(t *testing.T) {
	wcsimDir := fakeWCSimDir(t)
	t.Setenv("WCSIMDIR", wcsimDir)
	t.Setenv("G4SYSTEM", "Darwin-clang")

	a, r, _, err := executeGenerate(t, "--outputDir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, wcsimDir, a.Params.Sweep.WCSimDir)
	require.Len(t, r.commands, 1)
	assert.Equal(t, filepath.Join(wcsimDir, "bin", "Darwin-clang", "WCSim"), r.commands[0].Path)
}

func TestGenerate_ConfigFile(t *testing.T) {
	t.Setenv("WCSIMDIR", "")
	wcsimDir := fakeWCSimDir(t)
	outputDir := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"wcsimDir: "+wcsimDir+"\n"+
			"darkNoiseRate: [0, 8.4]\n"+
			"gunEnergy: 5,10\n"+
			"gunPosition: random\n"+
			"gunDirection: 4pi\n"+
			"onlyCreateFiles: true\n",
	), 0o644))

	root := RootCmd()
	a := macgen.New()
	r := &recordingRunner{}
	a.Runner = r
	root.RemoveCommand(findCommand(t, root, "generate"))
	root.AddCommand(generateCmdWithApp(a))
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	// Flags win over the config file.
	root.SetArgs([]string{"generate", "--config", cfg, "--outputDir", outputDir, "--gunEnergy", "20"})
	require.NoError(t, root.Execute())

	o := a.Params.Sweep
	assert.Equal(t, options.List{"0", "8.4"}, o.DarkNoiseRate)
	assert.Equal(t, options.List{"20"}, o.GunEnergy)
	assert.Equal(t, options.Sym("random"), o.GunPosition)
	assert.True(t, o.OnlyCreateFiles)
	// One vector file for the single energy; nothing else runs in a dry run.
	assert.Len(t, r.commands, 1)
	assert.Contains(t, out.String(), "test run; not actually running WCSim")
}

func TestGenerate_InvalidOptions(t *testing.T) {
	t.Setenv("WCSIMDIR", "")
	tests := map[string][]string{
		"unknown particle":     {"--gunParticle", "tau-"},
		"unknown geometry":     {"--wcGeom", "SuperK,Hyperk"},
		"non-numeric energy":   {"--gunEnergy", "5,ten"},
		"mixed placements":     {"--gunPosition", "random"},
		"two-component vector": {"--gunDirection", "1,0"},
		"zero events":          {"--nEvents", "0"},
		"unknown batch mode":   {"--batchMode", "slurm"},
		"unknown noise mode":   {"--darkNoiseMode", "2"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			outputDir := t.TempDir()
			args = append(args, "--wcsimDir", fakeWCSimDir(t), "--outputDir", outputDir)
			_, r, out, err := executeGenerate(t, args...)
			require.Error(t, err)
			assert.True(t, sweeperrors.IsInvalidArgument(err))
			assert.Contains(t, out, "Usage:")
			assert.Empty(t, r.commands)

			entries, err := os.ReadDir(outputDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestGenerate_MissingWCSimDir(t *testing.T) {
	t.Setenv("WCSIMDIR", "")
	_, _, out, err := executeGenerate(t, "--outputDir", t.TempDir())
	require.Error(t, err)
	assert.True(t, sweeperrors.IsInvalidArgument(err))
	assert.Contains(t, out, `"wcsimDir"`)
}

func TestGenerate_InvalidNoiseWindowPrintsUsage(t *testing.T) {
	t.Setenv("WCSIMDIR", "")
	_, _, out, err := executeGenerate(t,
		"--wcsimDir", fakeWCSimDir(t),
		"--outputDir", t.TempDir(),
		"--darkNoiseMode", "0",
		"--darkNoiseWindow", "100",
	)
	require.Error(t, err)
	assert.True(t, sweeperrors.IsInvalidArgument(err))
	assert.Contains(t, out, "Usage:")
}

func TestGenerate_FailedJobDoesNotPrintUsage(t *testing.T) {
	t.Setenv("WCSIMDIR", "")
	a := macgen.New()
	a.Runner = failingRunner{}
	cmd := generateCmdWithApp(a)
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--wcsimDir", fakeWCSimDir(t), "--outputDir", t.TempDir()})

	require.Error(t, cmd.Execute())
	assert.NotContains(t, out.String(), "Usage:")
}

func TestVersionAndChoices(t *testing.T) {
	for name, want := range map[string]string{"version": "Go version:", "choices": "geometry:"} {
		t.Run(name, func(t *testing.T) {
			root := RootCmd()
			out := new(bytes.Buffer)
			root.SetOut(out)
			root.SetArgs([]string{name})
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), want)
		})
	}
}

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	c, _, err := root.Find([]string{name})
	require.NoError(t, err)
	return c
}
