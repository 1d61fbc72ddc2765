package macgen

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// ManifestFile is written to the output directory after every sweep.
const ManifestFile = ".macgen-manifest.yaml"

// Manifest summarises a sweep.
type Manifest struct {
	BatchMode       string `json:"batchMode"`
	OnlyCreateFiles bool   `json:"onlyCreateFiles"`
	// Digitizer/trigger pairings left out because they can't work together.
	SkippedPairings int           `json:"skippedPairings"`
	Jobs            []ManifestJob `json:"jobs"`
}

type ManifestJob struct {
	Stub           string `json:"stub"`
	MacroFile      string `json:"macroFile"`
	DescriptorFile string `json:"descriptorFile,omitempty"`
	// Command that was run, or would have been run for dry runs.
	Command string `json:"command"`
	Ran     bool   `json:"ran"`
}

// Write stores m as YAML in dir.
func (m *Manifest) Write(dir string) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), b, 0o644); err != nil {
		return errors.Wrapf(err, "error writing %s", ManifestFile)
	}
	return nil
}

// ReadManifest loads the manifest written to dir by a previous sweep.
func ReadManifest(dir string) (*Manifest, error) {
	b, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, errors.Wrapf(err, "error parsing %s", ManifestFile)
	}
	return m, nil
}
