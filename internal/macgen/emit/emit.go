// Package emit writes the macro file for each sweep combination.
package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wcsim/macgen/internal/macgen/section"
	"github.com/wcsim/macgen/internal/macgen/sweep"
)

const (
	stubPrefix    = "wcsim_"
	savePi0Suffix = "_SavePi0"
)

// Job is a macro file that has been written to disk.
type Job struct {
	// File name without extension, shared by every file belonging to the job.
	Stub string
	// Macro file name, relative to the output directory.
	MacroFile string
	// Full content of the macro file.
	Text string
}

// Emitter writes macro files into Dir and echoes each one to Out.
type Emitter struct {
	Dir     string
	Out     io.Writer
	SavePi0 bool
	NEvents int

	count int
}

// Stub returns the file stub for a combination name.
func (e *Emitter) Stub(name string) string {
	stub := stubPrefix + name
	if e.SavePi0 {
		stub += savePi0Suffix
	}
	return stub
}

// Trailer returns the directives closing every macro file: the output file, pi0 saving and
// the number of events to simulate.
func (e *Emitter) Trailer(stub string) []string {
	return []string{
		"/WCSimIO/RootFile " + stub + ".root",
		"/WCSim/SavePi0 " + section.Bool(e.SavePi0),
		"/run/beamOn " + strconv.Itoa(e.NEvents),
	}
}

// Emit writes the macro file for c and prints its name and content.
func (e *Emitter) Emit(c sweep.Combination) (*Job, error) {
	stub := e.Stub(c.Name)
	text := sweep.Combination{Directives: append(append([]string{}, c.Directives...), e.Trailer(stub)...)}.Text()
	job := &Job{
		Stub:      stub,
		MacroFile: stub + ".mac",
		Text:      text,
	}

	if err := os.WriteFile(filepath.Join(e.Dir, job.MacroFile), []byte(text), 0o644); err != nil {
		return nil, errors.Wrapf(err, "error writing macro file %s", job.MacroFile)
	}

	e.count++
	fmt.Fprintf(e.Out, "\n\nfile: %d\n\n%s:\n%s", e.count, job.MacroFile, text)
	return job, nil
}

// Count returns the number of macro files written so far.
func (e *Emitter) Count() int {
	return e.count
}
