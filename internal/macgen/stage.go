package macgen

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Templates are the macro files shipped with WCSim that the simulator reads alongside every
// generated macro file.
var Templates = []string{"jobOptions.mac", "jobOptions2.mac", "tuning_parameters.mac"}

// StageTemplates copies the templates from wcsimDir into dir, replacing existing copies.
func StageTemplates(wcsimDir string, dir string) error {
	for _, name := range Templates {
		if err := copyFile(filepath.Join(wcsimDir, name), filepath.Join(dir, name)); err != nil {
			return errors.WithMessagef(err, "error staging %s", name)
		}
		log.Debugf("staged %s from %s", name, wcsimDir)
	}
	return nil
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WithStack(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.WithStack(err)
	}
	if absSrc, absDst := absPath(src), absPath(dst); absSrc == absDst {
		return nil
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.WithStack(err)
	}
	return errors.WithStack(out.Close())
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
