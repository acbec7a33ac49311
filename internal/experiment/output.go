package experiment

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// withOutput runs fn against the named file, or against fallback when path
// is empty. The file is closed on every return path and a failed close is
// reported when fn itself succeeded.
func withOutput(fs afero.Fs, path string, appendTo bool, fallback io.Writer, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(fallback)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendTo {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	file, err := fs.OpenFile(path, flags, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()

	return fn(file)
}
