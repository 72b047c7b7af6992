package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// IO resolves the CLI's FILE arguments. An empty path or "-" means standard
// input or output.
type IO struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
}

func New(fs afero.Fs, stdin io.Reader, stdout io.Writer) *IO {
	return &IO{fs: fs, stdin: stdin, stdout: stdout}
}

func IsStdio(path string) bool {
	return path == "" || path == "-"
}

func (i *IO) Read(path string) ([]byte, error) {
	if IsStdio(path) {
		data, err := io.ReadAll(i.stdin)
		if err != nil {
			return nil, fmt.Errorf("could not read data from standard input: %w", err)
		}
		return data, nil
	}

	data, err := afero.ReadFile(i.fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read data from %s: %w", path, err)
	}

	return data, nil
}

// Write replaces path with data. Files are written to a temporary sibling
// first and renamed into place, so a failed write leaves no partial output.
func (i *IO) Write(path string, data []byte, perm os.FileMode) (err error) {
	if IsStdio(path) {
		if _, err = i.stdout.Write(data); err != nil {
			err = fmt.Errorf("could not write data to standard output: %w", err)
		}
		return
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err = afero.WriteFile(i.fs, tmp, data, perm); err != nil {
		_ = i.fs.Remove(tmp)
		return fmt.Errorf("could not write data to %s: %w", path, err)
	}

	if err = i.fs.Rename(tmp, path); err != nil {
		_ = i.fs.Remove(tmp)
		return fmt.Errorf("could not write data to %s: %w", path, err)
	}

	return nil
}
