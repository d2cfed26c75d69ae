package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MakeDirectory creates a directory at the given path, including any parent directories which do not exist.
// Returns an error, if one occurred.
func MakeDirectory(dirToMake string) error {
	dirInfo, err := os.Stat(dirToMake)
	if err != nil {
		// Directory does not exist, as expected.
		if os.IsNotExist(err) {
			return errors.WithStack(os.MkdirAll(dirToMake, 0755))
		}
		// Some other sort of error, throw it
		return errors.WithStack(err)
	}

	// dirToMake is a file, throw an error accordingly
	if !dirInfo.IsDir() {
		return fmt.Errorf("there is a file with the same name as %s", dirToMake)
	}

	// Directory already exists, good to go
	return nil
}

// WriteFile writes data to the file at the given path, creating any missing parent directories. The data is first
// written to a temporary sibling and then renamed into place so consumers never observe a partially written file.
func WriteFile(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := MakeDirectory(directory); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WithStack(err)
	}
	tmpPath := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.WithStack(err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(err)
	}
	return nil
}

// ResolvePath joins a relative path onto the given root directory. Absolute paths are returned unchanged.
func ResolvePath(root string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
