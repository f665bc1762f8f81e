package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsurePath ensures the directories for a file path exist and the path
// does not already exist as a directory.
func EnsurePath(p string) error {
	info, err := os.Stat(p)
	switch {
	case err == nil:
		if info.IsDir() {
			return ErrInaccessiblePath
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return ErrInaccessiblePath
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return ErrCannotCreateDirectories
	}
	return nil
}

// readFile reads the config file at path. A missing file (or missing parent
// directory) is reported as ErrNotFound, anything else as ErrIO.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w %s: %w", ErrNotFound, path, err)
	default:
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
}

// writeFile replaces the file at path with data. Bytes go to a temporary file in
// the same directory which is then renamed over path.
func writeFile(path string, data []byte) error {
	if err := EnsurePath(path); err != nil {
		return fmt.Errorf("%w: ensure config dir for %s: %w", ErrIO, path, err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "temp-config-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %w", ErrIO, err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("%w: rename temp file to %s: %w", ErrIO, path, err)
	}
	return nil
}

// removeFile deletes the file at path. It reports whether a file was removed;
// a missing file is not an error.
func removeFile(path string) (bool, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return false, fmt.Errorf("%w: remove %s: %w", ErrIO, path, ErrInaccessiblePath)
	}
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: remove %s: %w", ErrIO, path, err)
	}
}

// removeDirIfEmpty removes dir when it has no entries. A missing dir is fine.
func removeDirIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	return os.Remove(dir)
}
