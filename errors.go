package settings

import "errors"

// Exported error categories returned by this package. They are wrapped together
// with the underlying cause, so callers can detect the class with errors.Is and still
// reach the original error (e.g. *fs.PathError) with errors.As.
//   - ErrResolve: the config file location cannot be determined (no user config
//     directory, empty app name, empty explicit path).
//   - ErrIO: directory creation, read, write, or remove failure.
//   - ErrNotFound: Load was called for a config file that does not exist.
//   - ErrFormat: the codec failed to encode or decode a value.
//   - ErrUnknownFormat: the Format value is not one of the supported formats.
var (
	ErrResolve       = errors.New("resolve config path")
	ErrIO            = errors.New("config file io")
	ErrNotFound      = errors.New("config file not found")
	ErrFormat        = errors.New("format config")
	ErrUnknownFormat = errors.New("unknown config format")
)

// Errors returned by EnsurePath.
var (
	ErrInaccessiblePath        = errors.New("inaccessible path")
	ErrCannotCreateDirectories = errors.New("cannot create directories")
)
