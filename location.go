package settings

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

type locationKind int

const (
	locAuto locationKind = iota
	locDir
	locPath
	locFile
)

// Location is the policy for deriving where a config file lives. The zero value
// is Auto. Use the constructors below to build the other variants.
type Location struct {
	kind  locationKind
	value string
}

// Auto places the file at <user config dir>/<app>/config.<ext>.
func Auto() Location { return Location{} }

// Dir places the file at <dir>/config.<ext>. The directory is used verbatim and the
// app name is not appended.
func Dir(dir string) Location { return Location{kind: locDir, value: dir} }

// Path uses the given file path verbatim, regardless of app name and format.
func Path(file string) Location { return Location{kind: locPath, value: file} }

// File places a custom-named file in the automatic directory: <user config dir>/<app>/<name>.
func File(name string) Location { return Location{kind: locFile, value: name} }

// IsAuto reports whether the location is the automatic one.
func (l Location) IsAuto() bool { return l.kind == locAuto }

// String returns a short form of the location such as "auto" or "dir(/etc/app)".
func (l Location) String() string {
	switch l.kind {
	case locDir:
		return "dir(" + l.value + ")"
	case locPath:
		return "path(" + l.value + ")"
	case locFile:
		return "file(" + l.value + ")"
	default:
		return "auto"
	}
}

// usesAppDir reports whether the location puts the file under <user config dir>/<app>.
func (l Location) usesAppDir() bool {
	return l.kind == locAuto || l.kind == locFile
}

// ConfigDirFunc returns the base directory for per-user configuration files.
type ConfigDirFunc func() (string, error)

var errNoConfigHome = errors.New("no user config directory detected")

// UserConfigDir returns the platform user config directory (XDG_CONFIG_HOME when set,
// otherwise the OS convention, e.g. ~/.config or ~/Library/Application Support).
func UserConfigDir() (string, error) {
	dir := xdg.ConfigHome
	if dir == "" || !filepath.IsAbs(dir) {
		return "", errNoConfigHome
	}
	return dir, nil
}

// Resolver computes config file paths. A zero Resolver uses UserConfigDir.
type Resolver struct {
	ConfigDir ConfigDirFunc
}

func (r Resolver) configDir() (string, error) {
	fn := r.ConfigDir
	if fn == nil {
		fn = UserConfigDir
	}
	dir, err := fn()
	if err != nil {
		return "", fmt.Errorf("%w: cannot determine user config dir: %w", ErrResolve, err)
	}
	if dir == "" {
		return "", fmt.Errorf("%w: cannot determine user config dir: %w", ErrResolve, errNoConfigHome)
	}
	return dir, nil
}

// Resolve returns the config file path for app, loc and f. It has no side effects;
// the user config directory is only consulted for Auto and File locations.
func (r Resolver) Resolve(app string, loc Location, f Format) (string, error) {
	if !f.valid() {
		return "", fmt.Errorf("%w: %w: %s", ErrResolve, ErrUnknownFormat, f)
	}
	switch loc.kind {
	case locDir:
		if loc.value == "" {
			return "", fmt.Errorf("%w: empty directory", ErrResolve)
		}
		return filepath.Join(loc.value, f.DefaultName()), nil
	case locPath:
		if loc.value == "" {
			return "", fmt.Errorf("%w: empty file path", ErrResolve)
		}
		return filepath.Clean(loc.value), nil
	case locFile:
		if loc.value == "" {
			return "", fmt.Errorf("%w: empty file name", ErrResolve)
		}
	}

	if app == "" {
		return "", fmt.Errorf("%w: app name cannot be empty for %s location", ErrResolve, loc)
	}
	base, err := r.configDir()
	if err != nil {
		return "", err
	}
	name := f.DefaultName()
	if loc.kind == locFile {
		name = loc.value
	}
	return filepath.Join(base, app, name), nil
}
