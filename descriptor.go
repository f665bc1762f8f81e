package settings

import (
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Descriptor identifies one logical config file: the app it belongs to, where it
// lives, and how it is encoded. It holds no state; every operation resolves the
// path again and touches the file system directly.
type Descriptor struct {
	App      string
	Location Location
	Format   Format
}

// Default returns a descriptor for app with the Auto location and JSON format.
func Default(app string) Descriptor {
	return Descriptor{App: app, Location: Auto(), Format: JSON}
}

// Path resolves the config file path using the platform user config directory.
func (d Descriptor) Path() (string, error) {
	return Resolver{}.Resolve(d.App, d.Location, d.Format)
}

// Delete removes the config file. Deleting a missing file succeeds.
func (d Descriptor) Delete() error {
	return New[struct{}](d).Delete()
}

// Load reads the config file described by d into a new *T.
func Load[T any](d Descriptor) (*T, error) {
	return New[T](d).Load()
}

// Save writes v to the config file described by d, replacing any previous content.
func Save[T any](d Descriptor, v *T) error {
	return New[T](d).Save(v)
}

// HostAppName returns a name for the running application: the last element of the
// main module path (skipping a /vN suffix), or the executable name when build info
// is unavailable, e.g. in tests.
func HostAppName() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if name := moduleAppName(info.Main.Path); name != "" {
			return name
		}
	}
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	base := filepath.Base(exe)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func moduleAppName(modPath string) string {
	if modPath == "" || modPath == "command-line-arguments" {
		return ""
	}
	name := path.Base(modPath)
	if isMajorVersion(name) {
		if dir := path.Dir(modPath); dir != "." && dir != "/" {
			name = path.Base(dir)
		}
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
