// Package settings persists an application's settings struct to a per-user
// configuration directory and reads it back.
//
// A Descriptor names the file: the app it belongs to, a Location policy and a Format.
//
//  1. Location: Auto (<user config dir>/<app>/config.<ext>), Dir (<dir>/config.<ext>),
//     Path (a file path used verbatim) or File (<user config dir>/<app>/<name>).
//  2. Format: JSON, YAML, TOML, INI or Pickle (Python pickle, protocol 2). Each format
//     has one extension and one codec; encoding is delegated to encoding/json,
//     gopkg.in/yaml.v3, github.com/BurntSushi/toml, gopkg.in/ini.v1 and
//     github.com/hydrogen18/stalecucumber.
//
// Nothing is cached: Load, Save and Delete resolve the path on every call. Save
// creates missing directories; Load and Delete never do. Delete of a missing file
// succeeds.
//
// Errors are classified with ErrResolve, ErrIO, ErrNotFound and ErrFormat and can be
// matched with errors.Is.
//
// Typical usage:
//
//	type Prefs struct {
//	    WindowWidth  int `json:"window_width"`
//	    WindowHeight int `json:"window_height"`
//	}
//
//	d := settings.Default("demo")
//	if err := settings.Save(d, &Prefs{WindowWidth: 800, WindowHeight: 600}); err != nil {
//	    log.Fatal(err)
//	}
//	prefs, err := settings.Load[Prefs](d)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = prefs
//	_ = d.Delete()
//
// For defaults, validation (github.com/ygrebnov/model) and user-facing notices use a
// Store built with New and its options.
package settings
