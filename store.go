package settings

import (
	"errors"
	"fmt"
	"path/filepath"

	modellib "github.com/ygrebnov/model"

	"github.com/ygrebnov/settings/streams"
)

// Store loads, saves and deletes the config file described by a Descriptor,
// decoding it into values of type T.
//
// A Store keeps no cached value or open file: each call resolves the path again
// and goes straight to the file system, so two Stores for the same descriptor are
// interchangeable. Concurrent writers race at the file-system level; the last
// rename wins.
//
// Optional collaborators:
//   - WithDefaultFn: factory for the value a file is decoded into (and the value
//     written by LoadOrCreate when the file is missing).
//   - WithModel: binds a model.Model[T] to apply `default` tags before decoding and
//     `validate` tags after decoding and before saving.
//   - WithStreams: receives "loaded from"/"saved to" notices and warnings.
//   - WithConfigDir: replaces the platform user config directory lookup.
type Store[T any] struct {
	desc      Descriptor
	resolver  Resolver
	defaultFn func() *T
	streams   streams.IOStreams
	modelInit ModelInit[T]
}

// Option configures a Store at construction time. Options are composable and
// can be passed to New in any order.
type Option[T any] func(*Store[T])

// New constructs a Store[T] for d and applies all given options.
// If no WithDefaultFn is provided, New uses a zero-value factory.
func New[T any](d Descriptor, opts ...Option[T]) *Store[T] {
	s := &Store[T]{desc: d}
	for _, opt := range opts {
		opt(s)
	}

	if s.defaultFn == nil {
		s.defaultFn = func() *T { var t T; return &t }
	}

	return s
}

// WithConfigDir replaces the lookup of the user config directory used by Auto and
// File locations. Panics if fn is nil.
func WithConfigDir[T any](fn ConfigDirFunc) Option[T] {
	return func(s *Store[T]) {
		if fn == nil {
			panic("settings: WithConfigDir: fn cannot be nil")
		}
		s.resolver.ConfigDir = fn
	}
}

// WithDefaultFn registers a factory that returns a new *T. Loaded files are decoded
// on top of the value it returns, so fields missing from the file keep their
// defaults. Panics if fn is nil.
func WithDefaultFn[T any](fn func() *T) Option[T] {
	return func(s *Store[T]) {
		if fn == nil {
			panic("settings: WithDefaultFn: fn cannot be nil")
		}
		s.defaultFn = fn
	}
}

// WithStreams wires user-facing message streams. Pass adapters from the companion
// streams package to route output to buffers, loggers, or io.Discard.
func WithStreams[T any](s streams.IOStreams) Option[T] {
	return func(st *Store[T]) {
		st.streams = s
	}
}

// ModelInit is a constructor hook that binds a model.Model[T] to a *T handled by
// the Store. Return the constructed model or an error.
type ModelInit[T any] func(*T) (*modellib.Model[T], error)

// WithModel registers a ModelInit used for defaults and validation.
// Panics if init is nil.
func WithModel[T any](init ModelInit[T]) Option[T] {
	return func(s *Store[T]) {
		if init == nil {
			panic("settings: WithModel: init cannot be nil")
		}
		s.modelInit = init
	}
}

// Descriptor returns the descriptor the Store was built for.
func (s *Store[T]) Descriptor() Descriptor {
	return s.desc
}

// Path resolves the config file path without touching the file system.
func (s *Store[T]) Path() (string, error) {
	return s.resolver.Resolve(s.desc.App, s.desc.Location, s.desc.Format)
}

// Load reads and decodes the config file. It fails with ErrNotFound when the file
// does not exist, ErrIO when it cannot be read and ErrFormat when it cannot be decoded.
func (s *Store[T]) Load() (*T, error) {
	path, err := s.Path()
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg, mdl, err := s.newValue()
	if err != nil {
		return nil, err
	}
	if err := Unmarshal(s.desc.Format, data, cfg); err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	if mdl != nil {
		if err := mdl.Validate(); err != nil {
			return nil, err
		}
	}

	s.notify("loaded from %s", path)
	return cfg, nil
}

// Save encodes v and writes it to the config file, creating parent directories as
// needed. The previous content is fully replaced.
func (s *Store[T]) Save(v *T) error {
	if v == nil {
		return fmt.Errorf("%w: cannot save nil value", ErrFormat)
	}
	if s.modelInit != nil {
		mdl, err := s.modelInit(v)
		if err != nil {
			return err
		}
		if mdl != nil {
			if err := mdl.Validate(); err != nil {
				return err
			}
		}
	}

	path, err := s.write(v)
	if err != nil {
		return err
	}
	s.notify("saved to %s", path)
	return nil
}

// Delete removes the config file if it exists. For Auto and File locations the
// app directory is removed too once it is empty.
func (s *Store[T]) Delete() error {
	path, err := s.Path()
	if err != nil {
		return err
	}
	removed, err := removeFile(path)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	s.notify("removed %s", path)

	if s.desc.Location.usesAppDir() {
		if err := removeDirIfEmpty(filepath.Dir(path)); err != nil {
			s.warn("warning: cannot remove empty config dir %s: %v", filepath.Dir(path), err)
		}
	}
	return nil
}

// LoadOrCreate loads the config file, or writes the default value when the file
// does not exist yet. created reports whether the file was written by this call.
func (s *Store[T]) LoadOrCreate() (cfg *T, created bool, err error) {
	cfg, err = s.Load()
	switch {
	case err == nil:
		return cfg, false, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}

	cfg, mdl, err := s.newValue()
	if err != nil {
		return nil, false, err
	}
	if mdl != nil {
		if err := mdl.Validate(); err != nil {
			return nil, false, err
		}
	}

	path, err := s.write(cfg)
	if err != nil {
		return nil, false, err
	}
	s.notify("created new config at %s", path)
	return cfg, true, nil
}

// newValue builds a fresh *T from the default factory and, if configured, binds the
// model and applies its defaults. Defaults only fill zero values.
func (s *Store[T]) newValue() (*T, *modellib.Model[T], error) {
	cfg := s.defaultFn()
	if cfg == nil {
		var t T
		cfg = &t
	}
	if s.modelInit == nil {
		return cfg, nil, nil
	}
	mdl, err := s.modelInit(cfg)
	if err != nil {
		return nil, nil, err
	}
	if mdl == nil {
		return cfg, nil, nil
	}
	if err := mdl.SetDefaults(); err != nil {
		return nil, nil, err
	}
	return cfg, mdl, nil
}

func (s *Store[T]) write(v *T) (string, error) {
	path, err := s.Path()
	if err != nil {
		return "", err
	}
	data, err := Marshal(s.desc.Format, v)
	if err != nil {
		return "", err
	}
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store[T]) notify(format string, args ...any) {
	if s.streams != nil && s.streams.Out() != nil {
		fmt.Fprintf(s.streams.Out(), "settings: "+format+"\n", args...)
	}
}

func (s *Store[T]) warn(format string, args ...any) {
	if s.streams != nil && s.streams.ErrOut() != nil {
		fmt.Fprintf(s.streams.ErrOut(), "settings: "+format+"\n", args...)
	}
}
