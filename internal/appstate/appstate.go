// Package appstate holds the state shared by every bg3mm operation:
// the configuration provider and the instance index cache.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/lilydev/bg3mm/internal/config"
	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/log"
)

type ctxKey struct{}

// State is the process state. It is built once and passed explicitly;
// Config and Index are guarded by separate locks.
type State struct {
	FS     afero.Fs
	Config *config.Provider
	Index  *instance.Cache

	// IndexErr is why the index file could not be loaded, set only by
	// BootstrapTolerant. Index is empty when it is set.
	IndexErr error

	opts []instance.Option
}

// Bootstrap loads the config at configPath and prepares the instances directory.
//
//  1. A missing config file is created from the defaults.
//  2. The instances directory is created if needed.
//  3. A missing index file is written empty.
//  4. The index is loaded into a new cache.
//
// Environment overrides apply to the running state; Bootstrap never writes
// them to the config file.
func Bootstrap(ctx context.Context, fs afero.Fs, configPath string, opts ...instance.Option) (*State, error) {
	return bootstrap(ctx, fs, configPath, false, opts)
}

// BootstrapTolerant is Bootstrap for repair work. An index file that exists
// but cannot be parsed does not fail it: the state starts with an empty
// cache and IndexErr records the parse error. The file is left untouched.
func BootstrapTolerant(ctx context.Context, fs afero.Fs, configPath string, opts ...instance.Option) (*State, error) {
	return bootstrap(ctx, fs, configPath, true, opts)
}

func bootstrap(ctx context.Context, fs afero.Fs, configPath string, tolerant bool, opts []instance.Option) (*State, error) {
	l := log.FromContext(ctx)

	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("check config file: %w", err)
	}

	cfg, err := config.Load(fs, configPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		l.Debug("writing default config", "path", configPath)
		if err := config.Save(fs, configPath, cfg); err != nil {
			return nil, err
		}
	}

	cfg, err = config.ApplyEnv(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.InstancesDir == "" {
		return nil, fmt.Errorf("cannot determine instances directory: set instances_dir in %s", configPath)
	}

	idx, indexErr := EnsureIndex(ctx, fs, cfg.InstancesDir)
	if indexErr != nil {
		if !tolerant || !errors.Is(indexErr, instance.ErrDeserialization) {
			return nil, indexErr
		}
		l.Debug("index unreadable, starting with an empty cache", "error", indexErr)
		idx = instance.Index{Instances: []instance.Info{}}
	}

	return &State{
		FS:       fs,
		Config:   config.NewProvider(fs, configPath, cfg),
		Index:    instance.NewCache(idx),
		IndexErr: indexErr,
		opts:     opts,
	}, nil
}

// EnsureIndex creates dir and an empty index file if they are missing,
// then returns the index on disk.
func EnsureIndex(ctx context.Context, fs afero.Fs, dir string) (instance.Index, error) {
	l := log.FromContext(ctx)

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return instance.Index{}, fmt.Errorf("create instances directory: %w", err)
	}

	path := instance.IndexPath(dir)
	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		l.Debug("creating empty index", "path", path)
		if err := instance.SaveIndex(fs, dir, instance.Index{}); err != nil {
			return instance.Index{}, err
		}
		return instance.Index{Instances: []instance.Info{}}, nil
	}

	return instance.LoadIndex(fs, dir)
}

// Manager returns an instance manager bound to this state.
func (s *State) Manager() *instance.Manager {
	return instance.NewManager(s.FS, s.Config, s.Index, s.opts...)
}

// WithState attaches the state to the context.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext retrieves the state from context, nil if none is attached.
func FromContext(ctx context.Context) *State {
	s, _ := ctx.Value(ctxKey{}).(*State)
	return s
}
