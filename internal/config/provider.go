package config

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"
)

// Provider guards the process-wide configuration.
// Each method holds the lock only for its own duration.
type Provider struct {
	mu   sync.Mutex
	cfg  Config
	fs   afero.Fs
	path string
}

// NewProvider wraps cfg. Setters persist changes to path on fs.
func NewProvider(fs afero.Fs, path string, cfg Config) *Provider {
	return &Provider{cfg: cfg, fs: fs, path: path}
}

// InstancesDir returns the configured instances directory.
func (p *Provider) InstancesDir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.InstancesDir
}

// GameDir returns the configured game directory, empty if unset.
func (p *Provider) GameDir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.GameDir
}

// Snapshot returns a copy of the current configuration.
func (p *Provider) Snapshot() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Path returns the config file location.
func (p *Provider) Path() string {
	return p.path
}

// SetInstancesDir changes and persists the instances directory.
func (p *Provider) SetInstancesDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("instances_dir must not be empty")
	}
	return p.update(func(c *Config) { c.InstancesDir = dir })
}

// SetGameDir changes and persists the game directory. Empty clears it.
func (p *Provider) SetGameDir(dir string) error {
	return p.update(func(c *Config) { c.GameDir = dir })
}

// update applies fn to a copy, validates it, saves it, and only then
// makes it current.
func (p *Provider) update(fn func(*Config)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.cfg
	fn(&next)
	if err := next.normalize(); err != nil {
		return err
	}

	if err := Save(p.fs, p.path, next); err != nil {
		return err
	}
	p.cfg = next
	return nil
}
