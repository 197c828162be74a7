package instance

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/lilydev/bg3mm/internal/log"
)

// DirSource provides the configured instances directory.
// Implementations guard their own state; the manager reads it once per
// operation and never while holding the cache.
type DirSource interface {
	InstancesDir() string
}

// IDGenerator returns a fresh instance id.
type IDGenerator func() (uuid.UUID, error)

// Manager runs catalog operations against the instance directories,
// the index file and the cache.
//
// Create and Delete rewrite the index file from a fresh read, never from the
// cache, and leave the cache alone. Index serves the cache; Refresh reloads it.
// The index file is not locked: concurrent writers can drop each other's entries.
type Manager struct {
	fs    afero.Fs
	dirs  DirSource
	cache *Cache
	newID IDGenerator
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates a manager. Ids default to random (v4) UUIDs.
func NewManager(fs afero.Fs, dirs DirSource, cache *Cache, opts ...Option) *Manager {
	m := &Manager{
		fs:    fs,
		dirs:  dirs,
		cache: cache,
		newID: uuid.NewRandom,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the directory store for the current instances directory.
func (m *Manager) Store() *Store {
	return NewStore(m.fs, m.dirs.InstancesDir())
}

// Create adds a new instance named name.
//
// The directory is created first, then the index file is re-read and written
// back with the new entry appended. An optional image is copied last. If the
// index cannot be read the directory stays behind unindexed. If the image copy
// fails the returned Info is valid and the error reports the copy failure.
func (m *Manager) Create(ctx context.Context, name, imagePath string) (Info, error) {
	l := log.FromContext(ctx)
	store := m.Store()

	id, err := m.newID()
	if err != nil {
		return Info{}, ioErr("generate id", uuid.Nil, "", err)
	}

	info := Info{ID: id, Name: name, OrderIndex: 0}

	l.Op("mkdir", store.Dir(id))
	if err := store.Create(id); err != nil {
		return Info{}, err
	}

	err = m.rewrite(ctx, store.Root(), func(idx *Index) {
		idx.Append(info)
	})
	if err != nil {
		l.Debug("index not updated, instance dir left unindexed", "id", id, "dir", store.Dir(id))
		return Info{}, err
	}

	if imagePath != "" {
		dest, err := store.AttachImage(id, imagePath)
		if err != nil {
			return info, err
		}
		l.Op("copy", dest)
	}

	l.Debug("created instance", "id", id, "name", name)
	return info, nil
}

// Delete removes the instance directory and then every index entry with id.
// If the directory cannot be removed the index is not touched. An id that is
// already absent from the index is not an error for the index step.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	l := log.FromContext(ctx)
	store := m.Store()

	l.Op("remove", store.Dir(id))
	if err := store.Delete(id); err != nil {
		return err
	}

	var removed int
	err := m.rewrite(ctx, store.Root(), func(idx *Index) {
		removed = idx.Remove(id)
	})
	if err != nil {
		return err
	}

	l.Debug("deleted instance", "id", id, "index_entries_removed", removed)
	return nil
}

// Rewrite reads the index file, applies fn and writes the result back.
// The cache is not updated.
func (m *Manager) Rewrite(ctx context.Context, fn func(*Index)) error {
	return m.rewrite(ctx, m.dirs.InstancesDir(), fn)
}

func (m *Manager) rewrite(ctx context.Context, dir string, fn func(*Index)) error {
	l := log.FromContext(ctx)

	l.Op("read", IndexPath(dir))
	idx, err := LoadIndex(m.fs, dir)
	if err != nil {
		return err
	}

	fn(&idx)

	l.Op("write", IndexPath(dir))
	return SaveIndex(m.fs, dir, idx)
}

// Reset replaces the index file with idx without reading it first, for an
// index that can no longer be parsed. An existing file is kept next to it
// as <index>.bak and its path returned. The cache is not updated.
func (m *Manager) Reset(ctx context.Context, idx Index) (string, error) {
	l := log.FromContext(ctx)
	dir := m.dirs.InstancesDir()
	path := IndexPath(dir)
	backup := path + ".bak"

	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return "", ioErr("check index", uuid.Nil, path, err)
	}
	if !exists {
		backup = ""
	} else {
		l.Op("rename", backup)
		if err := m.fs.RemoveAll(backup); err != nil {
			return "", ioErr("back up index", uuid.Nil, backup, err)
		}
		if err := m.fs.Rename(path, backup); err != nil {
			return "", ioErr("back up index", uuid.Nil, backup, err)
		}
	}

	l.Op("write", path)
	if err := SaveIndex(m.fs, dir, idx); err != nil {
		return backup, err
	}
	return backup, nil
}

// Get looks up id in the index file on disk, bypassing the cache.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (Info, error) {
	idx, err := m.Load(ctx)
	if err != nil {
		return Info{}, err
	}

	info, ok := idx.Find(id)
	if !ok {
		return Info{}, notFound(id)
	}
	return info, nil
}

// Load reads the index file on disk without touching the cache.
func (m *Manager) Load(ctx context.Context) (Index, error) {
	dir := m.dirs.InstancesDir()
	log.FromContext(ctx).Op("read", IndexPath(dir))
	return LoadIndex(m.fs, dir)
}

// Index returns a copy of the cached index. It does not read the disk.
func (m *Manager) Index() Index {
	return m.cache.Read()
}

// Refresh reloads the cache from the index file.
// On failure the cache keeps its previous contents.
func (m *Manager) Refresh(ctx context.Context) error {
	idx, err := m.Load(ctx)
	if err != nil {
		return err
	}

	m.cache.Replace(idx)
	log.FromContext(ctx).Debug("refreshed instance index", "instances", len(idx.Instances))
	return nil
}
