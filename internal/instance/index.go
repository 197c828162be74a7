package instance

import (
	"errors"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/lilydev/bg3mm/internal/storage"
)

// IndexFile is the name of the index file inside the instances directory.
const IndexFile = "instances.index.json"

// Info describes one instance as recorded in the index.
type Info struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"order_index"`
}

// Index is the ordered list of all known instances.
// New entries are appended; ids are unique.
type Index struct {
	Instances []Info `json:"instances"`
}

// IndexPath returns the path of the index file under dir.
func IndexPath(dir string) string {
	return filepath.Join(dir, IndexFile)
}

// Clone returns a copy that shares no memory with idx.
func (idx Index) Clone() Index {
	instances := make([]Info, len(idx.Instances))
	copy(instances, idx.Instances)
	return Index{Instances: instances}
}

// Find returns the first entry with the given id.
func (idx Index) Find(id uuid.UUID) (Info, bool) {
	for _, info := range idx.Instances {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// Append adds info at the end of the index.
func (idx *Index) Append(info Info) {
	idx.Instances = append(idx.Instances, info)
}

// Remove drops every entry with the given id and reports how many were removed.
func (idx *Index) Remove(id uuid.UUID) int {
	before := len(idx.Instances)
	idx.Instances = slices.DeleteFunc(idx.Instances, func(info Info) bool {
		return info.ID == id
	})
	return before - len(idx.Instances)
}

// LoadIndex reads and parses the index file in dir.
// A missing or unreadable file is ErrIO, malformed content is ErrDeserialization.
func LoadIndex(fs afero.Fs, dir string) (Index, error) {
	path := IndexPath(dir)

	var idx Index
	if err := storage.LoadJSON(fs, path, &idx); err != nil {
		if errors.Is(err, storage.ErrDecode) {
			return Index{}, &Error{Kind: ErrDeserialization, Op: "parse index", Path: path, Err: err}
		}
		return Index{}, ioErr("read index", uuid.Nil, path, err)
	}

	if idx.Instances == nil {
		idx.Instances = []Info{}
	}
	return idx, nil
}

// SaveIndex overwrites the index file in dir with idx.
// The file is only touched after idx has been serialized.
func SaveIndex(fs afero.Fs, dir string, idx Index) error {
	path := IndexPath(dir)

	if idx.Instances == nil {
		idx.Instances = []Info{}
	}

	if err := storage.SaveJSON(fs, path, idx); err != nil {
		if errors.Is(err, storage.ErrEncode) {
			return &Error{Kind: ErrSerialization, Op: "encode index", Path: path, Err: err}
		}
		return ioErr("write index", uuid.Nil, path, err)
	}
	return nil
}
