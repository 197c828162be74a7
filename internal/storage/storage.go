// Package storage provides atomic file writes and JSON load/save on an afero filesystem.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	// ErrEncode marks a value that could not be rendered as JSON.
	// Nothing is written when it is returned.
	ErrEncode = errors.New("encode json")
	// ErrDecode marks file content that is not valid JSON for the destination.
	ErrDecode = errors.New("decode json")
)

// WriteAtomic writes data to path by writing a temp file next to it and
// renaming it over the target. The parent directory is created if needed.
func WriteAtomic(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		fs.Remove(tmp)
		return err
	}

	if err := fs.Rename(tmp, path); err != nil {
		fs.Remove(tmp)
		return err
	}

	return nil
}

// SaveJSON writes data as pretty-printed JSON to path atomically.
// Marshalling happens before any file is touched.
func SaveJSON(fs afero.Fs, path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return WriteAtomic(fs, path, jsonData)
}

// LoadJSON reads JSON from path into dest.
// Read errors are returned unchanged (os.ErrNotExist for a missing file),
// parse errors wrap ErrDecode.
func LoadJSON(fs afero.Fs, path string, dest any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
