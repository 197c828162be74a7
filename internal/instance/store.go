package instance

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// imageBase is the file name (without extension) of an instance's cover image.
const imageBase = "instance"

// Store owns the on-disk layout under the instances directory:
// one directory per instance, named by its id.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Root returns the instances directory.
func (s *Store) Root() string {
	return s.dir
}

// Dir returns the directory of the given instance.
func (s *Store) Dir(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String())
}

// Create makes an empty directory for id. It fails if the directory already exists.
func (s *Store) Create(id uuid.UUID) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return ioErr("create instances dir", id, s.dir, err)
	}

	dir := s.Dir(id)
	if err := s.fs.Mkdir(dir, 0o755); err != nil {
		return ioErr("create instance dir", id, dir, err)
	}
	return nil
}

// AttachImage copies sourcePath into the instance directory as instance.<ext>
// and returns the destination path.
func (s *Store) AttachImage(id uuid.UUID, sourcePath string) (string, error) {
	ext, err := imageExt(sourcePath)
	if err != nil {
		return "", &Error{Kind: ErrInvalidInput, Op: "attach image", ID: id, Path: sourcePath, Err: err}
	}

	dest := filepath.Join(s.Dir(id), imageBase+"."+ext)
	if err := s.copyFile(sourcePath, dest); err != nil {
		return "", ioErr("attach image", id, sourcePath, err)
	}
	return dest, nil
}

// ImagePath returns the cover image of an instance, if there is one.
func (s *Store) ImagePath(id uuid.UUID) (string, bool) {
	dir := s.Dir(id)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := imageExt(entry.Name()); err == nil && strings.HasPrefix(entry.Name(), imageBase+".") {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

// Delete removes the instance directory and everything in it.
// A missing directory is an error. A removal that fails partway is not rolled back.
func (s *Store) Delete(id uuid.UUID) error {
	dir := s.Dir(id)

	info, err := s.fs.Stat(dir)
	if err != nil {
		return ioErr("delete instance dir", id, dir, err)
	}
	if !info.IsDir() {
		return ioErr("delete instance dir", id, dir, errors.New("not a directory"))
	}

	if err := s.fs.RemoveAll(dir); err != nil {
		return ioErr("delete instance dir", id, dir, err)
	}
	return nil
}

// List returns the ids of all instance directories on disk, in directory order.
// Entries whose name is not an id are ignored.
func (s *Store) List() ([]uuid.UUID, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, ioErr("list instances dir", uuid.Nil, s.dir, err)
	}

	var ids []uuid.UUID
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, err := uuid.Parse(entry.Name())
		if err != nil || id.String() != entry.Name() {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) copyFile(src, dest string) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		s.fs.Remove(dest)
		return err
	}
	return out.Close()
}

// imageExt returns the extension of path without the leading dot.
// Dotfiles like ".png" have no extension.
func imageExt(path string) (string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	ext = strings.TrimPrefix(ext, ".")

	if ext == "" {
		return "", fmt.Errorf("%q has no file extension", path)
	}
	if !utf8.ValidString(ext) {
		return "", fmt.Errorf("extension of %q is not valid UTF-8", path)
	}
	return ext, nil
}
