package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
)

// File stores each document as a JSON file named after its key in a directory.
type File struct {
	dir string
}

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// NewFile returns a File backend storing documents in dir, that is created if
// needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file holding the document key.
func (f *File) Path(key string) string { return filepath.Join(f.dir, key+".json") }

// Get reads the document key. The error matches fs.ErrNotExist if the file
// does not exist.
func (f *File) Get(key string) ([]byte, error) {
	if !validKey.MatchString(key) {
		return nil, fmt.Errorf("invalid document key %q", key)
	}
	return os.ReadFile(f.Path(key))
}

// Put writes data into a temporary file of the same directory, then renames
// it over the document file, so that readers never see a partial document.
func (f *File) Put(key string, data []byte) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid document key %q", key)
	}
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	// removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot sync %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close %q: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("cannot chmod %q: %w", tmp.Name(), err)
	}
	path := f.Path(key)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot replace %q: %w", path, err)
	}
	log.Printf("write-document name=%q size=%d", path, len(data))
	return nil
}
