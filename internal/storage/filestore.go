// Package storage persists uploaded files under collision-safe names.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrStorage  = errors.New("storage")
	ErrNotFound = errors.New("file not found")
)

// FileStore writes uploads into Dir. NewName generates the unique part of a
// stored filename and is injectable so tests can pin it.
type FileStore struct {
	Dir     string
	NewName func() string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir, NewName: uuid.NewString}
}

// SaveUpload writes content under a generated name and returns the relative
// path of the form "/<dir>/<name><ext>". The original filename contributes
// only its extension.
func (fs *FileStore) SaveUpload(content []byte, originalFilename string) (string, error) {
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: could not create upload directory: %v", ErrStorage, err)
	}
	info, err := os.Stat(fs.Dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: upload directory is not usable: %s", ErrStorage, fs.Dir)
	}
	if info.Mode().Perm()&0o200 == 0 {
		return "", fmt.Errorf("%w: upload directory is not writable: %s", ErrStorage, fs.Dir)
	}

	name := fs.NewName() + filepath.Ext(originalFilename)
	fullPath := filepath.Join(fs.Dir, name)

	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		// best-effort cleanup of a partial write
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("%w: could not write file: %v", ErrStorage, err)
	}

	if err := verifyReadable(fullPath); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("%w: failed to verify the uploaded file: %v", ErrStorage, err)
	}

	return "/" + strings.Trim(filepath.ToSlash(fs.Dir), "/") + "/" + name, nil
}

// ReadFile returns the bytes of a stored file by name. Any directory part of
// the name is discarded, so traversal outside the upload directory is
// impossible.
func (fs *FileStore) ReadFile(filename string) ([]byte, error) {
	name := filepath.Base(filepath.Clean(filename))
	data, err := os.ReadFile(filepath.Join(fs.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: could not read file: %v", ErrStorage, err)
	}
	return data, nil
}

func verifyReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
