package auth

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Store persists the account → list-access signature map across runs.
type Store interface {
	Load() (map[string]string, error)
	Save(map[string]string) error
}

// FileStore keeps the signature map in a single msgpack file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The file is created on first
// Save; a missing file loads as an empty map.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted map.
func (f *FileStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("auth: read signature cache %q: %w", f.path, err)
	}

	sigs := make(map[string]string)
	if err := msgpack.Unmarshal(data, &sigs); err != nil {
		return nil, fmt.Errorf("auth: decode signature cache %q: %w", f.path, err)
	}
	return sigs, nil
}

// Save writes the map, creating parent directories as needed. The write
// goes through a temp file and rename so a crash never leaves a truncated
// cache behind.
func (f *FileStore) Save(sigs map[string]string) error {
	data, err := msgpack.Marshal(sigs)
	if err != nil {
		return fmt.Errorf("auth: encode signature cache: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("auth: create cache dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".sigcache-*")
	if err != nil {
		return fmt.Errorf("auth: create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("auth: write signature cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("auth: close signature cache: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("auth: replace signature cache: %w", err)
	}
	return nil
}
