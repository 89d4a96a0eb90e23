package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// record is the on-disk shape: two named keys, nothing else.
type record struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// FileStore persists the session as a JSON file, written atomically so
// a crash can never leave the token without its roles.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load() (string, []string, error) {
	b, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("reading %s: %w", fs.path, err)
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return "", nil, fmt.Errorf("decoding %s: %w", fs.path, err)
	}

	return rec.Token, rec.Roles, nil
}

func (fs *FileStore) Save(token string, roles []string) error {
	b, err := json.Marshal(record{Token: token, Roles: roles})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "session-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", fs.path, err)
	}
	return nil
}

// MemStore keeps the session in memory. Used by tests and by callers
// that do not want reload survival.
type MemStore struct {
	mu    sync.Mutex
	token string
	roles []string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) Load() (string, []string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.token, ms.roles, nil
}

func (ms *MemStore) Save(token string, roles []string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.token = token
	ms.roles = append([]string(nil), roles...)
	return nil
}
