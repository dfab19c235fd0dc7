package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"mxtool/internal/domain"
	"mxtool/internal/util/memzero"
)

const backupKeyFile = "backup_key.enc"

// FileStore keeps the validated backup key on disk, sealed under a local
// passphrase so a future restore can skip credential resolution.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// SaveBackupKey seals k under passphrase and writes it atomically.
func (s *FileStore) SaveBackupKey(passphrase string, k domain.CachedBackupKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(k)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	N, r, p := scryptParamsDefault()
	sealed, err := seal(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, backupKeyFile), sealed, 0o600)
}

// LoadBackupKey opens the cached key. ok is false when no cache exists.
func (s *FileStore) LoadBackupKey(passphrase string) (domain.CachedBackupKey, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var k domain.CachedBackupKey
	sealed, err := readFile(filepath.Join(s.dir, backupKeyFile))
	if err != nil || sealed == nil {
		return k, false, err
	}
	raw, err := open(passphrase, sealed)
	if err != nil {
		return k, false, err
	}
	defer memzero.Zero(raw)

	if err := json.Unmarshal(raw, &k); err != nil {
		return k, false, err
	}
	return k, true, nil
}

var _ domain.BackupKeyStore = (*FileStore)(nil)
