package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mxtool/internal/domain"
	"mxtool/internal/store"
)

func TestBackupKey_RoundTrip(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	key := domain.CachedBackupKey{
		Key:       "c2VjcmV0LWtleS1ieXRlcw",
		Version:   "2",
		Algorithm: "m.megolm_backup.v1.curve25519-aes-sha2",
	}
	require.NoError(t, fs.SaveBackupKey("hunter2 hunter2", key))

	got, ok, err := fs.LoadBackupKey("hunter2 hunter2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, key, got)
}

func TestBackupKey_WrongPassphrase(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.SaveBackupKey("right", domain.CachedBackupKey{Key: "a", Version: "1"}))

	_, ok, err := fs.LoadBackupKey("wrong")
	require.Error(t, err)
	require.False(t, ok)
}

func TestBackupKey_Missing(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := fs.LoadBackupKey("any")
	require.NoError(t, err)
	require.False(t, ok)
}
