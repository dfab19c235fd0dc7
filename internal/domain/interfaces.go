package domain

import "context"

// KeyBackupClient fetches backup material from the homeserver. The recovery
// pipeline itself never performs network I/O; it consumes the buffers these
// methods return.
type KeyBackupClient interface {
	// BackupVersion returns the current backup version descriptor.
	BackupVersion(ctx context.Context) (BackupInfo, error)

	// DefaultSSSSKeyID returns the account's default secret-storage key id.
	DefaultSSSSKeyID(ctx context.Context) (string, error)

	// SSSSKeyInfo returns the descriptor for a secret-storage key,
	// including passphrase KDF parameters when one was set.
	SSSSKeyInfo(ctx context.Context, keyID string) (SSSSKeyInfo, error)

	// BackupKeyEnvelope returns the SSSS-encrypted backup key for keyID,
	// with transport base64 already stripped.
	BackupKeyEnvelope(ctx context.Context, keyID string) (SSSSEnvelope, error)

	// RoomKeys returns every backed-up session for the given version.
	RoomKeys(ctx context.Context, version string) (RoomKeys, error)
}

// BackupKeyStore persists the validated backup key between runs.
type BackupKeyStore interface {
	SaveBackupKey(passphrase string, k CachedBackupKey) error
	LoadBackupKey(passphrase string) (CachedBackupKey, bool, error)
}
