package domain

import "encoding/json"

// BackupInfo is the server's key-backup version descriptor.
type BackupInfo struct {
	Version   string         `json:"version"`
	Algorithm string         `json:"algorithm"`
	AuthData  BackupAuthData `json:"auth_data"`
	Count     int            `json:"count"`
	ETag      string         `json:"etag"`
}

// BackupAuthData declares the public half of the backup key pair. It is
// used only to validate a recovered private key, never for decryption.
type BackupAuthData struct {
	PublicKey string `json:"public_key"` // unpadded base64
}

// PassphraseParams are the server-declared KDF parameters for deriving the
// root secret from a passphrase. Only "m.pbkdf2" is supported.
type PassphraseParams struct {
	Algorithm  string `json:"algorithm"`
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	Bits       int    `json:"bits"`
}

// SSSSKeyInfo describes a secret-storage key as stored in account data.
type SSSSKeyInfo struct {
	Name       string            `json:"name"`
	Algorithm  string            `json:"algorithm"`
	Passphrase *PassphraseParams `json:"passphrase,omitempty"`
}

// SSSSEnvelope is the backup private key encrypted under the root secret.
// Fields are raw bytes; transport base64 is stripped by the client layer.
type SSSSEnvelope struct {
	IV         []byte // 16 bytes, AES-CTR initial counter block
	Ciphertext []byte
	MAC        []byte // 32-byte HMAC-SHA256 over Ciphertext
}

// SessionData is the encrypted payload of one backed-up megolm session.
// Fields are unpadded base64 as they arrive from the server.
type SessionData struct {
	Ephemeral  string `json:"ephemeral"`
	Ciphertext string `json:"ciphertext"`
	MAC        string `json:"mac"`
}

// KeyBackupEntry is one session's backup record.
type KeyBackupEntry struct {
	FirstMessageIndex int         `json:"first_message_index"`
	ForwardedCount    int         `json:"forwarded_count"`
	IsVerified        bool        `json:"is_verified"`
	SessionData       SessionData `json:"session_data"`
}

// RoomKeyBackup holds all backed-up sessions for one room.
type RoomKeyBackup struct {
	Sessions map[string]KeyBackupEntry `json:"sessions"`
}

// RoomKeys is the full backup payload, keyed by room then session.
type RoomKeys struct {
	Rooms map[string]RoomKeyBackup `json:"rooms"`
}

// DecryptedSession is one successfully recovered session record,
// attributed to its room and session.
type DecryptedSession struct {
	RoomID    string          `json:"room_id"`
	SessionID string          `json:"session_id"`
	Data      json.RawMessage `json:"data"`
}

// SessionFailure records one entry that could not be decrypted.
type SessionFailure struct {
	RoomID    string `json:"room_id"`
	SessionID string `json:"session_id"`
	Err       string `json:"error"`
}

// CachedBackupKey is the validated backup private key as persisted locally,
// so future restores can skip credential resolution.
type CachedBackupKey struct {
	Key       string `json:"backup_key"` // base64
	Version   string `json:"version"`
	Algorithm string `json:"algorithm"`
}
