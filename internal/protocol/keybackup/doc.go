// Package keybackup implements the m.megolm_backup.v1.curve25519-aes-sha2
// record format: validating a recovered backup private key against the
// server-declared public half, and decrypting (or, device-side, encrypting)
// individual session records.
//
// Per-record decryption is a pure transformation with no cross-record state,
// so callers are free to run entries concurrently. A failing record returns
// ErrSessionDecrypt and nothing else; batch policy lives with the caller.
package keybackup
