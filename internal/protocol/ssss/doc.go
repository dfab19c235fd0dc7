// Package ssss implements the secret-storage conventions that protect the
// key-backup private key.
//
// # Overview
//
// A user presents either a recovery key (base58, type-marked, parity-checked)
// or a passphrase (PBKDF2-HMAC-SHA512 with server-declared parameters).
// Either path yields the same 32-byte root secret, which HKDF-SHA256 expands
// into an AES-256-CTR key and an HMAC-SHA256 key. The stored backup key is
// released only after its MAC verifies.
//
// # Errors
//
// ErrInvalidRecoveryKey, ErrUnsupportedAlgorithm and ErrDecryptionFailed from
// the domain package classify the failure modes; all of them are fatal to a
// restore run. A MAC mismatch is reported without surfacing any plaintext.
package ssss
