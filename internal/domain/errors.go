package domain

import "errors"

// Sentinel errors for errors.Is() checks. The first four are run-fatal:
// no session decryption may start once any of them has been returned.
// ErrSessionDecrypt is scoped to a single backup entry and is tallied,
// never propagated as fatal.
var (
	// ErrInvalidRecoveryKey is returned for a malformed recovery key
	// (bad base58, wrong prefix, failed parity, wrong length).
	ErrInvalidRecoveryKey = errors.New("invalid recovery key")

	// ErrUnsupportedAlgorithm is returned for an unknown KDF or backup
	// algorithm.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrDecryptionFailed is returned when the SSSS envelope MAC does not
	// verify, which almost always means the credential is wrong.
	ErrDecryptionFailed = errors.New("decryption failed: wrong recovery key or passphrase")

	// ErrKeyMismatch is returned when the recovered backup key's public
	// half disagrees with the server-declared public key.
	ErrKeyMismatch = errors.New("recovered backup key does not match the declared public key")

	// ErrSessionDecrypt marks a single backup entry that failed MAC
	// verification, unpadding, or parsing.
	ErrSessionDecrypt = errors.New("session decryption failed")
)
