package ssss

import (
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
	"mxtool/internal/util/memzero"
)

const (
	// Recovery keys decode to: prefix (2 bytes) || secret (32) || parity (1).
	recoveryPrefix0 = 0x8B
	recoveryPrefix1 = 0x01

	// AlgorithmPBKDF2 is the only passphrase KDF the protocol defines.
	AlgorithmPBKDF2 = "m.pbkdf2"

	defaultIterations = 500000
	defaultBits       = 256
)

// ResolveRecoveryKey turns a user-presented recovery key into the root
// secret. The string is base58 with a two-byte type marker in front and a
// parity byte behind; the parity byte is the XOR of everything before it,
// so the XOR over the whole decoding must come out zero.
func ResolveRecoveryKey(recoveryKey string) (domain.RootSecret, error) {
	var secret domain.RootSecret

	decoded, err := crypto.DecodeBase58(recoveryKey)
	if err != nil {
		return secret, fmt.Errorf("%w: %v", domain.ErrInvalidRecoveryKey, err)
	}
	defer memzero.Zero(decoded)

	if len(decoded) < 3 || decoded[0] != recoveryPrefix0 || decoded[1] != recoveryPrefix1 {
		return secret, fmt.Errorf("%w: bad prefix", domain.ErrInvalidRecoveryKey)
	}

	var parity byte
	for _, b := range decoded {
		parity ^= b
	}
	if parity != 0 {
		return secret, fmt.Errorf("%w: parity check failed", domain.ErrInvalidRecoveryKey)
	}

	payload := decoded[2 : len(decoded)-1]
	if len(payload) != len(secret) {
		return secret, fmt.Errorf("%w: got %d key bytes, want %d",
			domain.ErrInvalidRecoveryKey, len(payload), len(secret))
	}
	copy(secret[:], payload)
	return secret, nil
}

// ResolvePassphrase derives the root secret from a passphrase with the
// server-declared PBKDF2 parameters. The PBKDF2 output is the root secret
// directly; there is no further KDF stage.
func ResolvePassphrase(passphrase string, params domain.PassphraseParams) (domain.RootSecret, error) {
	var secret domain.RootSecret

	if params.Algorithm != AlgorithmPBKDF2 {
		return secret, fmt.Errorf("%w: passphrase KDF %q", domain.ErrUnsupportedAlgorithm, params.Algorithm)
	}
	if params.Salt == "" {
		return secret, fmt.Errorf("%w: missing salt", domain.ErrUnsupportedAlgorithm)
	}
	salt, err := crypto.DecodeUnpaddedB64(params.Salt)
	if err != nil {
		return secret, fmt.Errorf("%w: bad salt: %v", domain.ErrUnsupportedAlgorithm, err)
	}

	iterations := params.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}
	bits := params.Bits
	if bits <= 0 {
		bits = defaultBits
	}
	if bits/8 != len(secret) {
		return secret, fmt.Errorf("%w: %d-bit derived key, want %d",
			domain.ErrUnsupportedAlgorithm, bits, len(secret)*8)
	}

	derived := pbkdf2.Key([]byte(passphrase), salt, iterations, bits/8, sha512.New)
	copy(secret[:], derived)
	memzero.Zero(derived)
	return secret, nil
}
