package ssss

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
	"mxtool/internal/util/memzero"
)

const envelopeIVSize = 16

// deriveEnvelopeKeys expands the root secret into the AES and MAC keys.
// The 32-byte zero salt, empty info, and 32+32 split are wire-format
// constants shared with every other client.
func deriveEnvelopeKeys(secret domain.RootSecret) (aesKey, macKey []byte, err error) {
	out, err := crypto.HKDFSHA256(secret.Slice(), make([]byte, 32), nil, 64)
	if err != nil {
		return nil, nil, err
	}
	return out[:32], out[32:64], nil
}

// DecryptEnvelope recovers the backup private key bytes from an SSSS
// envelope. The HMAC over the ciphertext is checked in constant time before
// any decryption happens; on mismatch no plaintext is ever produced.
func DecryptEnvelope(secret domain.RootSecret, env domain.SSSSEnvelope) ([]byte, error) {
	if len(env.IV) != envelopeIVSize {
		return nil, fmt.Errorf("%w: %d-byte IV", domain.ErrDecryptionFailed, len(env.IV))
	}

	aesKey, macKey, err := deriveEnvelopeKeys(secret)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(aesKey)
	defer memzero.Zero(macKey)

	if !crypto.MACEqual(env.MAC, crypto.HMACSHA256(macKey, env.Ciphertext)) {
		return nil, domain.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(env.Ciphertext))
	cipher.NewCTR(block, env.IV).XORKeyStream(plaintext, env.Ciphertext)
	return plaintext, nil
}

// EncryptEnvelope is the device-side counterpart of DecryptEnvelope: it
// seals plaintext under the root secret the way a client creating a backup
// would, producing an envelope DecryptEnvelope accepts.
func EncryptEnvelope(secret domain.RootSecret, plaintext []byte) (domain.SSSSEnvelope, error) {
	var env domain.SSSSEnvelope

	aesKey, macKey, err := deriveEnvelopeKeys(secret)
	if err != nil {
		return env, err
	}
	defer memzero.Zero(aesKey)
	defer memzero.Zero(macKey)

	iv := make([]byte, envelopeIVSize)
	if _, err := rand.Read(iv); err != nil {
		return env, err
	}
	// Bit 63 of the counter block stays clear so the CTR counter cannot
	// overflow into the random prefix; the reference clients do the same.
	iv[8] &= 0x7f

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return env, err
	}
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, plaintext)

	env.IV = iv
	env.Ciphertext = ciphertext
	env.MAC = crypto.HMACSHA256(macKey, ciphertext)
	return env, nil
}
