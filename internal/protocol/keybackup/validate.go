package keybackup

import (
	"crypto/subtle"
	"fmt"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
)

// Algorithm is the only backup algorithm this pipeline understands.
const Algorithm = "m.megolm_backup.v1.curve25519-aes-sha2"

// ValidateKey derives the public half of the recovered private key and
// compares it with the server-declared one. On mismatch the recovered bytes
// must be discarded by the caller; they are never safe to decrypt with.
func ValidateKey(priv domain.X25519Private, declared domain.X25519Public) error {
	pub, err := crypto.PublicKey(priv)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrKeyMismatch, err)
	}
	if subtle.ConstantTimeCompare(pub.Slice(), declared.Slice()) != 1 {
		return domain.ErrKeyMismatch
	}
	return nil
}
