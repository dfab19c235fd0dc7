package crypto

import (
	"golang.org/x/crypto/curve25519"

	"mxtool/internal/domain"
)

// PublicKey derives the Curve25519 public key for priv. Clamping happens
// inside the scalar multiplication per RFC 7748.
func PublicKey(priv domain.X25519Private) (domain.X25519Public, error) {
	var pub domain.X25519Public
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return pub, err
	}
	copy(pub[:], pb)
	return pub, nil
}

// DH computes the X25519 shared secret between priv and pub.
func DH(priv domain.X25519Private, pub domain.X25519Public) ([]byte, error) {
	return curve25519.X25519(priv.Slice(), pub.Slice())
}
