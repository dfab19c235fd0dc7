package domain

// X25519Private is a Curve25519 private scalar.
type X25519Private [32]byte

// Slice returns a view of the backing array, so wiping the slice wipes
// the key itself.
func (k *X25519Private) Slice() []byte { return k[:] }

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

func (p *X25519Public) Slice() []byte { return p[:] }

// RootSecret is the 32-byte secret recovered from a recovery key or
// derived from a passphrase. It unlocks the SSSS envelope and nothing else.
type RootSecret [32]byte

func (s *RootSecret) Slice() []byte { return s[:] }
