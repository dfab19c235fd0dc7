package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mxtool/internal/domain"
	"mxtool/internal/util/memzero"
)

// Slice must alias the backing array: zeroing the returned slice has to
// clear the key itself, not a copy.
func TestKeyWipeClearsBackingArray(t *testing.T) {
	var priv domain.X25519Private
	for i := range priv {
		priv[i] = 0xAA
	}
	memzero.Zero(priv.Slice())
	require.Equal(t, domain.X25519Private{}, priv)

	var root domain.RootSecret
	for i := range root {
		root[i] = 0x5C
	}
	memzero.Zero(root.Slice())
	require.Equal(t, domain.RootSecret{}, root)
}
