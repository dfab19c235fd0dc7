package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeUnpaddedB64(t *testing.T) {
	want := []byte("any carnal pleas")
	for _, in := range []string{
		"YW55IGNhcm5hbCBwbGVhcw==",
		"YW55IGNhcm5hbCBwbGVhcw",
	} {
		got, err := DecodeUnpaddedB64(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := DecodeUnpaddedB64("not base64!!")
	require.Error(t, err)
}
