package keybackup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpadPKCS7(t *testing.T) {
	got, err := unpadPKCS7([]byte{'a', 'b', 'c', 3, 3, 3})
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)

	got, err = unpadPKCS7(bytes.Repeat([]byte{16}, 16))
	require.NoError(t, err)
	require.Empty(t, got)

	for _, bad := range [][]byte{
		nil,
		{},
		{0},                      // pad length zero
		{'a', 'b', 17},           // pad length beyond a block
		{3, 3},                   // pad longer than the buffer
		{'a', 'b', 'c', 2, 3, 3}, // inconsistent pad bytes
	} {
		_, err := unpadPKCS7(bad)
		require.Error(t, err, "input %v", bad)
	}
}
