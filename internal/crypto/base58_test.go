package crypto

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// refEncodeBase58 is an independent base58 encoder (long division over the
// byte string) used to cross-check the big.Int implementation.
func refEncodeBase58(b []byte) string {
	var digits []int
	num := append([]byte(nil), b...)
	for len(num) > 0 {
		rem := 0
		var quot []byte
		for _, c := range num {
			cur := rem*256 + int(c)
			q := cur / 58
			rem = cur % 58
			if len(quot) > 0 || q > 0 {
				quot = append(quot, byte(q))
			}
		}
		digits = append(digits, rem)
		num = quot
	}
	out := make([]byte, 0, len(digits))
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, base58Alphabet[digits[i]])
	}
	return string(out)
}

func TestDecodeBase58_Vectors(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []byte
	}{
		{"", []byte{}},
		{"2", []byte{0x01}},
		{"21", []byte{0x3a}},
		{"z", []byte{0x39}},
		{"2 1", []byte{0x3a}},     // spaces are presentation only
		{"\t2\n1 ", []byte{0x3a}}, // any whitespace
	} {
		got, err := DecodeBase58(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestDecodeBase58_RejectsUnknownCharacters(t *testing.T) {
	for _, in := range []string{"0", "O", "I", "l", "abc!", "é"} {
		_, err := DecodeBase58(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestBase58_RoundTripAgainstReference(t *testing.T) {
	for length := 1; length <= 64; length++ {
		b := make([]byte, length)
		_, err := rand.Read(b)
		require.NoError(t, err)
		// A leading zero byte is not representable in a minimal
		// big-endian decoding; the recovery-key prefix rules it out.
		if b[0] == 0 {
			b[0] = 1
		}

		encoded := EncodeBase58(b)
		require.Equal(t, refEncodeBase58(b), encoded, "length %d", length)

		decoded, err := DecodeBase58(encoded)
		require.NoError(t, err)
		require.True(t, bytes.Equal(b, decoded), "length %d", length)
	}
}
