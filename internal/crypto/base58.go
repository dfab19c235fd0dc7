package crypto

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// The 58-character alphabet used for recovery keys: 0, O, I and l are
// excluded to avoid transcription mistakes.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Value = func() [128]int8 {
	var m [128]int8
	for i := range m {
		m[i] = -1
	}
	for i, c := range base58Alphabet {
		m[c] = int8(i)
	}
	return m
}()

var big58 = big.NewInt(58)

// DecodeBase58 interprets s as a big-endian base-58 integer and returns its
// minimal big-endian byte representation. Whitespace is stripped first, since
// recovery keys are presented to users in space-separated groups. Any other
// character outside the alphabet is a decode error.
func DecodeBase58(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	n := new(big.Int)
	for _, c := range s {
		if c >= 128 || base58Value[c] < 0 {
			return nil, fmt.Errorf("base58: invalid character %q", c)
		}
		n.Mul(n, big58)
		n.Add(n, big.NewInt(int64(base58Value[c])))
	}
	return n.Bytes(), nil
}

// EncodeBase58 is the inverse of DecodeBase58: it treats b as a big-endian
// integer and renders it in the recovery-key alphabet.
func EncodeBase58(b []byte) string {
	n := new(big.Int).SetBytes(b)
	if n.Sign() == 0 {
		return ""
	}
	var out []byte
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, big58, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
