package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSHA256 returns the HMAC-SHA256 digest of data under key.
func HMACSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// MACEqual compares two MACs in constant time.
func MACEqual(a, b []byte) bool { return hmac.Equal(a, b) }
