// Package crypto exposes the primitives shared by the recovery pipeline.
//
// Contents
//
//   - Base58 codec in the recovery-key alphabet (DecodeBase58, EncodeBase58)
//   - X25519 public-key derivation and Diffie–Hellman (PublicKey, DH)
//   - HKDF-SHA256 expansion (HKDFSHA256)
//   - HMAC-SHA256 with constant-time comparison (HMACSHA256, MACEqual)
//   - Base64 helpers tolerant of stripped padding (B64, DecodeUnpaddedB64)
//
// Callers should treat any derived secret as sensitive and wipe it with
// memzero.Zero as soon as it has served its purpose.
package crypto
