// Package store persists the validated backup key between runs. The key is
// sealed with scrypt + ChaCha20-Poly1305 under a local passphrase; it is
// never written to disk in the clear. Writes go through a temp file and an
// atomic rename.
package store
