package keybackup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
	"mxtool/internal/util/memzero"
)

const (
	ivSize = aes.BlockSize

	// The wire format in the wild carries HMACs truncated to 8 bytes
	// (libolm legacy); anything shorter is rejected rather than compared.
	minMACSize = 8
)

var errBadPadding = fmt.Errorf("%w: bad PKCS7 padding", domain.ErrSessionDecrypt)

// deriveSessionKeys expands an ECDH shared secret into AES and MAC keys.
// The 80-byte output with its 32+32+16 split is a wire-format constant;
// the trailing 16 bytes are unused but must be derived for parity.
func deriveSessionKeys(shared []byte) (aesKey, macKey []byte, err error) {
	out, err := crypto.HKDFSHA256(shared, nil, nil, 80)
	if err != nil {
		return nil, nil, err
	}
	memzero.Zero(out[64:])
	return out[:32], out[32:64], nil
}

// DecryptSession recovers one backed-up session record. Every failure is
// reported as ErrSessionDecrypt so a batch runner can tally it and move on;
// nothing about one entry affects any other.
func DecryptSession(priv domain.X25519Private, data domain.SessionData) (json.RawMessage, error) {
	ephemeral, err := crypto.DecodeUnpaddedB64(data.Ephemeral)
	if err != nil {
		return nil, fmt.Errorf("%w: ephemeral: %v", domain.ErrSessionDecrypt, err)
	}
	ciphertext, err := crypto.DecodeUnpaddedB64(data.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", domain.ErrSessionDecrypt, err)
	}
	mac, err := crypto.DecodeUnpaddedB64(data.MAC)
	if err != nil {
		return nil, fmt.Errorf("%w: mac: %v", domain.ErrSessionDecrypt, err)
	}

	var ephPub domain.X25519Public
	if len(ephemeral) != len(ephPub) {
		return nil, fmt.Errorf("%w: %d-byte ephemeral key", domain.ErrSessionDecrypt, len(ephemeral))
	}
	copy(ephPub[:], ephemeral)

	shared, err := crypto.DH(priv, ephPub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionDecrypt, err)
	}
	defer memzero.Zero(shared)

	aesKey, macKey, err := deriveSessionKeys(shared)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionDecrypt, err)
	}
	defer memzero.Zero(aesKey)
	defer memzero.Zero(macKey)

	expected := crypto.HMACSHA256(macKey, ciphertext)
	if len(mac) < minMACSize || len(mac) > len(expected) {
		return nil, fmt.Errorf("%w: %d-byte mac", domain.ErrSessionDecrypt, len(mac))
	}
	if !crypto.MACEqual(mac, expected[:len(mac)]) {
		return nil, fmt.Errorf("%w: mac mismatch", domain.ErrSessionDecrypt)
	}

	if len(ciphertext) <= ivSize || (len(ciphertext)-ivSize)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d-byte ciphertext", domain.ErrSessionDecrypt, len(ciphertext))
	}
	iv, body := ciphertext[:ivSize], ciphertext[ivSize:]

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionDecrypt, err)
	}
	padded := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, body)
	defer memzero.Zero(padded)

	plaintext, err := unpadPKCS7(padded)
	if err != nil {
		return nil, err
	}

	var record json.RawMessage
	if err := json.Unmarshal(plaintext, &record); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", domain.ErrSessionDecrypt, err)
	}
	return record, nil
}

// EncryptSession is the device-side counterpart of DecryptSession: it seals
// a session record for the holder of pub using a fresh ephemeral key, the
// way clients uploading new exports to the backup do.
func EncryptSession(pub domain.X25519Public, record []byte) (domain.SessionData, error) {
	var data domain.SessionData

	var ephPriv domain.X25519Private
	if _, err := rand.Read(ephPriv[:]); err != nil {
		return data, err
	}
	defer memzero.Zero(ephPriv.Slice())

	ephPub, err := crypto.PublicKey(ephPriv)
	if err != nil {
		return data, err
	}
	shared, err := crypto.DH(ephPriv, pub)
	if err != nil {
		return data, err
	}
	defer memzero.Zero(shared)

	aesKey, macKey, err := deriveSessionKeys(shared)
	if err != nil {
		return data, err
	}
	defer memzero.Zero(aesKey)
	defer memzero.Zero(macKey)

	padLen := aes.BlockSize - len(record)%aes.BlockSize
	padded := make([]byte, len(record)+padLen)
	copy(padded, record)
	for i := len(record); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}

	ciphertext := make([]byte, ivSize+len(padded))
	if _, err := rand.Read(ciphertext[:ivSize]); err != nil {
		return data, err
	}
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return data, err
	}
	cipher.NewCBCEncrypter(block, ciphertext[:ivSize]).CryptBlocks(ciphertext[ivSize:], padded)

	mac := crypto.HMACSHA256(macKey, ciphertext)

	data.Ephemeral = crypto.B64(ephPub.Slice())
	data.Ciphertext = crypto.B64(ciphertext)
	data.MAC = crypto.B64(mac[:minMACSize])
	return data, nil
}

// unpadPKCS7 strips PKCS7 padding, rejecting any pad length outside [1,16]
// and any inconsistent pad byte. A bad pad never yields the raw buffer.
func unpadPKCS7(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errBadPadding
	}
	padLen := int(b[len(b)-1])
	if padLen < 1 || padLen > aes.BlockSize || padLen > len(b) {
		return nil, errBadPadding
	}
	for _, p := range b[len(b)-padLen:] {
		if int(p) != padLen {
			return nil, errBadPadding
		}
	}
	out := make([]byte, len(b)-padLen)
	copy(out, b)
	return out, nil
}
