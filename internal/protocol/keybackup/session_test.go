package keybackup_test

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
	"mxtool/internal/protocol/keybackup"
)

func generateKeyPair(t *testing.T) (domain.X25519Private, domain.X25519Public) {
	t.Helper()
	var priv domain.X25519Private
	_, err := rand.Read(priv[:])
	require.NoError(t, err)
	pub, err := crypto.PublicKey(priv)
	require.NoError(t, err)
	return priv, pub
}

func TestValidateKey(t *testing.T) {
	priv, pub := generateKeyPair(t)
	require.NoError(t, keybackup.ValidateKey(priv, pub))

	_, otherPub := generateKeyPair(t)
	require.ErrorIs(t, keybackup.ValidateKey(priv, otherPub), domain.ErrKeyMismatch)
}

func TestSession_RoundTrip(t *testing.T) {
	priv, pub := generateKeyPair(t)
	record := []byte(`{"algorithm":"m.megolm.v1.aes-sha2","session_key":"AgAA...","sender_key":"abc"}`)

	data, err := keybackup.EncryptSession(pub, record)
	require.NoError(t, err)

	got, err := keybackup.DecryptSession(priv, data)
	require.NoError(t, err)
	require.JSONEq(t, string(record), string(got))
}

func TestSession_TamperedCiphertext(t *testing.T) {
	priv, pub := generateKeyPair(t)
	data, err := keybackup.EncryptSession(pub, []byte(`{"k":"v"}`))
	require.NoError(t, err)

	raw, err := crypto.DecodeUnpaddedB64(data.Ciphertext)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	data.Ciphertext = crypto.B64(raw)

	_, err = keybackup.DecryptSession(priv, data)
	require.ErrorIs(t, err, domain.ErrSessionDecrypt)
}

func TestSession_TamperedMAC(t *testing.T) {
	priv, pub := generateKeyPair(t)
	data, err := keybackup.EncryptSession(pub, []byte(`{"k":"v"}`))
	require.NoError(t, err)

	raw, err := crypto.DecodeUnpaddedB64(data.MAC)
	require.NoError(t, err)
	raw[0] ^= 0x80
	data.MAC = crypto.B64(raw)

	_, err = keybackup.DecryptSession(priv, data)
	require.ErrorIs(t, err, domain.ErrSessionDecrypt)
}

func TestSession_MACTooShort(t *testing.T) {
	priv, pub := generateKeyPair(t)
	data, err := keybackup.EncryptSession(pub, []byte(`{"k":"v"}`))
	require.NoError(t, err)

	raw, err := crypto.DecodeUnpaddedB64(data.MAC)
	require.NoError(t, err)
	data.MAC = crypto.B64(raw[:4])

	_, err = keybackup.DecryptSession(priv, data)
	require.ErrorIs(t, err, domain.ErrSessionDecrypt)
}

func TestSession_WrongRecipient(t *testing.T) {
	_, pub := generateKeyPair(t)
	otherPriv, _ := generateKeyPair(t)

	data, err := keybackup.EncryptSession(pub, []byte(`{"k":"v"}`))
	require.NoError(t, err)

	_, err = keybackup.DecryptSession(otherPriv, data)
	require.ErrorIs(t, err, domain.ErrSessionDecrypt)
}

func TestSession_NonJSONPlaintext(t *testing.T) {
	priv, pub := generateKeyPair(t)
	data, err := keybackup.EncryptSession(pub, []byte("not json"))
	require.NoError(t, err)

	_, err = keybackup.DecryptSession(priv, data)
	require.ErrorIs(t, err, domain.ErrSessionDecrypt)
}

func TestSession_IndependentEntries(t *testing.T) {
	priv, pub := generateKeyPair(t)

	good1, err := keybackup.EncryptSession(pub, []byte(`{"n":1}`))
	require.NoError(t, err)
	bad, err := keybackup.EncryptSession(pub, []byte(`{"n":2}`))
	require.NoError(t, err)
	good2, err := keybackup.EncryptSession(pub, []byte(`{"n":3}`))
	require.NoError(t, err)

	raw, err := crypto.DecodeUnpaddedB64(bad.MAC)
	require.NoError(t, err)
	raw[1] ^= 0x01
	bad.MAC = crypto.B64(raw)

	var values []int
	for _, data := range []domain.SessionData{good1, bad, good2} {
		record, err := keybackup.DecryptSession(priv, data)
		if err != nil {
			require.ErrorIs(t, err, domain.ErrSessionDecrypt)
			continue
		}
		var v struct {
			N int `json:"n"`
		}
		require.NoError(t, json.Unmarshal(record, &v))
		values = append(values, v.N)
	}
	require.Equal(t, []int{1, 3}, values)
}
