package mx

import (
	"context"
	"fmt"
	"net/url"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
)

const (
	accountDataDefaultKey = "m.secret_storage.default_key"
	accountDataKeyPrefix  = "m.secret_storage.key."
	accountDataBackupKey  = "m.megolm_backup.v1"
)

// BackupVersion fetches the current key-backup descriptor.
func (c *Client) BackupVersion(ctx context.Context) (domain.BackupInfo, error) {
	var info domain.BackupInfo
	if err := c.get(ctx, "/room_keys/version", nil, &info); err != nil {
		return info, err
	}
	return info, nil
}

// RoomKeys fetches every backed-up session for the given backup version.
func (c *Client) RoomKeys(ctx context.Context, version string) (domain.RoomKeys, error) {
	var keys domain.RoomKeys
	q := url.Values{"version": {version}}
	if err := c.get(ctx, "/room_keys/keys", q, &keys); err != nil {
		return keys, err
	}
	return keys, nil
}

// AccountData fetches a typed account-data event for the configured user.
func (c *Client) AccountData(ctx context.Context, eventType string, out any) error {
	path := "/user/" + url.PathEscape(c.UserID) + "/account_data/" + url.PathEscape(eventType)
	return c.get(ctx, path, nil, out)
}

// DefaultSSSSKeyID returns the account's default secret-storage key id.
func (c *Client) DefaultSSSSKeyID(ctx context.Context) (string, error) {
	var out struct {
		Key string `json:"key"`
	}
	if err := c.AccountData(ctx, accountDataDefaultKey, &out); err != nil {
		return "", err
	}
	if out.Key == "" {
		return "", fmt.Errorf("account has no default secret-storage key")
	}
	return out.Key, nil
}

// SSSSKeyInfo returns the descriptor for a secret-storage key.
func (c *Client) SSSSKeyInfo(ctx context.Context, keyID string) (domain.SSSSKeyInfo, error) {
	var info domain.SSSSKeyInfo
	if err := c.AccountData(ctx, accountDataKeyPrefix+keyID, &info); err != nil {
		return info, err
	}
	return info, nil
}

// BackupKeyEnvelope fetches the SSSS-encrypted backup key for keyID and
// strips the transport base64.
func (c *Client) BackupKeyEnvelope(ctx context.Context, keyID string) (domain.SSSSEnvelope, error) {
	var env domain.SSSSEnvelope
	var out struct {
		Encrypted map[string]struct {
			IV         string `json:"iv"`
			Ciphertext string `json:"ciphertext"`
			MAC        string `json:"mac"`
		} `json:"encrypted"`
	}
	if err := c.AccountData(ctx, accountDataBackupKey, &out); err != nil {
		return env, err
	}
	enc, ok := out.Encrypted[keyID]
	if !ok {
		return env, fmt.Errorf("backup key is not encrypted under key %q", keyID)
	}

	var err error
	if env.IV, err = crypto.DecodeUnpaddedB64(enc.IV); err != nil {
		return env, fmt.Errorf("backup envelope iv: %w", err)
	}
	if env.Ciphertext, err = crypto.DecodeUnpaddedB64(enc.Ciphertext); err != nil {
		return env, fmt.Errorf("backup envelope ciphertext: %w", err)
	}
	if env.MAC, err = crypto.DecodeUnpaddedB64(enc.MAC); err != nil {
		return env, fmt.Errorf("backup envelope mac: %w", err)
	}
	return env, nil
}

// Compile-time assertion that Client satisfies the recovery pipeline's view.
var _ domain.KeyBackupClient = (*Client)(nil)
