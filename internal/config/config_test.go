package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mxtool/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
homeserver = "https://matrix.example.org"
user_id = "@user:example.org"
access_token = "syt_secret"
workers = 16
log_level = "debug"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://matrix.example.org", cfg.Homeserver)
	require.Equal(t, "@user:example.org", cfg.UserID)
	require.Equal(t, 16, cfg.Workers)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingFields(t *testing.T) {
	for name, body := range map[string]string{
		"no homeserver": `user_id = "@u:x"` + "\n" + `access_token = "t"`,
		"no user id":    `homeserver = "https://x"` + "\n" + `access_token = "t"`,
		"no token":      `homeserver = "https://x"` + "\n" + `user_id = "@u:x"`,
		"relative url":  `homeserver = "matrix.example.org"` + "\n" + `user_id = "@u:x"` + "\n" + `access_token = "t"`,
	} {
		_, err := config.Load(writeConfig(t, body))
		require.Error(t, err, name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no config at")
}
