package mx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "@user:example.org", "syt_token", srv.Client())
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"joined_rooms": []string{}})
	})

	_, err := c.JoinedRooms(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer syt_token", gotAuth)
}

func TestClient_DecodesMatrixError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"errcode": "M_NOT_FOUND",
			"error":   "No backup found",
		})
	})

	_, err := c.BackupVersion(context.Background())
	require.Error(t, err)
	require.True(t, IsNotFound(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "M_NOT_FOUND", apiErr.Code)
	require.Contains(t, apiErr.Error(), "No backup found")
}

func TestClient_BackupKeyEnvelope(t *testing.T) {
	iv := []byte("0123456789abcdef")
	ciphertext := []byte("ciphertext-bytes")
	mac := make([]byte, 32)

	unpadded := func(b []byte) string {
		return base64.RawStdEncoding.EncodeToString(b)
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/_matrix/client/v3/user/@user:example.org/account_data/m.megolm_backup.v1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"encrypted": map[string]any{
				"keyid": map[string]string{
					"iv":         unpadded(iv),
					"ciphertext": unpadded(ciphertext),
					"mac":        unpadded(mac),
				},
			},
		})
	})

	env, err := c.BackupKeyEnvelope(context.Background(), "keyid")
	require.NoError(t, err)
	require.Equal(t, iv, env.IV)
	require.Equal(t, ciphertext, env.Ciphertext)
	require.Equal(t, mac, env.MAC)

	_, err = c.BackupKeyEnvelope(context.Background(), "other-key")
	require.Error(t, err)
}

func TestClient_FindRoom(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/_matrix/client/v3/joined_rooms":
			json.NewEncoder(w).Encode(map[string]any{
				"joined_rooms": []string{"!abc:example.org", "!def:example.org"},
			})
		case "/_matrix/client/v3/rooms/!abc:example.org/state/m.room.name":
			json.NewEncoder(w).Encode(map[string]string{"name": "Agent Work"})
		case "/_matrix/client/v3/rooms/!abc:example.org/state/m.room.canonical_alias":
			json.NewEncoder(w).Encode(map[string]string{"alias": "#agent-work:example.org"})
		case "/_matrix/client/v3/directory/room/#ops:example.org":
			json.NewEncoder(w).Encode(map[string]string{"room_id": "!ops:example.org"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"errcode": "M_NOT_FOUND", "error": "not found"})
		}
	})

	ctx := context.Background()

	id, err := c.FindRoom(ctx, "!raw:example.org")
	require.NoError(t, err)
	require.Equal(t, "!raw:example.org", id)

	id, err = c.FindRoom(ctx, "#ops:example.org")
	require.NoError(t, err)
	require.Equal(t, "!ops:example.org", id)

	id, err = c.FindRoom(ctx, "agent work")
	require.NoError(t, err)
	require.Equal(t, "!abc:example.org", id)

	id, err = c.FindRoom(ctx, "agent-work")
	require.NoError(t, err)
	require.Equal(t, "!abc:example.org", id)

	_, err = c.FindRoom(ctx, "no such room")
	require.Error(t, err)
}
