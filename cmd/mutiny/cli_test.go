package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withTempState(t *testing.T) {
	dataDir, path := mutinyDataDir, statePath
	mutinyDataDir = t.TempDir()
	statePath = filepath.Join(mutinyDataDir, "state.json")
	t.Cleanup(func() {
		mutinyDataDir, statePath = dataDir, path
	})
}

func TestConfig(t *testing.T) {
	withTempState(t)

	_, err := getState()
	require.Error(t, err)

	app := newApp()
	require.NoError(t, app.Run([]string{"mutiny", "config", "init"}))
	require.NoError(t, app.Run([]string{"mutiny", "config", "set", "foo", "bar"}))
	require.Error(t, app.Run([]string{"mutiny", "config", "set", "foo"}))

	state, err := getState()
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"rpcserver": "localhost:14499",
		"foo":       "bar",
	}, state)
}

func TestCommands(t *testing.T) {
	withTempState(t)

	var (
		settings map[string]string
		deleted  bool
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]string{
				"network": "signet", "proxy": "wss://p.example.com",
			})
		case http.MethodPatch:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&settings))
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/v1/wallet/delete", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/v1/sync", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "wallet is not initialized",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	app := newApp()
	require.NoError(t, app.Run([]string{
		"mutiny", "config", "init", "--rpcserver", srv.URL,
	}))

	require.NoError(t, app.Run([]string{
		"mutiny", "settings", "set", "esplora", "https://mempool.space/api",
	}))
	// Only the changed setting is sent.
	require.Equal(t, map[string]string{
		"esplora": "https://mempool.space/api",
	}, settings)

	require.EqualError(t, app.Run([]string{
		"mutiny", "settings", "set", "colour", "blue",
	}), "unknown setting colour")

	require.EqualError(
		t, app.Run([]string{"mutiny", "sync"}), "wallet is not initialized",
	)

	require.Error(t, app.Run([]string{"mutiny", "delete-wallet"}))
	require.False(t, deleted)
	require.NoError(t, app.Run([]string{"mutiny", "delete-wallet", "--yes"}))
	require.True(t, deleted)
}
