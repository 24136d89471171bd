package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mutinywallet/mutinyd/internal/config"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("MUTINY_DATADIR", datadir)
	t.Setenv("MUTINY_DEFAULT_LSPS_TOKEN", "token")

	require.NoError(t, config.InitConfig())
	require.DirExists(t, filepath.Join(datadir, config.DbLocation))
	require.Equal(t, 90*time.Second, config.GetDuration(config.SetupTimeoutKey))
	require.Equal(t, 3*time.Second, config.GetDuration(config.SyncIntervalKey))
	require.Equal(t, config.PriceSourceEngine, config.GetString(config.PriceSourceKey))

	settings := config.GetDefaultSettings()
	require.Equal(t, "signet", settings.Network)
	require.Equal(t, "wss://p.mutinywallet.com", settings.Proxy)
	require.Equal(t, "token", settings.LspsToken)
	require.Empty(t, settings.Selfhosted)
}

func TestPasswordFile(t *testing.T) {
	datadir := t.TempDir()
	path := filepath.Join(datadir, "password")
	require.NoError(t, os.WriteFile(path, []byte("secret\n"), 0600))
	t.Setenv("MUTINY_DATADIR", datadir)
	t.Setenv("MUTINY_SECURE_STORE_PASSWORD_FILE", path)

	require.NoError(t, config.InitConfig())
	password, err := config.ReadPasswordFile()
	require.NoError(t, err)
	require.Equal(t, "secret", password)
}

func TestInitConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port", "MUTINY_LISTENING_PORT", "80"},
		{"engine addr", "MUTINY_ENGINE_ADDR", "http://localhost:9595"},
		{"network", "MUTINY_DEFAULT_NETWORK", "liquid"},
		{"sync interval", "MUTINY_SYNC_INTERVAL", "0s"},
		{"price source", "MUTINY_PRICE_SOURCE", "binance"},
		{"parser", "MUTINY_PARSER", "remote"},
		{"origin", "MUTINY_ORIGIN", "app.mutinywallet.com"},
		{"password file", "MUTINY_SECURE_STORE_PASSWORD_FILE", "/not/existing"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MUTINY_DATADIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			require.Error(t, config.InitConfig())
		})
	}
}
