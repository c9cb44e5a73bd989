package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STAGE", "PORT", "DATABASE_URL", "MIGRATION_DIR", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, StageDev, cfg.Stage)
	require.Equal(t, defaultPort, cfg.Port)
	require.Equal(t, defaultMigrationDir, cfg.MigrationDir)
	require.Equal(t, log.InfoLevel, cfg.LogLevel)
	require.False(t, cfg.HasDatabase())
	require.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "STAGE=dev\nPORT=9191\nDATABASE_URL=postgres://u:p@localhost:5432/battleship?sslmode=disable\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Port)
	require.True(t, cfg.HasDatabase())
	require.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown stage", env: map[string]string{"STAGE": "staging"}},
		{name: "port not a number", env: map[string]string{"PORT": "abc"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "log level", env: map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	clearEnv(t)
	t.Setenv("STAGE", "staging")
	_, err := Load("")
	require.True(t, errors.Is(err, ErrInvalidStage))
}
