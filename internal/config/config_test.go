package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/npc-world-api/internal/config"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: production
log_level: warn
world:
  name: overworld
  time_of_day: dusk
  weather: rain
nats:
  port: 4333
redis:
  endpoint: localhost:6379
operators:
  - p1
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, "overworld", cfg.World.Name)
	assert.Equal(t, "dusk", cfg.World.TimeOfDay)
	assert.Equal(t, 4333, cfg.Nats.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Endpoint)
	assert.Equal(t, []string{"p1"}, cfg.Operators)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `world: {name: overworld}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "127.0.0.1", cfg.Nats.Host)
	assert.Equal(t, 4222, cfg.Nats.Port)
	assert.Empty(t, cfg.Redis.Endpoint)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, `log_level: loud`)
	_, err := config.Load(path)
	assert.True(t, errors.IsInvalidArgument(err))

	path = writeConfig(t, `nats: {port: 99999}`)
	_, err = config.Load(path)
	assert.True(t, errors.IsInvalidArgument(err))
}
