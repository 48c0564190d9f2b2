package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAZE_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Render.StepDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().HTTP.Addr, cfg.HTTP.Addr)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
render:
  step_delay: 250ms
http:
  addr: ":9000"
search:
  workers: 3
`), 0o644))

	t.Setenv("MAZE_HTTP_ADDR", ":9100")
	t.Setenv("MAZE_CACHE_DIR", filepath.Join(t.TempDir(), "cache"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Render.StepDelay)
	assert.Equal(t, 3, cfg.Search.Workers)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "●", cfg.Render.PathGlyph, "unset keys keep their defaults")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("logging: [\n"), 0o644))
	_, err := Load(badYAML)
	assert.Error(t, err)

	badLevel := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(badLevel, []byte("logging:\n  level: loud\n"), 0o644))
	_, err = Load(badLevel)
	assert.ErrorContains(t, err, "invalid configuration")

	t.Setenv("MAZE_STEP_DELAY", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "MAZE_STEP_DELAY")
}

func TestValidate_CacheNeedsDirUnlessInMemory(t *testing.T) {
	cfg := Default()
	cfg.Cache.Enabled = true
	assert.Error(t, Validate(cfg))

	cfg.Cache.InMemory = true
	assert.NoError(t, Validate(cfg))
}
