package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/qrgen/config"
	"github.com/openclaw/qrgen/qr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Tests change the working directory and environment, so none run in parallel.

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
	assert.Equal(t, "127.0.0.1:8556", cfg.Addr())

	level, err := cfg.ECLevel()
	require.NoError(t, err)
	assert.Equal(t, qr.Medium, level)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "config.yaml", `
host: 0.0.0.0
port: 9000
level: Q
boost_level: true
display_size: 512
border: 2
read_timeout: 5s
log_level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "Q", cfg.Level)
	assert.True(t, cfg.BoostLevel)
	assert.Equal(t, 512, cfg.DisplaySize)
	assert.Equal(t, 2, cfg.Border)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout.Duration)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "config.yaml", "port: 9000\nlevel: low\n")
	t.Setenv("QRGEN_PORT", "9100")
	t.Setenv("QRGEN_LEVEL", "high")
	t.Setenv("QRGEN_BOOST_LEVEL", "yes")
	t.Setenv("QRGEN_WRITE_TIMEOUT", "1m")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "high", cfg.Level)
	assert.True(t, cfg.BoostLevel)
	assert.Equal(t, time.Minute, cfg.WriteTimeout.Duration)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "QRGEN_DISPLAY_SIZE=640\nQRGEN_LOG_LEVEL=warn\n")
	// t.Setenv restores both variables after godotenv has written them.
	t.Setenv("QRGEN_DISPLAY_SIZE", "")
	t.Setenv("QRGEN_LOG_LEVEL", "")
	os.Unsetenv("QRGEN_DISPLAY_SIZE")
	os.Unsetenv("QRGEN_LOG_LEVEL")

	cfg, err := config.Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.DisplaySize)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := map[string]string{
		"bad yaml":          "port: [",
		"bad duration":      "read_timeout: soon",
		"bad level":         "level: extreme",
		"tiny display":      "display_size: 10",
		"negative border":   "border: -1",
		"port out of range": "port: 70000",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "config.yaml", content)
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDurationYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D config.Duration `yaml:"d"`
	}{config.Duration{90 * time.Second}})
	require.NoError(t, err)
	assert.Equal(t, "d: 1m30s\n", string(out))
}
