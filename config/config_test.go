package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG", "PORT", "LOG_LEVEL", "LOG_PRETTY", "CURRENCY", "MAX_UPLOAD_BYTES", "PAGE_SIZE"} {
		t.Setenv(Prefix+k, "")
	}
	// .env is looked up in the working directory.
	chdir(t, t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRACKER_PORT", "9000")
	t.Setenv("TRACKER_LOG_LEVEL", "debug")
	t.Setenv("TRACKER_LOG_PRETTY", "true")
	t.Setenv("TRACKER_CURRENCY", "USD")
	t.Setenv("TRACKER_PAGE_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\ncurrency: EUR\nlog_level: warn\n"), 0o644))
	t.Setenv("TRACKER_CONFIG", path)
	t.Setenv("TRACKER_CURRENCY", "GBP")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "GBP", cfg.Currency, "environment takes precedence over the file")
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("TRACKER_PORT=7000\n"), 0o644))
	// godotenv does not override variables already set, even empty ones.
	require.NoError(t, os.Unsetenv("TRACKER_PORT"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRACKER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "cannot read config file")
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRACKER_PORT", "eighty")
	t.Setenv("TRACKER_LOG_PRETTY", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, `TRACKER_PORT: "eighty" is not an integer`)
	assert.ErrorContains(t, err, `TRACKER_LOG_PRETTY: "maybe" is not a boolean`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Port = 0 }, "invalid port 0"},
		{"level", func(c *Config) { c.LogLevel = "trace" }, `invalid log level "trace"`},
		{"currency", func(c *Config) { c.Currency = "EURO" }, `invalid currency "EURO"`},
		{"upload", func(c *Config) { c.MaxUploadBytes = -1 }, "invalid max upload size -1"},
		{"page", func(c *Config) { c.PageSize = 0 }, "invalid page size 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
	assert.NoError(t, Default().Validate())
}

// chdir changes the working directory to dir and restores it when the test
// ends (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
