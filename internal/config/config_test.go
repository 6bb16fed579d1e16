package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Party/internal/config"
)

// inEmptyDir runs the test from a directory without a config/ folder.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeConfig(t *testing.T, dir, env, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config."+env+".yaml"), []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, int64(32768), cfg.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, 10*time.Second, cfg.WriteWait)
	assert.Equal(t, 64, cfg.SendBuffer)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StrictRoles)
	assert.Equal(t, "drop", cfg.Backpressure)
	assert.NotEmpty(t, cfg.Secret, "a random secret is generated when none is set")
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := inEmptyDir(t)
	writeConfig(t, dir, "test", `
mode: debug
host: 127.0.0.1
port: 9000
ping_period: 5s
pong_wait: 10s
secret: from-file
backpressure: kick
`)
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("PARTY_PORT", "9100")
	t.Setenv("PARTY_STRICT_ROLES", "true")

	flags := pflag.NewFlagSet("party", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.Int("port", 8080, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--host", "0.0.0.0", "--log-level", "warn"}))

	cfg, err := config.Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode, "file")
	assert.Equal(t, "0.0.0.0", cfg.Host, "flag beats file")
	assert.Equal(t, 9100, cfg.Port, "env beats file and unset flag")
	assert.Equal(t, "warn", cfg.LogLevel, "flag")
	assert.True(t, cfg.StrictRoles, "env")
	assert.Equal(t, 5*time.Second, cfg.PingPeriod)
	assert.Equal(t, 10*time.Second, cfg.PongWait)
	assert.Equal(t, "from-file", cfg.Secret)
	assert.Equal(t, "kick", cfg.Backpressure)
	assert.Equal(t, "0.0.0.0:9100", cfg.Addr())
}

func TestLoad_InvalidFileValue(t *testing.T) {
	dir := inEmptyDir(t)
	writeConfig(t, dir, "bad", "backpressure: explode\n")
	t.Setenv("CONFIG_ENV", "bad")

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explode")
}

func validConfig() config.Config {
	return config.Config{
		Mode:         "release",
		Port:         8080,
		ReadLimit:    1024,
		PingPeriod:   time.Second,
		PongWait:     2 * time.Second,
		WriteWait:    time.Second,
		SendBuffer:   8,
		LogLevel:     "info",
		Backpressure: "drop",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *config.Config) {}},
		{name: "kick is valid", mutate: func(c *config.Config) { c.Backpressure = "kick" }},
		{name: "bad mode", mutate: func(c *config.Config) { c.Mode = "prod" }, wantErr: "unknown mode"},
		{name: "port zero", mutate: func(c *config.Config) { c.Port = 0 }, wantErr: "out of range"},
		{name: "port too big", mutate: func(c *config.Config) { c.Port = 70000 }, wantErr: "out of range"},
		{name: "read limit", mutate: func(c *config.Config) { c.ReadLimit = 0 }, wantErr: "read_limit"},
		{name: "send buffer", mutate: func(c *config.Config) { c.SendBuffer = -1 }, wantErr: "send_buffer"},
		{name: "zero duration", mutate: func(c *config.Config) { c.WriteWait = 0 }, wantErr: "must be positive"},
		{name: "ping after pong", mutate: func(c *config.Config) { c.PingPeriod = 3 * time.Second }, wantErr: "shorter than pong_wait"},
		{name: "backpressure", mutate: func(c *config.Config) { c.Backpressure = "wait" }, wantErr: "backpressure"},
		{name: "log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := validConfig()
	c.Mode = "prod"
	c.Port = -1

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
	assert.Contains(t, err.Error(), "out of range")
}
