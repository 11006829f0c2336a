package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/sshconfig"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "github.com", cfg.Host)
	assert.Equal(t, sshconfig.DefaultHost, cfg.Host)
	assert.Equal(t, "~/.ssh", cfg.SSHDir)
	assert.Equal(t, "id_ed25519_gh", cfg.KeyPrefix)
	assert.True(t, cfg.Keychain)
	assert.Equal(t, 30*time.Minute, cfg.LockStale)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "host: github.example.com\nkey_prefix: id_ed25519_work\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "github.example.com", cfg.Host)
	assert.Equal(t, "id_ed25519_work", cfg.KeyPrefix)
	// Unset fields keep their defaults.
	assert.Equal(t, "~/.ssh", cfg.SSHDir)
	assert.True(t, cfg.Keychain)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, valid: true},
		{name: "empty host", mutate: func(c *Config) { c.Host = "" }, valid: false},
		{name: "wildcard host", mutate: func(c *Config) { c.Host = "*.github.com" }, valid: false},
		{name: "host with space", mutate: func(c *Config) { c.Host = "git hub.com" }, valid: false},
		{name: "empty prefix", mutate: func(c *Config) { c.KeyPrefix = "" }, valid: false},
		{name: "empty ssh dir", mutate: func(c *Config) { c.SSHDir = "" }, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestExpandedSSHDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(home, ".ssh"), cfg.ExpandedSSHDir())

	cfg.SSHDir = "/absolute/path"
	assert.Equal(t, "/absolute/path", cfg.ExpandedSSHDir())
}

func TestSSHConfigPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SSHDir = "/Users/dev/.ssh"
	assert.Equal(t, "/Users/dev/.ssh/config", cfg.SSHConfigPath())
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghkey", "config.yaml")

	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: custom.example.com\n"), 0644))

	err := WriteDefault(path, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	// --force replaces it.
	require.NoError(t, WriteDefault(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "github.com", cfg.Host)
}
