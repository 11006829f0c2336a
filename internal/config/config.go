// Package config loads ghkey's optional configuration file. Everything has
// a sensible default; the file only exists for people who want a different
// key prefix, SSH directory, or target host.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/sshconfig"
)

const (
	// ConfigDir is the directory under $HOME holding the config file.
	ConfigDir = ".config/ghkey"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yaml"
)

// Config represents the complete ghkey configuration.
type Config struct {
	// Host is the code-hosting service the key authenticates to.
	Host string `yaml:"host" mapstructure:"host"`

	// SSHDir is where keys and the SSH client config live. Supports ~.
	SSHDir string `yaml:"ssh_dir" mapstructure:"ssh_dir"`

	// KeyPrefix is the filename prefix for generated keys; the device slug
	// is appended to it.
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`

	// Keychain toggles registering the key with the macOS keychain.
	Keychain bool `yaml:"keychain" mapstructure:"keychain"`

	// LockStale is when to consider another run's lock abandoned.
	LockStale time.Duration `yaml:"lock_stale" mapstructure:"lock_stale"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:      sshconfig.DefaultHost,
		SSHDir:    "~/.ssh",
		KeyPrefix: "id_ed25519_gh",
		Keychain:  true,
		LockStale: 30 * time.Minute,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDir, ConfigFileName)
	}
	return filepath.Join(home, ConfigDir, ConfigFileName)
}

// Load reads config from path, merging over the defaults. A missing file is
// not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file: "+path,
			"Check the file is valid YAML")
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Config file has invalid values: "+path,
			"Compare against the output of 'ghkey config init'")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads from the default path, or explicit if non-empty.
func LoadDefault(explicit string) (*Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+explicit,
				"Check the path is correct")
		}
		return Load(explicit)
	}
	return Load(DefaultPath())
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New(errors.ErrConfig, "host must not be empty", "")
	}
	if strings.ContainsAny(c.Host, " \t*?") {
		return errors.New(errors.ErrConfig,
			"host must be a plain hostname: "+c.Host,
			"Wildcards and whitespace are not allowed")
	}
	if c.KeyPrefix == "" {
		return errors.New(errors.ErrConfig, "key_prefix must not be empty", "")
	}
	if c.SSHDir == "" {
		return errors.New(errors.ErrConfig, "ssh_dir must not be empty", "")
	}
	return nil
}

// ExpandedSSHDir returns SSHDir with a leading ~ expanded.
func (c *Config) ExpandedSSHDir() string {
	return expandHome(c.SSHDir)
}

// SSHConfigPath returns the SSH client config file path.
func (c *Config) SSHConfigPath() string {
	return filepath.Join(c.ExpandedSSHDir(), "config")
}

// WriteDefault writes the default config as YAML to path. Refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Could not create config directory", "")
	}

	// Durations marshal as nanosecond integers, so write that field as a
	// string the duration hook can read back.
	def := DefaultConfig()
	data, err := yaml.Marshal(struct {
		Host      string `yaml:"host"`
		SSHDir    string `yaml:"ssh_dir"`
		KeyPrefix string `yaml:"key_prefix"`
		Keychain  bool   `yaml:"keychain"`
		LockStale string `yaml:"lock_stale"`
	}{
		Host:      def.Host,
		SSHDir:    def.SSHDir,
		KeyPrefix: def.KeyPrefix,
		Keychain:  def.Keychain,
		LockStale: def.LockStale.String(),
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize default config", "")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Could not write config file: "+path,
			"Check directory permissions")
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
