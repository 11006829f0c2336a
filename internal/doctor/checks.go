package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/stokesdev/ghkey/internal/keychain"
	"github.com/stokesdev/ghkey/internal/keygen"
	"github.com/stokesdev/ghkey/internal/platform"
	"github.com/stokesdev/ghkey/internal/sshconfig"
	"github.com/stokesdev/ghkey/internal/toolchain"
)

// PlatformCheck verifies the host OS is supported.
type PlatformCheck struct{}

func (c *PlatformCheck) Name() string     { return "platform" }
func (c *PlatformCheck) Category() string { return "PLATFORM" }

func (c *PlatformCheck) Run() CheckResult {
	if err := platform.Check(); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Unsupported operating system",
			Suggestion: "ghkey only runs on macOS",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Running on macOS",
	}
}

// ToolchainCheck verifies the Xcode Command Line Tools are installed.
type ToolchainCheck struct {
	// Probe overrides the default toolchain probe in tests.
	Probe func() bool
}

func (c *ToolchainCheck) Name() string     { return "toolchain" }
func (c *ToolchainCheck) Category() string { return "TOOLCHAIN" }

func (c *ToolchainCheck) Run() CheckResult {
	probe := c.Probe
	if probe == nil {
		probe = toolchain.Installed
	}
	if !probe() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Xcode Command Line Tools not installed",
			Suggestion: "Install them: xcode-select --install",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Xcode Command Line Tools installed",
	}
}

// SSHKeygenCheck verifies ssh-keygen is on PATH.
type SSHKeygenCheck struct{}

func (c *SSHKeygenCheck) Name() string     { return "ssh_keygen" }
func (c *SSHKeygenCheck) Category() string { return "TOOLCHAIN" }

func (c *SSHKeygenCheck) Run() CheckResult {
	path, err := exec.LookPath("ssh-keygen")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "ssh-keygen not found",
			Suggestion: "Install the Command Line Tools: xcode-select --install",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "ssh-keygen found at " + path,
	}
}

// SSHDirCheck verifies the SSH directory exists with owner-only permissions.
type SSHDirCheck struct {
	Dir string
}

func (c *SSHDirCheck) Name() string     { return "ssh_dir" }
func (c *SSHDirCheck) Category() string { return "KEYS" }

func (c *SSHDirCheck) Run() CheckResult {
	info, err := os.Stat(c.Dir)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    c.Dir + " does not exist yet",
			Suggestion: "Run ghkey to create it",
		}
	}

	if perm := info.Mode().Perm(); perm != 0700 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s has permissions %04o, want 0700", c.Dir, perm),
			Suggestion: "Fix it: chmod 700 " + c.Dir,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: c.Dir + " exists with owner-only permissions",
	}
}

// KeyPairCheck verifies the per-device keypair exists with correct modes.
type KeyPairCheck struct {
	KeyPath string
}

func (c *KeyPairCheck) Name() string     { return "key_pair" }
func (c *KeyPairCheck) Category() string { return "KEYS" }

func (c *KeyPairCheck) Run() CheckResult {
	if !keygen.Exists(c.KeyPath) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No key at " + c.KeyPath,
			Suggestion: "Run ghkey to generate one",
		}
	}

	info, err := os.Stat(c.KeyPath)
	if err == nil && info.Mode().Perm() != 0600 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Private key has permissions %04o, want 0600", info.Mode().Perm()),
			Suggestion: "Fix it: chmod 600 " + c.KeyPath,
		}
	}

	if !keygen.Exists(keygen.PublicPath(c.KeyPath)) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Private key exists but its public half is missing",
			Suggestion: "Recover it: ssh-keygen -y -f " + c.KeyPath + " > " + keygen.PublicPath(c.KeyPath),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Key pair present at " + c.KeyPath,
	}
}

// ConfigStanzaCheck verifies ~/.ssh/config has a stanza for the host.
type ConfigStanzaCheck struct {
	ConfigPath string
	Host       string
}

func (c *ConfigStanzaCheck) Name() string     { return "config_stanza" }
func (c *ConfigStanzaCheck) Category() string { return "CONFIG" }

func (c *ConfigStanzaCheck) Run() CheckResult {
	present, err := sshconfig.HasHost(c.ConfigPath, c.Host)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Could not parse " + c.ConfigPath,
			Suggestion: "Fix the syntax error or move the file aside",
		}
	}
	if !present {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("No 'Host %s' stanza in %s", c.Host, c.ConfigPath),
			Suggestion: "Run ghkey to add one",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("'Host %s' stanza present", c.Host),
	}
}

// AgentKeyCheck verifies the key is loaded in the SSH agent.
type AgentKeyCheck struct {
	PubPath string
}

func (c *AgentKeyCheck) Name() string     { return "agent_key" }
func (c *AgentKeyCheck) Category() string { return "KEYCHAIN" }

func (c *AgentKeyCheck) Run() CheckResult {
	data, err := os.ReadFile(c.PubPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Cannot check agent: public key unreadable",
			Suggestion: "Run ghkey to generate the key first",
		}
	}

	if !keychain.AgentHasKey(string(data)) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Key is not loaded in the SSH agent",
			Suggestion: "Load it: ssh-add --apple-use-keychain <key path>",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Key loaded in the SSH agent",
	}
}
