package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/stokesdev/ghkey/internal/config"
	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/identity"
	"github.com/stokesdev/ghkey/internal/keychain"
	"github.com/stokesdev/ghkey/internal/keygen"
	"github.com/stokesdev/ghkey/internal/lock"
	"github.com/stokesdev/ghkey/internal/platform"
	"github.com/stokesdev/ghkey/internal/report"
	"github.com/stokesdev/ghkey/internal/sshconfig"
	"github.com/stokesdev/ghkey/internal/toolchain"
	"github.com/stokesdev/ghkey/internal/ui"
)

// runSetup drives the whole wizard. Every step returns an explicit error;
// the first failure aborts the run with exit code 1 and no rollback.
func runSetup() error {
	status := ui.NewStatus(os.Stdout)

	// Platform guard: everything after this assumes macOS.
	if err := platform.Check(); err != nil {
		return err
	}

	cfg, err := config.LoadDefault(cfgFile)
	if err != nil {
		return err
	}

	// One run at a time: key files and the SSH config are shared state.
	lk, err := lock.Acquire(cfg.ExpandedSSHDir(), cfg.LockStale)
	if err != nil {
		return err
	}
	defer lk.Release() //nolint:errcheck

	// Toolchain check, with the interactive install barrier if needed.
	if err := toolchain.New().EnsureInstalled(status); err != nil {
		return err
	}

	email, err := identity.PromptEmail()
	if err != nil {
		return err
	}

	keyPath, err := deviceKeyPath(cfg)
	if err != nil {
		return err
	}

	if err := ensureKey(status, email, keyPath); err != nil {
		return err
	}

	if cfg.Keychain {
		if err := keychain.AddKey(keyPath); err != nil {
			return err
		}
		status.Successf("Key added to the macOS keychain")
	}

	added, err := sshconfig.EnsureStanza(cfg.SSHConfigPath(), cfg.Host, keyPath)
	if err != nil {
		return err
	}
	if added {
		status.Successf("Added 'Host %s' stanza to %s", cfg.Host, cfg.SSHConfigPath())
	} else {
		status.Warnf("'Host %s' already configured in %s; check it points at %s",
			cfg.Host, cfg.SSHConfigPath(), keyPath)
	}

	return report.Print(os.Stdout, keygen.PublicPath(keyPath), cfg.Host)
}

// deviceKeyPath derives this machine's key path from its display name.
func deviceKeyPath(cfg *config.Config) (string, error) {
	name, err := platform.DeviceName()
	if err != nil {
		return "", err
	}
	device := platform.Slug(name)
	return filepath.Join(cfg.ExpandedSSHDir(), keygen.KeyNameWithPrefix(cfg.KeyPrefix, device)), nil
}

// ensureKey runs the overwrite decision and generates the keypair when the
// decision allows it. Keeping an existing key is not an error.
func ensureKey(status *ui.Status, email, keyPath string) error {
	decision, err := keygen.Decide(keyPath, func() (bool, error) {
		return confirmOverwrite(keyPath)
	})
	if err != nil {
		return err
	}

	switch decision {
	case keygen.KeepExisting:
		status.Skipf("Keeping existing key at %s", keyPath)
		return nil

	case keygen.Overwrite:
		if err := keygen.RemovePair(keyPath); err != nil {
			return err
		}

	case keygen.NoExistingKey:
		// Nothing to clear.
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Generating Ed25519 key at %s", keyPath))
	spinner.Start()

	if err := keygen.Generate(email, keyPath); err != nil {
		spinner.Fail()
		return err
	}

	spinner.Success()
	return nil
}

// confirmOverwrite asks whether to replace an existing key. The default is
// no: declining must never destroy anything.
func confirmOverwrite(keyPath string) (bool, error) {
	var overwrite bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("A key already exists at %s. Replace it?", keyPath)).
				Description("The old key stops working for any service it is registered with").
				Affirmative("Replace").
				Negative("Keep it").
				Value(&overwrite),
		),
	)

	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read confirmation",
			"Re-run ghkey from an interactive terminal")
	}

	return overwrite, nil
}
