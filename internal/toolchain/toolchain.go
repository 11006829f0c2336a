// Package toolchain checks for and installs the Xcode Command Line Tools,
// which provide the ssh-keygen and git binaries the rest of setup relies on.
package toolchain

import (
	"os"
	"os/exec"
	"strings"

	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/logger"
	"github.com/stokesdev/ghkey/internal/ui"
)

// Manager probes for and installs the developer toolchain. The command
// hooks are injectable so the install flow can be tested without a GUI.
type Manager struct {
	// Probe reports whether the toolchain is present.
	Probe func() bool

	// Trigger launches the OS installer. It returns as soon as the
	// installer UI has been opened; there is no completion signal.
	Trigger func() error

	// WaitKey blocks until the user presses a single key. This is the
	// manual synchronization barrier for the external installer.
	WaitKey func() error

	Log logger.Logger
}

// New returns a Manager wired to xcode-select.
func New() *Manager {
	return &Manager{
		Probe:   Installed,
		Trigger: trigger,
		WaitKey: func() error { return WaitForKeypress(os.Stdin) },
		Log:     logger.NewEnvLogger("[toolchain]"),
	}
}

// Installed reports whether the Command Line Tools are present.
// xcode-select -p exits nonzero when no developer directory is configured.
func Installed() bool {
	return exec.Command("xcode-select", "-p").Run() == nil
}

// trigger opens the Command Line Tools installer dialog.
func trigger() error {
	out, err := exec.Command("xcode-select", "--install").CombinedOutput()
	if err != nil {
		// xcode-select --install exits nonzero when the tools are already
		// installed; that is not a failure for our purposes.
		if strings.Contains(string(out), "already installed") {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrToolchain,
			"Could not launch the Command Line Tools installer",
			"Run it manually: xcode-select --install")
	}
	return nil
}

// EnsureInstalled probes for the toolchain and, if absent, triggers the
// installer and blocks on a keypress before re-probing. The install is not
// retried: a second failed probe is fatal.
func (m *Manager) EnsureInstalled(status *ui.Status) error {
	if m.Probe() {
		m.Log.Debug("toolchain present")
		status.Successf("Xcode Command Line Tools installed")
		return nil
	}

	status.Warnf("Xcode Command Line Tools not found, launching installer")
	if err := m.Trigger(); err != nil {
		return err
	}

	status.Infof("Finish the installation in the dialog, then press any key to continue")
	if err := m.WaitKey(); err != nil {
		return errors.WrapWithCode(err, errors.ErrToolchain,
			"Could not read from the terminal",
			"Re-run ghkey from an interactive terminal")
	}

	if !m.Probe() {
		return errors.New(errors.ErrToolchain,
			"Command Line Tools are still not installed",
			"Complete the installer, then re-run ghkey")
	}

	status.Successf("Xcode Command Line Tools installed")
	return nil
}
