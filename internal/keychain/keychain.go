// Package keychain loads the private key into the SSH agent and persists
// the passphrase material in the macOS keychain.
package keychain

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/logger"
)

// runCommand executes a command and returns its combined output. Swappable
// in tests.
var runCommand = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

var log = logger.NewEnvLogger("[keychain]")

// AddKey registers the private key with the SSH agent, storing it in the
// macOS keychain so it survives reboots. No duplicate check is made; ssh-add
// handles repeated additions of the same key itself.
func AddKey(keyPath string) error {
	log.Debug("ssh-add --apple-use-keychain %s", keyPath)

	output, err := runCommand("ssh-add", "--apple-use-keychain", keyPath)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrKeychain,
			fmt.Sprintf("ssh-add failed: %s", strings.TrimSpace(string(output))),
			"Check that the key exists and the ssh-agent is running")
	}

	return nil
}

// AgentHasKey reports whether the agent currently lists the public key's
// fingerprint. Used by doctor; failures read as "not loaded".
func AgentHasKey(pubKeyLine string) bool {
	output, err := runCommand("ssh-add", "-L")
	if err != nil {
		return false
	}

	want := strings.TrimSpace(pubKeyLine)
	if want == "" {
		return false
	}

	// Compare on the key blob only; comments may differ between the file
	// and what the agent reports.
	wantFields := strings.Fields(want)
	if len(wantFields) < 2 {
		return false
	}

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == wantFields[0] && fields[1] == wantFields[1] {
			return true
		}
	}
	return false
}
