// Package keygen generates the per-device Ed25519 keypair via ssh-keygen.
package keygen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/stokesdev/ghkey/internal/errors"
)

const (
	// keyPrefix is the default filename prefix for generated keys.
	keyPrefix = "id_ed25519_gh"

	// fallbackDevice names the key when the device slug comes out empty
	// (a machine name made entirely of punctuation).
	fallbackDevice = "mac"
)

// KeyName returns the key filename for a device slug: id_ed25519_gh_<device>.
func KeyName(device string) string {
	return KeyNameWithPrefix(keyPrefix, device)
}

// KeyNameWithPrefix builds a key filename from a configured prefix.
func KeyNameWithPrefix(prefix, device string) string {
	if device == "" {
		device = fallbackDevice
	}
	return prefix + "_" + device
}

// PublicPath returns the public key path for a private key path.
func PublicPath(keyPath string) string {
	return keyPath + ".pub"
}

// Exists reports whether a private key file is present at keyPath.
func Exists(keyPath string) bool {
	_, err := os.Stat(keyPath)
	return err == nil
}

// Generate creates a new Ed25519 keypair at keyPath with the email as the
// key comment and an empty passphrase. The parent directory is created with
// mode 0700 if needed; the private key ends up 0600 and the public key 0644.
//
// Generate performs no existence check: deciding whether an existing key may
// be overwritten is the caller's job (see Decide). ssh-keygen prompts on an
// existing file, so callers must remove the old pair first.
func Generate(email, keyPath string) error {
	sshDir := filepath.Dir(keyPath)
	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			fmt.Sprintf("Failed to create SSH directory: %s", sshDir),
			"Check permissions on your home directory")
	}

	cmd := exec.Command("ssh-keygen",
		"-t", "ed25519",
		"-C", email,
		"-N", "",
		"-f", keyPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			fmt.Sprintf("ssh-keygen failed: %s", strings.TrimSpace(string(output))),
			"Ensure the Command Line Tools are installed")
	}

	// ssh-keygen already writes 0600/0644, but permissions are an invariant
	// here, not an inherited default.
	if err := os.Chmod(keyPath, 0600); err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			"Could not restrict private key permissions", "")
	}
	if err := os.Chmod(PublicPath(keyPath), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrKeygen,
			"Could not set public key permissions", "")
	}

	return nil
}

// RemovePair deletes both halves of a keypair. Missing files are not errors:
// the point is that nothing is left at either path afterwards.
func RemovePair(keyPath string) error {
	for _, p := range []string{keyPath, PublicPath(keyPath)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.WrapWithCode(err, errors.ErrKeygen,
				fmt.Sprintf("Could not remove %s", p),
				"Check file permissions")
		}
	}
	return nil
}
