// Package platform guards against unsupported operating systems and derives
// the per-device key identifier from the machine's display name.
package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/stokesdev/ghkey/internal/errors"
)

// Supported is the only operating system ghkey runs on.
const Supported = "darwin"

// Check returns nil when running on macOS, a PLATFORM error otherwise.
func Check() error {
	return checkGOOS(runtime.GOOS)
}

func checkGOOS(goos string) error {
	if goos == Supported {
		return nil
	}
	return errors.New(errors.ErrPlatform,
		"This tool only supports macOS",
		"Keychain and Command Line Tools integration have no equivalent here")
}

// DeviceName returns the machine's human-readable display name.
// It prefers `scutil --get ComputerName` (the name shown in System Settings)
// and falls back to the kernel hostname.
func DeviceName() (string, error) {
	out, err := exec.Command("scutil", "--get", "ComputerName").Output()
	if err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name, nil
		}
	}

	host, err := os.Hostname()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Could not determine this machine's name",
			"Check that scutil works: scutil --get ComputerName")
	}
	return host, nil
}

// Slug normalizes a device name into a filesystem-safe identifier:
// lowercase, every run of non-alphanumeric characters collapsed to a single
// hyphen, leading and trailing hyphens stripped. The result matches
// ^[a-z0-9]+(-[a-z0-9]+)*$ or is empty, and Slug(Slug(x)) == Slug(x).
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
