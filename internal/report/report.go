// Package report prints the completion summary: the public key, its
// fingerprint, and the manual steps left for the user.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/crypto/ssh"

	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/ui"
)

const separator = "----------------------------------------------------------------"

// PublicKey reads and validates the public key file, returning the
// authorized_keys line and its SHA256 fingerprint.
func PublicKey(pubPath string) (line, fingerprint string, err error) {
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return "", "", errors.WrapWithCode(err, errors.ErrKeygen,
			"Could not read public key: "+pubPath,
			"Check that the file exists and is readable")
	}

	key, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return "", "", errors.WrapWithCode(err, errors.ErrKeygen,
			"Public key file is not a valid SSH key: "+pubPath,
			"Regenerate the key by re-running ghkey")
	}

	return strings.TrimSpace(string(data)), ssh.FingerprintSHA256(key), nil
}

// Print writes the completion report: the public key framed by separator
// lines, followed by the manual registration instructions.
func Print(w io.Writer, pubPath, host string) error {
	line, fingerprint, err := PublicKey(pubPath)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Your public key"))
	fmt.Fprintln(w, mutedStyle.Render(separator))
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, mutedStyle.Render(separator))
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("fingerprint:"), fingerprint)
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Next steps"))
	fmt.Fprintln(w, "  1. Copy the key above")
	fmt.Fprintf(w, "  2. Add it at https://%s/settings/keys\n", host)
	fmt.Fprintf(w, "  3. Test the connection: ssh -T git@%s\n", host)
	fmt.Fprintln(w)

	return nil
}
