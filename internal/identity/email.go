// Package identity collects and validates the email address used as the
// SSH key comment.
package identity

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/stokesdev/ghkey/internal/errors"
)

// emailPattern is deliberately loose: one local part, one @, and a domain
// with at least one dot. GitHub does the real validation when the key is
// registered; this only catches obvious typos before they end up baked into
// a key comment.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// ValidateEmail checks that s is a plausible email address.
// An empty string and a malformed address are distinct errors so the wizard
// can report them differently.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)

	if s == "" {
		return errors.New(errors.ErrInput,
			"Email is required",
			"Enter the address associated with your GitHub account")
	}

	if !emailPattern.MatchString(s) {
		return errors.New(errors.ErrInput,
			"That doesn't look like an email address: "+s,
			"Expected something like dev@example.com")
	}

	return nil
}

// PromptEmail asks for the user's email with inline validation.
func PromptEmail() (string, error) {
	var email string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub email address").
				Description("Used as the comment on the generated key").
				Validate(ValidateEmail).
				Value(&email),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read email address",
			"Re-run ghkey from an interactive terminal")
	}

	return strings.TrimSpace(email), nil
}
