package platform

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stokesdev/ghkey/internal/errors"
)

func TestCheckGOOS(t *testing.T) {
	assert.NoError(t, checkGOOS("darwin"))

	for _, goos := range []string{"linux", "windows", "freebsd", ""} {
		err := checkGOOS(goos)
		assert.Error(t, err, "goos %q should be rejected", goos)
		assert.True(t, errors.IsCode(err, errors.ErrPlatform))
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple name lowercased",
			input: "Macbook",
			want:  "macbook",
		},
		{
			name:  "spaces become hyphens",
			input: "Riley's MacBook Pro",
			want:  "riley-s-macbook-pro",
		},
		{
			name:  "run of punctuation collapses to one hyphen",
			input: "dev -- box!!",
			want:  "dev-box",
		},
		{
			name:  "leading and trailing separators stripped",
			input: "  (work laptop)  ",
			want:  "work-laptop",
		},
		{
			name:  "digits preserved",
			input: "Mac Mini M2",
			want:  "mac-mini-m2",
		},
		{
			name:  "unicode treated as separator",
			input: "café—machine",
			want:  "caf-machine",
		},
		{
			name:  "only punctuation yields empty",
			input: "!!! ---",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlugShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"Riley's MacBook Pro",
		"UPPER lower 123",
		"--weird--input--",
		"çÇ unicode ☂ here",
		"plain",
	}

	for _, in := range inputs {
		got := Slug(in)
		if got != "" {
			assert.Regexp(t, shape, got, "input %q", in)
		}
		// Idempotence: normalizing twice equals normalizing once.
		assert.Equal(t, got, Slug(got), "input %q", in)
	}
}
