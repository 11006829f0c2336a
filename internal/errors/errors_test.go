package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrInput, "Email is required", "Enter the address you use with GitHub")

	assert.Equal(t, ErrInput, err.Code)
	assert.Equal(t, "Email is required", err.Message)
	assert.Equal(t, "Enter the address you use with GitHub", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "message only",
			err:      New(ErrPlatform, "Unsupported platform", ""),
			contains: []string{"✗ Unsupported platform"},
		},
		{
			name:     "message and suggestion",
			err:      New(ErrToolchain, "Command Line Tools not installed", "Run xcode-select --install"),
			contains: []string{"✗ Command Line Tools not installed", "Run xcode-select --install"},
		},
		{
			name:     "message, cause, and suggestion",
			err:      WrapWithCode(fmt.Errorf("exit status 1"), ErrKeygen, "ssh-keygen failed", "Check that OpenSSH is installed"),
			contains: []string{"✗ ssh-keygen failed", "exit status 1", "Check that OpenSSH is installed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := WrapWithCode(cause, ErrKeychain, "ssh-add failed", "")

	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config file is invalid", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrInput))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(fmt.Errorf("plain error"), ErrConfig))

	// Wrapped structured errors are still found via errors.As
	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsCode(wrapped, ErrConfig))
}

func TestWrapDefaultsToExec(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), "Command failed")
	assert.Equal(t, ErrExec, err.Code)
	assert.NotNil(t, err.Cause)
}
