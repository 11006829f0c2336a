// Package sshconfig manages the Host stanza ghkey adds to ~/.ssh/config.
//
// Stanza presence is decided structurally: the config is parsed and compared
// by Host pattern rather than by substring, so commented-out or lookalike
// lines don't count as an existing entry.
package sshconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"

	"github.com/stokesdev/ghkey/internal/errors"
)

// DefaultHost is the host the generated key authenticates to.
const DefaultHost = "github.com"

// Stanza renders the config block for host pointing at keyPath.
func Stanza(host, keyPath string) string {
	return fmt.Sprintf("Host %s\n    AddKeysToAgent yes\n    UseKeychain yes\n    IdentityFile %s\n", host, keyPath)
}

// HasHost reports whether the config file at path already contains a stanza
// whose Host pattern equals host exactly. Wildcard patterns (Host *) do not
// count: the question is whether this tool's stanza exists, not whether SSH
// would match the host. A missing config file is not an error.
func HasHost(path, host string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Could not read SSH config: "+path,
			"Check file permissions")
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Could not parse SSH config: "+path,
			"Fix the syntax error or move the file aside")
	}

	for _, h := range cfg.Hosts {
		for _, pattern := range h.Patterns {
			if pattern.String() == host {
				return true, nil
			}
		}
	}
	return false, nil
}

// EnsureStanza appends the stanza for host to the config file at path unless
// a stanza for that host already exists. It returns whether a stanza was
// added. The parent directory is created 0700 and the config file ends up
// 0600 after a write. Append is the only mutation: existing content is never
// rewritten or removed.
//
// When the host is already present the existing stanza is left untouched even
// if it points at a different key; the caller is expected to warn.
func EnsureStanza(path, host, keyPath string) (bool, error) {
	exists, err := HasHost(path, host)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Could not create SSH directory",
			"Check permissions on your home directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Could not open SSH config for appending: "+path,
			"Check file permissions")
	}
	defer f.Close()

	block := Stanza(host, keyPath)
	if sep := separatorFor(path); sep != "" {
		block = sep + block
	}

	if _, err := f.WriteString(block); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Could not write SSH config stanza",
			"Check disk space and file permissions")
	}

	if err := os.Chmod(path, 0600); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Could not restrict SSH config permissions", "")
	}

	return true, nil
}

// separatorFor returns the newlines needed before appending so the stanza
// starts on its own line with a blank line above it.
func separatorFor(path string) string {
	content, err := os.ReadFile(path)
	if err != nil || len(content) == 0 {
		return ""
	}
	if strings.HasSuffix(string(content), "\n\n") {
		return ""
	}
	if strings.HasSuffix(string(content), "\n") {
		return "\n"
	}
	return "\n\n"
}
