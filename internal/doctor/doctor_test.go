package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCheck is a Check with a canned result.
type fakeCheck struct {
	name   string
	status CheckStatus
}

func (f *fakeCheck) Name() string     { return f.name }
func (f *fakeCheck) Category() string { return "TEST" }
func (f *fakeCheck) Run() CheckResult {
	return CheckResult{Name: f.name, Status: f.status, Message: f.name}
}

func TestRunAllPreservesOrder(t *testing.T) {
	checks := []Check{
		&fakeCheck{name: "a", status: StatusPass},
		&fakeCheck{name: "b", status: StatusFail},
		&fakeCheck{name: "c", status: StatusWarn},
	}

	results := RunAll(checks)

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
	assert.Equal(t, "c", results[2].Name)
}

func TestCountsAndSummary(t *testing.T) {
	results := []CheckResult{
		{Status: StatusPass},
		{Status: StatusPass},
		{Status: StatusWarn},
		{Status: StatusFail},
	}

	counts := CountByStatus(results)
	assert.Equal(t, 2, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusWarn])
	assert.Equal(t, 1, counts[StatusFail])

	assert.True(t, HasFailures(results))
	assert.True(t, HasIssues(results))
	assert.Equal(t, "2 issues found", Summary(results))

	clean := []CheckResult{{Status: StatusPass}}
	assert.False(t, HasFailures(clean))
	assert.False(t, HasIssues(clean))
	assert.Equal(t, "Everything looks good", Summary(clean))

	one := []CheckResult{{Status: StatusFail}}
	assert.Equal(t, "1 issue found", Summary(one))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "unknown", CheckStatus(9).String())
}

func TestStatusMarshalJSON(t *testing.T) {
	data, err := StatusWarn.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"warn"`, string(data))
}

func TestToolchainCheck(t *testing.T) {
	present := &ToolchainCheck{Probe: func() bool { return true }}
	assert.Equal(t, StatusPass, present.Run().Status)

	absent := &ToolchainCheck{Probe: func() bool { return false }}
	result := absent.Run()
	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Suggestion, "xcode-select --install")
}

func TestSSHDirCheck(t *testing.T) {
	t.Run("missing dir warns", func(t *testing.T) {
		c := &SSHDirCheck{Dir: filepath.Join(t.TempDir(), "nope")}
		assert.Equal(t, StatusWarn, c.Run().Status)
	})

	t.Run("correct permissions pass", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".ssh")
		require.NoError(t, os.Mkdir(dir, 0700))
		c := &SSHDirCheck{Dir: dir}
		assert.Equal(t, StatusPass, c.Run().Status)
	})

	t.Run("loose permissions warn", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".ssh")
		require.NoError(t, os.Mkdir(dir, 0755))
		c := &SSHDirCheck{Dir: dir}
		result := c.Run()
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Suggestion, "chmod 700")
	})
}

func TestKeyPairCheck(t *testing.T) {
	t.Run("missing key fails", func(t *testing.T) {
		c := &KeyPairCheck{KeyPath: filepath.Join(t.TempDir(), "absent")}
		assert.Equal(t, StatusFail, c.Run().Status)
	})

	t.Run("complete pair passes", func(t *testing.T) {
		dir := t.TempDir()
		keyPath := filepath.Join(dir, "id_ed25519_gh_test")
		require.NoError(t, os.WriteFile(keyPath, []byte("private"), 0600))
		require.NoError(t, os.WriteFile(keyPath+".pub", []byte("public"), 0644))

		c := &KeyPairCheck{KeyPath: keyPath}
		assert.Equal(t, StatusPass, c.Run().Status)
	})

	t.Run("loose private key perms warn", func(t *testing.T) {
		dir := t.TempDir()
		keyPath := filepath.Join(dir, "id_ed25519_gh_test")
		require.NoError(t, os.WriteFile(keyPath, []byte("private"), 0644))
		require.NoError(t, os.WriteFile(keyPath+".pub", []byte("public"), 0644))

		c := &KeyPairCheck{KeyPath: keyPath}
		assert.Equal(t, StatusWarn, c.Run().Status)
	})

	t.Run("missing public half warns", func(t *testing.T) {
		dir := t.TempDir()
		keyPath := filepath.Join(dir, "id_ed25519_gh_test")
		require.NoError(t, os.WriteFile(keyPath, []byte("private"), 0600))

		c := &KeyPairCheck{KeyPath: keyPath}
		result := c.Run()
		assert.Equal(t, StatusWarn, result.Status)
		assert.Contains(t, result.Suggestion, "ssh-keygen -y")
	})
}

func TestConfigStanzaCheck(t *testing.T) {
	t.Run("missing stanza fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		c := &ConfigStanzaCheck{ConfigPath: path, Host: "github.com"}
		assert.Equal(t, StatusFail, c.Run().Status)
	})

	t.Run("present stanza passes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		content := "Host github.com\n    IdentityFile ~/.ssh/id_ed25519_gh_test\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		c := &ConfigStanzaCheck{ConfigPath: path, Host: "github.com"}
		assert.Equal(t, StatusPass, c.Run().Status)
	})
}
