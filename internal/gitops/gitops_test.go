package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tester = Identity{Name: "Test Author", Email: "test@example.com"}

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not available")
	}
}

func gitLog(t *testing.T, dir, format string) string {
	t.Helper()
	cmd := exec.Command("git", "log", "--format="+format, "-1")
	cmd.Dir = dir
	out, err := cmd.Output()
	require.NoError(t, err)
	return strings.TrimSpace(string(out))
}

func TestOpen_InitializesOnce(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	r := &Repo{Dir: dir}
	assert.False(t, r.Exists(), "empty dir should not be a repo")

	r, err := Open(dir, tester)
	require.NoError(t, err)
	assert.True(t, r.Exists())

	// A marker inside .git survives a second Open.
	marker := filepath.Join(dir, ".git", "payrecon-marker")
	require.NoError(t, os.WriteFile(marker, nil, 0o644))
	_, err = Open(dir, tester)
	require.NoError(t, err)
	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	r, err := Open(dir, tester)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.txt"), []byte("hello"), 0o644))

	hash, err := r.CommitAll("init: test commit")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.Equal(t, hash, gitLog(t, dir, "%h"))
	assert.Equal(t, "init: test commit", gitLog(t, dir, "%s"))
	assert.Equal(t, "Test Author <test@example.com>|Test Author <test@example.com>",
		gitLog(t, dir, "%an <%ae>|%cn <%ce>"))
}

func TestCommitAll_NothingToCommit(t *testing.T) {
	requireGit(t)
	r, err := Open(t.TempDir(), tester)
	require.NoError(t, err)

	_, err = r.CommitAll("empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git commit")
}

func TestIdentity_String(t *testing.T) {
	assert.Equal(t, "Test Author <test@example.com>", tester.String())
}
