// Package gitops versions a payrecon project directory with git.
package gitops

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Identity names the author and committer of commits made by a Repo.
type Identity struct {
	Name  string
	Email string
}

func (id Identity) String() string {
	return fmt.Sprintf("%s <%s>", id.Name, id.Email)
}

// Repo runs git commands inside Dir.
type Repo struct {
	Dir string
	As  Identity
}

// Open returns a Repo for dir, initializing it when dir is not yet a
// repository.
func Open(dir string, as Identity) (*Repo, error) {
	r := &Repo{Dir: dir, As: as}
	if r.Exists() {
		return r, nil
	}
	if _, err := r.run("init", "--quiet"); err != nil {
		return nil, err
	}
	return r, nil
}

// Exists reports whether Dir is the root of a git repository.
func (r *Repo) Exists() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

// CommitAll stages every change and commits it. Returns the short hash.
func (r *Repo) CommitAll(message string) (string, error) {
	if _, err := r.run("add", "-A"); err != nil {
		return "", err
	}
	if _, err := r.run("commit", "--quiet", "-m", message, "--author", r.As.String()); err != nil {
		return "", err
	}
	return r.run("rev-parse", "--short", "HEAD")
}

// run executes git with args and returns trimmed stdout. The committer is
// set from As so commits work without a global git identity.
func (r *Repo) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+r.As.Name,
		"GIT_COMMITTER_EMAIL="+r.As.Email,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
