package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cleared-dev/payrecon/internal/commands"
)

// runPayrecon executes the CLI in-process with a config path inside a temp
// dir unless args already name one.
func runPayrecon(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	hasConfig := false
	for _, a := range args {
		if a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig && (len(args) == 0 || args[0] != "init") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	}

	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// initProject runs init in a temp dir and returns its path.
func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, _, err := runPayrecon(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return dir
}
