package commands_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/payrecon/internal/runlog"
)

func TestReconcile_Record(t *testing.T) {
	dir := initProject(t)
	data := filepath.Join(dir, "data")
	logPath := filepath.Join(dir, "reports", "runs.csv")

	for range 2 {
		_, _, err := runPayrecon(t, "reconcile", "--data", data, "--record", "--run-log", logPath)
		require.NoError(t, err)
	}

	entries, err := runlog.Read(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].RunID, entries[1].RunID)
	assert.Equal(t, "dir:"+data, entries[0].Source)
	assert.Equal(t, 6, entries[0].Payments)
	assert.Equal(t, 2, entries[0].Matched)
	assert.Equal(t, "0.3333", entries[0].MatchRate.StringFixed(4))
}

func TestReconcile_NoRecordByDefault(t *testing.T) {
	dir := initProject(t)
	logPath := filepath.Join(dir, "reports", "runs.csv")

	_, _, err := runPayrecon(t, "reconcile", "--data", filepath.Join(dir, "data"), "--run-log", logPath)
	require.NoError(t, err)

	entries, err := runlog.Read(logPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory(t *testing.T) {
	dir := initProject(t)
	data := filepath.Join(dir, "data")
	logPath := filepath.Join(dir, "reports", "runs.csv")

	out, _, err := runPayrecon(t, "history", "--run-log", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs.")

	_, _, err = runPayrecon(t, "reconcile", "--data", data, "--record", "--run-log", logPath)
	require.NoError(t, err)
	_, _, err = runPayrecon(t, "reconcile", "--simulate", "--record", "--run-log", logPath)
	require.NoError(t, err)

	out, _, err = runPayrecon(t, "history", "--run-log", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "dir:"+data)
	assert.Contains(t, out, "simulated:seed=1")
	assert.Contains(t, out, "33.33%")

	out, _, err = runPayrecon(t, "history", "--run-log", logPath, "--format", "json", "-n", "1")
	require.NoError(t, err)
	var entries []runlog.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "simulated:seed=1", entries[0].Source)
}

func TestHistory_EmptyJSON(t *testing.T) {
	out, _, err := runPayrecon(t, "history", "--run-log", filepath.Join(t.TempDir(), "runs.csv"), "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestHistory_BadFormat(t *testing.T) {
	_, _, err := runPayrecon(t, "history", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
