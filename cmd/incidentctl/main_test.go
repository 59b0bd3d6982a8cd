package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/incident-desk/internal/auth"
)

func run(t *testing.T, file string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--file", file}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, file string, args ...string) string {
	t.Helper()
	out, err := run(t, file, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func addArgs(name string) []string {
	return []string{"add", "--caller", "caller", "--category", "Software", "--priority", "High", "--name", name, "--note", "workNote"}
}

func TestAddListShow(t *testing.T) {
	file := filepath.Join(t.TempDir(), "desk.yaml")

	assert.Equal(t, "Created incident #0\n", mustRun(t, file, addArgs("mail down")...))
	assert.Equal(t, "Created incident #1\n", mustRun(t, file, addArgs("vpn flaky")...))

	out := mustRun(t, file, "list")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "mail down")
	assert.Contains(t, out, "vpn flaky")

	out = mustRun(t, file, "list", "--category", "Hardware")
	assert.NotContains(t, out, "mail down")

	out = mustRun(t, file, "show", "1")
	assert.Contains(t, out, "State:    New")
	assert.Contains(t, out, "Actions:  INVESTIGATE, CANCEL")
	assert.Contains(t, out, "workNote\n-------\n")
}

func TestDispatchLifecycle(t *testing.T) {
	file := filepath.Join(t.TempDir(), "desk.json")
	mustRun(t, file, addArgs("mail down")...)

	out := mustRun(t, file, "dispatch", "0", "--action", "INVESTIGATE", "--owner", "zmei", "--note", "mine")
	assert.Equal(t, "Incident #0 is now In Progress\n", out)

	out = mustRun(t, file, "dispatch", "0", "--action", "Hold", "--hold-reason", "Awaiting Change", "--note", "cr-7")
	assert.Equal(t, "Incident #0 is now On Hold\n", out)

	mustRun(t, file, "dispatch", "0", "--action", "REOPEN", "--note", "cr-7 applied")
	out = mustRun(t, file, "show", "0")
	assert.Contains(t, out, "Change:   cr-7 applied")

	_, err := run(t, file, "dispatch", "0", "--action", "CONFIRM", "--note", "early")
	assert.ErrorContains(t, err, "CONFIRM")

	_, err = run(t, file, "dispatch", "0", "--action", "RESOLVE", "--note", "no code")
	assert.Error(t, err)

	_, err = run(t, file, "dispatch", "5", "--action", "CONFIRM", "--note", "n")
	assert.ErrorContains(t, err, "not found")
}

func TestCanceledDispatchClearsOwnerOnDisk(t *testing.T) {
	file := filepath.Join(t.TempDir(), "desk.yaml")
	mustRun(t, file, addArgs("dup")...)
	mustRun(t, file, "dispatch", "0", "--action", "INVESTIGATE", "--owner", "zmei", "--note", "mine")
	mustRun(t, file, "dispatch", "0", "--action", "CANCEL", "--cancellation", "Duplicate", "--note", "dup of #3")

	assert.Contains(t, mustRun(t, file, "show", "0"), "Owner:    zmei")

	_, err := run(t, file, "dispatch", "0", "--action", "REOPEN", "--note", "again")
	require.Error(t, err)
	assert.NotContains(t, mustRun(t, file, "show", "0"), "Owner:")
}

func TestImportExportResetDelete(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "desk.yaml")
	mustRun(t, file, addArgs("one")...)
	mustRun(t, file, addArgs("two")...)

	exported := filepath.Join(dir, "copy.json")
	mustRun(t, file, "export", exported)

	other := filepath.Join(dir, "other.yaml")
	assert.Equal(t, "Imported 2 incident(s)\n", mustRun(t, other, "import", exported))
	assert.Equal(t, "Created incident #2\n", mustRun(t, other, addArgs("three")...))

	_, err := run(t, other, "import", exported)
	assert.Error(t, err, "ids already loaded")

	mustRun(t, other, "delete", "1")
	mustRun(t, other, "delete", "42")
	out := mustRun(t, other, "list")
	assert.NotContains(t, out, "two")
	assert.Contains(t, out, "three")

	mustRun(t, other, "reset")
	assert.Equal(t, "Created incident #0\n", mustRun(t, other, addArgs("fresh")...))
}

func TestBadArguments(t *testing.T) {
	file := filepath.Join(t.TempDir(), "desk.yaml")

	_, err := run(t, file, "show", "abc")
	assert.ErrorContains(t, err, "invalid incident id")

	_, err = run(t, file, "add", "--caller", "c", "--category", "Printers", "--priority", "High", "--name", "n", "--note", "w")
	assert.ErrorContains(t, err, "Printers")

	_, err = run(t, file, "list", "--category", "Printers")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	out := mustRun(t, filepath.Join(t.TempDir(), "desk.yaml"), "token", "--subject", "zmei", "--role", "supervisor")

	claims, err := auth.NewTokenManager("cli-secret", 60).ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "zmei", claims.OperatorID)
	assert.Equal(t, auth.RoleSupervisor, claims.Role)

	_, err = run(t, filepath.Join(t.TempDir(), "desk.yaml"), "token", "--subject", "zmei", "--role", "root")
	assert.Error(t, err)
}
