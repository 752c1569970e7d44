package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line with a database in dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", filepath.Join(dir, "minotaur.db")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestDoorsAndRoles(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "doors")
	assert.True(t, strings.HasPrefix(out, "18 doors in reference\n"), out)
	assert.Contains(t, out, "  4:4 -> 3:4\n")

	out = mustRun(t, dir, "roles")
	assert.Contains(t, out, "entrance: 1:4 4:4\n")
	assert.Contains(t, out, "exit: 1:1 4:3\n")
	assert.Contains(t, out, "hazard: 3:2\n")
}

func TestPath(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "path", "4:4", "3:2")
	assert.True(t, strings.HasPrefix(out, "2 paths from 4:4 to 3:2\n"), out)

	out = mustRun(t, dir, "path", "4:4", "3:2", "--level", "7")
	assert.True(t, strings.HasPrefix(out, "1 paths from 4:4 to 3:2 on 7 charges\n"), out)
	assert.Contains(t, out, "4:4 -> 3:4 -> 2:4 -> 2:3 -> 2:2 -> 3:2 (6 rooms)")

	_, err := run(t, dir, "path", "4:4", "three")
	assert.Error(t, err)
}

func TestWinning(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "winning", "7")
	assert.Equal(t, "1 winning routes on 7 charges\n  1:4 -> 1:3 -> 1:2 -> 2:2 -> 3:2 -> 4:2 -> 4:3 (7 rooms)\n", out)

	out = mustRun(t, dir, "winning", "10")
	assert.True(t, strings.HasPrefix(out, "4 winning routes on 10 charges\n"), out)

	_, err := run(t, dir, "winning", "-1")
	assert.Error(t, err)
	_, err = run(t, dir, "--max-steps", "10", "winning", "10")
	assert.ErrorContains(t, err, "step limit")
}

func TestSweep(t *testing.T) {
	out := mustRun(t, t.TempDir(), "sweep", "--min", "6", "--max", "10", "--workers", "3")
	assert.Equal(t, strings.Join([]string{
		"level  winning",
		"    6        0",
		"    7        1",
		"    8        2",
		"    9        2",
		"   10        4",
		"",
	}, "\n"), out)

	_, err := run(t, t.TempDir(), "sweep", "--min", "5", "--max", "4")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "check", "7", "1:4", "1:3", "1:2", "2:2", "3:2", "4:2", "4:3")
	assert.Contains(t, out, "is a winning route on 7 charges")

	out = mustRun(t, dir, "check", "6", "1:4 -> 1:3 -> 1:2 -> 2:2 -> 3:2 -> 4:2 -> 4:3")
	assert.Contains(t, out, "is not a winning route on 6 charges")
}

func TestStoredLayouts(t *testing.T) {
	dir := t.TempDir()

	assert.Contains(t, mustRun(t, dir, "seed"), "stored layout reference (18 doors)")
	mustRun(t, dir, "seed", "--name", "copy")
	assert.Equal(t, "copy\nreference\n", mustRun(t, dir, "layouts"))

	out := mustRun(t, dir, "--layout", "copy", "winning", "10")
	assert.True(t, strings.HasPrefix(out, "4 winning routes"), out)

	_, err := run(t, dir, "--layout", "missing", "doors")
	assert.ErrorContains(t, err, "layout not found")
}

func TestExportLoadsBack(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "export")
	assert.Contains(t, out, "layout:\n  name: reference\n")

	path := filepath.Join(dir, "exported.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	out = mustRun(t, dir, "--config", path, "doors")
	assert.True(t, strings.HasPrefix(out, "18 doors in reference\n"), out)
}

func TestCorridorConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corridor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
layout:
  name: corridor
  width: 3
  height: 1
  doors: ["1:1 -> 2:1", "2:1 -> 3:1"]
  entrances: ["1:1"]
  exits: ["3:1"]
  hazards: ["2:1"]
`), 0o644))

	out := mustRun(t, dir, "--config", path, "winning", "3")
	assert.Equal(t, "1 winning routes on 3 charges\n  1:1 -> 2:1 -> 3:1 (3 rooms)\n", out)
}

func TestCyclicConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
layout:
  name: loop
  width: 2
  height: 1
  doors: ["1:1 -> 2:1", "2:1 -> 1:1"]
  entrances: ["1:1"]
  exits: ["2:1"]
  hazards: ["2:1"]
`), 0o644))

	out := mustRun(t, dir, "--config", path, "winning", "4", "--limit", "3")
	assert.True(t, strings.HasPrefix(out, "2 winning routes on 4 charges\n"), out)

	out = mustRun(t, dir, "--config", path, "check", "2", "1:1 -> 2:1")
	assert.Contains(t, out, "is a winning route on 2 charges")

	_, err := run(t, dir, "--config", path, "path", "1:1", "2:1")
	assert.ErrorContains(t, err, "unbounded search")
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--record", "winning", "8")
	mustRun(t, dir, "--record", "path", "4:4", "3:2")
	mustRun(t, dir, "winning", "9")

	out := mustRun(t, dir, "history")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, out)
	assert.Contains(t, lines[0], "path 4:4 3:2")
	assert.Contains(t, lines[1], "winning")
	assert.Contains(t, lines[1], "2 solutions")
}

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	assert.True(t, strings.HasPrefix(out, "minotaur 0.3.0 ("), out)
}
