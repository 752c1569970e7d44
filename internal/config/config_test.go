package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitrdm/minotaur/pkg/labyrinth"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minotaur.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "minotaur.db", cfg.Store.Path)
	assert.Zero(t, cfg.Solver.MaxSteps)
	assert.Zero(t, cfg.Solver.Workers)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)

	l, err := cfg.Layout.Layout()
	require.NoError(t, err)
	assert.Equal(t, labyrinth.Reference(), l)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
store:
  path: /tmp/runs.db
solver:
  max_steps: 5000
  workers: 2
log:
  level: debug
layout:
  name: corridor
  width: 3
  height: 1
  doors:
    - "1:1 -> 2:1"
    - "2:1 -> 3:1"
  entrances: ["1:1"]
  exits: ["3:1"]
  hazards: ["2:1"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/runs.db", cfg.Store.Path)
	assert.Equal(t, int64(5000), cfg.Solver.MaxSteps)
	assert.Equal(t, 2, cfg.Solver.Workers)
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	l, err := cfg.Layout.Layout()
	require.NoError(t, err)
	assert.Equal(t, "corridor", l.Name)
	assert.Equal(t, []labyrinth.Door{
		{From: labyrinth.Room{X: 1, Y: 1}, To: labyrinth.Room{X: 2, Y: 1}},
		{From: labyrinth.Room{X: 2, Y: 1}, To: labyrinth.Room{X: 3, Y: 1}},
	}, l.Doors)
	assert.Equal(t, []labyrinth.Room{{X: 2, Y: 1}}, l.Hazards)
}

func TestLoadFileWithoutLayout(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "reference", cfg.Layout.Name)
	assert.Len(t, cfg.Layout.Doors, 18)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MINOTAUR_SOLVER_MAX_STEPS", "250")
	t.Setenv("MINOTAUR_STORE_PATH", "env.db")

	cfg, err := Load(writeConfig(t, "solver:\n  max_steps: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(250), cfg.Solver.MaxSteps)
	assert.Equal(t, "env.db", cfg.Store.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLayoutSpecErrors(t *testing.T) {
	spec := FromLayout(labyrinth.Reference())
	spec.Doors = append(spec.Doors, "1:1 => 1:2")
	_, err := spec.Layout()
	assert.ErrorIs(t, err, labyrinth.ErrSyntax)

	spec = FromLayout(labyrinth.Reference())
	spec.Hazards = []string{"9:9"}
	_, err = spec.Layout()
	assert.ErrorIs(t, err, labyrinth.ErrInvalidLayout)
}

func TestLayoutSpecRoundTrip(t *testing.T) {
	spec := FromLayout(labyrinth.Reference())
	assert.Equal(t, "1:2 -> 1:1", spec.Doors[0])
	assert.Equal(t, []string{"1:4", "4:4"}, spec.Entrances)

	l, err := spec.Layout()
	require.NoError(t, err)
	assert.Equal(t, labyrinth.Reference(), l)
}

func TestBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	_, err := cfg.LogLevel()
	assert.Error(t, err)
}
