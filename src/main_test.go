package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameoflife/src/universe"
)

func TestParseOptions(t *testing.T) {
	eo, uo, err := parseOptions([]string{"-x", "30", "--height", "12", "-i", "50ms", "-e", "smallBuff", "--seed", "7", "-t", "glider", "-g", "20"})
	require.NoError(t, err)
	assert.Equal(t, universe.Options{
		Width:    30,
		Height:   12,
		Interval: 50 * time.Millisecond,
		Seed:     7,
		Engine:   universe.EngineSmallBuff,
	}, uo)
	assert.Equal(t, "glider", eo.template)
	assert.Equal(t, 20, eo.generations)
	assert.False(t, eo.interactive)
}

func TestParseOptions_Defaults(t *testing.T) {
	eo, uo, err := parseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, universe.Options{}, uo, "unset flags stay zero so they don't override the config file")
	assert.Equal(t, 100, eo.generations)
	assert.Equal(t, 10, eo.every)
}

func TestParseOptions_UnknownEngine(t *testing.T) {
	_, _, err := parseOptions([]string{"-e", "gpu"})
	assert.ErrorIs(t, err, universe.ErrUnknownEngine)
}

func TestRun_WithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 8\nheight: 8\ninterval: 1ms\nfill: dead\ntemplate: glider\n"), 0o600))

	err := run([]string{"-c", path, "-g", "3"})
	assert.NoError(t, err)
}

func TestRun_UnknownTemplate(t *testing.T) {
	err := run([]string{"-x", "5", "-y", "5", "-t", "spaceship", "-g", "1"})
	assert.ErrorIs(t, err, universe.ErrUnknownTemplate)
}
