package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameoflife/src/universe"
)

const sample = `
width: 60
height: 20
interval: 250ms
fill: pattern
seed: 42
engine: smallBuff
template: beehive
templates:
  - name: beehive
    description: still life
    cells: [[0,1],[0,2],[1,0],[1,3],[2,1],[2,2]]
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)

	o := f.Options()
	assert.Equal(t, universe.Options{
		Width:    60,
		Height:   20,
		Interval: 250 * time.Millisecond,
		Fill:     universe.FillPattern,
		Seed:     42,
		Engine:   universe.EngineSmallBuff,
	}, o)
	assert.NoError(t, o.Validate())
	assert.Equal(t, "beehive", f.Template)

	tmpls := f.UniverseTemplates()
	require.Len(t, tmpls, 1)
	assert.Equal(t, "still life", tmpls[0].Descr)
	assert.Equal(t, [2]int{1, 3}, tmpls[0].Coordinates[3])
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, universe.Options{}, f.Options())

	_, err = Parse([]byte("widht: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Parse([]byte("interval: soon\n"))
	assert.Error(t, err)
}

func TestOptions_FileUnderFlags(t *testing.T) {
	f, err := Parse([]byte("width: 10\nheight: 10\nengine: multithreaded\n"))
	require.NoError(t, err)

	o := universe.DefaultOptions.Merge(f.Options()).Merge(universe.Options{Width: 30})
	assert.Equal(t, 30, o.Width)
	assert.Equal(t, 10, o.Height)
	assert.Equal(t, universe.EngineMultithreaded, o.Engine)
	assert.Equal(t, universe.DefSimulationInterval, o.Interval)
}
