package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//gridFromRows builds an explicit grid from strings where '#' is alive
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	cells := make([]Cell, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		for _, ch := range r {
			cells = append(cells, Cell(ch == '#'))
		}
	}
	g, err := NewGrid(len(rows), len(rows[0]), Explicit(cells))
	require.NoError(t, err)
	return g
}

func aliveSet(g *Grid) map[[2]int]bool {
	alive := map[[2]int]bool{}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if c, _ := g.Cell(y, x); c == Alive {
				alive[[2]int{y, x}] = true
			}
		}
	}
	return alive
}

func TestNewGrid_InvalidDimension(t *testing.T) {
	for _, dim := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
		_, err := NewGrid(dim[0], dim[1], AllDead())
		assert.ErrorIs(t, err, ErrInvalidDimension, "dimension %v", dim)
	}
}

func TestNewGrid_ExplicitSizeMismatch(t *testing.T) {
	_, err := NewGrid(2, 2, Explicit([]Cell{Alive, Dead, Alive}))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestNewGrid_Fills(t *testing.T) {
	g, err := NewGrid(3, 4, AllDead())
	require.NoError(t, err)
	assert.Len(t, g.Cells(), 12)
	assert.Zero(t, g.LiveCells())

	g, err = NewGrid(2, 7, Pattern())
	require.NoError(t, err)
	for i, c := range g.Cells() {
		assert.Equal(t, Cell(i%2 == 0 || i%7 == 0), c, "index %d", i)
	}

	a, err := NewGrid(10, 10, UniformRandom(NewRNG(7)))
	require.NoError(t, err)
	b, err := NewGrid(10, 10, UniformRandom(NewRNG(7)))
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells(), "same seed must give the same grid")
	assert.NotZero(t, a.LiveCells())
}

func TestParseFill(t *testing.T) {
	for _, name := range []string{FillDead, FillRandom, FillPattern, ""} {
		_, err := ParseFill(name, 1)
		assert.NoError(t, err, name)
	}
	_, err := ParseFill("checkerboard", 1)
	assert.ErrorIs(t, err, ErrUnknownFill)
}

func TestGrid_OutOfBounds(t *testing.T) {
	g, err := NewGrid(3, 4, AllDead())
	require.NoError(t, err)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {3, 4}} {
		_, err := g.Cell(rc[0], rc[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "Cell %v", rc)
		assert.ErrorIs(t, g.ToggleCell(rc[0], rc[1]), ErrOutOfBounds, "ToggleCell %v", rc)
		assert.ErrorIs(t, g.SetCell(rc[0], rc[1], Alive), ErrOutOfBounds, "SetCell %v", rc)
		_, err = g.LiveNeighborCount(rc[0], rc[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "LiveNeighborCount %v", rc)
	}
	assert.Zero(t, g.LiveCells())
}

func TestGrid_ToggleTwiceRestores(t *testing.T) {
	g, err := NewGrid(6, 5, UniformRandom(NewRNG(3)))
	require.NoError(t, err)
	before := g.Cells()

	require.NoError(t, g.ToggleCell(2, 3))
	c, err := g.Cell(2, 3)
	require.NoError(t, err)
	assert.Equal(t, !before[2*5+3], c)

	require.NoError(t, g.ToggleCell(2, 3))
	assert.Equal(t, before, g.Cells())
}

func TestGrid_KillAll(t *testing.T) {
	g, err := NewGrid(4, 4, Pattern())
	require.NoError(t, err)
	g.KillAll()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, err := g.Cell(y, x)
			require.NoError(t, err)
			assert.Equal(t, Dead, c)
		}
	}
}

func TestGrid_Randomize(t *testing.T) {
	a, _ := NewGrid(8, 8, AllDead())
	b, _ := NewGrid(8, 8, AllDead())
	a.Randomize(NewRNG(11))
	b.Randomize(NewRNG(11))
	assert.Equal(t, a.Cells(), b.Cells())
	assert.Len(t, a.Cells(), 64)
}

func TestGrid_LiveNeighborCountWraps(t *testing.T) {
	g := gridFromRows(t,
		"#...#",
		".....",
		".....",
		"#...#",
	)
	n, err := g.LiveNeighborCount(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "corners are neighbors on a torus")

	n, err = g.LiveNeighborCount(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGrid_SingleRowCollapsesOffsets(t *testing.T) {
	g := gridFromRows(t, "#..")
	//north and south both resolve to the cell itself
	n, err := g.LiveNeighborCount(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	//left, up-left and down-left all resolve to (0,0)
	n, err = g.LiveNeighborCount(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGrid_Area(t *testing.T) {
	g := gridFromRows(t, "#.", ".#", "##")
	a := g.Area()
	assert.Equal(t, 2, a.Width)
	assert.Equal(t, 3, a.Height)
	assert.Equal(t, []Cell{Dead, Alive}, a.Entities[1])

	g.KillAll()
	assert.Equal(t, Alive, a.Entities[0][0], "snapshot must be detached")
}

func TestEngines_Rules(t *testing.T) {
	for _, name := range EngineNames() {
		t.Run(name, func(t *testing.T) {
			e, err := ParseEngine(name)
			require.NoError(t, err)

			t.Run("dead stays dead", func(t *testing.T) {
				g, _ := NewGrid(7, 9, AllDead())
				require.NoError(t, g.SetEngine(e))
				for i := 0; i < 5; i++ {
					g.Step()
					assert.Zero(t, g.LiveCells())
					assert.Len(t, g.Cells(), 63)
				}
			})

			t.Run("full 3x3 dies of overpopulation", func(t *testing.T) {
				g := gridFromRows(t, "###", "###", "###")
				require.NoError(t, g.SetEngine(e))
				g.Step()
				assert.Zero(t, g.LiveCells())
			})

			t.Run("blinker oscillates", func(t *testing.T) {
				g, _ := NewGrid(5, 5, AllDead())
				require.NoError(t, g.SetEngine(e))
				for _, x := range []int{0, 1, 2} {
					require.NoError(t, g.SetCell(1, x, Alive))
				}
				horizontal := aliveSet(g)

				g.Step()
				assert.Equal(t, map[[2]int]bool{{0, 1}: true, {1, 1}: true, {2, 1}: true}, aliveSet(g))

				g.Step()
				assert.Equal(t, horizontal, aliveSet(g))
			})

			t.Run("glider wraps around", func(t *testing.T) {
				g, _ := NewGrid(6, 6, AllDead())
				require.NoError(t, g.SetEngine(e))
				for _, rc := range BuiltinTemplates[1].Coordinates {
					require.NoError(t, g.SetCell(rc[0], rc[1], Alive))
				}
				start := aliveSet(g)
				//a glider travels one cell diagonally every 4 generations, 24 generations cover the torus
				for i := 0; i < 24; i++ {
					g.Step()
				}
				assert.Equal(t, start, aliveSet(g))
			})
		})
	}
}

func TestEngines_Agree(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {1, 7}, {2, 5}, {17, 23}, {40, 3}} {
		var reference []Cell
		for _, name := range EngineNames() {
			g, err := NewGrid(dim[0], dim[1], UniformRandom(NewRNG(99)))
			require.NoError(t, err)
			require.NoError(t, g.SetEngine(Engine(name)))
			for i := 0; i < 10; i++ {
				g.Step()
			}
			if reference == nil {
				reference = g.Cells()
				continue
			}
			assert.Equal(t, reference, g.Cells(), "engine %s on %v", name, dim)
		}
	}
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("")
	require.NoError(t, err)
	assert.Equal(t, EngineSimple, e)

	_, err = ParseEngine("gpu")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestGrid_SetEngineRejectsUnknown(t *testing.T) {
	g, err := NewGrid(3, 3, AllDead())
	require.NoError(t, err)
	require.NoError(t, g.SetEngine(EngineMultithreaded))

	assert.ErrorIs(t, g.SetEngine("gpu"), ErrUnknownEngine)
	assert.Equal(t, EngineMultithreaded, g.Engine(), "a rejected engine leaves the current one in place")
}

func TestRowBands(t *testing.T) {
	bands := rowBands(10, 4)
	covered := 0
	for i, b := range bands {
		if i > 0 {
			assert.Equal(t, bands[i-1][1], b[0])
		}
		covered += b[1] - b[0]
	}
	assert.Equal(t, 10, covered)
	assert.Equal(t, [][2]int{{0, 2}}, rowBands(2, 8))
}
