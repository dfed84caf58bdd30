package universe

import (
	"fmt"
	"math/rand/v2"
)

//Grid is a fixed-size toroidal field of cells stored in row-major order
//Grid is not safe for concurrent use, Simulation serializes access to it
type Grid struct {
	height int
	width  int
	cells  []Cell
	next   []Cell //second buffer, receives the next generation before the swap
	engine Engine
	small  smallBuff
}

//NewGrid creates the grid with given dimensions populated by fill
func NewGrid(height int, width int, fill FillPolicy) (*Grid, error) {
	if height < 1 || width < 1 {
		return nil, fmt.Errorf("%w: %d x %d", ErrInvalidDimension, height, width)
	}
	if fill == nil {
		fill = AllDead()
	}
	g := &Grid{
		height: height,
		width:  width,
		cells:  make([]Cell, height*width),
		next:   make([]Cell, height*width),
		engine: EngineSimple,
	}
	if err := fill.fill(g.cells); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) Height() int { return g.height }

func (g *Grid) Width() int { return g.width }

//Engine returns the step implementation in use
func (g *Grid) Engine() Engine { return g.engine }

//SetEngine switches the step implementation, an unknown engine leaves the current one in place
func (g *Grid) SetEngine(e Engine) error {
	if _, ok := engines[e]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, e)
	}
	g.engine = e
	return nil
}

//Cells returns a copy of the cells in row-major order
func (g *Grid) Cells() []Cell {
	c := make([]Cell, len(g.cells))
	copy(c, g.cells)
	return c
}

//Cell returns the cell at row, column
func (g *Grid) Cell(row int, column int) (Cell, error) {
	i, err := g.index(row, column)
	if err != nil {
		return Dead, err
	}
	return g.cells[i], nil
}

//ToggleCell flips the cell at row, column
func (g *Grid) ToggleCell(row int, column int) error {
	i, err := g.index(row, column)
	if err != nil {
		return err
	}
	g.cells[i] = !g.cells[i]
	return nil
}

//SetCell sets the cell at row, column to c
func (g *Grid) SetCell(row int, column int, c Cell) error {
	i, err := g.index(row, column)
	if err != nil {
		return err
	}
	g.cells[i] = c
	return nil
}

//LiveNeighborCount returns the number of alive cells among the eight toroidal neighbors
//on a grid with one row or column some offsets collapse onto the same cell and are counted each time
func (g *Grid) LiveNeighborCount(row int, column int) (int, error) {
	if _, err := g.index(row, column); err != nil {
		return 0, err
	}
	left, right := g.wrapColumn(column)
	above, below := g.row(g.up(row)), g.row(g.down(row))
	cur := g.row(row)
	return neighbors(above, cur, below, left, column, right), nil
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

//KillAll sets every cell to Dead
func (g *Grid) KillAll() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

//Randomize sets every cell to Alive or Dead with equal probability
func (g *Grid) Randomize(r *rand.Rand) {
	if r == nil {
		r = newUnseededRNG()
	}
	fillRandom(r, g.cells)
}

//Step computes the next generation and replaces the current one
func (g *Grid) Step() {
	engines[g.engine](g)
}

//Area returns a snapshot of the grid which is not affected by later steps
func (g *Grid) Area() Area {
	a := createArea(g.width, g.height)
	for y := range a.Entities {
		copy(a.Entities[y], g.row(y))
	}
	return a
}

//index validates the coordinates and returns the linear slice index
func (g *Grid) index(row int, column int) (int, error) {
	if row < 0 || row >= g.height || column < 0 || column >= g.width {
		return 0, fmt.Errorf("%w: (%d, %d) outside %d x %d", ErrOutOfBounds, row, column, g.height, g.width)
	}
	return row*g.width + column, nil
}

func (g *Grid) row(y int) []Cell {
	return g.cells[y*g.width : (y+1)*g.width : (y+1)*g.width]
}

func (g *Grid) up(y int) int {
	if y == 0 {
		return g.height - 1
	}
	return y - 1
}

func (g *Grid) down(y int) int {
	if y == g.height-1 {
		return 0
	}
	return y + 1
}

func (g *Grid) wrapColumn(x int) (left int, right int) {
	left, right = x-1, x+1
	if x == 0 {
		left = g.width - 1
	}
	if x == g.width-1 {
		right = 0
	}
	return
}

//nextRow writes the next state of row into dst
//above and below are the toroidal neighbor rows of the current generation
func (g *Grid) nextRow(dst []Cell, above []Cell, row []Cell, below []Cell) {
	for x := range row {
		left, right := g.wrapColumn(x)
		dst[x] = nextState(row[x], neighbors(above, row, below, left, x, right))
	}
}

func neighbors(above []Cell, row []Cell, below []Cell, left int, x int, right int) int {
	n := 0
	for _, c := range [8]Cell{
		above[left], above[x], above[right],
		row[left], row[right],
		below[left], below[x], below[right],
	} {
		if c {
			n++
		}
	}
	return n
}

//nextState applies the B3/S23 transition rule
func nextState(c Cell, liveNeighbours int) Cell {
	switch {
	case liveNeighbours < 2:
		return Dead
	case liveNeighbours > 3:
		return Dead
	case liveNeighbours == 3:
		return Alive
	default:
		return c
	}
}
