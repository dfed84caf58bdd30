package universe

import "time"

//Universe is the controller surface used by viewers
//implemented by Simulation
type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	Height() int
	Width() int
	Cell(row int, column int) (Cell, error)
	LiveNeighborCount(row int, column int) (int, error)
	Templates() []Template
	AddTemplate(tmpl Template)
	SettleTemplate(name string) error
	Settle(coordinates [][2]int) error
	ToggleCell(row int, column int) error
	SetCell(row int, column int, c Cell) error
	RegisterViewer(v Viewer)
	Play()
	Pause()
	TogglePlay()
	Step()
	KillAllCells()
	RandomizeCells()
}

//Cell is the state of one grid position
type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

func (c Cell) String() string {
	if c {
		return "alive"
	}
	return "dead"
}

//Area is a detached snapshot of the grid, one slice per row
type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
}

//Status represents the status of the Simulation at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//RunningState tells whether the periodic driver is active
type RunningState int

const (
	RunningStatePaused RunningState = iota
	RunningStateRunning
)

func (s RunningState) String() string {
	if s == RunningStateRunning {
		return "running"
	}
	return "paused"
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
//Refresh is called after every completed mutation, it must not call Pause
type Viewer interface {
	Register(u Universe)
	Refresh()
}

//ViewerFunc adapts a plain function to the Viewer interface
type ViewerFunc func()

func (f ViewerFunc) Register(Universe) {}

func (f ViewerFunc) Refresh() { f() }

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Coordinates [][2]int //array of [row, column] coordinates
}

//BuiltinTemplates are registered on every new Simulation
var BuiltinTemplates = []Template{
	{"blinker", "period 2 oscillator", [][2]int{{1, 0}, {1, 1}, {1, 2}}},
	{"glider", "moves one cell diagonally every 4 generations", [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
	{"block", "still life", [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
}

//createArea allocate the new area with rows sliced from one buffer
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
