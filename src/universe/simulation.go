package universe

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

//Simulation owns a Grid and drives it on a fixed cadence
//implements Universe interface
//all grid mutations are serialized by one lock, viewers only ever see completed generations
type Simulation struct {
	options Options
	logger  *slog.Logger
	rng     *rand.Rand

	mu        sync.RWMutex //guards grid, status, templates and rng
	grid      *Grid
	status    Status
	templates map[string]Template

	viewsMu sync.RWMutex
	views   []Viewer

	driverMu sync.Mutex //serializes Play, Pause and TogglePlay
	cancel   context.CancelFunc
	done     chan struct{}
	drivers  atomic.Int32 //number of live driver goroutines
}

var _ Universe = (*Simulation)(nil)

//NewSimulation takes ownership of grid, the simulation starts paused
//grid dimensions and engine override the ones in o, Fill is cleared because the grid is already populated
func NewSimulation(grid *Grid, o *Options, logger *slog.Logger) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Simulation{
		options:   *o,
		logger:    logger,
		rng:       newControllerRNG(o.Seed),
		grid:      grid,
		templates: map[string]Template{},
	}
	if s.options.Interval <= 0 {
		s.options.Interval = DefSimulationInterval
	}
	s.options.Width, s.options.Height = grid.Width(), grid.Height()
	s.options.Engine = grid.Engine()
	s.options.Fill = ""
	s.status.LiveCells = grid.LiveCells()
	for _, tmpl := range BuiltinTemplates {
		s.templates[tmpl.Name] = tmpl
	}
	return s
}

//NewSimulationFromOptions builds the grid described by o and wraps it into a Simulation
func NewSimulationFromOptions(o *Options, logger *slog.Logger) (*Simulation, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	fill, err := ParseFill(o.Fill, o.Seed)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(o.Height, o.Width, fill)
	if err != nil {
		return nil, err
	}
	if o.Engine != "" {
		if err := grid.SetEngine(o.Engine); err != nil {
			return nil, err
		}
	}
	s := NewSimulation(grid, o, logger)
	s.options.Fill = o.Fill
	if s.options.Fill == "" {
		s.options.Fill = DefFill
	}
	return s, nil
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	return s.options
}

//Area returns a snapshot of the grid
func (s *Simulation) Area() Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Area()
}

func (s *Simulation) Height() int { return s.grid.Height() }

func (s *Simulation) Width() int { return s.grid.Width() }

func (s *Simulation) Cell(row int, column int) (Cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Cell(row, column)
}

func (s *Simulation) LiveNeighborCount(row int, column int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.LiveNeighborCount(row, column)
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.viewsMu.Lock()
	s.views = append(s.views, v)
	s.viewsMu.Unlock()
	v.Register(s)
}

//AddTemplate adds the seeding template to the internal storage
//the grid can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl Template) {
	s.mu.Lock()
	s.templates[tmpl.Name] = tmpl
	s.mu.Unlock()
}

//Templates returns the registered templates sorted by name
func (s *Simulation) Templates() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]Template, 0, len(s.templates))
	for _, tmpl := range s.templates {
		list = append(list, tmpl)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

//SettleTemplate populates the grid with the seeding template
func (s *Simulation) SettleTemplate(name string) error {
	s.mu.RLock()
	tmpl, ok := s.templates[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return s.Settle(tmpl.Coordinates)
}

//Settle makes the cells at the given [row, column] coordinates alive
//nothing is changed when any coordinate is out of bounds
func (s *Simulation) Settle(coordinates [][2]int) error {
	return s.mutate(func(g *Grid) error {
		for _, rc := range coordinates {
			if _, err := g.index(rc[0], rc[1]); err != nil {
				return err
			}
		}
		for _, rc := range coordinates {
			_ = g.SetCell(rc[0], rc[1], Alive)
		}
		return nil
	})
}

//ToggleCell inverses the cell state at row, column
//allowed while running, the change is visible to the next scheduled step
func (s *Simulation) ToggleCell(row int, column int) error {
	return s.mutate(func(g *Grid) error { return g.ToggleCell(row, column) })
}

//SetCell sets the cell state at row, column
func (s *Simulation) SetCell(row int, column int, c Cell) error {
	return s.mutate(func(g *Grid) error { return g.SetCell(row, column, c) })
}

//KillAllCells stops the driver, kills all cells and resets the generation counter
func (s *Simulation) KillAllCells() {
	s.Pause()
	_ = s.mutate(func(g *Grid) error {
		g.KillAll()
		s.status.Generation = 0
		return nil
	})
	s.logger.Debug("all cells killed")
}

//RandomizeCells stops the driver, randomizes the grid and evolves it by one generation
func (s *Simulation) RandomizeCells() {
	s.Pause()
	_ = s.mutate(func(g *Grid) error {
		g.Randomize(s.rng)
		s.status.Generation = 0
		s.advance()
		return nil
	})
	s.logger.Debug("cells randomized", slog.Int("live_cells", s.Status().LiveCells))
}

//Step does one generation regardless of the running state
func (s *Simulation) Step() {
	_ = s.mutate(func(*Grid) error {
		s.advance()
		return nil
	})
}

//Play starts the periodic driver, does nothing when it's already running
func (s *Simulation) Play() {
	s.driverMu.Lock()
	defer s.driverMu.Unlock()
	s.play()
}

//Pause stops the periodic driver and waits until it has exited
//no scheduled step runs after Pause returns
func (s *Simulation) Pause() {
	s.driverMu.Lock()
	defer s.driverMu.Unlock()
	s.pause()
}

//TogglePlay pauses a running simulation and starts a paused one
func (s *Simulation) TogglePlay() {
	s.driverMu.Lock()
	defer s.driverMu.Unlock()
	if s.cancel != nil {
		s.pause()
	} else {
		s.play()
	}
}

//play starts the driver, the caller holds driverMu
func (s *Simulation) play() {
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	s.switchRunningState(RunningStateRunning)
	s.logger.Debug("simulation started", slog.Duration("interval", s.options.Interval))
	go s.run(ctx, done)
}

//pause stops the driver and waits for it, the caller holds driverMu
func (s *Simulation) pause() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
	s.switchRunningState(RunningStatePaused)
	s.logger.Debug("simulation paused", slog.Int("generation", s.Status().Generation))
}

//Close stops the driver
func (s *Simulation) Close() {
	s.Pause()
}

//run is the driver loop, should start as a goroutine
//ticks arriving while a step is executing are dropped by the ticker
func (s *Simulation) run(ctx context.Context, done chan struct{}) {
	s.drivers.Add(1)
	defer close(done)
	defer s.drivers.Add(-1)
	ticker := time.NewTicker(s.options.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s.Step()
		}
	}
}

//advance steps the grid and updates the status, the caller holds the write lock
func (s *Simulation) advance() {
	start := time.Now()
	s.grid.Step()
	s.status.Generation++
	s.status.LiveCells = s.grid.LiveCells()
	s.status.IterationTime = time.Since(start)
}

//mutate runs fn under the write lock and refreshes the views when fn succeeds
func (s *Simulation) mutate(fn func(g *Grid) error) error {
	s.mu.Lock()
	err := fn(s.grid)
	if err == nil {
		s.status.LiveCells = s.grid.LiveCells()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.refreshView()
	return nil
}

//switchRunningState switch the state of the simulation to RunningState and notifies the views
func (s *Simulation) switchRunningState(to RunningState) {
	s.mu.Lock()
	s.status.RunningMode = to
	s.mu.Unlock()
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	s.viewsMu.RLock()
	views := make([]Viewer, len(s.views))
	copy(views, s.views)
	s.viewsMu.RUnlock()
	for _, v := range views {
		v.Refresh()
	}
}
