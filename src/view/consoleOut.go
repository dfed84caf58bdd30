package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"gameoflife/src/universe"
)

//ConsoleOut is the non-interactive viewer, prints the progress of a running simulation
//and reports through Done when the generation limit is reached
type ConsoleOut struct {
	u           universe.Universe
	w           io.Writer
	au          aurora.Aurora
	every       int
	generations int
	startTime   time.Time

	mu       sync.Mutex
	reported int
	done     chan struct{}
	once     sync.Once
}

//NewConsoleOut creates the viewer which prints every `every` generations
//and finishes after `generations` generations, 0 means never
func NewConsoleOut(w io.Writer, colors bool, every int, generations int) *ConsoleOut {
	if every < 1 {
		every = 10
	}
	return &ConsoleOut{
		w:           w,
		au:          aurora.NewAurora(colors),
		every:       every,
		generations: generations,
		done:        make(chan struct{}),
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := u.Options()
	fill := o.Fill
	if fill == "" {
		fill = "custom" //the grid was populated by the caller
	}
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension": fmt.Sprintf("%v x %v", o.Height, o.Width),
		"Interval":  o.Interval,
		"Engine":    o.Engine,
		"Fill":      fill,
	})
}

//Start marks the beginning of the run
func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

//Done is closed once the generation limit is reached
func (c *ConsoleOut) Done() <-chan struct{} {
	return c.done
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	c.mu.Lock()
	defer c.mu.Unlock()
	if st.Generation > c.reported && st.Generation%c.every == 0 {
		c.reported = st.Generation
		_, _ = fmt.Fprintf(c.w, "  Generations done: %v, live cells: %v\n", st.Generation, st.LiveCells)
	}
	if c.generations > 0 && st.Generation >= c.generations {
		c.once.Do(func() { close(c.done) })
	}
}

//Finish prints the summary of the run
func (c *ConsoleOut) Finish() {
	st := c.u.Status()
	_, _ = fmt.Fprintln(c.w, c.au.Green("\nFinished:"))
	c.printHashData(map[string]interface{}{
		"Last generation": st.Generation,
		"Total time":      time.Since(c.startTime).Round(time.Millisecond),
		"Live cells":      st.LiveCells,
	})
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", c.au.Cyan(propName), d[propName])
	}
}
