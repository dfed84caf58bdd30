package universe

import (
	"fmt"
	"time"
)

//Options represents the Simulation's configurable options
type Options struct {
	Width    int
	Height   int
	Interval time.Duration //delay between the scheduled steps
	Fill     string        //initial fill policy name, see ParseFill
	Seed     uint64        //seed for random fill and RandomizeCells, 0 means unseeded
	Engine   Engine
}

//default options
const (
	DefSimulationInterval = time.Second / 5
	DefWidth              = 40
	DefHeight             = 15
	DefFill               = FillRandom
)

var DefaultOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	Fill:     DefFill,
	Engine:   EngineSimple,
}

//Validate reports the first invalid option
func (o Options) Validate() error {
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("%w: %d x %d", ErrInvalidDimension, o.Height, o.Width)
	}
	if o.Interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, o.Interval)
	}
	if _, err := ParseFill(o.Fill, o.Seed); err != nil {
		return err
	}
	if _, err := ParseEngine(string(o.Engine)); err != nil {
		return err
	}
	return nil
}

//Merge returns a copy of o with every non-zero field of override applied
func (o Options) Merge(override Options) Options {
	if override.Width != 0 {
		o.Width = override.Width
	}
	if override.Height != 0 {
		o.Height = override.Height
	}
	if override.Interval != 0 {
		o.Interval = override.Interval
	}
	if override.Fill != "" {
		o.Fill = override.Fill
	}
	if override.Seed != 0 {
		o.Seed = override.Seed
	}
	if override.Engine != "" {
		o.Engine = override.Engine
	}
	return o
}
