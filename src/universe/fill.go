package universe

import (
	"fmt"
	"math/rand/v2"
)

//FillPolicy populates the cells of a new grid
type FillPolicy interface {
	fill(cells []Cell) error
}

type fillFunc func(cells []Cell) error

func (f fillFunc) fill(cells []Cell) error { return f(cells) }

//Fill policy names accepted by ParseFill
const (
	FillDead    = "dead"
	FillRandom  = "random"
	FillPattern = "pattern"
)

//AllDead leaves every cell Dead
func AllDead() FillPolicy {
	return fillFunc(func([]Cell) error { return nil })
}

//UniformRandom makes each cell Alive with probability 1/2 drawn from r
//a nil r uses an unseeded source
func UniformRandom(r *rand.Rand) FillPolicy {
	return fillFunc(func(cells []Cell) error {
		if r == nil {
			r = newUnseededRNG()
		}
		fillRandom(r, cells)
		return nil
	})
}

//Explicit copies the given cells, which must be exactly height*width long
func Explicit(cells []Cell) FillPolicy {
	return fillFunc(func(dst []Cell) error {
		if len(cells) != len(dst) {
			return fmt.Errorf("%w: got %d cells, grid holds %d", ErrSizeMismatch, len(cells), len(dst))
		}
		copy(dst, cells)
		return nil
	})
}

//Pattern is the deterministic fill: cell i is Alive when i%2 == 0 or i%7 == 0
func Pattern() FillPolicy {
	return fillFunc(func(cells []Cell) error {
		for i := range cells {
			cells[i] = Cell(i%2 == 0 || i%7 == 0)
		}
		return nil
	})
}

//ParseFill maps a fill name to its policy, seed is used by FillRandom (0 means unseeded)
func ParseFill(name string, seed uint64) (FillPolicy, error) {
	switch name {
	case FillDead:
		return AllDead(), nil
	case FillRandom, "":
		return UniformRandom(rngForSeed(seed)), nil
	case FillPattern:
		return Pattern(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFill, name)
}

//fillRandom fills the buffer with random states
func fillRandom(r *rand.Rand, buf []Cell) {
	for i := range buf {
		buf[i] = Cell(r.IntN(2) == 1)
	}
}
