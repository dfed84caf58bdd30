package universe

import "math/rand/v2"

//NewRNG returns a deterministic PCG-backed source for the given seed
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

//newUnseededRNG returns a source seeded from the runtime's global generator
func newUnseededRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

//rngForSeed returns a deterministic source, or an unseeded one for seed 0
func rngForSeed(seed uint64) *rand.Rand {
	if seed == 0 {
		return newUnseededRNG()
	}
	return NewRNG(seed)
}

//newControllerRNG returns the source used by RandomizeCells
//it's a different PCG stream than the fill source, so randomizing never repeats the initial grid
func newControllerRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return newUnseededRNG()
	}
	return rand.New(rand.NewPCG(seed, 1))
}
