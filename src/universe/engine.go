package universe

import (
	"fmt"
	"sort"
)

//Engine names the algorithm Grid.Step uses to calculate the next generation
//all engines produce the same generations, they differ in memory use and parallelism
type Engine string

const (
	EngineSimple        Engine = "simple"
	EngineSmallBuff     Engine = "smallBuff"
	EngineMultithreaded Engine = "multithreaded"
)

var engines = map[Engine]func(g *Grid){
	EngineSimple:        (*Grid).stepSimple,
	EngineSmallBuff:     (*Grid).stepSmallBuff,
	EngineMultithreaded: (*Grid).stepMultithreaded,
}

//ParseEngine returns the engine with given name, empty name selects EngineSimple
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineSimple, nil
	}
	e := Engine(name)
	if _, ok := engines[e]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return e, nil
}

//EngineNames returns the sorted names of all engines
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for e := range engines {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return names
}
