package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Engine with multithreaded computation algorithm
	the field is splitted into bands of rows each of which is computed by individual goroutine
	into the second buffer, the buffers are swapped once all bands are done
*/

const (
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

//rowBands splits height rows into at most workers contiguous [y1, y2) bands
func rowBands(height int, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	linesPerWorker := height / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < height {
		linesPerWorker++
	}
	bands := make([][2]int, 0, workers)
	for y1 := 0; y1 < height; y1 += linesPerWorker {
		y2 := min(y1+linesPerWorker, height)
		bands = append(bands, [2]int{y1, y2})
	}
	return bands
}

func (g *Grid) stepMultithreaded() {
	w := g.width
	var eg errgroup.Group
	for _, band := range rowBands(g.height, runtime.GOMAXPROCS(0)) {
		eg.Go(func() error {
			for y := band[0]; y < band[1]; y++ {
				g.nextRow(g.next[y*w:(y+1)*w], g.row(g.up(y)), g.row(y), g.row(g.down(y)))
			}
			return nil
		})
	}
	_ = eg.Wait()
	g.cells, g.next = g.next, g.cells
}
