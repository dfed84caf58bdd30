package universe

/*
	Simple engine with two full-size buffers
	All cells state is calculated to the second buffer which then replaces the current one
*/

func (g *Grid) stepSimple() {
	w := g.width
	for y := 0; y < g.height; y++ {
		g.nextRow(g.next[y*w:(y+1)*w], g.row(g.up(y)), g.row(y), g.row(g.down(y)))
	}
	g.cells, g.next = g.next, g.cells
}
