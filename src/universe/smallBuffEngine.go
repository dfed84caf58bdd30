package universe

/*
	Engine with buffers optimization
	stepSmallBuff uses small buffer to store the current and previous lines only.
	the previous line is copied to the grid as calculating moves to the next line,
	the first line is saved before it's overwritten because the last line wraps around to it
*/

type smallBuff struct {
	tmp   [2][]Cell
	first []Cell
}

func (g *Grid) stepSmallBuff() {
	sb := &g.small
	if len(sb.first) != g.width {
		sb.tmp = [2][]Cell{make([]Cell, g.width), make([]Cell, g.width)}
		sb.first = make([]Cell, g.width)
	}
	copy(sb.first, g.row(0))

	last := g.height - 1
	for y := 0; y <= last; y++ {
		below := g.row(g.down(y))
		if y == last {
			below = sb.first
		}
		g.nextRow(sb.tmp[1], g.row(g.up(y)), g.row(y), below)
		if y-1 >= 0 {
			copy(g.row(y-1), sb.tmp[0])
		}
		sb.tmp[0], sb.tmp[1] = sb.tmp[1], sb.tmp[0]
	}
	copy(g.row(last), sb.tmp[0])
}
