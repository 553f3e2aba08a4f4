package obj

import (
	"github.com/jakecoffman/cp"
)

// Region is a run of same-symbol solid tiles merged into one rectangle. BB
// is the level-space rectangle at the offset the region was built for.
type Region struct {
	ID         int
	Row, Col   int
	Rows, Cols int
	BB         cp.BB
}

// SolidRegions greedily merges contiguous tiles with the same symbol into
// rectangles, widest run first, then as tall as the run allows.
func (l *Level) SolidRegions(offX, offY float64) []Region {
	w, h := l.Width(), l.Height()
	if w == 0 || h == 0 {
		return nil
	}
	processed := make([]bool, w*h)
	var out []Region
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			if processed[idx] {
				continue
			}
			id := l.rows[row][col]
			if l.spec.AttributesFor(id).IsEmpty() {
				processed[idx] = true
				continue
			}

			cols := 1
			for col+cols < w {
				i2 := row*w + col + cols
				if processed[i2] || l.rows[row][col+cols] != id {
					break
				}
				cols++
			}

			rows := 1
		heightLoop:
			for row+rows < h {
				for c := col; c < col+cols; c++ {
					i2 := (row+rows)*w + c
					if processed[i2] || l.rows[row+rows][c] != id {
						break heightLoop
					}
				}
				rows++
			}

			for r := row; r < row+rows; r++ {
				for c := col; c < col+cols; c++ {
					processed[r*w+c] = true
				}
			}

			first := l.TileRect(row, col, offX, offY)
			last := l.TileRect(row+rows-1, col+cols-1, offX, offY)
			out = append(out, Region{
				ID:   id,
				Row:  row,
				Col:  col,
				Rows: rows,
				Cols: cols,
				BB:   cp.BB{L: first.Left, B: first.Bottom(), R: last.Right(), T: last.Top},
			})
		}
	}
	return out
}
