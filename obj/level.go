package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/levels"
)

const (
	// VisibleAreaWidth and VisibleAreaHeight span the [-1, 1] viewport.
	VisibleAreaWidth  = 2.0
	VisibleAreaHeight = 2.0
)

// Level is the grid model of a parsed level: tile lookups, tile geometry in
// level space, and the visible window for a scroll offset. Row 0 is the
// bottom row. Tile (0, 0) with a zero offset is centered on the origin.
type Level struct {
	spec *levels.Spec
	rows [][]int

	ScaleX, ScaleY, ScaleZ float64
}

// NewLevel wraps a parsed level. The tile rows are copied so tiles can be
// emptied without touching the parsed spec.
func NewLevel(spec *levels.Spec, scaleX, scaleY, scaleZ float64) *Level {
	rows := make([][]int, len(spec.Rows))
	for i, r := range spec.Rows {
		rows[i] = append([]int(nil), r...)
	}
	return &Level{spec: spec, rows: rows, ScaleX: scaleX, ScaleY: scaleY, ScaleZ: scaleZ}
}

func (l *Level) Spec() *levels.Spec { return l.spec }

func (l *Level) Width() int {
	if len(l.rows) == 0 {
		return 0
	}
	return len(l.rows[0])
}

func (l *Level) Height() int { return len(l.rows) }

func (l *Level) Backdrop() string { return l.spec.Backdrop }

func (l *Level) inBounds(row, col int) bool {
	return row >= 0 && row < len(l.rows) && col >= 0 && col < len(l.rows[row])
}

// TileID returns the symbol ID at (row, col) and whether the cell exists.
func (l *Level) TileID(row, col int) (int, bool) {
	if !l.inBounds(row, col) {
		return 0, false
	}
	return l.rows[row][col], true
}

// AttributesAt returns the attributes of the tile at (row, col), or nil
// outside the level.
func (l *Level) AttributesAt(row, col int) *levels.Attributes {
	id, ok := l.TileID(row, col)
	if !ok {
		return nil
	}
	return l.spec.AttributesFor(id)
}

// IsEmptyAt reports whether (row, col) is empty space. Cells outside the
// level are empty.
func (l *Level) IsEmptyAt(row, col int) bool {
	return l.AttributesAt(row, col).IsEmpty()
}

// MakeTileEmpty replaces the tile with empty space.
func (l *Level) MakeTileEmpty(row, col int) {
	if l.inBounds(row, col) {
		l.rows[row][col] = 0
	}
}

// TileRect is the level-space rectangle of tile (row, col) for the given
// offset.
func (l *Level) TileRect(row, col int, offX, offY float64) common.Rect {
	return common.Rect{
		Left:   float64(col)*l.ScaleX - l.ScaleX/2 + offX,
		Top:    float64(row)*l.ScaleY + l.ScaleY/2 + offY,
		Width:  l.ScaleX,
		Height: l.ScaleY,
	}
}

// ColumnIndexForX maps a level-space X coordinate to a column. The result
// may fall outside the level.
func (l *Level) ColumnIndexForX(x, offX float64) int {
	return int(math.Floor((x-offX)/l.ScaleX + 0.5))
}

// RowIndexForY maps a level-space Y coordinate to a row. The result may
// fall outside the level.
func (l *Level) RowIndexForY(y, offY float64) int {
	return int(math.Floor((y-offY)/l.ScaleY + 0.5))
}

// VisibleRegion returns the tile indices covered by the [-1, 1] viewport,
// clamped to the level.
func (l *Level) VisibleRegion(offX, offY float64) common.IndexRect {
	w, h := l.Width(), l.Height()
	left := common.ClampInt(l.ColumnIndexForX(-VisibleAreaWidth/2, offX), 0, w)
	right := common.ClampInt(l.ColumnIndexForX(VisibleAreaWidth/2, offX), 0, w)
	bottom := common.ClampInt(l.RowIndexForY(-VisibleAreaHeight/2, offY), 0, h)
	top := common.ClampInt(l.RowIndexForY(VisibleAreaHeight/2, offY), 0, h)
	return common.IndexRect{Left: left, Bottom: bottom, Width: right - left, Height: top - bottom}
}

// InitialTileOffset aligns the level's bottom-left corner with the
// viewport's bottom-left corner.
func (l *Level) InitialTileOffset() mgl64.Vec3 {
	return mgl64.Vec3{
		l.ScaleX/2 - VisibleAreaWidth/2,
		l.ScaleY/2 - VisibleAreaHeight/2,
		0,
	}
}

// OffsetBounds are the tile offsets that align the level's edges with the
// viewport's edges. Min aligns the left/bottom edge, Max the right/top edge.
type OffsetBounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (l *Level) EdgeAlignedOffsetBounds() OffsetBounds {
	return OffsetBounds{
		MinX: l.ScaleX/2 - VisibleAreaWidth/2,
		MaxX: VisibleAreaWidth/2 + l.ScaleX/2 - float64(l.Width())*l.ScaleX,
		MinY: l.ScaleY/2 - VisibleAreaHeight/2,
		MaxY: VisibleAreaHeight/2 + l.ScaleY/2 - float64(l.Height())*l.ScaleY,
	}
}

// Tile is one non-empty cell, used when walking the grid.
type Tile struct {
	Row, Col int
	ID       int
	Attrs    *levels.Attributes
}

// Tiles calls fn for every non-empty tile inside region, bottom row first.
func (l *Level) Tiles(region common.IndexRect, fn func(Tile)) {
	for row := region.Bottom; row < region.Top() && row < l.Height(); row++ {
		for col := region.Left; col < region.Right() && col < l.Width(); col++ {
			id := l.rows[row][col]
			attrs := l.spec.AttributesFor(id)
			if attrs.IsEmpty() {
				continue
			}
			fn(Tile{Row: row, Col: col, ID: id, Attrs: attrs})
		}
	}
}

// All is the index region covering the whole level.
func (l *Level) All() common.IndexRect {
	return common.IndexRect{Width: l.Width(), Height: l.Height()}
}
