package physics

import (
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/obj"
)

// Steerer adjusts an enemy's velocity before it moves.
type Steerer interface {
	Steer(it *obj.Item, dt float64)
}

// ItemBounds is the item's rectangle in translated render space, centered
// on its position.
func (r *Resolver) ItemBounds(it *obj.Item) common.Rect {
	pos := r.Space.Translated(it.Position)
	return common.Rect{
		Left:   pos.X() - it.Dims.X/2,
		Top:    pos.Y() + it.Dims.Y/2,
		Width:  it.Dims.X,
		Height: it.Dims.Y,
	}
}

// Touching reports whether the protagonist overlaps an item.
func (r *Resolver) Touching(p *obj.Player, it *obj.Item) bool {
	return r.PlayerBounds(p).Intersects(r.ItemBounds(it))
}

// StepEnemies moves every active enemy by dt ms. Before moving, each
// velocity component is reversed when the enemy is about to cross into a
// solid tile it is not already touching.
func (r *Resolver) StepEnemies(items []*obj.Item, dt float64, steer Steerer) {
	dt = common.Finite(dt)
	for _, it := range items {
		if !it.Active || !it.IsEnemy() {
			continue
		}
		if steer != nil {
			steer.Steer(it, dt)
		}
		r.bounce(it, dt)
		it.Position = it.Position.Add(it.Velocity.Mul(dt))
	}
}

func (r *Resolver) bounce(it *obj.Item, dt float64) {
	cur := r.ItemBounds(it)
	next := cur
	next.Left += r.Space.ToRender(it.Velocity.X() * dt)
	next.Top += r.Space.ToRender(it.Velocity.Y() * dt)
	offX, offY := r.Space.TileOffset()

	if vx := it.Velocity.X(); vx != 0 {
		now, then := cur.Left, next.Left
		if vx > 0 {
			now, then = cur.Right(), next.Right()
		}
		colNow := r.Level.ColumnIndexForX(now, offX)
		colThen := r.Level.ColumnIndexForX(then, offX)
		if colNow != colThen && !r.intersectsColumn(cur, colNow) && r.intersectsColumn(next, colThen) {
			it.Velocity[0] = -vx
		}
	}

	if vy := it.Velocity.Y(); vy != 0 {
		now, then := cur.Bottom(), next.Bottom()
		if vy > 0 {
			now, then = cur.Top, next.Top
		}
		rowNow := r.Level.RowIndexForY(now, offY)
		rowThen := r.Level.RowIndexForY(then, offY)
		if rowNow != rowThen && !r.intersectsRow(cur, rowNow) && r.intersectsRow(next, rowThen) {
			it.Velocity[1] = -vy
		}
	}
}

func (r *Resolver) intersectsColumn(rect common.Rect, col int) bool {
	for row := 0; row < r.Level.Height(); row++ {
		c := cell{row: row, col: col}
		if !r.empty(c) && rect.Intersects(r.rectOf(c)) {
			return true
		}
	}
	return false
}

func (r *Resolver) intersectsRow(rect common.Rect, row int) bool {
	for col := 0; col < r.Level.Width(); col++ {
		c := cell{row: row, col: col}
		if !r.empty(c) && rect.Intersects(r.rectOf(c)) {
			return true
		}
	}
	return false
}
