package system

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/milk9111/littlehelpers/rig"
)

// spawnElements turns every goal and enemy tile into an item placed at the
// tile center and clears the tile.
func (w *World) spawnElements(t *prefabs.Tuning) {
	offX, offY := w.Space.TileOffset()
	w.Level.Tiles(w.Level.All(), func(tile obj.Tile) {
		a := tile.Attrs
		if a == nil || a.ElementType == "" {
			return
		}
		r := w.Level.TileRect(tile.Row, tile.Col, offX, offY)
		pos := w.Space.TranslatedToWorld(mgl64.Vec3{r.CenterX(), r.CenterY(), 0})

		var it *obj.Item
		switch a.ElementType {
		case levels.ElementGoal:
			it = obj.NewGoal(a.Model, rig.Dimensions{}, pos)
			w.Goals = append(w.Goals, it)
		case levels.ElementEnemy:
			vel := mgl64.Vec3{perMs(a.VelocityX), perMs(a.VelocityY), 0}
			damage, _ := a.Damage()
			it = obj.NewEnemy(a.Model, rig.Dimensions{}, pos, vel, damage)
			it.Enemy.Pattern = a.MovementPattern
			w.Enemies = append(w.Enemies, it)
		default:
			return
		}
		it.Row, it.Col = tile.Row, tile.Col
		w.resolveModel(it, a.Model, t)
		w.Level.MakeTileEmpty(tile.Row, tile.Col)
	})
}

// resolveModel sizes the item from its model. Unresolved items keep
// interacting with tile-sized bounds but are not drawn.
func (w *World) resolveModel(it *obj.Item, tag string, t *prefabs.Tuning) {
	if key, dims, ok := t.ModelFor(tag); ok {
		it.Model = key
		it.Dims = dims
		return
	}
	it.Renderable = false
	it.Dims = rig.Dimensions{X: w.Level.ScaleX, Y: w.Level.ScaleY, Z: w.Level.ScaleZ}
	if !slices.Contains(w.Unresolved, tag) {
		w.Unresolved = append(w.Unresolved, tag)
	}
}

func perMs(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v / 1000
}
