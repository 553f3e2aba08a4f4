// Package physics moves the protagonist and enemies through the tile grid.
//
// All geometry is evaluated in translated render space against the level
// grid offset by the current scroll position. Positions and velocities are
// stored in meters and meters per ms.
package physics

import (
	"math"

	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/rig"
)

// Params are the kinematic constants in per-ms units.
type Params struct {
	Gravity         float64
	Decel           float64
	AerialFactor    float64
	MaxRunSpeed     float64
	JumpVelocity    float64
	DefaultFriction float64
}

// Resolver resolves motion against one level.
type Resolver struct {
	Level   *obj.Level
	Space   *obj.Space
	Extents rig.Extents
	Params  Params
}

func New(level *obj.Level, space *obj.Space, extents rig.Extents, params Params) *Resolver {
	return &Resolver{Level: level, Space: space, Extents: extents, Params: params}
}

type cell struct {
	row, col int
}

func (r *Resolver) cellAt(x, y float64) cell {
	offX, offY := r.Space.TileOffset()
	return cell{row: r.Level.RowIndexForY(y, offY), col: r.Level.ColumnIndexForX(x, offX)}
}

func (r *Resolver) rectOf(c cell) common.Rect {
	offX, offY := r.Space.TileOffset()
	return r.Level.TileRect(c.row, c.col, offX, offY)
}

func (r *Resolver) empty(c cell) bool {
	return r.Level.IsEmptyAt(c.row, c.col)
}

// PlayerBounds is the protagonist's rectangle in translated render space.
func (r *Resolver) PlayerBounds(p *obj.Player) common.Rect {
	pos := r.Space.Translated(p.Position)
	e := r.Extents
	left := pos.X() - e.MaxX
	if p.Facing > 0 {
		left = pos.X() + e.MinX
	}
	return common.Rect{Left: left, Top: pos.Y() + e.MaxY, Width: e.Width(), Height: e.Height()}
}

// Grounded reports whether the protagonist's feet rest on a solid tile
// surface, within Epsilon.
func (r *Resolver) Grounded(p *obj.Player) bool {
	pos := r.Space.Translated(p.Position)
	footY := pos.Y() + r.Extents.MinY
	c := r.cellAt(pos.X(), footY)
	if r.empty(c) {
		return false
	}
	return math.Abs(r.rectOf(c).Top-footY) <= common.Epsilon
}

// surfaceTile is the tile under the bottom center of the protagonist.
func (r *Resolver) surfaceTile(p *obj.Player) cell {
	b := r.PlayerBounds(p)
	return r.cellAt(b.CenterX(), b.Bottom())
}

// Friction is the friction coefficient of the surface under the
// protagonist.
func (r *Resolver) Friction(p *obj.Player) float64 {
	c := r.surfaceTile(p)
	return r.Level.AttributesAt(c.row, c.col).FrictionOr(r.Params.DefaultFriction)
}

// SurfaceDamage is the contact damage of the surface under the protagonist.
func (r *Resolver) SurfaceDamage(p *obj.Player) (float64, bool) {
	c := r.surfaceTile(p)
	return r.Level.AttributesAt(c.row, c.col).Damage()
}

// Step advances the protagonist by dt ms: integrate, resolve vertical
// contact, update velocity and facing, then resolve horizontal contact.
func (r *Resolver) Step(p *obj.Player, dt float64) {
	dt = common.Finite(dt)
	p.Position = p.Position.Add(p.Velocity.Mul(dt))

	switch vy := p.Velocity.Y(); {
	case vy < 0:
		r.collideVertical(p, r.Extents.MinY, true)
	case vy > 0:
		r.collideVertical(p, r.Extents.MaxY, false)
	}

	r.updateVelocity(p, dt)
	p.UpdateFacing()

	if p.Velocity.X() != 0 {
		r.collideHorizontal(p)
	}
}

// collideVertical snaps the protagonist onto a tile top (falling) or under
// a tile bottom (rising) when the probe at offset is inside a solid tile.
func (r *Resolver) collideVertical(p *obj.Player, offset float64, falling bool) {
	pos := r.Space.Translated(p.Position)
	c := r.cellAt(pos.X(), pos.Y()+offset)
	if r.empty(c) {
		return
	}
	rect := r.rectOf(c)
	surface := rect.Top
	if !falling {
		surface = rect.Bottom()
	}
	p.Position[1] = r.Space.TranslatedToWorldY(surface-offset) - common.Epsilon
	p.Velocity[1] = 0
}

// leadingEdge is the horizontal offset of the edge facing the direction of
// travel.
func (r *Resolver) leadingEdge(p *obj.Player) float64 {
	e := r.Extents
	heading := p.Heading()
	if p.Velocity.X() > 0 {
		if heading > 0 {
			return e.MaxX
		}
		return -e.MinX
	}
	if heading > 0 {
		return e.MinX
	}
	return -e.MaxX
}

func (r *Resolver) collideHorizontal(p *obj.Player) {
	vx := p.Velocity.X()
	edge := r.leadingEdge(p)
	pos := r.Space.Translated(p.Position)

	top := r.cellAt(pos.X()+edge, pos.Y()+r.Extents.MaxY)
	bottom := r.cellAt(pos.X()+edge, pos.Y()+r.Extents.MinY)
	for row := bottom.row + 1; row < top.row; row++ {
		c := cell{row: row, col: top.col}
		if r.empty(c) {
			continue
		}
		rect := r.rectOf(c)
		worldEdge := r.Space.ToWorld(edge)
		if vx > 0 {
			p.Position[0] = r.Space.TranslatedToWorldX(rect.Left) - worldEdge
		} else {
			p.Position[0] = r.Space.TranslatedToWorldX(rect.Right()) - worldEdge
		}
		p.Velocity[0] = 0
		return
	}
}

func (r *Resolver) updateVelocity(p *obj.Player, dt float64) {
	if !r.Grounded(p) {
		r.accelerateX(p, p.InputAccel*r.Params.AerialFactor, dt)
		p.Velocity[1] -= r.Params.Gravity * dt
		return
	}

	f := r.Friction(p)
	r.accelerateX(p, p.InputAccel*f, dt)
	if p.InputAccel == 0 {
		d := r.Params.Decel * f * dt
		switch vx := p.Velocity.X(); {
		case vx > 0:
			p.Velocity[0] = math.Max(0, vx-d)
		case vx < 0:
			p.Velocity[0] = math.Min(0, vx+d)
		}
	}

	if p.JumpLatched {
		p.Velocity[1] = r.Params.JumpVelocity
		p.JumpLatched = false
	} else {
		p.Velocity[1] = 0
	}
}

// accelerateX applies a*dt to the horizontal velocity. Below the run speed
// cap the result is clamped to the cap; above it only opposing acceleration
// applies.
func (r *Resolver) accelerateX(p *obj.Player, a, dt float64) {
	vx := p.Velocity.X()
	limit := r.Params.MaxRunSpeed
	switch {
	case math.Abs(vx) <= limit:
		p.Velocity[0] = common.SumWithMagnitudeClamp(vx, a*dt, limit)
	case a != 0 && common.Sign(a) != common.Sign(vx):
		p.Velocity[0] = common.SumWithMagnitudeClamp(vx, a*dt, vx)
	}
}
