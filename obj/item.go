package obj

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/rig"
)

// ItemKind distinguishes goals from enemies.
type ItemKind int

const (
	KindGoal ItemKind = iota
	KindEnemy
)

func (k ItemKind) String() string {
	if k == KindEnemy {
		return "enemy"
	}
	return "goal"
}

// Enemy is the enemy-only part of an item.
type Enemy struct {
	ContactDamage float64
	// Pattern names a movement script; empty means straight-line motion.
	Pattern string
	// Origin is where the enemy was placed, in meters.
	Origin mgl64.Vec3
}

// Item is a dynamic level element extracted from the grid.
type Item struct {
	Kind ItemKind
	// Model is the resolved model key, or the raw model tag when it did not
	// resolve.
	Model      string
	Renderable bool
	Dims       rig.Dimensions

	// Position is in meters; Velocity in meters per ms.
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Active   bool

	// Row and Col are the tile the item was extracted from.
	Row, Col int

	Enemy *Enemy
}

func NewGoal(model string, dims rig.Dimensions, pos mgl64.Vec3) *Item {
	return &Item{Kind: KindGoal, Model: model, Dims: dims, Position: pos, Active: true, Renderable: true}
}

func NewEnemy(model string, dims rig.Dimensions, pos, vel mgl64.Vec3, damage float64) *Item {
	return &Item{
		Kind:       KindEnemy,
		Model:      model,
		Dims:       dims,
		Position:   pos,
		Velocity:   vel,
		Active:     true,
		Renderable: true,
		Enemy:      &Enemy{ContactDamage: damage, Origin: pos},
	}
}

func (it *Item) IsGoal() bool  { return it.Kind == KindGoal }
func (it *Item) IsEnemy() bool { return it.Kind == KindEnemy && it.Enemy != nil }
