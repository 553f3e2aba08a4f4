package physics

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/levels"
	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	worldScale = 0.156
	tileX      = worldScale * 0.60
	tileY      = worldScale * 0.90
)

var testParams = Params{
	Gravity:         9.8e-6,
	Decel:           30e-6,
	AerialFactor:    0.15,
	MaxRunSpeed:     5.36448e-3,
	JumpVelocity:    5.5e-3,
	DefaultFriction: 1,
}

var testExtents = rig.Extents{MinX: -0.06, MaxX: 0.06, MinY: -0.2, MaxY: 0.13}

const header = `{"tileSymbol": "X"}
{"tileSymbol": "I", "frictionCoefficient": 0.1}
{"tileSymbol": "L", "contactDamage": 3}
@@@:::@@@
`

// newResolver builds a resolver over grid rows written top row first.
func newResolver(t *testing.T, grid ...string) *Resolver {
	t.Helper()
	spec, err := levels.Parse([]byte(header + strings.Join(grid, "\n") + "\n"))
	require.NoError(t, err)
	level := obj.NewLevel(spec, tileX, tileY, tileY)
	space := &obj.Space{Scale: worldScale}
	return New(level, space, testExtents, testParams)
}

// standOn returns a protagonist whose feet rest on the top of (row, col).
func standOn(r *Resolver, row, col int) *obj.Player {
	offX, offY := r.Space.TileOffset()
	rect := r.Level.TileRect(row, col, offX, offY)
	p := &obj.Player{Facing: 1, Health: obj.NewHealth(0, 50)}
	p.Position = mgl64.Vec3{
		r.Space.TranslatedToWorldX(rect.CenterX()),
		r.Space.TranslatedToWorldY(rect.Top-testExtents.MinY) - common.Epsilon,
		0,
	}
	return p
}

func footY(r *Resolver, p *obj.Player) float64 {
	return r.Space.Translated(p.Position).Y() + testExtents.MinY
}

func floorLevel(t *testing.T, width int, above ...string) *Resolver {
	rows := append([]string{}, above...)
	rows = append(rows, strings.Repeat("X", width))
	return newResolver(t, rows...)
}

func blankRows(n, width int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.Repeat(" ", width)
	}
	return out
}

func TestFallingActorLandsOnSurface(t *testing.T) {
	r := floorLevel(t, 20, blankRows(6, 20)...)
	offX, offY := r.Space.TileOffset()
	top := r.Level.TileRect(0, 5, offX, offY).Top

	p := &obj.Player{Facing: 1}
	p.Position = mgl64.Vec3{
		r.Space.TranslatedToWorldX(5 * tileX),
		r.Space.TranslatedToWorldY(top + common.Epsilon - testExtents.MinY),
		0,
	}
	p.Velocity = mgl64.Vec3{0, -0.01, 0}

	r.Step(p, 16)

	assert.Equal(t, 0.0, p.Velocity.Y())
	assert.InDelta(t, top, footY(r, p), common.Epsilon)
	assert.True(t, r.Grounded(p))
}

func TestGrounded(t *testing.T) {
	r := floorLevel(t, 10, blankRows(6, 10)...)
	p := standOn(r, 0, 3)
	assert.True(t, r.Grounded(p))

	p.Position[1] += 0.01
	assert.False(t, r.Grounded(p))

	// Over empty space there is nothing to stand on.
	p = standOn(r, 3, 3)
	assert.False(t, r.Grounded(p))
}

func TestAirborneGravity(t *testing.T) {
	r := floorLevel(t, 10, blankRows(8, 10)...)
	p := standOn(r, 6, 3)
	r.Step(p, 16)
	assert.InDelta(t, -testParams.Gravity*16, p.Velocity.Y(), 1e-15)
}

func TestJumpLatch(t *testing.T) {
	r := floorLevel(t, 10, blankRows(6, 10)...)
	p := standOn(r, 0, 3)
	p.JumpLatched = true

	r.Step(p, 16)
	assert.Equal(t, testParams.JumpVelocity, p.Velocity.Y())
	assert.False(t, p.JumpLatched)

	r.Step(p, 16)
	assert.False(t, r.Grounded(p))
	assert.Greater(t, footY(r, p), r.Level.TileRect(0, 3, 0, 0).Top)
}

func TestCeilingStopsRise(t *testing.T) {
	r := newResolver(t,
		"XXXXXXXXXX",
		"          ",
		"          ",
		"          ",
		"          ",
		"XXXXXXXXXX",
	)
	p := standOn(r, 0, 3)
	p.Velocity[1] = 0.05

	for i := 0; i < 20 && p.Velocity.Y() > 0; i++ {
		r.Step(p, 16)
	}
	offX, offY := r.Space.TileOffset()
	ceiling := r.Level.TileRect(5, 3, offX, offY).Bottom()
	head := r.Space.Translated(p.Position).Y() + testExtents.MaxY
	assert.LessOrEqual(t, head, ceiling+common.Epsilon)
}

func TestDeceleration(t *testing.T) {
	r := floorLevel(t, 40, blankRows(6, 40)...)
	p := standOn(r, 0, 5)
	p.Velocity[0] = 1e-3

	r.Step(p, 16)
	assert.InDelta(t, 1e-3-testParams.Decel*16, p.Velocity.X(), 1e-15)

	for i := 0; i < 5; i++ {
		r.Step(p, 16)
	}
	assert.Equal(t, 0.0, p.Velocity.X(), "deceleration stops at zero")
}

func TestIceReducesGrip(t *testing.T) {
	r := newResolver(t,
		"                    ",
		"                    ",
		"                    ",
		"                    ",
		"IIIIIIIIIIXXXXXXXXXX",
	)
	ice := standOn(r, 0, 3)
	stone := standOn(r, 0, 15)
	assert.Equal(t, 0.1, r.Friction(ice))
	assert.Equal(t, 1.0, r.Friction(stone))

	ice.InputAccel, stone.InputAccel = 30e-6, 30e-6
	r.Step(ice, 16)
	r.Step(stone, 16)
	assert.Less(t, ice.Velocity.X(), stone.Velocity.X())
}

func TestSurfaceDamage(t *testing.T) {
	r := newResolver(t,
		"          ",
		"          ",
		"          ",
		"XXXXLLXXXX",
	)
	d, ok := r.SurfaceDamage(standOn(r, 0, 4))
	require.True(t, ok)
	assert.Equal(t, 3.0, d)

	_, ok = r.SurfaceDamage(standOn(r, 0, 1))
	assert.False(t, ok)
}

func TestRunSpeedIsCappedBothWays(t *testing.T) {
	r := floorLevel(t, 300, blankRows(6, 300)...)
	for _, dir := range []float64{1, -1} {
		p := standOn(r, 0, 150)
		p.InputAccel = dir * 30e-6
		for i := 0; i < 100; i++ {
			r.Step(p, 16)
			require.LessOrEqual(t, math.Abs(p.Velocity.X()), testParams.MaxRunSpeed)
		}
		assert.InDelta(t, dir*testParams.MaxRunSpeed, p.Velocity.X(), 1e-15)
	}
}

func TestWallStopsProtagonist(t *testing.T) {
	r := newResolver(t,
		"                    ",
		"                    ",
		"          X         ",
		"          X         ",
		"          X         ",
		"XXXXXXXXXXXXXXXXXXXX",
	)
	p := standOn(r, 0, 4)
	p.InputAccel = 30e-6

	offX, offY := r.Space.TileOffset()
	wallLeft := r.Level.TileRect(1, 10, offX, offY).Left
	for i := 0; i < 200; i++ {
		r.Step(p, 16)
		require.LessOrEqual(t, r.PlayerBounds(p).Right(), wallLeft+0.02, "step %d", i)
	}
	assert.InDelta(t, wallLeft, r.PlayerBounds(p).Right(), 1e-9)
	// At most one step of acceleration survives against the wall.
	assert.LessOrEqual(t, p.Velocity.X(), 30e-6*16+1e-12)

	// Heading left, the wall no longer blocks.
	p.InputAccel = -30e-6
	before := p.Position.X()
	for i := 0; i < 10; i++ {
		r.Step(p, 16)
	}
	assert.Less(t, p.Position.X(), before)
}

func TestPlayerBoundsFacing(t *testing.T) {
	r := floorLevel(t, 10, blankRows(4, 10)...)
	p := standOn(r, 0, 3)
	right := r.PlayerBounds(p)
	p.Facing = -1
	left := r.PlayerBounds(p)
	assert.InDelta(t, testExtents.Width(), right.Width, 1e-15)
	assert.InDelta(t, right.Left, left.Left, 1e-15, "symmetric extents give the same box")
	assert.InDelta(t, testExtents.Height(), right.Height, 1e-15)
}
