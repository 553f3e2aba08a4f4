package obj

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/rig"
	"github.com/stretchr/testify/assert"
)

func TestRegisterDamage(t *testing.T) {
	var p Player
	p.Reset(mgl64.Vec3{1, 8, 0}, 0, NewHealth(0, 50))

	assert.False(t, p.RegisterDamage(10, 3000, 3000), "still invulnerable at the window edge")
	assert.True(t, p.RegisterDamage(10, 3001, 3000))
	assert.Equal(t, 40.0, p.Health.Current)
	assert.Equal(t, rig.Damage, p.Anim)
	assert.Equal(t, 3001.0, p.AnimStart)

	assert.False(t, p.RegisterDamage(10, 4000, 3000))
	assert.False(t, p.RegisterDamage(math.NaN(), 9000, 3000))
	assert.False(t, p.RegisterDamage(-5, 9000, 3000))
	assert.False(t, p.RegisterDamage(0, 9000, 3000))

	assert.True(t, p.RegisterDamage(500, 9000, 3000))
	assert.Equal(t, 0.0, p.Health.Current)
	assert.Equal(t, 0.0, p.Health.Fraction())
}

func TestHealthClamp(t *testing.T) {
	h := NewHealth(0, 50)
	h.Reduce(-20)
	assert.Equal(t, 50.0, h.Current)
	h.Reduce(math.Inf(1))
	assert.Equal(t, 50.0, h.Current)
	h.Reduce(60)
	assert.Equal(t, 0.0, h.Current)
	assert.Equal(t, 0.0, h.Fraction())
}

func TestHeadingAndFacing(t *testing.T) {
	var p Player
	p.Reset(mgl64.Vec3{}, 0, NewHealth(0, 50))
	assert.Equal(t, 1.0, p.Heading())

	p.InputAccel = -0.5
	assert.Equal(t, -1.0, p.Heading())
	assert.Equal(t, 1.0, p.Facing)
	p.UpdateFacing()
	assert.Equal(t, -1.0, p.Facing)

	p.InputAccel = 0
	p.UpdateFacing()
	assert.Equal(t, -1.0, p.Facing)
}

func TestBlink(t *testing.T) {
	var b Blink
	var visible []bool
	for i := 0; i < 6; i++ {
		b.Advance(2)
		visible = append(visible, b.Visible())
	}
	assert.Equal(t, []bool{false, true, false, false, true, false}, visible)

	b.Advance(0)
	assert.True(t, b.Visible())
}

func TestInputEventMagnitude(t *testing.T) {
	assert.Equal(t, 0.0, InputEvent{Magnitude: math.NaN()}.NormalizedMagnitude())
	assert.Equal(t, 1.0, InputEvent{Magnitude: 3}.NormalizedMagnitude())
	assert.Equal(t, 0.5, InputEvent{Magnitude: -0.5}.NormalizedMagnitude())

	a, ok := ParseInputAction("jump")
	assert.True(t, ok)
	assert.Equal(t, Jump, a)
}

func TestSpaceConversions(t *testing.T) {
	s := Space{Scale: 0.156, Scroll: mgl64.Vec3{0.5, 0.25, 0}}
	p := mgl64.Vec3{2, 3, 0}
	tr := s.Translated(p)
	assert.InDelta(t, 2*0.156-0.5, tr.X(), 1e-12)
	back := s.TranslatedToWorld(tr)
	assert.InDelta(t, 2, back.X(), 1e-12)
	assert.InDelta(t, 3, back.Y(), 1e-12)

	ox, oy := s.TileOffset()
	assert.Equal(t, -0.5, ox)
	assert.Equal(t, -0.25, oy)
	assert.Equal(t, 0.0, s.ToRender(math.NaN()))
}

func TestSpaceFollow(t *testing.T) {
	s := Space{Scale: 0.5}
	b := OffsetBounds{MinX: -0.9, MaxX: -5, MinY: -0.9, MaxY: -0.9}

	s.Follow(mgl64.Vec3{0, 0, 0}, b)
	assert.Equal(t, 0.9, s.Scroll.X(), "clamped at the left edge")
	assert.Equal(t, 0.9, s.Scroll.Y())

	s.Follow(mgl64.Vec3{6, 10, 0}, b)
	assert.Equal(t, 3.0, s.Scroll.X())
	assert.Equal(t, 0.9, s.Scroll.Y(), "level fits vertically")

	s.Follow(mgl64.Vec3{100, 0, 0}, b)
	assert.Equal(t, 5.0, s.Scroll.X(), "clamped at the right edge")
}
