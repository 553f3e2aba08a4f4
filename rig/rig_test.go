package rig

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSkeleton() Skeleton {
	var s Skeleton
	s[Head] = Dimensions{0.12, 0.11, 0.12}
	s[Hips] = Dimensions{0.15, 0.05, 0.07}
	s[Torso] = Dimensions{0.20, 0.16, 0.10}
	s[LeftArm] = Dimensions{0.06, 0.16, 0.06}
	s[RightArm] = Dimensions{0.06, 0.16, 0.06}
	s[LeftLeg] = Dimensions{0.06, 0.15, 0.07}
	s[RightLeg] = Dimensions{0.06, 0.15, 0.07}
	return s
}

func TestPartNames(t *testing.T) {
	for _, p := range Parts() {
		got, ok := ParsePart(p.String())
		require.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}
	_, ok := ParsePart("tail")
	assert.False(t, ok)
	assert.Equal(t, "part(9)", Part(9).String())
}

func TestCompletion(t *testing.T) {
	cases := []struct {
		name    string
		anim    Anim
		elapsed float64
		want    float64
	}{
		{"stationary", Stationary, 1234, 0},
		{"jump", Jump, 99, 0},
		{"walk_start", Ambulation, 0, 0.5},
		{"walk_quarter", Ambulation, WalkPeriodMs / 4, 1},
		{"walk_three_quarters", Ambulation, 3 * WalkPeriodMs / 4, 0},
		{"damage_half", Damage, 150, 0.5},
		{"damage_done", Damage, 300, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Completion(c.anim, c.elapsed), 1e-12)
		})
	}
}

func TestAngles(t *testing.T) {
	assert.Equal(t, 0.0, ArmAngle(Stationary, 0))
	assert.Equal(t, math.Pi/2, ArmAngle(Jump, 0))
	assert.Equal(t, math.Pi/1.4, ArmAngle(Damage, 0.3))
	assert.InDelta(t, -math.Pi/6, ArmAngle(Ambulation, 0), 1e-12)
	assert.InDelta(t, math.Pi/6, ArmAngle(Ambulation, 1), 1e-12)
	assert.InDelta(t, 0.8*math.Pi/6, LegAngle(Ambulation, 1), 1e-12)
	assert.Equal(t, math.Pi/5, LegAngle(Damage, 0))
}

func TestStagger(t *testing.T) {
	assert.Equal(t, 0.0, Stagger(Jump, 0.5, 1))
	assert.InDelta(t, -math.Pi/15, Stagger(Damage, 0.5, 1), 1e-12)
	assert.InDelta(t, math.Pi/15, Stagger(Damage, 0.5, -1), 1e-12)
}

func TestBounds(t *testing.T) {
	s := testSkeleton()
	e := s.Bounds()
	assert.InDelta(t, -0.06, e.MinX, 1e-12)
	assert.InDelta(t, 0.06, e.MaxX, 1e-12)
	assert.InDelta(t, 0.08+0.055, e.MaxY, 1e-12)
	wantMinY := 0.15*-0.25 + 0.05*(-0.43) - 0.08 - 0.075
	assert.InDelta(t, wantMinY, e.MinY, 1e-12)
	assert.InDelta(t, e.MaxY-e.MinY, e.Height(), 1e-12)
}

func TestPartMatricesStationary(t *testing.T) {
	s := testSkeleton()
	m := PartMatrices(s, Pose{Anim: Stationary, Facing: 1, Heading: 1})

	head := m[Head].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0.08, head.Y(), 1e-12)

	// Arms sit on opposite sides of the torso along Z.
	left := m[LeftArm].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	right := m[RightArm].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0.05*1.70, left.Z(), 1e-12)
	assert.InDelta(t, -0.05*1.70, right.Z(), 1e-12)
	assert.InDelta(t, left.Y(), right.Y(), 1e-12)

	// Legs mount below the hips on opposite sides.
	ll := m[LeftLeg].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	rl := m[RightLeg].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.Less(t, ll.Y(), 0.0)
	assert.InDelta(t, -ll.Z(), rl.Z(), 1e-12)
}

func TestPartMatricesAreFinite(t *testing.T) {
	s := testSkeleton()
	for _, a := range []Anim{Stationary, Ambulation, Jump, Damage} {
		for _, c := range []float64{0, 0.25, 0.5, 1} {
			for _, m := range WorldMatrices(s, Pose{Anim: a, Completion: c, Facing: -1, Heading: -1}) {
				for _, v := range m {
					require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
				}
			}
		}
	}
}

func TestCompositeFacingLeft(t *testing.T) {
	p := Pose{Position: mgl64.Vec3{0.5, 0.25, 0}, Facing: -1, Heading: -1}
	m := Composite(p)
	got := m.Mul4x1(mgl64.Vec4{0.1, 0, 0, 1})
	assert.InDelta(t, 0.4, got.X(), 1e-12)
	assert.InDelta(t, 0.25, got.Y(), 1e-12)

	p.Heading = 1
	got = Composite(p).Mul4x1(mgl64.Vec4{0.1, 0, 0, 1})
	assert.InDelta(t, 0.6, got.X(), 1e-12)
}

func TestOffsetsTranslateParts(t *testing.T) {
	s := testSkeleton()
	var p Pose
	p.Offsets[Head] = mgl64.Vec3{0, 1, 0}
	moved := PartMatrices(s, p)
	still := PartMatrices(s, Pose{})
	a := moved[Head].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	b := still[Head].Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 1.0, a.Y()-b.Y(), 1e-12)
}

func TestDisperse(t *testing.T) {
	var off [PartCount]mgl64.Vec3
	Disperse(&off, 0.5, 2)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, off[Head])
	assert.InDelta(t, 0.8, off[Hips].X(), 1e-12)
	assert.InDelta(t, -0.9, off[RightArm].X(), 1e-12)
	assert.Equal(t, mgl64.Vec3{}, off[LeftLeg])
}

func TestTransformOrder(t *testing.T) {
	p := Identity().RotateZ(math.Pi/2).Translate(1, 0, 0).Apply(mgl64.Vec3{})
	assert.InDelta(t, 0, p.X(), 1e-12)
	assert.InDelta(t, 1, p.Y(), 1e-12)

	g := GoalSpin(1000).Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, g.X(), 1e-12)
}

func TestBoxCorners(t *testing.T) {
	d := Dimensions{X: 2, Y: 4, Z: 6}
	c := BoxCorners(mgl64.Translate3D(10, 0, 0), d)
	assert.Equal(t, mgl64.Vec3{9, -2, -3}, c[0])
	assert.Equal(t, mgl64.Vec3{11, 2, 3}, c[7])

	for _, e := range BoxEdges {
		diff := c[e[0]].Sub(c[e[1]])
		axes := 0
		for i := range 3 {
			if diff[i] != 0 {
				axes++
			}
		}
		assert.Equal(t, 1, axes, "edge %v spans more than one axis", e)
	}
}
