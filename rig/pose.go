package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Placement coefficients, as fractions of part dimensions.
const (
	hipsOffsetY    = -0.23
	hipsLegOffsetY = -0.20
	legMountY      = -0.43
	legMountZ      = -0.285
	legPivotX      = 0.06
	legPivotY      = -0.25
	armPivotX      = 0.275
	armPivotY      = 0.33
	armMountZ      = 1.70
)

// Pose is everything the composer needs besides the skeleton.
type Pose struct {
	Anim       Anim
	Completion float64
	// Facing is the static direction bias (+1 right, -1 left).
	Facing float64
	// Heading is the current direction, which follows the input acceleration
	// when there is one.
	Heading float64
	// Position is the torso center in translated render space.
	Position mgl64.Vec3
	// Offsets displace individual parts, used when the rig falls apart.
	Offsets [PartCount]mgl64.Vec3
}

// PartMatrices returns each part's placement relative to the torso center.
func PartMatrices(s Skeleton, p Pose) [PartCount]mgl64.Mat4 {
	arm := ArmAngle(p.Anim, p.Completion)
	leg := LegAngle(p.Anim, p.Completion)
	torso, hips := s[Torso], s[Hips]

	var base [PartCount]Transform
	base[Head] = Identity().Translate(0, torso.Y/2, 0)
	base[Hips] = Identity().RotateY(math.Pi/2).Translate(0, hips.Y*hipsOffsetY-torso.Y/2, 0)
	base[Torso] = Identity().RotateY(math.Pi / 2)
	base[LeftArm] = armTransform(s[LeftArm], torso, arm, 1)
	base[RightArm] = armTransform(s[RightArm], torso, arm, -1)
	base[LeftLeg] = legTransform(s[LeftLeg], hips, torso, leg, -1)
	base[RightLeg] = legTransform(s[RightLeg], hips, torso, leg, 1)

	var out [PartCount]mgl64.Mat4
	for i := range base {
		out[i] = base[i].TranslateVec(p.Offsets[i]).Mat4()
	}
	return out
}

func armTransform(arm, torso Dimensions, angle, mirror float64) Transform {
	return Identity().
		RotateZ(angle*mirror).
		Translate(arm.X*armPivotX, -arm.Y*armPivotY, torso.Z/2*armMountZ*mirror)
}

func legTransform(leg, hips, torso Dimensions, angle, mirror float64) Transform {
	pivot := Identity().Translate(leg.Z*legPivotX, leg.Y*legPivotY, 0).RotateY(-math.Pi / 2)
	swing := Identity().RotateZ(angle * mirror).Then(pivot)
	return Identity().
		Translate(0, hips.Y*legMountY-torso.Y/2, hips.Z*legMountZ*mirror).
		Then(swing)
}

// Composite places the whole rig: translation to the pose position, the
// damage stagger, and a half turn when heading left.
func Composite(p Pose) mgl64.Mat4 {
	t := Identity().
		TranslateVec(p.Position).
		RotateZ(Stagger(p.Anim, p.Completion, p.Facing))
	if p.Heading < 0 {
		t = t.RotateY(math.Pi)
	}
	return t.Mat4()
}

// WorldMatrices combines Composite with every part matrix.
func WorldMatrices(s Skeleton, p Pose) [PartCount]mgl64.Mat4 {
	c := Composite(p)
	parts := PartMatrices(s, p)
	for i := range parts {
		parts[i] = c.Mul4(parts[i])
	}
	return parts
}

// EnemyBase orients enemy models toward the viewer.
func EnemyBase() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(math.Pi)
}

// GoalSpinRate is the goal rotation speed about Y, in radians per ms.
const GoalSpinRate = (math.Pi / 2) / 1000

// GoalSpin is the goal rotation after elapsedMs of play.
func GoalSpin(elapsedMs float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(GoalSpinRate * elapsedMs)
}
