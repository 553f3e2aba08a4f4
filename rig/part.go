// Package rig composes the seven-part protagonist from model dimensions and
// the current animation state.
package rig

import "fmt"

// Part identifies one of the protagonist's rigid model parts.
type Part int

const (
	Head Part = iota
	Hips
	Torso
	LeftArm
	RightArm
	LeftLeg
	RightLeg

	PartCount int = iota
)

var partNames = [PartCount]string{
	"head", "hips", "torso", "left_arm", "right_arm", "left_leg", "right_leg",
}

func (p Part) String() string {
	if p < 0 || int(p) >= PartCount {
		return fmt.Sprintf("part(%d)", int(p))
	}
	return partNames[p]
}

// Parts lists every part in rendering order.
func Parts() []Part {
	out := make([]Part, PartCount)
	for i := range out {
		out[i] = Part(i)
	}
	return out
}

// ParsePart resolves a part from its name.
func ParsePart(name string) (Part, bool) {
	for i, n := range partNames {
		if n == name {
			return Part(i), true
		}
	}
	return 0, false
}

// Dimensions are the normalized model extents along each axis, in render
// units.
type Dimensions struct {
	X, Y, Z float64
}

// Skeleton holds the dimensions of every part.
type Skeleton [PartCount]Dimensions

// Extents bound the composed rig relative to the torso center while facing
// right.
type Extents struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (e Extents) Width() float64  { return e.MaxX - e.MinX }
func (e Extents) Height() float64 { return e.MaxY - e.MinY }

// Bounds derives the rig extents from the part dimensions. The head sets the
// width and the top, the hips and left leg set the bottom.
func (s Skeleton) Bounds() Extents {
	head, hips, torso, leg := s[Head], s[Hips], s[Torso], s[LeftLeg]
	return Extents{
		MinX: -head.X / 2,
		MaxX: head.X / 2,
		MaxY: torso.Y/2 + head.Y/2,
		MinY: leg.Y*legPivotY + hips.Y*(hipsOffsetY+hipsLegOffsetY) - torso.Y/2 - leg.Y/2,
	}
}
