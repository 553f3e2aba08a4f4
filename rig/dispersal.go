package rig

import "github.com/go-gl/mathgl/mgl64"

// dispersalDirections scale the base dispersal speed per part. Legs stay put.
var dispersalDirections = [PartCount]mgl64.Vec3{
	Head:     {0, 1, 0},
	Hips:     {0.8, 0.6, 0},
	Torso:    {-0.8, 0.6, 0},
	LeftArm:  {0.9, 0.31, 0},
	RightArm: {-0.9, 0.31, 0},
}

// Disperse advances part offsets by speed*dt along each part's direction.
// speed is in render units per ms.
func Disperse(offsets *[PartCount]mgl64.Vec3, speed, dt float64) {
	for i := range offsets {
		offsets[i] = offsets[i].Add(dispersalDirections[i].Mul(speed * dt))
	}
}
