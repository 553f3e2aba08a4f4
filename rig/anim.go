package rig

import "math"

// Anim is the protagonist animation kind.
type Anim int

const (
	Stationary Anim = iota
	Ambulation
	Jump
	Damage
)

func (a Anim) String() string {
	switch a {
	case Stationary:
		return "stationary"
	case Ambulation:
		return "ambulation"
	case Jump:
		return "jump"
	case Damage:
		return "damage"
	}
	return "unknown"
}

const (
	// WalkPeriodMs is the length of one full ambulation cycle.
	WalkPeriodMs = 850.0
	// DamageDurationMs is how long the damage animation plays.
	DamageDurationMs = 300.0
)

// Completion maps the running time of an animation to its fraction.
// Ambulation oscillates in [0, 1]; damage grows linearly and reaches 1 after
// DamageDurationMs.
func Completion(a Anim, elapsedMs float64) float64 {
	switch a {
	case Ambulation:
		return (math.Sin(2*math.Pi*elapsedMs/WalkPeriodMs) + 1) / 2
	case Damage:
		return elapsedMs / DamageDurationMs
	}
	return 0
}

// ArmAngle is the arm swing about Z.
func ArmAngle(a Anim, completion float64) float64 {
	switch a {
	case Jump:
		return math.Pi / 2
	case Damage:
		return math.Pi / 1.4
	case Ambulation:
		return (2*completion - 1) * math.Pi / 6
	}
	return 0
}

// LegAngle is the leg swing about Z.
func LegAngle(a Anim, completion float64) float64 {
	if a == Damage {
		return math.Pi / 5
	}
	return 0.8 * ArmAngle(a, completion)
}

// Stagger is the whole-body tilt played while taking damage. facing is the
// static direction bias.
func Stagger(a Anim, completion, facing float64) float64 {
	if a != Damage {
		return 0
	}
	dir := 1.0
	if facing > 0 {
		dir = -1
	}
	return math.Sin(completion*math.Pi) * dir * math.Pi / 15
}
