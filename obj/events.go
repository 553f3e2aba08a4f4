package obj

import (
	"math"

	"github.com/milk9111/littlehelpers/common"
)

// InputAction is what a scalar input event asks for.
type InputAction int

const (
	MoveLeft InputAction = iota
	MoveRight
	Jump
)

func (a InputAction) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case Jump:
		return "jump"
	}
	return "unknown"
}

// ParseInputAction resolves an action from its name.
func ParseInputAction(s string) (InputAction, bool) {
	for _, a := range []InputAction{MoveLeft, MoveRight, Jump} {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// MaxInputMagnitude bounds scalar input magnitudes.
const MaxInputMagnitude = 1.0

// InputEvent is a scalar input sample in [0, MaxInputMagnitude]. A pressed
// key is 1 and a released key is 0.
type InputEvent struct {
	Action    InputAction
	Magnitude float64
}

// NormalizedMagnitude coerces NaN to 0 and clamps into range.
func (e InputEvent) NormalizedMagnitude() float64 {
	return common.Clamp(math.Abs(common.Finite(e.Magnitude)), 0, MaxInputMagnitude)
}
