package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/littlehelpers/obj"
)

// stickDeadZone ignores small resting offsets of the analog stick.
const stickDeadZone = 0.15

// Input turns keyboard and gamepad state into scalar input events. Only
// changes produce events: a press is magnitude 1, a release magnitude 0, and
// the stick reports its absolute axis value.
type Input struct {
	moveAction obj.InputAction
	moveMag    float64
	jumpHeld   bool
}

func NewInput() *Input {
	return &Input{moveAction: obj.MoveRight}
}

// Poll returns the events for this tick.
func (i *Input) Poll() []obj.InputEvent {
	var events []obj.InputEvent

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)

	var stick float64
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			stick = ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			jump = jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		} else if ebiten.GamepadAxisCount(gid) > 0 {
			stick = ebiten.GamepadAxisValue(gid, 0)
			jump = jump || ebiten.IsGamepadButtonPressed(gid, ebiten.GamepadButton0)
		}
	}
	if math.Abs(stick) < stickDeadZone {
		stick = 0
	}

	action, mag := i.moveAction, 0.0
	switch {
	case right && !left:
		action, mag = obj.MoveRight, 1
	case left && !right:
		action, mag = obj.MoveLeft, 1
	case !left && !right && stick > 0:
		action, mag = obj.MoveRight, stick
	case !left && !right && stick < 0:
		action, mag = obj.MoveLeft, -stick
	}
	if action != i.moveAction || mag != i.moveMag {
		if action != i.moveAction && i.moveMag > 0 {
			events = append(events, obj.InputEvent{Action: i.moveAction})
		}
		events = append(events, obj.InputEvent{Action: action, Magnitude: mag})
		i.moveAction, i.moveMag = action, mag
	}

	if jump != i.jumpHeld {
		m := 0.0
		if jump {
			m = 1
		}
		events = append(events, obj.InputEvent{Action: obj.Jump, Magnitude: m})
		i.jumpHeld = jump
	}
	return events
}

// Quit reports whether the quit key went down this tick.
func (i *Input) Quit() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF12)
}

// ToggleDebug reports whether the debug overlay key went down this tick.
func (i *Input) ToggleDebug() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
