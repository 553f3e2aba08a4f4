// Package progress tracks operation state, the black fade between levels
// and the derived game-over and game-complete conditions.
package progress

import "github.com/milk9111/littlehelpers/common"

// State is the operation state of the game.
type State int

const (
	Active State = iota
	InterLevelPause
	Inactive
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case InterLevelPause:
		return "inter_level_pause"
	case Inactive:
		return "inactive"
	}
	return "unknown"
}

// Fade is the status of the black fade overlay.
type Fade int

const (
	FadeNone Fade = iota
	FadingToBlack
	FadingToBlackDone
	FadingFromBlack
	FadingFromBlackDone
)

func (f Fade) String() string {
	switch f {
	case FadeNone:
		return "none"
	case FadingToBlack:
		return "to_black"
	case FadingToBlackDone:
		return "to_black_done"
	case FadingFromBlack:
		return "from_black"
	case FadingFromBlackDone:
		return "from_black_done"
	}
	return "unknown"
}

// InProgress reports whether a fade is animating.
func (f Fade) InProgress() bool {
	return f == FadingToBlack || f == FadingFromBlack
}

// Timing holds durations in ms and the health drain per ms.
type Timing struct {
	FadeMs      float64
	PauseMs     float64
	HealthDrain float64
}

// World is what the machine reads and mutates on the scene.
type World interface {
	Goals() (found, total int)
	LevelIndex() int
	LevelCount() int
	Health() float64
	DrainHealth(amount float64)
	// SetupLevel loads the level at index and resets per-level state.
	SetupLevel(index int) error
}

// Observer is notified of committed state changes.
type Observer func(from, to State)

// Machine is the progression state machine. State changes requested while a
// fade is animating are held as pending and committed once it finishes.
type Machine struct {
	Timing Timing

	state       State
	pending     State
	fade        Fade
	fadeStart   float64
	pauseStart  float64
	activityEnd float64

	observer Observer
}

func NewMachine(t Timing) *Machine {
	return &Machine{Timing: t}
}

// OnChange registers a callback for committed state changes.
func (m *Machine) OnChange(o Observer) { m.observer = o }

func (m *Machine) State() State         { return m.state }
func (m *Machine) Pending() State       { return m.pending }
func (m *Machine) Fade() Fade           { return m.fade }
func (m *Machine) ActivityEnd() float64 { return m.activityEnd }

// SetState requests a state change. Leaving Active records the activity
// end time. The change commits immediately unless a fade is animating.
func (m *Machine) SetState(s State, now float64) {
	m.pending = s
	if m.state == Active && s != Active {
		m.activityEnd = now
	}
	if !m.fade.InProgress() {
		m.commit()
	}
}

func (m *Machine) commit() {
	if m.pending == m.state {
		return
	}
	from := m.state
	m.state = m.pending
	if m.observer != nil {
		m.observer(from, m.state)
	}
}

// StartFadeToBlack begins a fade to black unless one is animating.
func (m *Machine) StartFadeToBlack(now float64) {
	if m.fade.InProgress() {
		return
	}
	m.fade = FadingToBlack
	m.fadeStart = now
}

// StartFadeFromBlack begins a fade back from black.
func (m *Machine) StartFadeFromBlack(now float64) {
	m.fade = FadingFromBlack
	m.fadeStart = now
}

// ResetFade clears the fade status.
func (m *Machine) ResetFade() {
	m.fade = FadeNone
}

// FadeFraction is the overlay opacity in [0, 1].
func (m *Machine) FadeFraction(now float64) float64 {
	switch m.fade {
	case FadingToBlack:
		return m.fadeProgress(now)
	case FadingToBlackDone:
		return 1
	case FadingFromBlack:
		return 1 - m.fadeProgress(now)
	}
	return 0
}

func (m *Machine) fadeProgress(now float64) float64 {
	if m.Timing.FadeMs <= 0 {
		return 1
	}
	return common.Clamp((now-m.fadeStart)/m.Timing.FadeMs, 0, 1)
}

func (m *Machine) advanceFade(now float64) {
	if !m.fade.InProgress() || m.fadeProgress(now) < 1 {
		return
	}
	switch m.fade {
	case FadingToBlack:
		m.fade = FadingToBlackDone
	case FadingFromBlack:
		m.fade = FadingFromBlackDone
	}
}

// GameOver reports that the protagonist ran out of health.
func (m *Machine) GameOver(w World) bool {
	return m.state != Active && w.Health() <= 0
}

// GameComplete reports that every goal of the last level was found.
func (m *Machine) GameComplete(w World) bool {
	found, total := w.Goals()
	return m.state != Active && found == total && w.LevelIndex() >= w.LevelCount()-1 && w.Health() > 0
}

// Update runs one step of progression logic at time now with step dt.
// It returns the error from a failed level setup, if any.
func (m *Machine) Update(w World, now, dt float64) error {
	m.advanceFade(now)
	if !m.fade.InProgress() {
		m.commit()
	}
	if m.fade == FadingFromBlackDone {
		m.fade = FadeNone
	}

	found, total := w.Goals()
	switch {
	case found == total && w.LevelIndex() < w.LevelCount():
		if err := m.updateLevelComplete(w, now); err != nil {
			return err
		}
	default:
		w.DrainHealth(m.Timing.HealthDrain * common.Finite(dt))
	}

	if w.Health() <= 0 {
		m.SetState(Inactive, now)
	}
	return nil
}

func (m *Machine) updateLevelComplete(w World, now float64) error {
	switch m.state {
	case Active:
		m.SetState(InterLevelPause, now)
		m.pauseStart = now
	case InterLevelPause:
		if now-m.pauseStart < m.Timing.PauseMs || m.fade.InProgress() || m.GameComplete(w) {
			return nil
		}
		if m.fade != FadingToBlackDone {
			m.StartFadeToBlack(now)
			return nil
		}
		if err := w.SetupLevel(w.LevelIndex() + 1); err != nil {
			return err
		}
		m.SetState(Active, now)
		m.ResetFade()
		m.StartFadeFromBlack(now)
	}
	return nil
}
