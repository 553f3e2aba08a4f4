package system

import (
	"errors"
	"fmt"
	"slices"

	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/progress"
	"gopkg.in/yaml.v3"
)

var ErrBadScript = errors.New("system: invalid input script")

// DefaultStepMs is the fixed step used when a script names none, one
// display refresh at 60 Hz.
const DefaultStepMs = 1000.0 / 60

// Script is a recorded input sequence replayed against a scene with a fixed
// step.
type Script struct {
	Level  int           `yaml:"level"`
	StepMs float64       `yaml:"dt"`
	Steps  int           `yaml:"steps"`
	Events []ScriptEvent `yaml:"events"`
}

// ScriptEvent is delivered before the step with the same index.
type ScriptEvent struct {
	Step      int     `yaml:"step"`
	Action    string  `yaml:"action"`
	Magnitude float64 `yaml:"magnitude"`
}

// ParseScript decodes and validates a YAML input script. Events are sorted
// by step, keeping file order within a step.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadScript, err)
	}
	if s.StepMs == 0 {
		s.StepMs = DefaultStepMs
	}
	if s.StepMs < 0 || s.Steps < 0 || s.Level < 0 {
		return nil, fmt.Errorf("%w: dt, steps and level must not be negative", ErrBadScript)
	}
	for i, e := range s.Events {
		if _, ok := obj.ParseInputAction(e.Action); !ok {
			return nil, fmt.Errorf("%w: event %d: unknown action %q", ErrBadScript, i, e.Action)
		}
		if e.Step < 0 {
			return nil, fmt.Errorf("%w: event %d: negative step", ErrBadScript, i)
		}
		s.Steps = max(s.Steps, e.Step+1)
	}
	slices.SortStableFunc(s.Events, func(a, b ScriptEvent) int { return a.Step - b.Step })
	return &s, nil
}

// Outcome is the scene status after a replay.
type Outcome struct {
	Steps        int
	Elapsed      float64
	Level        int
	Found, Total int
	Health       float64
	State        progress.State
	GameOver     bool
	GameComplete bool
}

// Replay sets up the script's level and runs every step. Overriding stepMs
// with a positive value replaces the script's own step.
func Replay(s *Scene, script *Script, stepMs float64) (Outcome, error) {
	if err := s.SetupLevel(script.Level); err != nil {
		return Outcome{}, err
	}
	dt := script.StepMs
	if stepMs > 0 {
		dt = stepMs
	}

	next := 0
	for step := range script.Steps {
		for next < len(script.Events) && script.Events[next].Step == step {
			e := script.Events[next]
			action, _ := obj.ParseInputAction(e.Action)
			s.HandleInput(obj.InputEvent{Action: action, Magnitude: e.Magnitude})
			next++
		}
		s.Step(dt)
	}
	return s.Outcome(script.Steps), nil
}

// Outcome snapshots the scene status.
func (s *Scene) Outcome(steps int) Outcome {
	found, total := s.Goals()
	return Outcome{
		Steps:        steps,
		Elapsed:      s.elapsed,
		Level:        s.levelIndex,
		Found:        found,
		Total:        total,
		Health:       s.Health(),
		State:        s.State(),
		GameOver:     s.GameOver(),
		GameComplete: s.GameComplete(),
	}
}
