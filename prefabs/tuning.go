package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/physics"
	"github.com/milk9111/littlehelpers/progress"
	"github.com/milk9111/littlehelpers/rig"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

// Tuning is the simulation configuration in simulation units: lengths in
// meters or render units, times in ms, rates per ms.
type Tuning struct {
	WorldScale  float64
	LevelScale  mgl64.Vec3
	VisibleArea [2]float64

	Physics           physics.Params
	AmbulationAccel   float64
	MaxInputMagnitude float64
	InputExponent     float64

	Start             mgl64.Vec3
	HealthMin         float64
	HealthMax         float64
	InvulnerabilityMs float64
	BlinkInterval     int
	DispersalSpeed    float64

	Timing           progress.Timing
	OverlayRefreshMs float64

	// Skeleton holds the protagonist part sizes in render units.
	Skeleton rig.Skeleton
	// Models maps model keys to their normalised size in render units.
	Models map[string]rig.Dimensions
	// Builtins maps builtInModel tags to model keys.
	Builtins map[string]string

	Textures  map[string]color.Color
	Backdrops map[string]color.Color
}

// LoadTuning reads and converts tuning.yaml.
func LoadTuning() (*Tuning, error) {
	spec, err := LoadSpec[TuningSpec](TuningFile)
	if err != nil {
		return nil, err
	}
	return BuildTuning(spec)
}

// LoadTuningFile reads a tuning document from an arbitrary path.
func LoadTuningFile(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	var spec TuningSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return BuildTuning(spec)
}

// BuildTuning converts an authored spec into simulation units and
// validates it.
func BuildTuning(spec TuningSpec) (*Tuning, error) {
	if err := validate(spec); err != nil {
		return nil, err
	}
	k := spec.Kinematics
	perMs := func(v float64) float64 { return v / 1000 }
	perMs2 := func(v float64) float64 { return v / 1e6 }

	t := &Tuning{
		WorldScale: spec.World.Scale,
		LevelScale: mgl64.Vec3{
			spec.World.Scale * spec.World.Tile[0],
			spec.World.Scale * spec.World.Tile[1],
			spec.World.Scale * spec.World.Tile[2],
		},
		VisibleArea: spec.World.VisibleArea,
		Physics: physics.Params{
			Gravity:         perMs2(k.Gravity),
			Decel:           perMs2(k.Deceleration),
			AerialFactor:    k.AerialFactor,
			MaxRunSpeed:     perMs(k.MaxRunSpeed),
			JumpVelocity:    perMs(k.JumpVelocity),
			DefaultFriction: k.DefaultFriction,
		},
		AmbulationAccel:   perMs2(k.AmbulationAccel),
		MaxInputMagnitude: k.MaxInputMagnitude,
		InputExponent:     k.InputExponent,

		Start:             mgl64.Vec3(spec.Protagonist.Start),
		HealthMin:         spec.Protagonist.HealthMin,
		HealthMax:         spec.Protagonist.HealthMax,
		InvulnerabilityMs: spec.Protagonist.Invulnerability * 1000,
		BlinkInterval:     spec.Protagonist.BlinkInterval,
		DispersalSpeed:    perMs(spec.World.Scale * spec.Protagonist.DispersalSpeed),

		Timing: progress.Timing{
			FadeMs:      spec.Progression.Fade * 1000,
			PauseMs:     spec.Progression.Pause * 1000,
			HealthDrain: perMs(spec.Progression.GoalTax),
		},
		OverlayRefreshMs: spec.Progression.OverlayRefresh * 1000,

		Models:    make(map[string]rig.Dimensions),
		Builtins:  make(map[string]string, len(spec.Builtins)),
		Textures:  make(map[string]color.Color, len(spec.Textures)),
		Backdrops: make(map[string]color.Color, len(spec.Backdrops)),
	}

	for tag, key := range spec.Builtins {
		if _, ok := spec.Models[key]; !ok {
			return nil, fmt.Errorf("%w: builtin %s names unknown model %q", ErrInvalidTuning, tag, key)
		}
		t.Builtins[tag] = key
	}

	scales := make(map[string]float64)
	for name, ps := range spec.Protagonist.Parts {
		part, ok := rig.ParsePart(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown part %q", ErrInvalidTuning, name)
		}
		raw, ok := spec.Models[ps.Model]
		if !ok {
			return nil, fmt.Errorf("%w: part %s names unknown model %q", ErrInvalidTuning, name, ps.Model)
		}
		scale := spec.Protagonist.BaseScale * ps.Scale
		t.Skeleton[part] = normalise(raw, scale)
		scales[ps.Model] = scale
	}
	for _, p := range rig.Parts() {
		if _, ok := spec.Protagonist.Parts[p.String()]; !ok {
			return nil, fmt.Errorf("%w: missing part %s", ErrInvalidTuning, p)
		}
	}

	for key, raw := range spec.Models {
		scale, ok := scales[key]
		if !ok {
			scale = spec.EnemyScale
		}
		t.Models[key] = normalise(raw, scale)
	}

	for name, c := range spec.Textures {
		t.Textures[name] = c.Color
	}
	for name, c := range spec.Backdrops {
		t.Backdrops[name] = c.Color
	}
	return t, nil
}

// ModelFor resolves a builtInModel tag to its model key and size.
func (t *Tuning) ModelFor(tag string) (string, rig.Dimensions, bool) {
	key, ok := t.Builtins[tag]
	if !ok {
		return "", rig.Dimensions{}, false
	}
	d, ok := t.Models[key]
	return key, d, ok
}

// InputAccel maps a normalised input magnitude to an acceleration
// magnitude.
func (t *Tuning) InputAccel(magnitude float64) float64 {
	return t.AmbulationAccel * math.Pow(magnitude, t.InputExponent)
}

// normalise scales raw extents so the largest equals scale.
func normalise(raw [3]float64, scale float64) rig.Dimensions {
	largest := max(raw[0], raw[1], raw[2])
	if largest <= 0 {
		return rig.Dimensions{}
	}
	f := scale / largest
	return rig.Dimensions{X: raw[0] * f, Y: raw[1] * f, Z: raw[2] * f}
}

func validate(spec TuningSpec) error {
	checks := []struct {
		name string
		v    float64
	}{
		{"world.scale", spec.World.Scale},
		{"world.tile.x", spec.World.Tile[0]},
		{"world.tile.y", spec.World.Tile[1]},
		{"world.tile.z", spec.World.Tile[2]},
		{"kinematics.max_run_speed", spec.Kinematics.MaxRunSpeed},
		{"kinematics.max_input_magnitude", spec.Kinematics.MaxInputMagnitude},
		{"protagonist.health_max", spec.Protagonist.HealthMax},
		{"protagonist.base_scale", spec.Protagonist.BaseScale},
		{"enemy_scale", spec.EnemyScale},
	}
	for _, c := range checks {
		if !(c.v > 0) || math.IsInf(c.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, c.name, c.v)
		}
	}
	if spec.Protagonist.HealthMin > spec.Protagonist.HealthMax {
		return fmt.Errorf("%w: health_min %v exceeds health_max %v", ErrInvalidTuning,
			spec.Protagonist.HealthMin, spec.Protagonist.HealthMax)
	}
	if spec.Progression.Fade < 0 || spec.Progression.Pause < 0 || spec.Progression.GoalTax < 0 {
		return fmt.Errorf("%w: progression durations and rates must not be negative", ErrInvalidTuning)
	}
	if spec.Protagonist.BlinkInterval < 0 {
		return fmt.Errorf("%w: blink_interval must not be negative", ErrInvalidTuning)
	}
	return nil
}
