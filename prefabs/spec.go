package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TuningFile is the name of the tuning document.
const TuningFile = "tuning.yaml"

// TuningSpec mirrors tuning.yaml. Values are authored in meters and
// seconds.
type TuningSpec struct {
	World       WorldSpec             `yaml:"world"`
	Kinematics  KinematicsSpec        `yaml:"kinematics"`
	Protagonist ProtagonistSpec       `yaml:"protagonist"`
	Progression ProgressionSpec       `yaml:"progression"`
	EnemyScale  float64               `yaml:"enemy_scale"`
	Models      map[string][3]float64 `yaml:"models"`
	Builtins    map[string]string     `yaml:"builtin_models"`
	Textures    map[string]YAMLColor  `yaml:"textures"`
	Backdrops   map[string]YAMLColor  `yaml:"backdrops"`
}

type WorldSpec struct {
	Scale       float64    `yaml:"scale"`
	Tile        [3]float64 `yaml:"tile"`
	VisibleArea [2]float64 `yaml:"visible_area"`
}

type KinematicsSpec struct {
	Gravity           float64 `yaml:"gravity"`
	AmbulationAccel   float64 `yaml:"ambulation_accel"`
	Deceleration      float64 `yaml:"deceleration"`
	AerialFactor      float64 `yaml:"aerial_factor"`
	MaxRunSpeed       float64 `yaml:"max_run_speed"`
	JumpVelocity      float64 `yaml:"jump_velocity"`
	DefaultFriction   float64 `yaml:"default_friction"`
	MaxInputMagnitude float64 `yaml:"max_input_magnitude"`
	InputExponent     float64 `yaml:"input_exponent"`
}

type ProtagonistSpec struct {
	Start           [3]float64          `yaml:"start"`
	HealthMin       float64             `yaml:"health_min"`
	HealthMax       float64             `yaml:"health_max"`
	Invulnerability float64             `yaml:"invulnerability"`
	BlinkInterval   int                 `yaml:"blink_interval"`
	DispersalSpeed  float64             `yaml:"dispersal_speed"`
	BaseScale       float64             `yaml:"base_scale"`
	Parts           map[string]PartSpec `yaml:"parts"`
}

type PartSpec struct {
	Model string  `yaml:"model"`
	Scale float64 `yaml:"scale"`
}

type ProgressionSpec struct {
	Fade           float64 `yaml:"fade"`
	Pause          float64 `yaml:"pause"`
	OverlayRefresh float64 `yaml:"overlay_refresh"`
	GoalTax        float64 `yaml:"goal_tax"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
