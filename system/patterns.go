package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/obj"
)

// LinearPattern is the built-in straight-line movement; it runs no script.
const LinearPattern = "linear"

// PatternSource reads the script for a movement pattern.
type PatternSource func(name string) ([]byte, error)

// Patterns runs tengo movement scripts for enemies. Each script sees the
// globals velocity, position, origin, elapsed and dt, and may reassign
// velocity. Scripts are compiled once per name.
type Patterns struct {
	source   PatternSource
	logger   *log.Logger
	compiled map[string]*tengo.Compiled
	broken   map[string]bool
	elapsed  float64
}

func NewPatterns(source PatternSource, logger *log.Logger) *Patterns {
	return &Patterns{
		source:   source,
		logger:   logger,
		compiled: make(map[string]*tengo.Compiled),
		broken:   make(map[string]bool),
	}
}

// IsScripted reports whether name refers to a script rather than the
// built-in linear motion.
func IsScripted(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && name != LinearPattern
}

// Compile loads and compiles the script for name, caching the result.
func (p *Patterns) Compile(name string) error {
	if !IsScripted(name) {
		return nil
	}
	if _, ok := p.compiled[name]; ok {
		return nil
	}
	src, err := p.source(name)
	if err != nil {
		return fmt.Errorf("pattern %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	zero := []any{0.0, 0.0, 0.0}
	for _, g := range []string{"velocity", "position", "origin"} {
		if err := script.Add(g, zero); err != nil {
			return fmt.Errorf("pattern %s: %w", name, err)
		}
	}
	for _, g := range []string{"elapsed", "dt"} {
		if err := script.Add(g, 0.0); err != nil {
			return fmt.Errorf("pattern %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("pattern %s: %w", name, err)
	}
	p.compiled[name] = compiled
	return nil
}

// Reset drops compiled scripts so edited files are picked up again.
func (p *Patterns) Reset() {
	clear(p.compiled)
	clear(p.broken)
}

// SetElapsed sets the scene time passed to scripts.
func (p *Patterns) SetElapsed(ms float64) { p.elapsed = ms }

// Steer runs the enemy's movement script. Missing or failing scripts leave
// the velocity unchanged and are logged once per name. Non-finite velocity
// components from a script become 0.
func (p *Patterns) Steer(it *obj.Item, dt float64) {
	if it.Enemy == nil || !IsScripted(it.Enemy.Pattern) {
		return
	}
	name := it.Enemy.Pattern
	if p.broken[name] {
		return
	}
	v, err := p.run(name, it, dt)
	if err != nil {
		p.broken[name] = true
		if p.logger != nil {
			p.logger.Warn("movement pattern disabled", "pattern", name, "err", err)
		}
		return
	}
	it.Velocity = v
}

func (p *Patterns) run(name string, it *obj.Item, dt float64) (mgl64.Vec3, error) {
	if err := p.Compile(name); err != nil {
		return it.Velocity, err
	}
	c := p.compiled[name]

	vars := map[string]any{
		"velocity": vec(it.Velocity),
		"position": vec(it.Position),
		"origin":   vec(it.Enemy.Origin),
		"elapsed":  p.elapsed,
		"dt":       dt,
	}
	for k, v := range vars {
		if err := c.Set(k, v); err != nil {
			return it.Velocity, err
		}
	}
	if err := c.Run(); err != nil {
		return it.Velocity, err
	}
	return readVec(c.Get("velocity"), it.Velocity)
}

func vec(v mgl64.Vec3) []any {
	return []any{v.X(), v.Y(), v.Z()}
}

func readVec(v *tengo.Variable, fallback mgl64.Vec3) (mgl64.Vec3, error) {
	arr, ok := v.Object().(*tengo.Array)
	if !ok {
		return fallback, fmt.Errorf("velocity must be an array, got %s", v.ValueType())
	}
	out := fallback
	for i := 0; i < len(arr.Value) && i < 3; i++ {
		f, ok := tengo.ToFloat64(arr.Value[i])
		if !ok {
			return fallback, fmt.Errorf("velocity[%d] is not a number", i)
		}
		out[i] = common.Finite(f)
	}
	return out, nil
}
