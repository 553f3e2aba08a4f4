package system

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/physics"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/milk9111/littlehelpers/progress"
	"github.com/milk9111/littlehelpers/rig"
)

const (
	GoalLabel   = "Pieces Found: "
	HealthLabel = "Durability: "
)

// Scene drives the game one step at a time. It is not safe for concurrent
// use; a single caller invokes Step and the input handlers.
type Scene struct {
	ID uuid.UUID

	logger *log.Logger
	ready  *Ready
	tuning *prefabs.Tuning

	world    *World
	resolver *physics.Resolver
	player   obj.Player
	machine  *progress.Machine

	levelIndex int
	found      int
	elapsed    float64
	overlay    float64
}

// NewScene sets up the first level of r.
func NewScene(r *Ready, logger *log.Logger) (*Scene, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.New()
	s := &Scene{
		ID:      id,
		logger:  logger.With("scene", id.String()[:8]),
		ready:   r,
		tuning:  r.Tuning,
		machine: progress.NewMachine(r.Tuning.Timing),
	}
	s.machine.OnChange(func(from, to progress.State) {
		s.logger.Info("state changed", "from", from, "to", to, "level", s.levelIndex+1)
	})
	if err := s.SetupLevel(0); err != nil {
		return nil, err
	}
	return s, nil
}

// SetupLevel loads the level at index and resets the protagonist, the
// dynamic elements and the goal count. State is only replaced once the new
// level has loaded.
func (s *Scene) SetupLevel(index int) error {
	if index < 0 || index >= len(s.ready.LevelKeys) {
		return fmt.Errorf("%w: %d", ErrLevelIndex, index)
	}
	key := s.ready.LevelKeys[index]
	spec, err := s.ready.Resources.Level(key)
	if err != nil {
		return fmt.Errorf("setup %s: %w", key, err)
	}
	world, err := NewWorld(spec, s.tuning, s.logger)
	if err != nil {
		return fmt.Errorf("setup %s: %w", key, err)
	}

	s.world = world
	s.resolver = physics.New(world.Level, world.Space, s.tuning.Skeleton.Bounds(), s.tuning.Physics)
	s.levelIndex = index
	s.found = 0
	s.player.Reset(s.tuning.Start, s.elapsed, obj.NewHealth(s.tuning.HealthMin, s.tuning.HealthMax))
	s.player.Matrices = rig.PartMatrices(s.tuning.Skeleton, s.Pose())
	s.machine.SetState(progress.Active, s.elapsed)

	s.logger.Info("level loaded", "level", key, "goals", len(world.Goals), "enemies", len(world.Enemies))
	s.logger.Debug("level layout",
		"width", world.Level.Width(), "height", world.Level.Height(),
		"backdrop", world.Backdrop(), "scroll", world.Space.Scroll)
	return nil
}

// ReloadLevel sets up the current level again, picking up edits to its file.
func (s *Scene) ReloadLevel() error {
	return s.SetupLevel(s.levelIndex)
}

// SetTuning swaps the configuration. Kinematics apply immediately; sizes
// apply from the next level setup.
func (s *Scene) SetTuning(t *prefabs.Tuning) {
	s.tuning = t
	s.ready.Tuning = t
	s.machine.Timing = t.Timing
	s.resolver.Params = t.Physics
}

// Step advances the scene by dt ms.
func (s *Scene) Step(dt float64) {
	dt = max(0, common.Finite(dt))
	if s.ready.Patterns != nil {
		s.ready.Patterns.SetElapsed(s.elapsed)
	}

	switch {
	case s.machine.State() == progress.Active:
		s.stepProtagonist(dt)
		s.resolver.StepEnemies(s.world.Enemies, dt, s.steerer())
		s.updateAnimation()
	case s.GameOver():
		rig.Disperse(&s.player.Offsets, s.tuning.DispersalSpeed, dt)
		s.player.Matrices = rig.PartMatrices(s.tuning.Skeleton, s.Pose())
	}

	s.world.Space.Follow(s.player.Position, s.world.Level.EdgeAlignedOffsetBounds())
	s.collideEnemies()
	s.collectGoals()

	if err := s.machine.Update(s, s.elapsed, dt); err != nil {
		s.logger.Error("level advance failed", "err", err)
	}
	s.advanceOverlay(dt)
	s.elapsed += dt
}

func (s *Scene) steerer() physics.Steerer {
	if s.ready.Patterns == nil {
		return nil
	}
	return s.ready.Patterns
}

func (s *Scene) stepProtagonist(dt float64) {
	p := &s.player
	p.Matrices = rig.PartMatrices(s.tuning.Skeleton, s.Pose())
	s.resolver.Step(p, dt)
	if d, ok := s.resolver.SurfaceDamage(p); ok {
		s.registerDamage(d)
	}
	p.Blink.Advance(s.blinkInterval())
}

func (s *Scene) blinkInterval() int {
	if s.player.Invulnerable(s.elapsed, s.tuning.InvulnerabilityMs) {
		return s.tuning.BlinkInterval
	}
	return 0
}

func (s *Scene) registerDamage(d float64) {
	if s.player.RegisterDamage(d, s.elapsed, s.tuning.InvulnerabilityMs) {
		s.logger.Debug("damage", "amount", d, "health", s.player.Health.Current)
	}
}

func (s *Scene) collideEnemies() {
	if s.player.Invulnerable(s.elapsed, s.tuning.InvulnerabilityMs) {
		return
	}
	for _, e := range s.world.Enemies {
		if s.resolver.Touching(&s.player, e) {
			s.registerDamage(e.Enemy.ContactDamage)
		}
	}
}

func (s *Scene) collectGoals() {
	for _, g := range s.world.Goals {
		if g.Active && s.resolver.Touching(&s.player, g) {
			g.Active = false
			s.found++
			s.logger.Debug("goal found", "model", g.Model, "found", s.found, "total", len(s.world.Goals))
		}
	}
}

// contextAnim is the animation implied by the protagonist's motion.
func (s *Scene) contextAnim() rig.Anim {
	switch {
	case !s.resolver.Grounded(&s.player):
		return rig.Jump
	case s.player.InputAccel != 0:
		return rig.Ambulation
	}
	return rig.Stationary
}

func (s *Scene) updateAnimation() {
	p := &s.player
	if p.Anim != rig.Damage {
		p.Anim = s.contextAnim()
		return
	}
	if rig.Completion(rig.Damage, s.animClock()-p.AnimStart) >= 1 {
		p.Anim = s.contextAnim()
		p.AnimStart = s.elapsed
	}
}

// animClock freezes at the end of play so the last pose holds.
func (s *Scene) animClock() float64 {
	if s.machine.State() == progress.Active {
		return s.elapsed
	}
	return s.machine.ActivityEnd()
}

func (s *Scene) advanceOverlay(dt float64) {
	if s.overlay < s.tuning.OverlayRefreshMs {
		s.overlay += dt
	} else {
		s.overlay = 0
	}
}

// HandleInput applies one scalar input event.
func (s *Scene) HandleInput(e obj.InputEvent) {
	m := min(e.NormalizedMagnitude(), s.tuning.MaxInputMagnitude)
	switch e.Action {
	case obj.MoveLeft:
		if s.machine.State() == progress.Active {
			s.player.InputAccel = -s.tuning.InputAccel(m)
		}
	case obj.MoveRight:
		if s.machine.State() == progress.Active {
			s.player.InputAccel = s.tuning.InputAccel(m)
		}
	case obj.Jump:
		s.handleJump(m)
	}
}

func (s *Scene) handleJump(m float64) {
	var err error
	switch {
	case s.machine.State() == progress.Active:
		if m > 0 && s.resolver.Grounded(&s.player) {
			s.player.JumpLatched = true
		}
	case s.GameOver():
		s.logger.Info("restarting level", "level", s.levelIndex+1)
		err = s.SetupLevel(s.levelIndex)
	case s.GameComplete() && m > 0:
		s.logger.Info("restarting game")
		err = s.SetupLevel(0)
	}
	if err != nil {
		s.logger.Error("restart failed", "err", err)
	}
}

// Goals returns the found and total goal counts of the current level.
func (s *Scene) Goals() (found, total int)  { return s.found, len(s.world.Goals) }
func (s *Scene) LevelIndex() int            { return s.levelIndex }
func (s *Scene) LevelCount() int            { return len(s.ready.LevelKeys) }
func (s *Scene) Health() float64            { return s.player.Health.Current }
func (s *Scene) DrainHealth(amount float64) { s.player.Health.Reduce(amount) }

func (s *Scene) State() progress.State { return s.machine.State() }
func (s *Scene) GameOver() bool        { return s.machine.GameOver(s) }
func (s *Scene) GameComplete() bool    { return s.machine.GameComplete(s) }
func (s *Scene) Elapsed() float64      { return s.elapsed }
func (s *Scene) World() *World         { return s.world }
func (s *Scene) Player() *obj.Player   { return &s.player }

// FadeFraction is the opacity of the black overlay.
func (s *Scene) FadeFraction() float64 { return s.machine.FadeFraction(s.elapsed) }

// ShouldRenderProtagonist is false on the skipped frames of the
// invulnerability blink.
func (s *Scene) ShouldRenderProtagonist() bool { return s.player.Blink.Visible() }

// ShouldUpdateOverlay is true once per overlay refresh interval.
func (s *Scene) ShouldUpdateOverlay() bool { return s.overlay >= s.tuning.OverlayRefreshMs }

// GoalText is the goal counter shown in the overlay.
func (s *Scene) GoalText() string {
	found, total := s.Goals()
	return fmt.Sprintf("%s%d / %d", GoalLabel, found, total)
}

// Pose is the protagonist's current pose in translated render space.
func (s *Scene) Pose() rig.Pose {
	p := &s.player
	anim := p.Anim
	return rig.Pose{
		Anim:       anim,
		Completion: rig.Completion(anim, s.animClock()-p.AnimStart),
		Facing:     p.Facing,
		Heading:    p.Heading(),
		Position:   s.world.Space.Translated(p.Position),
		Offsets:    p.Offsets,
	}
}

// ProtagonistMatrices places each part in translated render space, using
// the part matrices from the last step.
func (s *Scene) ProtagonistMatrices() [rig.PartCount]mgl64.Mat4 {
	c := rig.Composite(s.Pose())
	var out [rig.PartCount]mgl64.Mat4
	for i, m := range s.player.Matrices {
		out[i] = c.Mul4(m)
	}
	return out
}

// ProtagonistBounds is the protagonist's collision rectangle in translated
// render space.
func (s *Scene) ProtagonistBounds() common.Rect { return s.resolver.PlayerBounds(&s.player) }

// ItemBounds is an item's collision rectangle in translated render space.
func (s *Scene) ItemBounds(it *obj.Item) common.Rect { return s.resolver.ItemBounds(it) }

// ItemMatrix places an item model in translated render space.
func (s *Scene) ItemMatrix(it *obj.Item) mgl64.Mat4 {
	pos := s.world.Space.Translated(it.Position)
	base := rig.EnemyBase()
	if it.IsGoal() {
		base = rig.GoalSpin(s.elapsed)
	}
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(base)
}
