package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/rig"
)

// Player is the protagonist's simulation state.
type Player struct {
	// Position is the torso center in meters; Velocity is in meters per ms.
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	// InputAccel is the horizontal acceleration requested by input, in
	// meters per ms squared.
	InputAccel float64
	// Facing is the static direction bias: +1 right, -1 left. It only
	// changes while there is input acceleration.
	Facing      float64
	JumpLatched bool

	Health Health

	Anim        rig.Anim
	AnimStart   float64
	InvulnStart float64

	// Offsets displace the parts once the game is over.
	Offsets  [rig.PartCount]mgl64.Vec3
	Matrices [rig.PartCount]mgl64.Mat4

	Blink Blink
}

// Reset places the protagonist at start with full health. Invulnerability
// starts at now.
func (p *Player) Reset(start mgl64.Vec3, now float64, health Health) {
	*p = Player{
		Position:    start,
		Facing:      1,
		Health:      health,
		Anim:        rig.Stationary,
		AnimStart:   now,
		InvulnStart: now,
	}
	p.Health.Current = health.Max
}

// Heading is the current direction: the sign of the input acceleration, or
// the static bias when there is none.
func (p *Player) Heading() float64 {
	if p.InputAccel != 0 {
		return common.Sign(p.InputAccel)
	}
	return p.Facing
}

// UpdateFacing latches the static bias from the input acceleration.
func (p *Player) UpdateFacing() {
	if p.InputAccel != 0 {
		p.Facing = common.Sign(p.InputAccel)
	}
}

// Invulnerable reports whether damage is currently ignored.
func (p *Player) Invulnerable(now, windowMs float64) bool {
	return now-p.InvulnStart <= windowMs
}

// RegisterDamage applies d when it is a positive finite amount and the
// protagonist is not invulnerable. It restarts the invulnerability window
// and the damage animation. It returns whether damage was applied.
func (p *Player) RegisterDamage(d, now, windowMs float64) bool {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 || p.Invulnerable(now, windowMs) {
		return false
	}
	p.InvulnStart = now
	p.Health.Reduce(d)
	p.Anim = rig.Damage
	p.AnimStart = now
	return true
}

// Blink throttles rendering while invulnerable: with an interval of n the
// protagonist is drawn once every n+1 frames.
type Blink struct {
	Interval int
	Count    int
}

func (b *Blink) Advance(interval int) {
	b.Interval = interval
	if b.Count < b.Interval {
		b.Count++
	} else {
		b.Count = 0
	}
}

func (b *Blink) Visible() bool {
	return b.Count == b.Interval
}
