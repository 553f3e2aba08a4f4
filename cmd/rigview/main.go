// rigview shows the protagonist rig cycling through its animations.
//
// Keys: 1-4 pick an animation, Space cycles automatically, Left/Right set
// the facing, X toggles the game-over dispersal.
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/milk9111/littlehelpers/rig"
	"golang.org/x/image/colornames"
)

const (
	viewSize = 512
	// viewSpan is the render-space width shown across the window.
	viewSpan = 0.6
	// cycleMs is how long each animation plays when cycling.
	cycleMs = 2000.0
)

var anims = []rig.Anim{rig.Stationary, rig.Ambulation, rig.Jump, rig.Damage}

type viewer struct {
	skeleton rig.Skeleton
	speed    float64

	anim      int
	animStart float64
	now       float64
	cycling   bool
	facing    float64
	dispersed bool
	offsets   [rig.PartCount]mgl64.Vec3
}

func (v *viewer) Update() error {
	dt := 1000 / float64(ebiten.TPS())
	v.now += dt

	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(key) {
			v.setAnim(i)
			v.cycling = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.cycling = !v.cycling
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		v.facing = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		v.facing = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		v.dispersed = !v.dispersed
		v.offsets = [rig.PartCount]mgl64.Vec3{}
	}

	if v.cycling && v.now-v.animStart >= cycleMs {
		v.setAnim((v.anim + 1) % len(anims))
	}
	if v.dispersed {
		rig.Disperse(&v.offsets, v.speed, dt)
	}
	return nil
}

func (v *viewer) setAnim(i int) {
	v.anim = i
	v.animStart = v.now
}

func (v *viewer) pose() rig.Pose {
	a := anims[v.anim]
	return rig.Pose{
		Anim:       a,
		Completion: rig.Completion(a, v.now-v.animStart),
		Facing:     v.facing,
		Heading:    v.facing,
		Offsets:    v.offsets,
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	for i, m := range rig.WorldMatrices(v.skeleton, v.pose()) {
		corners := rig.BoxCorners(m, v.skeleton[i])
		for _, e := range rig.BoxEdges {
			x0, y0 := toScreen(corners[e[0]])
			x1, y1 := toScreen(corners[e[1]])
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, partColor(rig.Part(i)), true)
		}
	}
	p := v.pose()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  completion %.2f  facing %+.0f  cycling %v",
		p.Anim, p.Completion, p.Facing, v.cycling))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func toScreen(p mgl64.Vec3) (float32, float32) {
	scale := viewSize / viewSpan
	return float32(viewSize/2 + p.X()*scale), float32(viewSize/2 - p.Y()*scale)
}

func partColor(p rig.Part) color.Color {
	switch p {
	case rig.Head:
		return colornames.Gold
	case rig.Torso, rig.LeftArm, rig.RightArm:
		return colornames.Firebrick
	}
	return colornames.Royalblue
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "rigview"})

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}
	v := &viewer{skeleton: tuning.Skeleton, speed: tuning.DispersalSpeed, facing: 1, cycling: true}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Little Helpers rig")
	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal("run", "err", err)
	}
}
