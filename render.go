package main

import (
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/littlehelpers/common"
	"github.com/milk9111/littlehelpers/obj"
	"github.com/milk9111/littlehelpers/prefabs"
	"github.com/milk9111/littlehelpers/rig"
	"github.com/milk9111/littlehelpers/system"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 720
	screenHeight = 720
)

var partColors = [rig.PartCount]color.Color{
	rig.Head:     colornames.Gold,
	rig.Hips:     colornames.Royalblue,
	rig.Torso:    colornames.Firebrick,
	rig.LeftArm:  colornames.Firebrick,
	rig.RightArm: colornames.Firebrick,
	rig.LeftLeg:  colornames.Royalblue,
	rig.RightLeg: colornames.Royalblue,
}

// Renderer draws a scene with an orthographic XY projection of translated
// render space, where the viewport spans [-1, 1] on both axes.
type Renderer struct {
	Debug bool
}

func toScreen(x, y float64) (float32, float32) {
	return float32((x + 1) / 2 * screenWidth), float32((1 - y) / 2 * screenHeight)
}

func (r *Renderer) Draw(screen *ebiten.Image, s *system.Scene, t *prefabs.Tuning) {
	w := s.World()
	screen.Fill(backdropColor(t, w.Backdrop()))

	offX, offY := w.Space.TileOffset()
	for _, reg := range w.Level.SolidRegions(offX, offY) {
		texture := ""
		if attrs := w.Level.Spec().AttributesFor(reg.ID); attrs != nil {
			texture = attrs.Texture
		}
		fillBB(screen, reg.BB, textureColor(t, texture))
		if r.Debug {
			strokeBB(screen, reg.BB, colornames.Black)
		}
	}

	for _, it := range w.Items() {
		if !it.Active {
			continue
		}
		c := itemColor(it)
		if it.Renderable {
			drawBox(screen, s.ItemMatrix(it), it.Dims, c)
		} else {
			strokeRect(screen, s.ItemBounds(it), colornames.Magenta)
		}
		if r.Debug {
			strokeRect(screen, s.ItemBounds(it), colornames.White)
		}
	}

	if s.ShouldRenderProtagonist() {
		for i, m := range s.ProtagonistMatrices() {
			drawBox(screen, m, t.Skeleton[i], partColors[i])
		}
	}
	if r.Debug {
		strokeRect(screen, s.ProtagonistBounds(), colornames.Lime)
	}

	if f := s.FadeFraction(); f > 0 {
		a := uint8(common.Clamp(f, 0, 1) * 255)
		vector.FillRect(screen, 0, 0, screenWidth, screenHeight, color.NRGBA{A: a}, false)
	}
}

func backdropColor(t *prefabs.Tuning, name string) color.Color {
	if c, ok := t.Backdrops[name]; ok {
		return c
	}
	return colornames.Midnightblue
}

// textureColor looks up the configured colour of a texture, falling back to
// the named colour matching the texture's suffix.
func textureColor(t *prefabs.Tuning, name string) color.Color {
	if c, ok := t.Textures[name]; ok {
		return c
	}
	key := strings.ToLower(strings.TrimPrefix(name, "BuiltInTexture_"))
	if c, ok := colornames.Map[key]; ok {
		return c
	}
	return colornames.Slategray
}

func itemColor(it *obj.Item) color.Color {
	if it.IsGoal() {
		return colornames.Gold
	}
	return colornames.Crimson
}

func fillBB(screen *ebiten.Image, bb cp.BB, c color.Color) {
	x, y := toScreen(bb.L, bb.T)
	x2, y2 := toScreen(bb.R, bb.B)
	vector.FillRect(screen, x, y, x2-x, y2-y, c, false)
}

func strokeBB(screen *ebiten.Image, bb cp.BB, c color.Color) {
	x, y := toScreen(bb.L, bb.T)
	x2, y2 := toScreen(bb.R, bb.B)
	vector.StrokeRect(screen, x, y, x2-x, y2-y, 1, c, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	strokeBB(screen, cp.BB{L: r.Left, B: r.Bottom(), R: r.Right(), T: r.Top}, c)
}

// drawBox shades the screen-space extent of a transformed box and outlines
// its edges.
func drawBox(screen *ebiten.Image, m mgl64.Mat4, d rig.Dimensions, c color.Color) {
	corners := rig.BoxCorners(m, d)
	bb := cp.BB{L: corners[0].X(), R: corners[0].X(), B: corners[0].Y(), T: corners[0].Y()}
	for _, p := range corners[1:] {
		bb = bb.Expand(cp.Vector{X: p.X(), Y: p.Y()})
	}
	r, g, b, _ := c.RGBA()
	fillBB(screen, bb, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 96})

	for _, e := range rig.BoxEdges {
		x0, y0 := toScreen(corners[e[0]].X(), corners[e[0]].Y())
		x1, y1 := toScreen(corners[e[1]].X(), corners[e[1]].Y())
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, true)
	}
}
