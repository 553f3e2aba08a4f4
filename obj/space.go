package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/littlehelpers/common"
)

// Space converts between world space (meters), render space (world times
// Scale) and translated render space (render minus the scroll position).
// The grid is queried in translated render space with an offset of -Scroll.
type Space struct {
	Scale  float64
	Scroll mgl64.Vec3
}

func (s *Space) ToRender(meters float64) float64 {
	return common.Finite(meters) * s.Scale
}

func (s *Space) ToWorld(render float64) float64 {
	if s.Scale == 0 {
		return 0
	}
	return common.Finite(render) / s.Scale
}

// Translated maps a world position to translated render space.
func (s *Space) Translated(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		s.ToRender(p.X()) - s.Scroll.X(),
		s.ToRender(p.Y()) - s.Scroll.Y(),
		s.ToRender(p.Z()) - s.Scroll.Z(),
	}
}

func (s *Space) TranslatedToWorldX(x float64) float64 {
	return s.ToWorld(x + s.Scroll.X())
}

func (s *Space) TranslatedToWorldY(y float64) float64 {
	return s.ToWorld(y + s.Scroll.Y())
}

func (s *Space) TranslatedToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		s.TranslatedToWorldX(p.X()),
		s.TranslatedToWorldY(p.Y()),
		s.ToWorld(p.Z() + s.Scroll.Z()),
	}
}

// TileOffset is the offset passed to grid queries.
func (s *Space) TileOffset() (x, y float64) {
	return -s.Scroll.X(), -s.Scroll.Y()
}

// Follow centers the scroll position on a world position, stopping where the
// level edges meet the viewport edges.
func (s *Space) Follow(p mgl64.Vec3, b OffsetBounds) {
	x := math.Min(-b.MaxX, math.Max(-b.MinX, s.ToRender(p.X())))
	y := math.Min(-b.MaxY, math.Max(-b.MinY, s.ToRender(p.Y())))
	s.Scroll = mgl64.Vec3{x, y, s.Scroll.Z()}
}
