package common

// Rect is an axis-aligned rectangle in a Y-up space. Top is the upper edge
// and the rectangle extends Height units downward from it.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top - r.Height }

func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Top - r.Height/2 }

// Intersects reports overlap between two rectangles. Touching edges count as
// overlap, except when other's top is strictly above r's top and other's
// bottom lies exactly on r's top.
func (r Rect) Intersects(other Rect) bool {
	vertical := (r.Top >= other.Top && r.Bottom() <= other.Top) ||
		(other.Top > r.Top && other.Bottom() < r.Top)
	horizontal := (r.Left <= other.Left && r.Right() >= other.Left) ||
		(other.Left <= r.Left && other.Right() >= r.Left)
	return vertical && horizontal
}

// IndexRect is a region of tile indices. Left/Bottom are inclusive and
// Width/Height count tiles.
type IndexRect struct {
	Left, Bottom  int
	Width, Height int
}

func (r IndexRect) Right() int { return r.Left + r.Width }
func (r IndexRect) Top() int   { return r.Bottom + r.Height }
