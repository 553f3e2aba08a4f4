package rig

import "github.com/go-gl/mathgl/mgl64"

// BoxEdges joins the corner indices returned by BoxCorners.
var BoxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxCorners transforms the corners of a box of size d centred on the model
// origin. Bit 0 of the index selects +X, bit 1 +Y and bit 2 +Z.
func BoxCorners(m mgl64.Mat4, d Dimensions) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		x, y, z := -d.X/2, -d.Y/2, -d.Z/2
		if i&1 != 0 {
			x = d.X / 2
		}
		if i&2 != 0 {
			y = d.Y / 2
		}
		if i&4 != 0 {
			z = d.Z / 2
		}
		out[i] = mgl64.TransformCoordinate(mgl64.Vec3{x, y, z}, m)
	}
	return out
}
