package rig

import "github.com/go-gl/mathgl/mgl64"

// Transform accumulates an affine matrix. Each call post-multiplies, so
// Identity().RotateZ(a).Translate(x, y, z) yields Rz(a) * T(x, y, z).
type Transform struct {
	m mgl64.Mat4
}

func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

func From(m mgl64.Mat4) Transform {
	return Transform{m: m}
}

func (t Transform) Translate(x, y, z float64) Transform {
	return Transform{m: t.m.Mul4(mgl64.Translate3D(x, y, z))}
}

func (t Transform) TranslateVec(v mgl64.Vec3) Transform {
	return t.Translate(v.X(), v.Y(), v.Z())
}

func (t Transform) RotateY(angle float64) Transform {
	return Transform{m: t.m.Mul4(mgl64.HomogRotate3DY(angle))}
}

func (t Transform) RotateZ(angle float64) Transform {
	return Transform{m: t.m.Mul4(mgl64.HomogRotate3DZ(angle))}
}

func (t Transform) Then(o Transform) Transform {
	return Transform{m: t.m.Mul4(o.m)}
}

func (t Transform) Mat4() mgl64.Mat4 {
	return t.m
}

// Apply transforms a point.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.m.Mul4x1(p.Vec4(1)).Vec3()
}
