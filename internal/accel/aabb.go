// aabb.go - Achsenparalleler Begrenzungsquader (Component D)
//
// Slab-Test fuer Ray-Box-Schnitt, Flaecheninhalt fuer SAH, Vereinigung.
package accel

import "github.com/mantaray/manta/internal/vecmath"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max vecmath.Vector3
}

// EmptyAABB returns a degenerate box suitable as a Union fold seed.
func EmptyAABB() AABB {
	inf := float32(1e30)
	return AABB{
		Min: vecmath.NewVector3(inf, inf, inf),
		Max: vecmath.NewVector3(-inf, -inf, -inf),
	}
}

func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

func (b AABB) UnionPoint(p vecmath.Vector3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

func (b AABB) Diagonal() vecmath.Vector3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea is twice the sum of the three face areas, the quantity
// the SAH cost actually needs ratios of, so the factor of
// two is irrelevant but kept for readability against the source paper.
func (b AABB) SurfaceArea() float32 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

func (b AABB) CenterComponent(axis int) float32 {
	return (b.Min.Component(axis) + b.Max.Component(axis)) / 2
}

// MaximumExtentAxis returns the axis along which the box is longest.
func (b AABB) MaximumExtentAxis() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// IntersectRay performs the slab test, returning the entry/exit
// parametric distances clipped to [tMin, tMax] and whether any overlap
// survives, returning both t0 and t1 so callers can clip further.
func (b AABB) IntersectRay(o, invDir vecmath.Vector3, tMin, tMax float32) (float32, float32, bool) {
	t0, t1 := tMin, tMax
	for axis := 0; axis < 3; axis++ {
		invD := invDir.Component(axis)
		tNear := (b.Min.Component(axis) - o.Component(axis)) * invD
		tFar := (b.Max.Component(axis) - o.Component(axis)) * invD
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return t0, t1, false
		}
	}
	return t0, t1, true
}
