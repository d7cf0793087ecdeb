// ray.go - LightRay: Ursprung, Richtung, Permutation und Scherung
//
// Die Permutations-/Scherungs-Vorberechnung traegt das wasserdichte
// Schnitttest-Schema (Woop et al.) direkt auf dem Ray statt es bei
// jedem Dreieckstest neu zu berechnen.
package vecmath

import "github.com/chewxy/math32"

// Ray is the renderer's LightRay: origin, normalized
// direction, its reciprocal, and the permuted-axis/shear terms used by
// the watertight ray-triangle test. The permutation and shear are
// invariants of (d) alone and are recomputed whenever d changes.
type Ray struct {
	O, D    Vector3
	InvD    Vector3
	Kx, Ky, Kz int
	Sx, Sy, Sz float32
}

// NewRay builds a ray from an origin and a (not necessarily normalized)
// direction, normalizing d and deriving the permutation/shear.
func NewRay(o, d Vector3) Ray {
	r := Ray{O: o, D: d.Normalize()}
	r.recompute()
	return r
}

func (r *Ray) recompute() {
	r.InvD = Vector3{recipOrInf(r.D.X), recipOrInf(r.D.Y), recipOrInf(r.D.Z)}

	r.Kz = r.D.MaxAbsAxis()
	r.Kx = r.Kz + 1
	if r.Kx == 3 {
		r.Kx = 0
	}
	r.Ky = r.Kx + 1
	if r.Ky == 3 {
		r.Ky = 0
	}
	// Swap kx/ky to preserve winding when the dominant axis direction
	// is negative (Woop et al. §3.1).
	if r.D.Component(r.Kz) < 0 {
		r.Kx, r.Ky = r.Ky, r.Kx
	}

	dz := r.D.Component(r.Kz)
	r.Sx = -r.D.Component(r.Kx) / dz
	r.Sy = -r.D.Component(r.Ky) / dz
	r.Sz = 1 / dz
}

func recipOrInf(v float32) float32 {
	if v == 0 {
		return math32.Inf(1)
	}
	return 1 / v
}

// WithOrigin returns a copy of the ray restarted at a new origin,
// keeping the same direction/permutation (used when spawning bounce or
// shadow rays).
func (r Ray) WithOrigin(o Vector3) Ray {
	r.O = o
	return r
}

// At evaluates the ray's parametric point o + t*d.
func (r Ray) At(t float32) Vector3 {
	return r.O.Add(r.D.Scale(t))
}
