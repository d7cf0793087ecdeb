// intersect.go - Wasserdichter Dreieck-/Quad-Schnitttest
//
// Permutierte Achsen + Scherung (Woop et al.), bereits auf dem Ray
// vorberechnet (internal/vecmath.Ray). Quads werden als Paar von
// Unterdreiecken {u,v,w} und {v,w,r} getestet.
package mesh

import "github.com/mantaray/manta/internal/vecmath"
import "github.com/mantaray/manta/internal/accel"

// IntersectFace implements accel.FaceSet: dispatches to the triangle
// or quad watertight test by face index.
func (m *Mesh) IntersectFace(ray vecmath.Ray, face int, tMin, tMax float32) (accel.CoarseIntersection, bool) {
	if qi, isQuad := m.isQuad(face); isQuad {
		return m.intersectQuad(ray, face, qi, tMin, tMax)
	}
	tri := m.Triangles[face]
	u, v, w, t, ok := intersectTriangleWatertight(ray, m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]], tMin, tMax)
	if !ok {
		return accel.CoarseIntersection{}, false
	}
	return accel.CoarseIntersection{Geometry: m, Face: face, SubdivisionHint: 0, U: u, V: v, W: w, T: t}, true
}

func (m *Mesh) intersectQuad(ray vecmath.Ray, face, qi int, tMin, tMax float32) (accel.CoarseIntersection, bool) {
	q := m.Quads[qi]
	u0, v0, w0 := m.Vertices[q[0]], m.Vertices[q[1]], m.Vertices[q[2]]
	if bu, bv, bw, t, ok := intersectTriangleWatertight(ray, u0, v0, w0, tMin, tMax); ok {
		return accel.CoarseIntersection{Geometry: m, Face: face, SubdivisionHint: 0, U: bu, V: bv, W: bw, T: t}, true
	}

	v1, w1, r1 := m.Vertices[q[1]], m.Vertices[q[2]], m.Vertices[q[3]]
	if bu, bv, bw, t, ok := intersectTriangleWatertight(ray, v1, w1, r1, tMin, tMax); ok {
		return accel.CoarseIntersection{Geometry: m, Face: face, SubdivisionHint: 1, U: bu, V: bv, W: bw, T: t}, true
	}
	return accel.CoarseIntersection{}, false
}

// intersectTriangleWatertight is the Woop et al. permuted-axis+shear
// test, using the permutation/shear already
// carried on the ray.
func intersectTriangleWatertight(ray vecmath.Ray, v0, v1, v2 vecmath.Vector3, tMin, tMax float32) (u, v, w, t float32, ok bool) {
	p0 := v0.Sub(ray.O)
	p1 := v1.Sub(ray.O)
	p2 := v2.Sub(ray.O)

	px0, py0, pz0 := permute(p0, ray.Kx, ray.Ky, ray.Kz)
	px1, py1, pz1 := permute(p1, ray.Kx, ray.Ky, ray.Kz)
	px2, py2, pz2 := permute(p2, ray.Kx, ray.Ky, ray.Kz)

	px0 += ray.Sx * pz0
	py0 += ray.Sy * pz0
	px1 += ray.Sx * pz1
	py1 += ray.Sy * pz1
	px2 += ray.Sx * pz2
	py2 += ray.Sy * pz2

	e0 := px1*py2 - py1*px2
	e1 := px2*py0 - py2*px0
	e2 := px0*py1 - py0*px1

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return 0, 0, 0, 0, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return 0, 0, 0, 0, false
	}

	pz0 *= ray.Sz
	pz1 *= ray.Sz
	pz2 *= ray.Sz
	tScaled := e0*pz0 + e1*pz1 + e2*pz2

	tHit := tScaled / det
	if tHit <= tMin || tHit > tMax {
		return 0, 0, 0, 0, false
	}

	invDet := 1 / det
	return e0 * invDet, e1 * invDet, e2 * invDet, tHit, true
}

func permute(p vecmath.Vector3, kx, ky, kz int) (x, y, z float32) {
	return p.Component(kx), p.Component(ky), p.Component(kz)
}
