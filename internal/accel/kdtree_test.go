// kdtree_test.go - KD-Baum vs. erschoepfender Scan
//
// triSet is a minimal FaceSet built directly from triangle vertex
// arrays (no internal/mesh dependency, which would import this
// package back and create a cycle in a same-package test file).
package accel

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantaray/manta/internal/vecmath"
)

type triSet struct {
	verts [][3]vecmath.Vector3
}

func (s *triSet) NumFaces() int { return len(s.verts) }

func (s *triSet) FaceBounds(face int) AABB {
	v := s.verts[face]
	b := EmptyAABB()
	for _, p := range v {
		b = b.UnionPoint(p)
	}
	return b
}

// Overlaps is a conservative AABB-vs-AABB test; it only needs to be a
// valid (if loose) FaceSet implementation for this cross-check, not the
// tight SAT test internal/mesh uses for real leaf construction.
func (s *triSet) Overlaps(face int, bounds AABB) bool {
	fb := s.FaceBounds(face)
	return fb.Min.X <= bounds.Max.X && fb.Max.X >= bounds.Min.X &&
		fb.Min.Y <= bounds.Max.Y && fb.Max.Y >= bounds.Min.Y &&
		fb.Min.Z <= bounds.Max.Z && fb.Max.Z >= bounds.Min.Z
}

// IntersectFace is a plain Moller-Trumbore test, not the watertight
// Woop et al. scheme internal/mesh uses; this package only needs a
// correct-enough oracle geometry to exercise the tree traversal.
func (s *triSet) IntersectFace(ray vecmath.Ray, face int, tMin, tMax float32) (CoarseIntersection, bool) {
	v := s.verts[face]
	e1 := v[1].Sub(v[0])
	e2 := v[2].Sub(v[0])
	pvec := ray.D.Cross(e2)
	det := e1.Dot(pvec)
	if math32.Abs(det) < 1e-9 {
		return CoarseIntersection{}, false
	}
	invDet := 1 / det

	tvec := ray.O.Sub(v[0])
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return CoarseIntersection{}, false
	}

	qvec := tvec.Cross(e1)
	vv := ray.D.Dot(qvec) * invDet
	if vv < 0 || u+vv > 1 {
		return CoarseIntersection{}, false
	}

	t := e2.Dot(qvec) * invDet
	if t <= tMin || t > tMax {
		return CoarseIntersection{}, false
	}
	return CoarseIntersection{Geometry: s, Face: face, U: 1 - u - vv, V: u, W: vv, T: t}, true
}

// scatteredTriangles builds n small triangles at random positions
// inside [-10,10]^3, giving the KD-tree builder enough spatial spread
// to actually split instead of degenerating into one leaf.
func scatteredTriangles(n int) *triSet {
	rng := rand.New(rand.NewPCG(42, 0))
	s := &triSet{}
	for i := 0; i < n; i++ {
		cx := float32(rng.Float64()*20 - 10)
		cy := float32(rng.Float64()*20 - 10)
		cz := float32(rng.Float64()*20 - 10)
		center := vecmath.NewVector3(cx, cy, cz)
		s.verts = append(s.verts, [3]vecmath.Vector3{
			center.Add(vecmath.NewVector3(0, 0, 0)),
			center.Add(vecmath.NewVector3(0.3, 0, 0)),
			center.Add(vecmath.NewVector3(0, 0.3, 0)),
		})
	}
	return s
}

func buildTestTree(t *testing.T, geom *triSet) *Tree {
	t.Helper()
	bounds := EmptyAABB()
	for i := 0; i < geom.NumFaces(); i++ {
		bounds = bounds.Union(geom.FaceBounds(i))
	}
	return Build(geom, bounds, BuildOptions{MaxLeafSize: 2})
}

// testRay returns a ray biased to actually hit the scattered geometry
// about half the time: it's aimed from a random exterior point through
// a jittered point near a randomly chosen triangle's centroid, with the
// rest of its draws being fully random (and usually a clean miss). A
// KD-tree traversal bug is as likely to surface on the miss path (wrong
// early-out) as on the hit path (wrong closest face), so both matter.
func testRay(rng *rand.Rand, geom *triSet) vecmath.Ray {
	o := vecmath.NewVector3(
		float32(rng.Float64()*40-20),
		float32(rng.Float64()*40-20),
		float32(rng.Float64()*40-20),
	)
	if rng.Float64() < 0.5 {
		tri := geom.verts[rng.IntN(len(geom.verts))]
		centroid := tri[0].Add(tri[1]).Add(tri[2]).Scale(1.0 / 3)
		jitter := vecmath.NewVector3(
			float32(rng.Float64()*0.02-0.01),
			float32(rng.Float64()*0.02-0.01),
			float32(rng.Float64()*0.02-0.01),
		)
		return vecmath.NewRay(o, centroid.Add(jitter).Sub(o))
	}
	d := vecmath.NewVector3(
		float32(rng.Float64()*2-1),
		float32(rng.Float64()*2-1),
		float32(rng.Float64()*2-1),
	)
	if d.LengthSquared() < 1e-9 {
		d = vecmath.NewVector3(1, 0, 0)
	}
	return vecmath.NewRay(o, d)
}

// TestClosestHitAgreesWithExhaustiveScan is Testable Property 4: the
// KD-tree's closest-hit result must match a brute-force scan over
// every face, for any ray.
func TestClosestHitAgreesWithExhaustiveScan(t *testing.T) {
	geom := scatteredTriangles(200)
	tree := buildTestTree(t, geom)

	rng := rand.New(rand.NewPCG(7, 0))
	const numRays = 2000
	hits := 0
	for i := 0; i < numRays; i++ {
		ray := testRay(rng, geom)

		gotHit, gotOk := tree.ClosestHit(ray, 1e-4, 1e6)
		wantHit, wantOk := ExhaustiveClosestHit(geom, ray, 1e-4, 1e6)

		require.Equal(t, wantOk, gotOk, "hit/miss disagreement at ray %d (o=%v d=%v)", i, ray.O, ray.D)
		if !wantOk {
			continue
		}
		assert.InDelta(t, wantHit.T, gotHit.T, 1e-3, "closest-hit T disagreement at ray %d", i)
		assert.Equal(t, wantHit.Face, gotHit.Face, "closest-hit face disagreement at ray %d", i)
		hits++
	}

	assert.Greater(t, hits, 0, "test scene produced zero actual hits, rays were not aimed at the geometry")
}

// TestOccludedAgreesWithExhaustiveScan cross-checks the shadow-ray
// fast path against the same brute-force scan.
func TestOccludedAgreesWithExhaustiveScan(t *testing.T) {
	geom := scatteredTriangles(200)
	tree := buildTestTree(t, geom)

	rng := rand.New(rand.NewPCG(11, 0))
	const numRays = 2000
	for i := 0; i < numRays; i++ {
		ray := testRay(rng, geom)

		_, wantOk := ExhaustiveClosestHit(geom, ray, 1e-4, 1e6)
		gotOccluded := tree.Occluded(ray.O, ray.D, 1e6)
		assert.Equal(t, wantOk, gotOccluded, "occlusion disagreement at ray %d (o=%v d=%v)", i, ray.O, ray.D)
	}
}
