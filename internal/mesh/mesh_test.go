package mesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantaray/manta/internal/vecmath"
)

func unitTriangleMesh(t *testing.T) *Mesh {
	verts := []vecmath.Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	}
	tris := [][3]int32{{0, 1, 2}}
	aux := []TriangleAux{{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}, Material: 0}}
	m, err := New(verts, nil, nil, tris, aux)
	require.NoError(t, err)
	return m
}

// E1: straight-down ray through a point on the triangle's y=0 edge hits at t=1.
func TestE1DirectHit(t *testing.T) {
	m := unitTriangleMesh(t)
	ray := vecmath.NewRay(vecmath.NewVector3(0.5, 0, 1), vecmath.NewVector3(0, 0, -1))
	hit, ok := m.IntersectFace(ray, 0, 1e-4, 1e6)
	require.True(t, ok)
	assert.InDelta(t, 1, hit.T, 1e-5)
}

// E2: ray displaced well beyond the triangle's AABB must miss.
func TestE2Miss(t *testing.T) {
	m := unitTriangleMesh(t)
	ray := vecmath.NewRay(vecmath.NewVector3(5.5, 0, -1), vecmath.NewVector3(0, 0, 1))
	_, ok := m.IntersectFace(ray, 0, 1e-4, 1e6)
	assert.False(t, ok)
}

// Property 1: a ray and its opposite-direction counterpart agree on t.
func TestRayTriangleSanityBothDirections(t *testing.T) {
	m := unitTriangleMesh(t)
	p := vecmath.NewVector3(0.2, 0.2, 1)
	fwd := vecmath.NewRay(p, vecmath.NewVector3(0, 0, -1))
	back := vecmath.NewRay(vecmath.NewVector3(0.2, 0.2, -1), vecmath.NewVector3(0, 0, 1))

	h1, ok1 := m.IntersectFace(fwd, 0, 1e-4, 1e6)
	h2, ok2 := m.IntersectFace(back, 0, 1e-4, 1e6)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.InDelta(t, h1.T, h2.T, 1e-5*h1.T+1e-5)
}

func unitQuadMesh(t *testing.T) *Mesh {
	// plane at y=0 spanning x,z in [-1,1], built from two triangles
	// sharing the diagonal (0,2) so MergeCoplanarQuads finds it.
	verts := []vecmath.Vector3{
		{-1, 0, -1}, // 0
		{1, 0, -1},  // 1
		{1, 0, 1},   // 2
		{-1, 0, 1},  // 3
	}
	tris := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	aux := []TriangleAux{
		{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}},
		{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}},
	}
	m, err := New(verts, nil, nil, tris, aux)
	require.NoError(t, err)
	require.Len(t, m.Quads, 1, "coplanar triangles sharing an edge must merge")
	return m
}

// E3: a ray through the shared corner vertex of a unit quad hits at t=1.
func TestE3CornerRay(t *testing.T) {
	m := unitQuadMesh(t)
	ray := vecmath.NewRay(vecmath.NewVector3(1, 1, 1), vecmath.NewVector3(0, -1, 0))
	face := len(m.Triangles) // first (only) quad face index
	hit, ok := m.IntersectFace(ray, face, 1e-4, 1e6)
	require.True(t, ok)
	assert.InDelta(t, 1, hit.T, 1e-5)
}

// Property 3 / E4: rays on either side of the quad's diagonal report
// opposite subdivision hints.
func TestQuadSubdivisionConsistency(t *testing.T) {
	m := unitQuadMesh(t)
	face := len(m.Triangles)

	below := vecmath.NewRay(vecmath.NewVector3(0.9, 1, -0.9), vecmath.NewVector3(0, -1, 0))
	above := vecmath.NewRay(vecmath.NewVector3(-0.9, 1, 0.9), vecmath.NewVector3(0, -1, 0))

	h1, ok1 := m.IntersectFace(below, face, 1e-4, 1e6)
	h2, ok2 := m.IntersectFace(above, face, 1e-4, 1e6)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.NotEqual(t, h1.SubdivisionHint, h2.SubdivisionHint)
}

func TestQuadMergeIsDeterministicAcrossIdenticalInputs(t *testing.T) {
	m1 := unitQuadMesh(t)
	m2 := unitQuadMesh(t)
	require.Len(t, m1.Quads, 1)

	if diff := cmp.Diff(m1.Quads, m2.Quads); diff != "" {
		t.Errorf("quad merge is not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(m1.QuadAux, m2.QuadAux); diff != "" {
		t.Errorf("quad aux merge is not deterministic (-first +second):\n%s", diff)
	}
}

func TestDegenerateTriangleFiltered(t *testing.T) {
	verts := []vecmath.Vector3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}} // collinear
	tris := [][3]int32{{0, 1, 2}}
	aux := []TriangleAux{{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}}}
	m, err := New(verts, nil, nil, tris, aux)
	require.NoError(t, err)
	assert.Equal(t, 0, m.NumFaces())
}
