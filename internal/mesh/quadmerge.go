// quadmerge.go - Zusammenfuehren koplanarer Dreieck-Paare zu Quads
//
// Zwei Dreiecke werden gemergt wenn sie eine Kante teilen, koplanar
// sind (|1 - n1.n2| < 1e-5) und die Wicklung konsistent ist: die
// gemeinsame Kante muss im ersten Dreieck in der einen und im zweiten
// Dreieck in der entgegengesetzten Richtung durchlaufen werden. Jedes
// Dreieck wird hoechstens einmal gemergt.
package mesh

import "github.com/mantaray/manta/internal/vecmath"

type edgeKey struct{ a, b int32 }

func makeEdgeKey(a, b int32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

type edgeRef struct {
	triIndex int
	corner   int // index of the edge's start vertex within the triangle (0,1,2)
}

// MergeCoplanarQuads scans m.Triangles for mergeable coplanar pairs and
// replaces them with merged quad faces, recording which sub-triangle
// is subdivisionHint=0 implicitly via the (u,v,w,r) vertex order:
// sub-triangle 0 is {u,v,w}, sub-triangle 1 is {v,w,r}.
func (m *Mesh) MergeCoplanarQuads() {
	edges := make(map[edgeKey][]edgeRef)
	for ti, tri := range m.Triangles {
		for c := 0; c < 3; c++ {
			a, b := tri[c], tri[(c+1)%3]
			key := makeEdgeKey(a, b)
			edges[key] = append(edges[key], edgeRef{triIndex: ti, corner: c})
		}
	}

	consumed := make([]bool, len(m.Triangles))
	var keptTriangles [][3]int32
	var keptTriAux []TriangleAux
	var quads [][4]int32
	var quadAux []QuadAux

	for ti := range m.Triangles {
		if consumed[ti] {
			continue
		}
		if mergedQuad, mergedAux, partner, ok := m.tryMergeFrom(ti, edges, consumed); ok {
			consumed[ti] = true
			consumed[partner] = true
			quads = append(quads, mergedQuad)
			quadAux = append(quadAux, mergedAux)
		}
	}

	for ti, tri := range m.Triangles {
		if !consumed[ti] {
			keptTriangles = append(keptTriangles, tri)
			keptTriAux = append(keptTriAux, m.TriangleAux[ti])
		}
	}

	m.Triangles = keptTriangles
	m.TriangleAux = keptTriAux
	m.Quads = append(m.Quads, quads...)
	m.QuadAux = append(m.QuadAux, quadAux...)
}

func (m *Mesh) tryMergeFrom(ti int, edges map[edgeKey][]edgeRef, consumed []bool) ([4]int32, QuadAux, int, bool) {
	tri := m.Triangles[ti]
	n1 := m.faceNormal(tri)

	for c := 0; c < 3; c++ {
		a, b := tri[c], tri[(c+1)%3]
		key := makeEdgeKey(a, b)
		refs := edges[key]
		if len(refs) != 2 {
			continue // non-manifold or boundary edge: never merge
		}

		var partner edgeRef
		found := false
		for _, r := range refs {
			if r.triIndex != ti {
				partner = r
				found = true
			}
		}
		if !found || consumed[partner.triIndex] {
			continue
		}

		otherTri := m.Triangles[partner.triIndex]
		// Consistent handedness: traversing the shared edge from the
		// first triangle's corner must run opposite in the second
		// (a well-wound closed mesh always satisfies this for a real
		// shared edge).
		oa, ob := otherTri[partner.corner], otherTri[(partner.corner+1)%3]
		if !(oa == b && ob == a) {
			continue
		}

		n2 := m.faceNormal(otherTri)
		if absf(1-n1.Dot(n2)) >= 1e-5 {
			continue
		}

		u := tri[(c+2)%3]       // triangle0's vertex opposite the shared edge
		v, w := a, b            // shared edge, in triangle0's winding order
		r := otherTri[(partner.corner+2)%3] // triangle1's opposite vertex

		quad := [4]int32{u, v, w, r}
		aux := QuadAux{Material: m.TriangleAux[ti].Material}
		t0aux, t1aux := m.TriangleAux[ti], m.TriangleAux[partner.triIndex]
		aux.NormalIdx = [4]int32{t0aux.NormalIdx[(c+2)%3], t0aux.NormalIdx[c], t0aux.NormalIdx[(c+1)%3], t1aux.NormalIdx[(partner.corner+2)%3]}
		aux.UVIdx = [4]int32{t0aux.UVIdx[(c+2)%3], t0aux.UVIdx[c], t0aux.UVIdx[(c+1)%3], t1aux.UVIdx[(partner.corner+2)%3]}

		return quad, aux, partner.triIndex, true
	}
	return [4]int32{}, QuadAux{}, 0, false
}

func (m *Mesh) faceNormal(tri [3]int32) vecmath.Vector3 {
	v0, v1, v2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
