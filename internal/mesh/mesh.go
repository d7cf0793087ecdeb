// mesh.go - Mesh-Datenmodell: Vertex-Arrays, Dreiecke, gemergte Quads
//
// Dieses Paket konsumiert bereits geparste Arrays (kein eigener
// OBJ-Parser) und baut daraus ein Mesh mit Face-AABB-Cache, wie es der
// KD-Baum (internal/accel) ueber die FaceSet-Schnittstelle konsumiert.
package mesh

import (
	"fmt"

	"github.com/mantaray/manta/internal/accel"
	"github.com/mantaray/manta/internal/vecmath"
)

// TriangleAux carries per-corner normal/UV indices and the owning
// material, auxiliary to the bare vertex-index triangle.
type TriangleAux struct {
	NormalIdx [3]int32 // -1 if the mesh has no per-vertex normals
	UVIdx     [3]int32 // -1 if the mesh has no UVs
	Material  int32
}

// QuadAux is TriangleAux's four-corner counterpart for merged quads.
type QuadAux struct {
	NormalIdx [4]int32
	UVIdx     [4]int32
	Material  int32
}

// Mesh is the renderer's triangle/quad soup.
type Mesh struct {
	Vertices []vecmath.Vector3
	Normals  []vecmath.Vector3
	UVs      []vecmath.Vector2

	Triangles    [][3]int32
	TriangleAux  []TriangleAux
	Quads        [][4]int32
	QuadAux      []QuadAux

	bounds []accel.AABB // triangles first, then quads, matching face-index order
}

// New builds a Mesh from already-parsed arrays, filtering degenerate
// faces (|cross product| < 1e-9) and precomputing the per-face AABB
// cache. Index values of -1 in aux arrays mean "absent" (fall back to
// the face normal / no UV).
func New(vertices, normals []vecmath.Vector3, uvs []vecmath.Vector2, triangles [][3]int32, triAux []TriangleAux) (*Mesh, error) {
	if len(triangles) != len(triAux) {
		return nil, fmt.Errorf("mesh: %d triangles but %d aux records", len(triangles), len(triAux))
	}

	m := &Mesh{Vertices: vertices, Normals: normals, UVs: uvs}
	for i, tri := range triangles {
		if err := validFaceIndices(tri[:], len(vertices)); err != nil {
			return nil, fmt.Errorf("mesh: triangle %d: %w", i, err)
		}
		v0, v1, v2 := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		cross := v1.Sub(v0).Cross(v2.Sub(v0))
		if cross.LengthSquared() < 1e-18 {
			continue // degenerate, filtered at load
		}
		m.Triangles = append(m.Triangles, tri)
		m.TriangleAux = append(m.TriangleAux, triAux[i])
	}

	m.MergeCoplanarQuads()
	m.rebuildBoundsCache()
	return m, nil
}

func validFaceIndices(idx []int32, n int) error {
	for _, i := range idx {
		if i < 0 || int(i) >= n {
			return fmt.Errorf("vertex index %d out of range [0,%d)", i, n)
		}
	}
	return nil
}

func (m *Mesh) rebuildBoundsCache() {
	m.bounds = make([]accel.AABB, len(m.Triangles)+len(m.Quads))
	for i := range m.Triangles {
		m.bounds[i] = m.triangleBounds(i)
	}
	off := len(m.Triangles)
	for i := range m.Quads {
		m.bounds[off+i] = m.quadBounds(i)
	}
}

// NumFaces implements accel.FaceSet.
func (m *Mesh) NumFaces() int { return len(m.Triangles) + len(m.Quads) }

// FaceBounds implements accel.FaceSet.
func (m *Mesh) FaceBounds(face int) accel.AABB { return m.bounds[face] }

func (m *Mesh) isQuad(face int) (int, bool) {
	if face < len(m.Triangles) {
		return face, false
	}
	return face - len(m.Triangles), true
}

func (m *Mesh) triangleBounds(i int) accel.AABB {
	tri := m.Triangles[i]
	b := accel.EmptyAABB()
	for _, idx := range tri {
		b = b.UnionPoint(m.Vertices[idx])
	}
	return b
}

func (m *Mesh) quadBounds(i int) accel.AABB {
	q := m.Quads[i]
	b := accel.EmptyAABB()
	for _, idx := range q {
		b = b.UnionPoint(m.Vertices[idx])
	}
	return b
}

func (m *Mesh) MaterialOf(face int) int32 {
	if qi, isQuad := m.isQuad(face); isQuad {
		return m.QuadAux[qi].Material
	}
	return m.TriangleAux[face].Material
}
