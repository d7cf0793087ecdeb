// geometry.go - Schnittstelle zwischen Beschleunigungsstruktur und
// konkreter Geometrie (Arena+Index-Entkopplung)
//
// Der KD-Baum kennt nur Face-Indizes und diese Schnittstelle; er
// importiert nie das konkrete Mesh-Paket. Das vermeidet einen Zyklus
// zwischen Szene, Geometrie und Beschleunigungsstruktur.
package accel

import "github.com/mantaray/manta/internal/vecmath"

// CoarseIntersection is the cheap per-face hit record produced during
// traversal, before normals/UVs are resolved.
type CoarseIntersection struct {
	Geometry         FaceSet
	Face             int
	SubdivisionHint  int
	U, V, W          float32
	T                float32
}

// FaceSet is implemented by concrete geometry (internal/mesh.Mesh) and
// consumed by the KD-tree builder and traverser. It is the renderer's
// answer to the "intrusive references" design note: geometry is
// referred to by index through this narrow interface, never by a
// cyclic back-pointer.
type FaceSet interface {
	NumFaces() int
	FaceBounds(face int) AABB
	// IntersectFace runs the per-face intersection test (triangle or
	// merged quad) and reports a coarse hit if any.
	IntersectFace(ray vecmath.Ray, face int, tMin, tMax float32) (CoarseIntersection, bool)
	// Overlaps is the leaf-construction separating-axis test that
	// rejects faces whose bounds only coincidentally overlap a KD
	// node's box.
	Overlaps(face int, bounds AABB) bool
}
