// overlap.go - Trenn-Achsen-Test fuer Leaf-Konstruktion
//
// Filtert Faces deren AABB den Knoten-Bounds zwar ueberlappt, deren
// tatsaechliche Geometrie es aber nicht tut (Akenine-Moeller Dreieck-
// Box-Test ueber Kanten-, Box- und Kreuzprodukt-Achsen sowie die
// Face-Ebene selbst).
package mesh

import (
	"github.com/mantaray/manta/internal/accel"
	"github.com/mantaray/manta/internal/vecmath"
)

// Overlaps implements accel.FaceSet.
func (m *Mesh) Overlaps(face int, bounds accel.AABB) bool {
	if qi, isQuad := m.isQuad(face); isQuad {
		q := m.Quads[qi]
		return triangleBoxOverlap(bounds, m.Vertices[q[0]], m.Vertices[q[1]], m.Vertices[q[2]]) ||
			triangleBoxOverlap(bounds, m.Vertices[q[1]], m.Vertices[q[2]], m.Vertices[q[3]])
	}
	tri := m.Triangles[face]
	return triangleBoxOverlap(bounds, m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]])
}

func triangleBoxOverlap(box accel.AABB, v0, v1, v2 vecmath.Vector3) bool {
	center := box.Min.Add(box.Max).Scale(0.5)
	half := box.Max.Sub(box.Min).Scale(0.5)

	a := v0.Sub(center)
	b := v1.Sub(center)
	c := v2.Sub(center)

	edges := [3]vecmath.Vector3{b.Sub(a), c.Sub(b), a.Sub(c)}
	boxAxes := [3]vecmath.Vector3{{X: 1}, {Y: 1}, {Z: 1}}

	// 9 cross-product axes (edge x box-axis).
	for _, e := range edges {
		for _, ba := range boxAxes {
			axis := e.Cross(ba)
			if axis.LengthSquared() < 1e-20 {
				continue
			}
			if separates(axis, half, a, b, c) {
				return false
			}
		}
	}

	// 3 box-face-normal axes: plain AABB overlap.
	triBounds := accel.EmptyAABB().UnionPoint(v0).UnionPoint(v1).UnionPoint(v2)
	if triBounds.Max.X < box.Min.X || triBounds.Min.X > box.Max.X {
		return false
	}
	if triBounds.Max.Y < box.Min.Y || triBounds.Min.Y > box.Max.Y {
		return false
	}
	if triBounds.Max.Z < box.Min.Z || triBounds.Min.Z > box.Max.Z {
		return false
	}

	// Face-plane axis.
	n := edges[0].Cross(edges[1])
	if separates(n, half, a, b, c) {
		return false
	}

	return true
}

// separates projects the box half-extents and the triangle's three
// (center-relative) vertices onto axis, reporting whether their ranges
// fail to overlap.
func separates(axis, half vecmath.Vector3, a, b, c vecmath.Vector3) bool {
	p0 := a.Dot(axis)
	p1 := b.Dot(axis)
	p2 := c.Dot(axis)
	triMin, triMax := p0, p0
	if p1 < triMin {
		triMin = p1
	}
	if p1 > triMax {
		triMax = p1
	}
	if p2 < triMin {
		triMin = p2
	}
	if p2 > triMax {
		triMax = p2
	}

	r := half.X*absf(axis.X) + half.Y*absf(axis.Y) + half.Z*absf(axis.Z)
	return triMin > r || triMax < -r
}
