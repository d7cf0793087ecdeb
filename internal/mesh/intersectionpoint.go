// intersectionpoint.go - Aufloesung eines CoarseIntersection zu einem
// vollstaendigen Oberflaechen-Interaktionspunkt
package mesh

import (
	"github.com/mantaray/manta/internal/accel"
	"github.com/mantaray/manta/internal/vecmath"
)

// Direction tags the medium the ray was traveling in at the hit.
type Direction int

const (
	In Direction = iota
	Out
)

// IntersectionPoint is the resolved surface interaction.
type IntersectionPoint struct {
	Position       vecmath.Vector3
	Inside, Outside vecmath.Vector3
	FaceNormal     vecmath.Vector3
	ShadingNormal  vecmath.Vector3
	UV             vecmath.Vector2
	Material       int32
	Geometry       *Mesh
	Direction      Direction
	Ray            vecmath.Ray
}

const intersectionEpsilon = 1e-4

// Resolve turns a coarse per-face hit into a full IntersectionPoint:
// interpolates shading normal/UV, recomputes the geometric normal,
// projects the hit back onto the face plane to kill walk-off error,
// and builds the offset inside/outside points.
func (m *Mesh) Resolve(ray vecmath.Ray, hit accel.CoarseIntersection) IntersectionPoint {
	var i0, i1, i2 int32
	var n0, n1, n2 vecmath.Vector3
	var uv0, uv1, uv2 vecmath.Vector2
	var material int32
	var reversed bool
	haveNormals, haveUVs := len(m.Normals) > 0, len(m.UVs) > 0

	if qi, isQuad := m.isQuad(hit.Face); isQuad {
		q := m.Quads[qi]
		aux := m.QuadAux[qi]
		material = aux.Material
		if hit.SubdivisionHint == 0 {
			i0, i1, i2 = q[0], q[1], q[2]
			n0, n1, n2 = m.auxNormal(aux.NormalIdx[0], haveNormals), m.auxNormal(aux.NormalIdx[1], haveNormals), m.auxNormal(aux.NormalIdx[2], haveNormals)
			uv0, uv1, uv2 = m.auxUV(aux.UVIdx[0], haveUVs), m.auxUV(aux.UVIdx[1], haveUVs), m.auxUV(aux.UVIdx[2], haveUVs)
		} else {
			i0, i1, i2 = q[1], q[2], q[3]
			// {v,w,r} runs against the source triangle's winding.
			reversed = true
			n0, n1, n2 = m.auxNormal(aux.NormalIdx[1], haveNormals), m.auxNormal(aux.NormalIdx[2], haveNormals), m.auxNormal(aux.NormalIdx[3], haveNormals)
			uv0, uv1, uv2 = m.auxUV(aux.UVIdx[1], haveUVs), m.auxUV(aux.UVIdx[2], haveUVs), m.auxUV(aux.UVIdx[3], haveUVs)
		}
	} else {
		tri := m.Triangles[hit.Face]
		aux := m.TriangleAux[hit.Face]
		material = aux.Material
		i0, i1, i2 = tri[0], tri[1], tri[2]
		n0, n1, n2 = m.auxNormal(aux.NormalIdx[0], haveNormals), m.auxNormal(aux.NormalIdx[1], haveNormals), m.auxNormal(aux.NormalIdx[2], haveNormals)
		uv0, uv1, uv2 = m.auxUV(aux.UVIdx[0], haveUVs), m.auxUV(aux.UVIdx[1], haveUVs), m.auxUV(aux.UVIdx[2], haveUVs)
	}

	v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
	faceNormal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	if reversed {
		faceNormal = faceNormal.Neg()
	}

	shading := faceNormal
	if haveNormals {
		shading = vecmath.Lerp3(hit.U, hit.V, hit.W, n0, n1, n2).Normalize()
	}
	uv := vecmath.Lerp2(hit.U, hit.V, hit.W, uv0, uv1, uv2)

	// Project the parametric point back onto the face plane to remove
	// floating-point walk-off.
	raw := ray.At(hit.T)
	d := faceNormal.Dot(v0.Sub(raw))
	position := raw.Add(faceNormal.Scale(d))

	inside := position.Sub(faceNormal.Scale(intersectionEpsilon))
	outside := position.Add(faceNormal.Scale(intersectionEpsilon))

	dir := In
	if faceNormal.Dot(ray.D) > 0 {
		faceNormal = faceNormal.Neg()
		shading = shading.Neg()
		inside, outside = outside, inside
		dir = Out
	}

	return IntersectionPoint{
		Position:      position,
		Inside:        inside,
		Outside:       outside,
		FaceNormal:    faceNormal,
		ShadingNormal: shading,
		UV:            uv,
		Material:      material,
		Geometry:      m,
		Direction:     dir,
		Ray:           ray,
	}
}

func (m *Mesh) auxNormal(idx int32, have bool) vecmath.Vector3 {
	if !have || idx < 0 {
		return vecmath.Vector3{}
	}
	return m.Normals[idx]
}

func (m *Mesh) auxUV(idx int32, have bool) vecmath.Vector2 {
	if !have || idx < 0 {
		return vecmath.Vector2{}
	}
	return m.UVs[idx]
}
