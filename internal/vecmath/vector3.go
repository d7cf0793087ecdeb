// vector3.go - 3D-Vektor-Arithmetik fuer den Renderer
//
// Enthaelt:
// - Vector3: Basistyp fuer Punkte, Richtungen und Normalen
// - Arithmetik, Normalisierung, Reflexion/Brechung
// - CoordinateSystem: orthonormale Basis aus einem Vektor
package vecmath

import "github.com/chewxy/math32"

// Vector3 is a single-precision 3-component vector, used uniformly for
// points, directions and normals throughout the renderer.
type Vector3 struct {
	X, Y, Z float32
}

func NewVector3(x, y, z float32) Vector3 { return Vector3{x, y, z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Mul(o Vector3) Vector3 { return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

func (v Vector3) Scale(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Neg() Vector3            { return Vector3{-v.X, -v.Y, -v.Z} }

func (v Vector3) Dot(o Vector3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) LengthSquared() float32 { return v.Dot(v) }
func (v Vector3) Length() float32        { return math32.Sqrt(v.LengthSquared()) }

// Normalize returns a unit vector. The zero vector normalizes to itself;
// callers that rely on non-degeneracy must check LengthSquared first.
func (v Vector3) Normalize() Vector3 {
	l2 := v.LengthSquared()
	if l2 <= 0 {
		return v
	}
	inv := 1 / math32.Sqrt(l2)
	return v.Scale(inv)
}

// Component indexes into (X, Y, Z) by axis, used by the KD-tree and the
// watertight intersection's axis permutation.
func (v Vector3) Component(axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vector3) WithComponent(axis int, val float32) Vector3 {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

// MaxAbsAxis returns the axis (0, 1 or 2) of the largest-magnitude
// component, used to build the ray's permutation triple (kz = argmax|d|).
func (v Vector3) MaxAbsAxis() int {
	ax, ay, az := math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= az:
		return 1
	default:
		return 2
	}
}

func (v Vector3) MaxComponent() float32 {
	m := v.X
	if v.Y > m {
		m = v.Y
	}
	if v.Z > m {
		m = v.Z
	}
	return m
}

func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{min32(v.X, o.X), min32(v.Y, o.Y), min32(v.Z, o.Z)}
}

func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{max32(v.X, o.X), max32(v.Y, o.Y), max32(v.Z, o.Z)}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Reflect mirrors an incident direction i around normal n. Both i and n
// are expected to point away from the surface in the renderer's local
// frame convention (i is the outgoing-from-surface view direction).
func Reflect(i, n Vector3) Vector3 {
	return n.Scale(2 * i.Dot(n)).Sub(i)
}

// Refract bends incident direction i (pointing away from the surface)
// through the interface with relative IOR eta = etaIncident/etaTransmitted.
// Returns false on total internal reflection.
func Refract(i, n Vector3, eta float32) (Vector3, bool) {
	cosThetaI := i.Dot(n)
	sin2ThetaI := max32(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return Vector3{}, false
	}
	cosThetaT := math32.Sqrt(1 - sin2ThetaT)
	t := i.Neg().Scale(eta).Add(n.Scale(eta*cosThetaI - cosThetaT))
	return t, true
}

// CoordinateSystem builds an orthonormal basis (t1, t2) given a unit
// vector n, using the Duff et al. branchless construction.
func CoordinateSystem(n Vector3) (t1, t2 Vector3) {
	sign := float32(1)
	if n.Z < 0 {
		sign = -1
	}
	a := -1 / (sign + n.Z)
	b := n.X * n.Y * a
	t1 = Vector3{1 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	t2 = Vector3{b, sign + n.Y*n.Y*a, -n.Y}
	return t1, t2
}

// Frame is a local shading frame whose Z axis is the shading normal,
// used by every BSDF operation.
type Frame struct {
	X, Y, Z Vector3
}

func FrameFromNormal(n Vector3) Frame {
	x, y := CoordinateSystem(n)
	return Frame{X: x, Y: y, Z: n}
}

// ToLocal projects a world-space vector into the frame's basis.
func (f Frame) ToLocal(v Vector3) Vector3 {
	return Vector3{v.Dot(f.X), v.Dot(f.Y), v.Dot(f.Z)}
}

// ToWorld expands a local-frame vector back into world space.
func (f Frame) ToWorld(v Vector3) Vector3 {
	return f.X.Scale(v.X).Add(f.Y.Scale(v.Y)).Add(f.Z.Scale(v.Z))
}

func CosTheta(v Vector3) float32    { return v.Z }
func AbsCosTheta(v Vector3) float32 { return math32.Abs(v.Z) }
func SameHemisphere(a, b Vector3) bool {
	return a.Z*b.Z > 0
}
