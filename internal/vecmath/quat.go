// quat.go - Quaternion-Rotationen fuer Kamera-Orientierung
package vecmath

import "github.com/chewxy/math32"

// Quat is a unit quaternion, used to orient camera emitter groups
// (spec Component H) without the gimbal issues of Euler angles.
type Quat struct {
	X, Y, Z, W float32
}

func Identity() Quat { return Quat{0, 0, 0, 1} }

// FromAxisAngle builds a rotation of angle radians around a unit axis.
func FromAxisAngle(axis Vector3, angle float32) Quat {
	half := angle * 0.5
	s := math32.Sin(half)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, math32.Cos(half)}
}

func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quat) Conjugate() Quat { return Quat{-q.X, -q.Y, -q.Z, q.W} }

// RotateVector rotates v by q (q is assumed normalized).
func (q Quat) RotateVector(v Vector3) Vector3 {
	u := Vector3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

func (q Quat) Normalize() Quat {
	l2 := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if l2 <= 0 {
		return Identity()
	}
	inv := 1 / math32.Sqrt(l2)
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// LookAt builds the orientation whose local Z axis maps to the world
// direction `forward`, with `up` resolving roll.
func LookAt(forward, up Vector3) Quat {
	f := forward.Normalize()
	r := up.Cross(f).Normalize()
	u := f.Cross(r)
	// Build from the basis via the trace method (Shepperd's algorithm).
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z
	tr := m00 + m11 + m22
	switch {
	case tr > 0:
		s := math32.Sqrt(tr+1) * 2
		return Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, 0.25 * s}
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		return Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		return Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		return Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
}
