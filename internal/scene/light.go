// light.go - Lichtschnittstelle und implizite Kugel-Flaechenlichtquelle
package scene

import (
	"github.com/chewxy/math32"

	"github.com/mantaray/manta/internal/vecmath"
)

type Vector2 = vecmath.Vector2

// Light is implemented by every emitter the path integrator's one-light
// MIS estimator can draw from.
type Light interface {
	// SampleLi draws a direction from point p towards the light,
	// returning the incident radiance, the solid-angle pdf of that
	// direction, and the ray parameter at which the light's surface
	// sits (the shadow ray's tMax).
	SampleLi(p Vector3, u Vector2) (wi Vector3, li RGB, pdf float32, tMax float32)
	// PdfLi is the solid-angle pdf SampleLi would have assigned to wi
	// from p, used by the BSDF-sample MIS leg to weight a bounce that
	// happened to hit this light.
	PdfLi(p Vector3, wi Vector3) float32
	// Intersect tests the light's own implicit shape, used for direct
	// ray hits (primary rays, specular bounces) that bypass
	// light-sampling entirely.
	Intersect(ray vecmath.Ray, tMin, tMax float32) (t float32, ok bool)
	Emission() RGB
}

// SphereLight is an implicit spherical area light emitting Radiance
// uniformly from its entire outward-facing surface, supplementing the
// mesh-only geometry with the implicit-primitive light source.
type SphereLight struct {
	Center   Vector3
	Radius   float32
	Radiance RGB
}

func (s *SphereLight) Emission() RGB { return s.Radiance }

// Intersect solves the ray/sphere quadratic directly (no acceleration
// structure needed for a single implicit primitive), reporting the
// nearest root within the open interval (tMin, tMax).
func (s *SphereLight) Intersect(ray vecmath.Ray, tMin, tMax float32) (float32, bool) {
	dPos := ray.O.Sub(s.Center)
	dDotDir := dPos.Dot(ray.D)
	mag2 := dPos.LengthSquared()
	radius2 := s.Radius * s.Radius

	det := dDotDir*dDotDir - (mag2 - radius2)
	if det < 0 {
		return 0, false
	}
	sqrtDet := math32.Sqrt(det)
	t1 := sqrtDet - dDotDir
	t2 := -sqrtDet - dDotDir

	t := float32(-1)
	if t2 > tMin && t2 < tMax {
		t = t2
	} else if t1 > tMin && t1 < tMax {
		t = t1
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// cosThetaMax is the cosine of the half-angle of the cone subtended by the sphere as
// seen from p; sphere sampling draws directions uniformly within this
// cone instead of over the whole sphere surface, concentrating samples
// where they can actually be visible from p.
func (s *SphereLight) cosThetaMax(p Vector3) float32 {
	dc2 := p.Sub(s.Center).LengthSquared()
	if dc2 <= s.Radius*s.Radius {
		return -1 // p is inside the sphere: the whole sphere of directions is visible
	}
	sinThetaMax2 := (s.Radius * s.Radius) / dc2
	return math32.Sqrt(max32(0, 1-sinThetaMax2))
}

func (s *SphereLight) SampleLi(p Vector3, u Vector2) (Vector3, RGB, float32, float32) {
	toCenter := s.Center.Sub(p)
	dc := toCenter.Length()
	if dc == 0 {
		return Vector3{}, RGB{}, 0, 0
	}
	wc := toCenter.Scale(1 / dc)
	t1, t2 := vecmath.CoordinateSystem(wc)

	cosThetaMax := s.cosThetaMax(p)
	if cosThetaMax < 0 {
		// p sits inside the sphere: fall back to a uniform direction over
		// the full sphere of directions.
		z := 1 - 2*u.X
		r := math32.Sqrt(max32(0, 1-z*z))
		phi := 2 * pi * u.Y
		wi := t1.Scale(math32.Cos(phi) * r).Add(t2.Scale(math32.Sin(phi) * r)).Add(wc.Scale(z))
		return wi, s.Radiance, 1 / (4 * pi), dc + s.Radius
	}

	cosTheta := 1 - u.X*(1-cosThetaMax)
	sinTheta := math32.Sqrt(max32(0, 1-cosTheta*cosTheta))
	phi := 2 * pi * u.Y

	wi := t1.Scale(math32.Cos(phi) * sinTheta).
		Add(t2.Scale(math32.Sin(phi) * sinTheta)).
		Add(wc.Scale(cosTheta))

	ds := dc*cosTheta - math32.Sqrt(max32(0, s.Radius*s.Radius-dc*dc*sinTheta*sinTheta))
	pdf := 1 / (2 * pi * (1 - cosThetaMax))

	return wi, s.Radiance, pdf, ds + 1e-3
}

func (s *SphereLight) PdfLi(p Vector3, wi Vector3) float32 {
	cosThetaMax := s.cosThetaMax(p)
	if cosThetaMax < 0 {
		return 1 / (4 * pi)
	}
	return 1 / (2 * pi * (1 - cosThetaMax))
}

const pi = math32.Pi

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
