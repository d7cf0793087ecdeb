// bsdf.go - BSDF-Schnittstelle: sampleF/f/pdf ueber einem lokalen Frame
//
// Jede BSDF arbeitet in einem lokalen Frame, dessen Z-Achse die
// Shading-Normale ist (siehe internal/vecmath.Frame); der Integrator
// transformiert wi/wo vor und nach jedem Aufruf.
package bsdf

import "github.com/mantaray/manta/internal/vecmath"

type (
	Vector2 = vecmath.Vector2
	Vector3 = vecmath.Vector3
	RGB     = vecmath.RGB
	RNG     = vecmath.RNG
)

var (
	AbsCosTheta    = vecmath.AbsCosTheta
	CosTheta       = vecmath.CosTheta
	SameHemisphere = vecmath.SameHemisphere
	Reflect        = vecmath.Reflect
	Refract        = vecmath.Refract
)

// Flags tags the kind of scattering event a Sample represents.
type Flags uint8

const (
	Reflection Flags = 1 << iota
	Transmission
	Delta
	Diffuse
)

func (f Flags) Has(x Flags) bool { return f&x != 0 }

// Sample is the result of importance-sampling a BSDF at an incident
// direction.
type Sample struct {
	Wo    Vector3
	F     RGB
	Pdf   float32
	Flags Flags
}

// Surface carries the per-hit inputs a value-node graph needs to
// evaluate texture-driven reflectance; built by the integrator from the
// resolved intersection point.
type Surface struct {
	UV Vector2
}

// BSDF is the contract every scattering model implements. wi and wo are
// both expressed in the local shading frame, pointing away from the
// surface.
type BSDF interface {
	SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample
	F(surf Surface, wi, wo Vector3) RGB
	Pdf(surf Surface, wi, wo Vector3) float32
}

// CosineSampleHemisphere draws a direction in the upper hemisphere
// (z>=0) with density cosTheta/pi, via Shirley-Chiu concentric disk
// mapping followed by a projection onto the hemisphere.
func CosineSampleHemisphere(u Vector2) Vector3 {
	dx, dy := concentricSampleDisk(u)
	z := sqrtClamped(1 - dx*dx - dy*dy)
	return Vector3{X: dx, Y: dy, Z: z}
}

func concentricSampleDisk(u Vector2) (x, y float32) {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return 0, 0
	}
	var r, theta float32
	if absf(ox) > absf(oy) {
		r = ox
		theta = (pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = (pi / 2) - (pi/4)*(ox/oy)
	}
	return r * cosf(theta), r * sinf(theta)
}
