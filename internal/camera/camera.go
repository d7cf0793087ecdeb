// camera.go - Pinhole- und Duennlinsen-Kameraemitter
//
// GenerateRay nimmt normalisierte Bildebenenkoordinaten in [-1, 1]^2
// (y nach oben) sowie einen RNG fuer das Linsen-Sample entgegen und liefert den
// zugehoerigen Sichtstrahl. Ohne Blendenradius degeneriert die
// Duennlinse zur Lochkamera: jeder Strahl startet im Kameraursprung.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/mantaray/manta/internal/vecmath"
)

type (
	Vector2 = vecmath.Vector2
	Vector3 = vecmath.Vector3
	Ray     = vecmath.Ray
	RNG     = vecmath.RNG
)

// Camera is a thin-lens emitter: a pinhole is the special case
// ApertureRadius == 0. Position/Forward/Up/Right form an orthonormal
// basis; Forward and the vertical field of view define the virtual
// image plane one unit in front of the lens.
type Camera struct {
	Position Vector3
	Forward  Vector3
	Up       Vector3
	Right    Vector3

	// FOVY is the vertical field of view in radians.
	FOVY float32
	// AspectRatio is width/height of the output image.
	AspectRatio float32

	// FocalDistance is the distance from the lens to the focal plane
	// along Forward: points at this distance render in perfect focus.
	FocalDistance float32
	// ApertureRadius is the physical lens radius; zero collapses the
	// lens to a pinhole (no defocus blur, infinite depth of field).
	ApertureRadius float32
	Aperture       Aperture
}

// NewCamera builds a camera looking from eye towards target with the
// given world-up hint, deriving an orthonormal Right/Up/Forward basis.
func NewCamera(eye, target, worldUp Vector3, fovyRadians, aspectRatio float32) *Camera {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)
	return &Camera{
		Position:    eye,
		Forward:     forward,
		Up:          up,
		Right:       right,
		FOVY:        fovyRadians,
		AspectRatio: aspectRatio,
		Aperture:    CircularAperture{},
	}
}

// imagePlanePoint maps normalized device coordinates (ndc in [-1, 1],
// y up) to a world-space point on the virtual image plane one unit
// along Forward.
func (c *Camera) imagePlanePoint(ndc Vector2) Vector3 {
	halfHeight := math32.Tan(c.FOVY / 2)
	halfWidth := halfHeight * c.AspectRatio
	offset := c.Right.Scale(ndc.X * halfWidth).Add(c.Up.Scale(ndc.Y * halfHeight))
	return c.Position.Add(c.Forward).Add(offset)
}

// GenerateRay traces a ray for normalized device coordinates ndc,
// jittering the lens origin by a point that sampleLens draws from rng
// on the aperture's unit disk when ApertureRadius > 0.
func (c *Camera) GenerateRay(ndc Vector2, rng *RNG) Ray {
	planePoint := c.imagePlanePoint(ndc)

	if c.ApertureRadius == 0 {
		return vecmath.NewRay(c.Position, planePoint.Sub(c.Position))
	}

	lensX, lensY := c.sampleLens(rng)
	lensOrigin := c.Position.
		Add(c.Right.Scale(lensX * c.ApertureRadius)).
		Add(c.Up.Scale(lensY * c.ApertureRadius))

	// Focus plane intersection: the unperturbed pinhole ray hits the
	// focal plane at t = FocalDistance / cos(angle to Forward); since
	// planePoint already lies one unit along Forward, scale directly.
	pinholeDir := planePoint.Sub(c.Position)
	cosTheta := pinholeDir.Normalize().Dot(c.Forward)
	focusT := c.FocalDistance / cosTheta
	focusPoint := c.Position.Add(pinholeDir.Normalize().Scale(focusT))

	return vecmath.NewRay(lensOrigin, focusPoint.Sub(lensOrigin))
}

// sampleLens draws a rejection-sampled point on the aperture's unit
// disk: uniform candidates in [-1, 1]^2 are accepted once Aperture.Filter
// passes, matching the reference implementation's rejection loop for
// non-circular (polygonal) blades.
func (c *Camera) sampleLens(rng *RNG) (x, y float32) {
	ap := c.Aperture
	if ap == nil {
		ap = CircularAperture{}
	}
	for i := 0; i < 64; i++ {
		x = 2*rng.Float32() - 1
		y = 2*rng.Float32() - 1
		if ap.Filter(x, y) {
			return x, y
		}
	}
	return 0, 0
}
