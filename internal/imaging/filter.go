// filter.go - Rekonstruktionsfilter fuer das Sample-Splatting
package imaging

import "github.com/chewxy/math32"

// Filter evaluates a square-support reconstruction kernel centered on
// a sample, used by ImagePlane splatting.
type Filter interface {
	// Radius is the half-width of the square support in pixels.
	Radius() float32
	// Evaluate returns the filter weight at an offset (dx, dy) from
	// the sample's position, in pixels. Must return 0 outside Radius.
	Evaluate(dx, dy float32) float32
}

// GaussianFilter is the default reconstruction filter: exp(-alpha*r^2)
// clamped to zero beyond Extent.
type GaussianFilter struct {
	Alpha  float32
	Extent float32
}

func NewGaussianFilter(alpha, extent float32) GaussianFilter {
	return GaussianFilter{Alpha: alpha, Extent: extent}
}

func (f GaussianFilter) Radius() float32 { return f.Extent }

func (f GaussianFilter) Evaluate(dx, dy float32) float32 {
	if dx*dx+dy*dy > f.Extent*f.Extent {
		return 0
	}
	return gaussian(dx, f.Alpha) * gaussian(dy, f.Alpha)
}

func gaussian(d, alpha float32) float32 {
	return math32.Exp(-alpha * d * d)
}

// BoxFilter is a trivial flat-weight filter, useful for testing the
// splatting machinery without Gaussian falloff.
type BoxFilter struct {
	Extent float32
}

func (f BoxFilter) Radius() float32 { return f.Extent }
func (f BoxFilter) Evaluate(dx, dy float32) float32 {
	if math32.Abs(dx) > f.Extent || math32.Abs(dy) > f.Extent {
		return 0
	}
	return 1
}
