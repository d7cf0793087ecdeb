// rgb.go - Tristimulus-Farbwert, genutzt von BSDF, Image-Plane und Output
package vecmath

import "github.com/chewxy/math32"

// RGB is the renderer's tristimulus radiance/reflectance type. Manta is
// not a spectral renderer outside the diffraction pipeline, which works
// in CIE XYZ and converts to RGB only at the end.
type RGB struct {
	R, G, B float32
}

func NewRGB(r, g, b float32) RGB { return RGB{r, g, b} }
func Gray(v float32) RGB         { return RGB{v, v, v} }

func (c RGB) Add(o RGB) RGB   { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Sub(o RGB) RGB   { return RGB{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c RGB) Mul(o RGB) RGB   { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

func (c RGB) Div(o RGB) RGB {
	return RGB{safeDiv(c.R, o.R), safeDiv(c.G, o.G), safeDiv(c.B, o.B)}
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}

func (c RGB) MaxComponent() float32 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether every channel is finite (neither NaN nor
// infinite), the condition checked on every sample before it is added
// to a tile buffer.
func (c RGB) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func (c RGB) Clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
