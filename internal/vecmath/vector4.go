// vector4.go - 4-Komponenten-Vektor, Basis fuer VectorMap2D und den
// Bildebenen-Akkumulator (R*w, G*w, B*w, w)
package vecmath

// Vector4 backs VectorMap2D cells and the per-pixel image accumulator.
type Vector4 struct {
	X, Y, Z, W float32
}

func (v Vector4) Add(o Vector4) Vector4 {
	return Vector4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

func (v Vector4) Scale(s float32) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

func RGBW(c RGB, w float32) Vector4 {
	return Vector4{c.R * w, c.G * w, c.B * w, w}
}

// Finalize divides the weighted accumulator by its weight, returning
// black when w is zero (image-plane finalization).
func (v Vector4) Finalize() RGB {
	if v.W == 0 {
		return RGB{}
	}
	inv := 1 / v.W
	return RGB{v.X * inv, v.Y * inv, v.Z * inv}
}
