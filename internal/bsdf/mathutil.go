package bsdf

import "github.com/chewxy/math32"

func cosf(v float32) float32 { return math32.Cos(v) }
func sinf(v float32) float32 { return math32.Sin(v) }

func sqrtClamped(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return math32.Sqrt(v)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func pow5(v float32) float32 {
	v2 := v * v
	return v2 * v2 * v
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
