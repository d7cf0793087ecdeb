package imaging

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantaray/manta/internal/vecmath"
)

func TestFFTRoundTrip(t *testing.T) {
	const n = 32
	m := NewComplexMap2D(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			m.Set(x, y, complex(float64((x*7+y*13)%11)/11, float64((x*3+y)%5)/5))
		}
	}
	orig := append([]complex128(nil), m.Data...)

	require.NoError(t, m.FFT(4))
	require.NoError(t, m.InverseFFT(4))

	// InverseFFT applies the 1/(Width*Height) normalization, so the round trip is exact.
	for i, v := range m.Data {
		got := v
		assert.InDelta(t, real(orig[i]), real(got), 1e-6)
		assert.InDelta(t, imag(orig[i]), imag(got), 1e-6)
	}
}

func TestCFTSymmetryOnRealSymmetricInput(t *testing.T) {
	const n = 16
	m := NewComplexMap2D(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx, dy := float64(x-n/2), float64(y-n/2)
			m.Set(x, y, complex(cmplx.Abs(complex(dx, dy)), 0))
		}
	}
	require.NoError(t, m.FFT(2))
	rolled := m.Roll()
	cft := rolled.CFTEstimate(1, 1)
	assert.True(t, cft.IsReal(1e-6))
}

func TestFilterNormalizationIsWeightedMean(t *testing.T) {
	plane := NewImagePlane(4, 4, NewGaussianFilter(2, 2))
	plane.Splat(vecmath.Vector2{X: 2, Y: 2}, vecmath.RGB{R: 1})
	plane.Splat(vecmath.Vector2{X: 2.2, Y: 2.1}, vecmath.RGB{R: 0.5})

	px := plane.At(2, 2)
	want := px.Finalize()

	// weighted mean by hand
	var num, den float32
	type sample struct {
		pos vecmath.Vector2
		r   float32
	}
	samples := []sample{{vecmath.Vector2{X: 2, Y: 2}, 1}, {vecmath.Vector2{X: 2.2, Y: 2.1}, 0.5}}
	for _, s := range samples {
		dx := 2.5 - s.pos.X
		dy := 2.5 - s.pos.Y
		w := plane.Filter.Evaluate(dx, dy)
		num += w * s.r
		den += w
	}
	assert.InDelta(t, num/den, want.R, 1e-5)
}

func TestTileBufferMergeMatchesDirectSplat(t *testing.T) {
	filter := NewGaussianFilter(1, 2)
	direct := NewImagePlane(8, 8, filter)
	viaTile := NewImagePlane(8, 8, filter)

	pos := vecmath.Vector2{X: 3.4, Y: 2.6}
	color := vecmath.RGB{R: 0.3, G: 0.6, B: 0.9}
	direct.Splat(pos, color)

	tile := NewTileBuffer(TileBounds{X0: 0, Y0: 0, X1: 4, Y1: 4}, filter)
	tile.Splat(pos, color)
	viaTile.Merge(tile)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			a := direct.At(x, y)
			b := viaTile.At(x, y)
			assert.InDelta(t, a.W, b.W, 1e-6)
			assert.InDelta(t, a.X, b.X, 1e-6)
		}
	}
}
