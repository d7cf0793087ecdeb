package diffraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mantaray/manta/internal/camera"
)

func TestRasterizeApertureCircleIsRoughlySymmetric(t *testing.T) {
	m := RasterizeAperture(camera.CircularAperture{}, nil, 32)
	center := m.At(16, 16)
	assert.Greater(t, center, 0.5)

	corner := m.At(0, 0)
	assert.Less(t, corner, 0.5)
}

func TestSampleCMFPeaksNearExpectedWavelengths(t *testing.T) {
	yPeak := SampleCMF(568.8)
	yOffPeak := SampleCMF(380)
	assert.Greater(t, yPeak.Y, yOffPeak.Y)
}

func TestXYZToSRGBWhitePointIsRoughlyGray(t *testing.T) {
	r, g, b := XYZToSRGB(0.9505, 1.0, 1.089)
	assert.InDelta(t, 1.0, r, 0.05)
	assert.InDelta(t, 1.0, g, 0.05)
	assert.InDelta(t, 1.0, b, 0.05)
}

func TestPatternProducesNormalizedNonNegativeOutput(t *testing.T) {
	s := Settings{
		Aperture:     camera.CircularAperture{},
		OutputWidth:  16,
		OutputHeight: 16,
		SensorWidth:  0.035,
		LambdaMin:    400,
		LambdaMax:    700,
		LambdaStep:   50,
	}
	out := Pattern(s)
	assert.Equal(t, 16, out.Width)
	maxVal := float32(0)
	for _, v := range out.Data {
		assert.GreaterOrEqual(t, v.X, float32(0))
		if v.X > maxVal {
			maxVal = v.X
		}
	}
	// Scaled to unit peak luminance: the brightest pixel's red channel
	// is of order one (about 1.1 for a 6504 K source at these wavelengths).
	assert.InDelta(t, 1.0, float64(maxVal), 0.25)
}
