package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantaray/manta/internal/imaging"
	"github.com/mantaray/manta/internal/vecmath"
)

func TestFPMRoundTripsPixelValues(t *testing.T) {
	filter := imaging.NewGaussianFilter(1, 1)
	plane := imaging.NewImagePlane(4, 3, filter)
	plane.Splat(vecmath.Vector2{X: 1.5, Y: 1.5}, vecmath.RGB{R: 0.2, G: 0.4, B: 0.6})

	var buf bytes.Buffer
	require.NoError(t, WriteFPM(&buf, plane))

	width, height, records, err := ReadFPM(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, width)
	assert.Equal(t, 3, height)
	assert.Len(t, records, 12)

	var totalWeight float32
	for _, r := range records {
		totalWeight += r.Weight
	}
	assert.Greater(t, totalWeight, float32(0))
}

func TestWriteJPEGProducesValidMagicBytes(t *testing.T) {
	pixels := []vecmath.RGB{
		{R: 0, G: 0, B: 0},
		{R: 1, G: 1, B: 1},
		{R: 0.5, G: 0.5, B: 0.5},
		{R: 0.2, G: 0.8, B: 0.1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJPEG(&buf, pixels, 2, 2, 90))

	data := buf.Bytes()
	require.GreaterOrEqual(t, len(data), 3)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data[:3])
}

func TestGammaEncodeBlackAndWhiteAreExact(t *testing.T) {
	assert.Equal(t, uint8(0), gammaEncode(0))
	assert.Equal(t, uint8(255), gammaEncode(1))
}

func TestGammaEncodeMidtoneLightensLinearValue(t *testing.T) {
	// sRGB gamma lifts a linear midtone well above a naive *255 scaling.
	assert.Greater(t, gammaEncode(0.18), uint8(0.18*255))
}
