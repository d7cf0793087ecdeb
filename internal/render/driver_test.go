package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantaray/manta/internal/camera"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

func newTestScene() *scene.Scene {
	light := &scene.SphereLight{
		Center:   vecmath.Vector3{X: 0, Y: 0, Z: 5},
		Radius:   2,
		Radiance: vecmath.RGB{R: 1, G: 1, B: 1},
	}
	return &scene.Scene{Lights: []scene.Light{light}, Library: scene.NewMaterialLibrary()}
}

func newTestCamera() *camera.Camera {
	return camera.NewCamera(
		vecmath.Vector3{X: 0, Y: 0, Z: 0},
		vecmath.Vector3{X: 0, Y: 0, Z: 1},
		vecmath.Vector3{X: 0, Y: 1, Z: 0},
		1.0, 1.0,
	)
}

func TestRenderProducesNonBlackPixels(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 16, 16
	opts.SamplesPerPixel = 2
	opts.TileSize = 8
	seed := uint64(11)
	opts.DeterministicSeed = &seed

	plane, err := Render(context.Background(), newTestScene(), newTestCamera(), opts)
	require.NoError(t, err)

	nonBlack := 0
	for _, p := range plane.Finalize() {
		if !p.IsBlack() {
			nonBlack++
		}
	}
	assert.Greater(t, nonBlack, 0)
}

func TestRenderRejectsZeroResolution(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 0, 16
	_, err := Render(context.Background(), newTestScene(), newTestCamera(), opts)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRenderRejectsInconsistentDepthBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 4, 4
	opts.MaxDepth = 8
	opts.MaxDepthTransmission = 2
	_, err := Render(context.Background(), newTestScene(), newTestCamera(), opts)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDeterministicSeedReproducesIdenticalImage(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 12, 12
	opts.SamplesPerPixel = 2
	opts.TileSize = 6
	seed := uint64(99)
	opts.DeterministicSeed = &seed

	plane1, err := Render(context.Background(), newTestScene(), newTestCamera(), opts)
	require.NoError(t, err)
	plane2, err := Render(context.Background(), newTestScene(), newTestCamera(), opts)
	require.NoError(t, err)

	assert.Equal(t, plane1.Finalize(), plane2.Finalize())
}
