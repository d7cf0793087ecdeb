package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantaray/manta/internal/camera"
	"github.com/mantaray/manta/internal/imaging"
	"github.com/mantaray/manta/internal/path"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

func TestTilesRowMajorCoversFullImage(t *testing.T) {
	tiles := Tiles(130, 70, 64, PatternRowMajor)
	covered := make(map[[2]int]bool)
	for _, tile := range tiles {
		for y := tile.Y0; y < tile.Y1; y++ {
			for x := tile.X0; x < tile.X1; x++ {
				covered[[2]int{x, y}] = true
			}
		}
	}
	assert.Equal(t, 130*70, len(covered))
}

func TestTilesSpiralStartsNearCenter(t *testing.T) {
	tiles := Tiles(256, 256, 64, PatternSpiral)
	require.NotEmpty(t, tiles)
	first := tiles[0]
	cx, cy := 128, 128
	assert.True(t, first.X0 <= cx && cx <= first.X1)
	assert.True(t, first.Y0 <= cy && cy <= first.Y1)
}

func TestJobQueueDrainsExactlyOnce(t *testing.T) {
	q := NewJobQueue([]Job{{ID: 0}, {ID: 1}, {ID: 2}})
	seen := map[int]bool{}
	for {
		j, ok := q.Pop()
		if !ok {
			break
		}
		seen[j.ID] = true
	}
	assert.Equal(t, 3, len(seen))
	assert.Equal(t, 0, q.Remaining())
}

func TestRunRendersEveryPixel(t *testing.T) {
	cam := camera.NewCamera(
		vecmath.Vector3{X: 0, Y: 0, Z: 0},
		vecmath.Vector3{X: 0, Y: 0, Z: 1},
		vecmath.Vector3{X: 0, Y: 1, Z: 0},
		1.0, 1.0,
	)
	light := &scene.SphereLight{Center: vecmath.Vector3{X: 0, Y: 0, Z: 5}, Radius: 2, Radiance: vecmath.RGB{R: 1, G: 1, B: 1}}
	s := &scene.Scene{Lights: []scene.Light{light}, Library: scene.NewMaterialLibrary()}

	filter := imaging.NewGaussianFilter(2, 2)
	plane := imaging.NewImagePlane(16, 16, filter)

	seed := uint64(7)
	err := Run(context.Background(), s, cam, plane, Options{
		WorkerCount:       4,
		SamplesPerPixel:   2,
		TileSize:          8,
		Pattern:           PatternSpiral,
		PathOptions:       path.DefaultOptions(),
		DeterministicSeed: &seed,
	})
	require.NoError(t, err)

	pixels := plane.Finalize()
	nonBlack := 0
	for _, p := range pixels {
		if !p.IsBlack() {
			nonBlack++
		}
	}
	assert.Greater(t, nonBlack, 0)
}
