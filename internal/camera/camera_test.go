package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mantaray/manta/internal/vecmath"
)

func TestPinholeRaysConvergeAtOrigin(t *testing.T) {
	c := NewCamera(
		Vector3{X: 0, Y: 0, Z: 0},
		Vector3{X: 0, Y: 0, Z: 1},
		Vector3{X: 0, Y: 1, Z: 0},
		1.0, 16.0/9.0,
	)
	rng := vecmath.NewRNG(1, 1)
	for _, ndc := range []Vector2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: -1}} {
		r := c.GenerateRay(ndc, rng)
		assert.Equal(t, c.Position, r.O)
	}
}

func TestThinLensRaysConvergeAtFocalPlane(t *testing.T) {
	c := NewCamera(
		Vector3{X: 0, Y: 0, Z: 0},
		Vector3{X: 0, Y: 0, Z: 1},
		Vector3{X: 0, Y: 1, Z: 0},
		1.0, 1.0,
	)
	c.ApertureRadius = 0.2
	c.FocalDistance = 5.0

	rng := vecmath.NewRNG(3, 4)
	var hits []Vector3
	for i := 0; i < 8; i++ {
		r := c.GenerateRay(Vector2{X: 0, Y: 0}, rng)
		hits = append(hits, r.At(c.FocalDistance/r.D.Dot(c.Forward)))
	}
	for i := 1; i < len(hits); i++ {
		assert.InDelta(t, hits[0].X, hits[i].X, 1e-3)
		assert.InDelta(t, hits[0].Y, hits[i].Y, 1e-3)
		assert.InDelta(t, hits[0].Z, hits[i].Z, 1e-3)
	}
}

func TestCircularApertureAcceptsUnitDisk(t *testing.T) {
	a := CircularAperture{}
	assert.True(t, a.Filter(0, 0))
	assert.True(t, a.Filter(0.99, 0))
	assert.False(t, a.Filter(1.1, 0))
}

func TestPolygonalApertureRejectsBeyondBlade(t *testing.T) {
	a := NewPolygonalAperture(6, 0, false)
	assert.True(t, a.Filter(0, 0))
	assert.False(t, a.Filter(0.99, 0.99))
}

func TestPolygonalApertureFullCurvatureMatchesCircle(t *testing.T) {
	a := NewPolygonalAperture(6, 0, false)
	a.BladeCurvature = 1
	c := CircularAperture{}
	for _, p := range [][2]float32{{0.9, 0}, {0, 0.9}, {0.6, 0.6}} {
		assert.Equal(t, c.Filter(p[0], p[1]), a.Filter(p[0], p[1]))
	}
}
