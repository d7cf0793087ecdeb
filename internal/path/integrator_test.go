package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/mantaray/manta/internal/accel"
	"github.com/mantaray/manta/internal/bsdf"
	"github.com/mantaray/manta/internal/mesh"
	"github.com/mantaray/manta/internal/sampler"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

func TestPowerHeuristicSymmetricEqualPdfsSplitEvenly(t *testing.T) {
	w := powerHeuristic(1, 1)
	assert.InDelta(t, 0.5, w, 1e-6)
}

func TestPowerHeuristicFavorsLowerVarianceStrategy(t *testing.T) {
	w := powerHeuristic(10, 1)
	assert.Greater(t, w, float32(0.9))
}

func TestLiPrimaryRayHitsLightDirectly(t *testing.T) {
	light := &scene.SphereLight{
		Center:   vecmath.Vector3{X: 0, Y: 0, Z: 5},
		Radius:   1,
		Radiance: vecmath.RGB{R: 3, G: 2, B: 1},
	}
	s := &scene.Scene{
		Lights:  []scene.Light{light},
		Library: scene.NewMaterialLibrary(),
	}

	ray := vecmath.NewRay(vecmath.Vector3{}, vecmath.Vector3{X: 0, Y: 0, Z: 1})
	samp := sampler.NewPixelSampler(1, 0, 1)
	samp.StartSample(0)

	L := Li(s, ray, DefaultOptions(), samp)
	assert.Equal(t, light.Radiance, L)
}

func TestLiEmptySceneReturnsBlack(t *testing.T) {
	s := &scene.Scene{Library: scene.NewMaterialLibrary()}
	ray := vecmath.NewRay(vecmath.Vector3{}, vecmath.Vector3{X: 0, Y: 0, Z: 1})
	samp := sampler.NewPixelSampler(1, 0, 1)
	samp.StartSample(0)

	L := Li(s, ray, DefaultOptions(), samp)
	assert.True(t, L.IsBlack())
}

// floorPlane builds a z=0 quad large enough that a shading point near
// its center never sees its own edges, with its geometric normal
// wound to face +Z (up, towards both the camera and the light below).
func floorPlane(t *testing.T) *scene.SceneObject {
	t.Helper()
	verts := []vecmath.Vector3{
		{X: -50, Y: -50, Z: 0},
		{X: 50, Y: -50, Z: 0},
		{X: 50, Y: 50, Z: 0},
		{X: -50, Y: 50, Z: 0},
	}
	tris := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	aux := []mesh.TriangleAux{
		{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}, Material: -1},
		{NormalIdx: [3]int32{-1, -1, -1}, UVIdx: [3]int32{-1, -1, -1}, Material: -1},
	}
	m, err := mesh.New(verts, nil, nil, tris, aux)
	require.NoError(t, err)

	bounds := accel.EmptyAABB()
	for i := 0; i < m.NumFaces(); i++ {
		bounds = bounds.Union(m.FaceBounds(i))
	}
	tree := accel.Build(m, bounds, accel.BuildOptions{MaxLeafSize: 2})
	return &scene.SceneObject{Geometry: m, Tree: tree, DefaultMaterial: 0}
}

// TestMISConvergesToAnalyticSphereLightIrradiance checks the one-light
// MIS estimator's unbiasedness: a Lambertian floor lit by a spherical
// light sitting directly on the shading normal's axis has a closed-form
// reflected radiance of albedo*Le*(radius/distance)^2 (the sphere's
// uniform radiance projects as a disk of that subtended solid angle).
// A camera ray is aimed off-axis so it never grazes the sphere itself,
// isolating the light-sampling and BSDF-sampling MIS legs from any
// direct primary-ray hit.
func TestMISConvergesToAnalyticSphereLightIrradiance(t *testing.T) {
	const albedo = 0.8
	const radius = 0.5
	const distance = 3.0
	le := float32(5)

	library := scene.NewMaterialLibrary()
	white := library.Add(scene.Material{
		Name: "floor",
		BSDF: &bsdf.Lambertian{Reflectance: bsdf.ConstantNode{Value: vecmath.Gray(albedo)}},
	})
	floor := floorPlane(t)
	floor.DefaultMaterial = white

	light := &scene.SphereLight{
		Center:   vecmath.Vector3{X: 0, Y: 0, Z: distance},
		Radius:   radius,
		Radiance: vecmath.RGB{R: le, G: le, B: le},
	}

	s := &scene.Scene{
		Objects: []*scene.SceneObject{floor},
		Lights:  []scene.Light{light},
		Library: library,
	}

	origin := vecmath.Vector3{X: 3, Y: 0, Z: 3}
	target := vecmath.Vector3{X: 0, Y: 0, Z: 0}
	ray := vecmath.NewRay(origin, target.Sub(origin).Normalize())

	opts := DefaultOptions()
	opts.MaxDepth = 1 // isolate the first-bounce direct-lighting estimator

	const n = 1_000_000
	samp := sampler.NewPixelSampler(1, 0, n)
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		samp.StartSample(i)
		L := Li(s, ray, opts, samp)
		samples[i] = float64(L.R)
	}

	mean := stat.Mean(samples, nil)
	sinThetaMax2 := (radius * radius) / (distance * distance)
	analytic := albedo * float64(le) * sinThetaMax2

	assert.InEpsilon(t, analytic, mean, 0.03, "MIS estimator mean %.5f should converge to analytic %.5f", mean, analytic)
}
