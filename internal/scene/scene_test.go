package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mantaray/manta/internal/bsdf"
	"github.com/mantaray/manta/internal/vecmath"
)

func TestMaterialLibraryAppendOnly(t *testing.T) {
	lib := NewMaterialLibrary()
	idx := lib.Add(Material{Name: "red", BSDF: &bsdf.Lambertian{Reflectance: bsdf.ConstantNode{Value: vecmath.RGB{R: 1}}}})
	assert.Equal(t, int32(0), idx)

	got, ok := lib.IndexOf("red")
	assert.True(t, ok)
	assert.Equal(t, idx, got)

	_, ok = lib.IndexOf("missing")
	assert.False(t, ok)

	assert.Equal(t, Material{}, lib.At(-1))
}

func TestSphereLightIntersectHitsNearRoot(t *testing.T) {
	light := &SphereLight{Center: Vector3{X: 0, Y: 0, Z: 5}, Radius: 1, Radiance: RGB{R: 1, G: 1, B: 1}}
	ray := vecmath.NewRay(Vector3{}, Vector3{X: 0, Y: 0, Z: 1})
	tHit, ok := light.Intersect(ray, 1e-4, 1e6)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, tHit, 1e-4)
}

func TestSphereLightIntersectMisses(t *testing.T) {
	light := &SphereLight{Center: Vector3{X: 10, Y: 0, Z: 5}, Radius: 1, Radiance: RGB{R: 1}}
	ray := vecmath.NewRay(Vector3{}, Vector3{X: 0, Y: 0, Z: 1})
	_, ok := light.Intersect(ray, 1e-4, 1e6)
	assert.False(t, ok)
}

func TestSphereLightSampleLiWithinCone(t *testing.T) {
	light := &SphereLight{Center: Vector3{X: 0, Y: 0, Z: 5}, Radius: 1, Radiance: RGB{R: 2, G: 2, B: 2}}
	p := Vector3{}
	wi, li, pdf, tMax := light.SampleLi(p, Vector2{X: 0.3, Y: 0.7})
	assert.InDelta(t, 1.0, wi.Length(), 1e-3)
	assert.Equal(t, light.Radiance, li)
	assert.Greater(t, pdf, float32(0))
	assert.Greater(t, tMax, float32(0))

	// The sampled direction should still point roughly towards the
	// sphere, not away from it.
	assert.Greater(t, wi.Dot(Vector3{X: 0, Y: 0, Z: 1}), float32(0))
}

func TestSceneFindClosestIntersectionNoObjects(t *testing.T) {
	s := &Scene{}
	ray := vecmath.NewRay(Vector3{}, Vector3{X: 0, Y: 0, Z: 1})
	_, obj, found := s.FindClosestIntersection(ray, 1e-4, 1e6)
	assert.False(t, found)
	assert.Nil(t, obj)
}
