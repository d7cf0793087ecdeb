package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateSystemOrthonormal(t *testing.T) {
	ns := []Vector3{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		NewVector3(0.267, 0.535, 0.802).Normalize(),
	}
	for _, n := range ns {
		t1, t2 := CoordinateSystem(n)
		require.InDelta(t, 1, t1.Length(), 1e-5)
		require.InDelta(t, 1, t2.Length(), 1e-5)
		assert.InDelta(t, 0, t1.Dot(t2), 1e-5)
		assert.InDelta(t, 0, t1.Dot(n), 1e-5)
		assert.InDelta(t, 0, t2.Dot(n), 1e-5)
	}
}

func TestReflectPreservesAngle(t *testing.T) {
	n := NewVector3(0, 0, 1)
	i := NewVector3(1, 0, 1).Normalize()
	o := Reflect(i, n)
	assert.InDelta(t, i.Dot(n), o.Dot(n), 1e-6)
	assert.InDelta(t, 1, o.Length(), 1e-6)
}

func TestRefractTotalInternalReflection(t *testing.T) {
	n := NewVector3(0, 0, 1)
	i := NewVector3(0.99, 0, 0.1412).Normalize() // grazing angle
	_, ok := Refract(i, n, 1.5) // leaving a denser medium beyond the critical angle
	assert.False(t, ok)
}

func TestRayPermutationFollowsDominantAxis(t *testing.T) {
	r := NewRay(Vector3{}, NewVector3(0, 0, -1))
	assert.Equal(t, 2, r.Kz)

	r = NewRay(Vector3{}, NewVector3(1, 0, 0))
	assert.Equal(t, 0, r.Kz)
}

func TestDeterministicSeedReproducible(t *testing.T) {
	s1, s2 := DerivedSeed(42, 7, 3)
	t1, t2 := DerivedSeed(42, 7, 3)
	assert.Equal(t, s1, t1)
	assert.Equal(t, s2, t2)

	g := NewRNG(s1, s2)
	h := NewRNG(t1, t2)
	for i := 0; i < 8; i++ {
		assert.Equal(t, g.Float32(), h.Float32())
	}
}
