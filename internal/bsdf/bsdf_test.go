package bsdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"

	"github.com/mantaray/manta/internal/vecmath"
)

// hemisphereAlbedo Monte-Carlo estimates integral(f*cosTheta) over the
// upper hemisphere via cosine-weighted sampling: each sample
// contributes f*cosTheta/pdf, an unbiased estimator regardless of the
// sampling pdf's shape. The per-sample contributions are reduced with
// stat.Mean rather than a hand-rolled running sum.
func hemisphereAlbedo(t *testing.T, b BSDF, wi Vector3, n int) float32 {
	t.Helper()
	rng := vecmath.NewRNG(1, 2)
	surf := Surface{UV: Vector2{X: 0.5, Y: 0.5}}
	samples := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		wo := CosineSampleHemisphere(rng.Point2())
		if CosTheta(wi) < 0 {
			wo.Z = -wo.Z
		}
		f := b.F(surf, wi, wo)
		pdf := AbsCosTheta(wo) / pi
		if pdf <= 0 {
			continue
		}
		samples = append(samples, float64(f.MaxComponent()*AbsCosTheta(wo)/pdf))
	}
	if len(samples) == 0 {
		return 0
	}
	return float32(stat.Mean(samples, nil))
}

func TestLambertianEnergyConservation(t *testing.T) {
	b := &Lambertian{Reflectance: ConstantNode{Value: vecmath.Gray(0.8)}}
	wi := Vector3{X: 0, Y: 0, Z: 1}
	albedo := hemisphereAlbedo(t, b, wi, 20000)
	assert.LessOrEqual(t, albedo, float32(1.0+1e-2))
}

func TestMicrofacetReflectionEnergyConservation(t *testing.T) {
	b := &MicrofacetReflection{
		Distribution: BeckmannDistribution{Alpha: 0.3},
		Reflectance:  ConstantNode{Value: vecmath.Gray(0.9)},
	}
	wi := Vector3{X: 0, Y: 0, Z: 1}
	albedo := hemisphereAlbedo(t, b, wi, 20000)
	assert.LessOrEqual(t, albedo, float32(1.0+1e-2))
}

func TestLambertianReciprocity(t *testing.T) {
	b := &Lambertian{Reflectance: ConstantNode{Value: vecmath.Gray(0.5)}}
	surf := Surface{}
	wi := Vector3{X: 0.2, Y: 0.3, Z: 0.9}.Normalize()
	wo := Vector3{X: -0.1, Y: 0.4, Z: 0.8}.Normalize()
	assert.InDelta(t, b.F(surf, wi, wo).R, b.F(surf, wo, wi).R, 1e-6)
}

func TestLambertianSampleFMatchesF(t *testing.T) {
	b := &Lambertian{Reflectance: ConstantNode{Value: vecmath.Gray(0.5)}}
	rng := vecmath.NewRNG(7, 9)
	surf := Surface{}
	wi := Vector3{X: 0, Y: 0, Z: 1}
	s := b.SampleF(surf, wi, rng.Point2(), rng)
	assert.Equal(t, b.F(surf, wi, s.Wo).R, s.F.R)
	assert.Equal(t, b.Pdf(surf, wi, s.Wo), s.Pdf)
}

func TestDielectricFresnelTotalInternalReflection(t *testing.T) {
	d := DielectricInterface{IORIncident: 1.5, IORTransmitted: 1.0}
	// grazing angle from the dense medium exceeds the critical angle.
	fr := d.FresnelTerm(0.05, In)
	assert.InDelta(t, 1.0, fr, 1e-6)
}

func TestDielectricFresnelNormalIncidence(t *testing.T) {
	d := DielectricInterface{IORIncident: 1.0, IORTransmitted: 1.5}
	fr := d.FresnelTerm(1.0, In)
	expected := SchlickR0(1.0, 1.5)
	assert.InDelta(t, expected, fr, 1e-3)
}

func TestValueNodeGraph(t *testing.T) {
	ramp := RampNode{
		Drive: ConstantScalarNode{Value: 0.5},
		Stops: []RampStop{
			{Position: 0, Color: vecmath.RGB{R: 0}},
			{Position: 1, Color: vecmath.RGB{R: 1}},
		},
	}
	got := ramp.Evaluate(Surface{})
	assert.InDelta(t, 0.5, got.R, 1e-6)

	split := VectorSplitNode{Source: ConstantNode{Value: vecmath.RGB{R: 0.2, G: 0.4, B: 0.6}}, Channel: 1}
	assert.InDelta(t, 0.4, split.EvaluateScalar(Surface{}), 1e-6)

	mul := MultiplyNode{A: ConstantNode{Value: vecmath.Gray(0.5)}, Scalar: ConstantScalarNode{Value: 2}}
	assert.InDelta(t, 1.0, mul.Evaluate(Surface{}).R, 1e-6)
}
