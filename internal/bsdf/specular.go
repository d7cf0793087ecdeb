// specular.go - Delta-BSDFs: perfekter Spiegel und dielektrisches
// Reflexion/Transmission-Interface
package bsdf

// PerfectSpecular is an ideal mirror: wo = reflect(wi) about the
// shading normal, f = rho/|cosThetaO|, pdf = 1. F and Pdf return zero
// since a delta component can never be hit by separate light-sampling
// evaluation.
type PerfectSpecular struct {
	Reflectance Node
}

func (b *PerfectSpecular) SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample {
	wo := Vector3{X: -wi.X, Y: -wi.Y, Z: wi.Z}
	cosThetaO := AbsCosTheta(wo)
	if cosThetaO == 0 {
		return Sample{}
	}
	f := b.Reflectance.Evaluate(surf).Scale(1 / cosThetaO)
	return Sample{Wo: wo, F: f, Pdf: 1, Flags: Reflection | Delta}
}

func (b *PerfectSpecular) F(Surface, Vector3, Vector3) RGB    { return RGB{} }
func (b *PerfectSpecular) Pdf(Surface, Vector3, Vector3) float32 { return 0 }

// DielectricSpecular is a smooth dielectric boundary: with probability
// equal to the Fresnel term it reflects, otherwise it refracts,
// following the classic specular-glass BSDF.
type DielectricSpecular struct {
	Interface DielectricInterface
}

func (b *DielectricSpecular) SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample {
	dir := In
	if CosTheta(wi) < 0 {
		dir = Out
	}
	fr := b.Interface.FresnelTerm(CosTheta(wi), dir)

	if u.X < fr {
		wo := Vector3{X: -wi.X, Y: -wi.Y, Z: wi.Z}
		f := RGB{R: fr, G: fr, B: fr}.Scale(1 / AbsCosTheta(wo))
		return Sample{Wo: wo, F: f, Pdf: fr, Flags: Reflection | Delta}
	}

	n := Vector3{Z: 1}
	if CosTheta(wi) < 0 {
		n.Z = -1
	}
	eta := b.Interface.Eta(dir)
	wo, ok := Refract(wi, n, eta)
	if !ok {
		return Sample{}
	}
	t := 1 - fr
	f := RGB{R: t, G: t, B: t}.Scale(eta * eta / AbsCosTheta(wo))
	return Sample{Wo: wo, F: f, Pdf: t, Flags: Transmission | Delta}
}

func (b *DielectricSpecular) F(Surface, Vector3, Vector3) RGB      { return RGB{} }
func (b *DielectricSpecular) Pdf(Surface, Vector3, Vector3) float32 { return 0 }
