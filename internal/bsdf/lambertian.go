// lambertian.go - Ideal diffuses Lambert-BRDF
package bsdf

// Lambertian is a cosine-weighted ideal diffuse reflector, f = rho/pi.
type Lambertian struct {
	Reflectance Node
}

func (b *Lambertian) SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample {
	wo := CosineSampleHemisphere(u)
	if CosTheta(wi) < 0 {
		wo.Z = -wo.Z
	}
	return Sample{
		Wo:    wo,
		F:     b.F(surf, wi, wo),
		Pdf:   b.Pdf(surf, wi, wo),
		Flags: Reflection | Diffuse,
	}
}

func (b *Lambertian) F(surf Surface, wi, wo Vector3) RGB {
	if !SameHemisphere(wi, wo) {
		return RGB{}
	}
	return b.Reflectance.Evaluate(surf).Scale(1 / pi)
}

func (b *Lambertian) Pdf(surf Surface, wi, wo Vector3) float32 {
	if !SameHemisphere(wi, wo) {
		return 0
	}
	return AbsCosTheta(wo) / pi
}
