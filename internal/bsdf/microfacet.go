// microfacet.go - Generische Mikrofacetten-Reflexion und -Transmission
//
// Beide BSDFs teilen eine austauschbare Distribution und ein
// dielektrisches Medien-Interface. Bei der Reflexion ist es optional:
// ohne Interface wird der Fresnel-Term als 1 angenommen (perfekter
// Leiter). Die Transmission braucht immer ein Interface.
package bsdf

// MicrofacetReflection is a generic rough-reflector BRDF:
// f = D*G*F / (4*cosThetaI*cosThetaO) * reflectance.
type MicrofacetReflection struct {
	Distribution Distribution
	Fresnel      *DielectricInterface
	Reflectance  Node
}

func (b *MicrofacetReflection) SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample {
	if CosTheta(wi) == 0 {
		return Sample{}
	}
	m := b.Distribution.GenerateMicrosurfaceNormal(u)
	if CosTheta(wi) < 0 {
		m.Z = -m.Z
	}
	wo := Reflect(wi, m)
	if !SameHemisphere(wi, wo) {
		return Sample{}
	}

	pdf := b.Distribution.PDF(m) / (4 * absf(wo.Dot(m)))
	f := b.F(surf, wi, wo)
	return Sample{Wo: wo, F: f, Pdf: pdf, Flags: Reflection}
}

func (b *MicrofacetReflection) F(surf Surface, wi, wo Vector3) RGB {
	cosThetaO := AbsCosTheta(wo)
	cosThetaI := AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return RGB{}
	}
	wh := wi.Add(wo)
	if wh.LengthSquared() == 0 {
		return RGB{}
	}
	wh = wh.Normalize()

	fresnel := float32(1)
	if b.Fresnel != nil {
		dir := In
		if CosTheta(wi) < 0 {
			dir = Out
		}
		fresnel = b.Fresnel.FresnelTerm(wo.Dot(wh), dir)
	}

	d := b.Distribution.D(wh)
	g := b.Distribution.G(wi, wo)
	scale := d * g * fresnel / (4 * cosThetaI * cosThetaO)
	return b.Reflectance.Evaluate(surf).Scale(scale)
}

func (b *MicrofacetReflection) Pdf(surf Surface, wi, wo Vector3) float32 {
	if !SameHemisphere(wi, wo) {
		return 0
	}
	wh := wi.Add(wo)
	if wh.LengthSquared() == 0 {
		return 0
	}
	wh = wh.Normalize()
	return b.Distribution.PDF(wh) / (4 * absf(wo.Dot(wh)))
}

// MicrofacetTransmission refracts through a rough interface, following
// Walter et al. (2007)'s generalized half-vector construction: the
// "half vector" is the weighted sum of wi and wo that stays on the
// incidence side of the microfacet.
type MicrofacetTransmission struct {
	Distribution  Distribution
	Fresnel       DielectricInterface
	Transmittance Node
}

func (b *MicrofacetTransmission) SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample {
	if CosTheta(wi) == 0 {
		return Sample{}
	}
	m := b.Distribution.GenerateMicrosurfaceNormal(u)
	if CosTheta(wi) < 0 {
		m.Z = -m.Z
	}

	dir := In
	if CosTheta(wi) < 0 {
		dir = Out
	}
	eta := b.Fresnel.Eta(dir)

	wo, ok := Refract(wi, m, eta)
	if !ok || SameHemisphere(wi, wo) {
		return Sample{}
	}

	pdf := b.transmissionPDF(wi, wo, m, eta)
	f := b.F(surf, wi, wo)
	return Sample{Wo: wo, F: f, Pdf: pdf, Flags: Transmission}
}

func (b *MicrofacetTransmission) halfVector(wi, wo Vector3, eta float32) (Vector3, bool) {
	wh := wi.Scale(eta).Add(wo)
	if wh.LengthSquared() == 0 {
		return Vector3{}, false
	}
	wh = wh.Normalize()
	if wh.Z < 0 {
		wh = wh.Neg()
	}
	return wh, true
}

func (b *MicrofacetTransmission) transmissionPDF(wi, wo, wh Vector3, eta float32) float32 {
	sqrtDenom := eta*wi.Dot(wh) + wo.Dot(wh)
	dwhDwo := absf((eta * eta * wo.Dot(wh)) / (sqrtDenom * sqrtDenom))
	return b.Distribution.PDF(wh) * dwhDwo
}

func (b *MicrofacetTransmission) F(surf Surface, wi, wo Vector3) RGB {
	if SameHemisphere(wi, wo) {
		return RGB{}
	}
	cosThetaO := CosTheta(wo)
	cosThetaI := CosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return RGB{}
	}

	dir := In
	eta := b.Fresnel.Eta(dir)
	if cosThetaI < 0 {
		dir = Out
		eta = b.Fresnel.Eta(dir)
	}

	wh, ok := b.halfVector(wi, wo, eta)
	if !ok {
		return RGB{}
	}

	fr := b.Fresnel.FresnelTerm(wi.Dot(wh), dir)
	d := b.Distribution.D(wh)
	g := b.Distribution.G(wi, wo)

	sqrtDenom := eta*wi.Dot(wh) + wo.Dot(wh)
	factor := (1 - fr) * absf(d*g*eta*eta*wi.Dot(wh)*wo.Dot(wh)) /
		absf(cosThetaI*cosThetaO*sqrtDenom*sqrtDenom)

	return b.Transmittance.Evaluate(surf).Scale(factor)
}

func (b *MicrofacetTransmission) Pdf(surf Surface, wi, wo Vector3) float32 {
	if SameHemisphere(wi, wo) {
		return 0
	}
	dir := In
	eta := b.Fresnel.Eta(dir)
	if CosTheta(wi) < 0 {
		dir = Out
		eta = b.Fresnel.Eta(dir)
	}
	wh, ok := b.halfVector(wi, wo, eta)
	if !ok {
		return 0
	}
	return b.transmissionPDF(wi, wo, wh, eta)
}
