// bilayer.go - Coat-over-diffuse BSDF (Ashikhmin-style energy term)
package bsdf

// Bilayer combines a rough dielectric coating over a Lambertian base.
// With probability 1/2 it samples the coating's microfacet lobe, with
// probability 1/2 the diffuse base; the returned f sums both
// contributions so a single sample stays an unbiased estimator of the
// combined BSDF.
type Bilayer struct {
	Coating      Distribution
	DiffuseNode  Node
	SpecularNode Node // Schlick R0 tint of the coating
}

func (b *Bilayer) SampleF(surf Surface, wi Vector3, u Vector2, rng *RNG) Sample {
	var wo Vector3
	if u.X < 0.5 {
		m := b.Coating.GenerateMicrosurfaceNormal(rng.Point2())
		if CosTheta(wi) < 0 {
			m.Z = -m.Z
		}
		wo = Reflect(wi, m)
	} else {
		wo = CosineSampleHemisphere(rng.Point2())
		if CosTheta(wi) < 0 {
			wo.Z = -wo.Z
		}
	}

	if CosTheta(wo) <= 0 || CosTheta(wi) <= 0 {
		return Sample{}
	}

	return Sample{
		Wo:    wo,
		F:     b.F(surf, wi, wo),
		Pdf:   b.Pdf(surf, wi, wo),
		Flags: Reflection,
	}
}

func (b *Bilayer) F(surf Surface, wi, wo Vector3) RGB {
	cosThetaI := CosTheta(wi)
	cosThetaO := CosTheta(wo)
	if cosThetaI <= 0 || cosThetaO <= 0 {
		return RGB{}
	}

	diffuseR := b.DiffuseNode.Evaluate(surf)
	specularR := b.SpecularNode.Evaluate(surf)

	wh := wi.Add(wo)
	if wh.LengthSquared() == 0 {
		return RGB{}
	}
	wh = wh.Normalize()
	oDotWh := wo.Dot(wh)

	absCosThetaI, absCosThetaO := absf(cosThetaI), absf(cosThetaO)
	diffuseScale := (28.0 / (23.0 * pi)) *
		(1 - pow5(1-0.5*absCosThetaI)) *
		(1 - pow5(1-0.5*absCosThetaO))
	diffuse := diffuseR.Mul(RGB{R: 1, G: 1, B: 1}.Sub(specularR)).Scale(diffuseScale)

	var specular RGB
	absCosThetaOI := absCosThetaI
	if absCosThetaO > absCosThetaOI {
		absCosThetaOI = absCosThetaO
	}
	if oDotWh > 0 && absCosThetaOI > 0 && wh.Z >= 0 {
		d := b.Coating.D(wh)
		// schlick = specularR + (1-specularR)*pow5(1-oDotWh)
		schlick := RGB{R: 1, G: 1, B: 1}.Sub(specularR).Scale(pow5(1 - oDotWh)).Add(specularR)
		specular = schlick.Scale(d / (4 * absf(oDotWh) * absCosThetaOI))
	}

	return diffuse.Add(specular)
}

func (b *Bilayer) Pdf(surf Surface, wi, wo Vector3) float32 {
	if CosTheta(wi) <= 0 || CosTheta(wo) <= 0 {
		return 0
	}
	wh := wi.Add(wo)
	if wh.LengthSquared() == 0 {
		return 0.5 * AbsCosTheta(wo) / pi
	}
	wh = wh.Normalize()
	oDotWh := wo.Dot(wh)

	coatingPDF := float32(0)
	if oDotWh > 0 && wh.Z >= 0 {
		coatingPDF = b.Coating.PDF(wh) / (4 * oDotWh)
	}
	diffusePDF := AbsCosTheta(wo) / pi
	return 0.5 * (coatingPDF + diffusePDF)
}
