// directlighting.go - Ein-Licht-MIS-Schaetzer
//
// uniformSampleOneLight waehlt gleichverteilt ein Licht und kombiniert
// dessen Beitrag mit dem BSDF-Sample-Bein per Power-Heuristik (Beta=2),
// damit weder ein sehr kleines noch ein sehr diffuses Licht die
// Varianz dominiert.
package path

import (
	"github.com/mantaray/manta/internal/bsdf"
	"github.com/mantaray/manta/internal/sampler"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

// uniformSampleOneLight picks one light uniformly from the scene and
// returns its MIS-weighted contribution to the point being shaded.
// frame/wiLocal are the shading frame and the local-space direction
// back towards the camera/previous bounce.
func uniformSampleOneLight(s *scene.Scene, surf bsdf.Surface, b bsdf.BSDF, p Vector3, frame vecmath.Frame, wiLocal Vector3, samp *sampler.PixelSampler) RGB {
	n := len(s.Lights)
	if n == 0 {
		return RGB{}
	}
	light := s.Lights[samp.RNG().IntN(n)]
	scale := float32(n)

	return lightContribution(s, surf, b, p, frame, wiLocal, light, samp).Scale(scale)
}

func lightContribution(s *scene.Scene, surf bsdf.Surface, b bsdf.BSDF, p Vector3, frame vecmath.Frame, wiLocal Vector3, light scene.Light, samp *sampler.PixelSampler) RGB {
	var direct RGB

	// Light sample leg: draw a direction from the light itself.
	if woWorld, li, pdfLight, tMax, ok := sampleLight(light, p, samp); ok {
		woLocal := frame.ToLocal(woWorld)
		f := b.F(surf, wiLocal, woLocal).Scale(absf(woLocal.Z))
		if !f.IsBlack() && !s.Occluded(p, woWorld, tMax) {
			pdfBSDF := b.Pdf(surf, wiLocal, woLocal)
			w := powerHeuristic(pdfLight, pdfBSDF)
			direct = direct.Add(f.Mul(li).Scale(w / pdfLight))
		}
	}

	// BSDF sample leg: draw a direction from the BSDF, test whether it
	// happens to reach the same light.
	bs := b.SampleF(surf, wiLocal, samp.Generate2D(), samp.RNG())
	if bs.Pdf > 0 && !bs.F.IsBlack() && !bs.Flags.Has(bsdf.Delta) {
		woWorld := frame.ToWorld(bs.Wo)
		ray := vecmath.NewRay(p, woWorld)
		if t, ok := light.Intersect(ray, shadowEpsilon, 1e30); ok {
			if !s.Occluded(p, woWorld, t-1e-3) {
				pdfLight := light.PdfLi(p, woWorld)
				if pdfLight > 0 {
					w := powerHeuristic(bs.Pdf, pdfLight)
					f := bs.F.Scale(absf(bs.Wo.Z))
					direct = direct.Add(f.Mul(light.Emission()).Scale(w / bs.Pdf))
				}
			}
		}
	}

	return direct
}

func sampleLight(light scene.Light, p Vector3, samp *sampler.PixelSampler) (wo Vector3, li RGB, pdf float32, tMax float32, ok bool) {
	u := samp.Generate2D()
	wo, li, pdf, tMax = light.SampleLi(p, u)
	if pdf <= 0 || li.IsBlack() {
		return Vector3{}, RGB{}, 0, 0, false
	}
	return wo, li, pdf, tMax, true
}

// powerHeuristic is the beta=2 power heuristic combining the pdf of
// the sampling strategy actually used (a) with the pdf the other
// strategy would have assigned (b).
func powerHeuristic(a, b float32) float32 {
	a2, b2 := a*a, b*b
	if a2+b2 == 0 {
		return 0
	}
	return a2 / (a2 + b2)
}
