// integrator.go - Pfad-Integrator (Worker-Schleife)
//
// Eine Instanz ist zustandslos zwischen Aufrufen von Li: die gesamte
// Pro-Pfad-Buchhaltung (beta, Tiefe, letztes Bounce-Flag) lebt in einer
// lokalen Variable auf dem Aufrufer-Stack, sodass ein Worker beliebig
// viele Pfade nacheinander ohne gemeinsamen Zustand verfolgen kann.
package path

import (
	"github.com/mantaray/manta/internal/bsdf"
	"github.com/mantaray/manta/internal/mesh"
	"github.com/mantaray/manta/internal/sampler"
	"github.com/mantaray/manta/internal/scene"
	"github.com/mantaray/manta/internal/vecmath"
)

type (
	Vector3 = vecmath.Vector3
	RGB     = vecmath.RGB
	Ray     = vecmath.Ray
)

// Options configures one integrator's bounce budget and feature
// toggles.
type Options struct {
	// MaxDepth bounds the bounce count for purely reflective paths.
	MaxDepth int
	// MaxDepthTransmission raises the bound once a path has crossed a
	// transmissive interface, where a handful of extra bounces (e.g.
	// through glass) are cheap but visually important.
	MaxDepthTransmission int
	// DirectLightSampling enables the one-light MIS estimator; when
	// false, only BSDF-sampled bounces that happen to hit a light
	// contribute (pure BSDF sampling, higher variance).
	DirectLightSampling bool
	// RouletteStartDepth is the bounce index after which Russian
	// roulette may terminate a path.
	RouletteStartDepth int
	// Background is the radiance returned along rays that escape the
	// scene without hitting geometry or a light.
	Background RGB
}

// DefaultOptions returns depth 4, raised to 16 on transmission,
// Russian roulette starting at bounce 3.
func DefaultOptions() Options {
	return Options{
		MaxDepth:             4,
		MaxDepthTransmission: 16,
		DirectLightSampling:  true,
		RouletteStartDepth:   3,
	}
}

const shadowEpsilon = 1e-4

// Li traces one camera path and returns its estimated incident
// radiance.
func Li(s *scene.Scene, ray Ray, opts Options, samp *sampler.PixelSampler) RGB {
	beta := RGB{R: 1, G: 1, B: 1}
	L := RGB{}
	depth := 0
	maxDepth := opts.MaxDepth
	specularBounce := true // the primary ray counts as a "delta" predecessor

	for {
		geomHit, obj, hitGeometry := s.FindClosestIntersection(ray, shadowEpsilon, 1e30)
		geomT := float32(1e30)
		if hitGeometry {
			geomT = geomHit.T
		}

		light, lightT, hitLight := closestLightHit(s, ray, shadowEpsilon, geomT)
		if hitLight {
			if specularBounce || depth == 0 || !opts.DirectLightSampling {
				L = L.Add(beta.Mul(light.Emission()))
			}
			_ = lightT
			break
		}

		if !hitGeometry {
			L = L.Add(beta.Mul(opts.Background))
			break
		}

		m, ok := obj.Geometry.(*mesh.Mesh)
		if !ok {
			break
		}
		isect := m.Resolve(ray, geomHit)
		mat := s.Library.At(resolveMaterialIndex(isect.Material, obj.DefaultMaterial))

		if !mat.Emission.IsBlack() {
			L = L.Add(beta.Mul(mat.Emission))
		}
		if mat.BSDF == nil {
			break
		}

		frame := vecmath.FrameFromNormal(isect.ShadingNormal)
		wiLocal := frame.ToLocal(ray.D.Neg())
		surf := bsdf.Surface{UV: isect.UV}

		if opts.DirectLightSampling {
			L = L.Add(beta.Mul(uniformSampleOneLight(s, surf, mat.BSDF, isect.Outside, frame, wiLocal, samp)))
		}

		bs := mat.BSDF.SampleF(surf, wiLocal, samp.Generate2D(), samp.RNG())
		if bs.Pdf == 0 || bs.F.IsBlack() {
			break
		}

		woWorld := frame.ToWorld(bs.Wo)
		cosTerm := absf(bs.Wo.Z)
		beta = beta.Mul(bs.F).Scale(cosTerm / bs.Pdf)

		specularBounce = bs.Flags.Has(bsdf.Delta)
		if bs.Flags.Has(bsdf.Transmission) {
			maxDepth = opts.MaxDepthTransmission
			ray = vecmath.NewRay(isect.Inside, woWorld)
		} else {
			ray = vecmath.NewRay(isect.Outside, woWorld)
		}

		depth++
		if depth >= maxDepth {
			break
		}
		if depth > opts.RouletteStartDepth {
			q := maxf(0.05, 1-beta.MaxComponent())
			if samp.RNG().Float32() < q {
				break
			}
			beta = beta.Scale(1 / (1 - q))
		}
	}

	return L
}

// closestLightHit tests every light's own implicit shape for a direct
// ray hit closer than the nearest geometry hit (geomT): the depth-cull
// leg that lets a primary or bounced ray land directly on a light.
func closestLightHit(s *scene.Scene, ray Ray, tMin, geomT float32) (scene.Light, float32, bool) {
	var best scene.Light
	bestT := geomT
	found := false
	for _, light := range s.Lights {
		if t, ok := light.Intersect(ray, tMin, bestT); ok {
			bestT = t
			best = light
			found = true
		}
	}
	return best, bestT, found
}

func resolveMaterialIndex(faceMaterial, defaultMaterial int32) int32 {
	if faceMaterial < 0 {
		return defaultMaterial
	}
	return faceMaterial
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
