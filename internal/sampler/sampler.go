// sampler.go - Pro-Pixel-Sampler mit deterministischer Seed-Ableitung
//
// Jeder Pixel-Sample-Durchlauf beginnt mit StartSample, das die
// Dimensionszaehler zuruecksetzt; Generate1D/Generate2D liefern danach
// fortlaufend unabhaengige Ziehungen fuer Kamera-, Linsen- und
// BSDF-Dimensionen desselben Samples.
package sampler

import "github.com/mantaray/manta/internal/vecmath"

type (
	Vector2 = vecmath.Vector2
)

// PixelSampler owns one worker's random stream for a single pixel. A
// fresh instance is deterministic given the same (workerSeed,
// pixelIndex) pair; StartSample resets only the dimension counters, so
// every sample of the pixel continues the same stream.
type PixelSampler struct {
	rng               *vecmath.RNG
	samplesPerPixel   int
	currentSample     int
	current1D, current2D int
}

// NewPixelSampler derives a reproducible stream for one pixel's sample
// sequence from a worker seed and flat pixel index, following the same
// hash-then-seed scheme as vecmath.DerivedSeed.
func NewPixelSampler(workerSeed uint64, pixelIndex, samplesPerPixel int) *PixelSampler {
	s1, s2 := vecmath.DerivedSeed(workerSeed, pixelIndex, 0)
	return &PixelSampler{
		rng:             vecmath.NewRNG(s1, s2),
		samplesPerPixel: samplesPerPixel,
	}
}

// StartSample resets the per-dimension counters ahead of the pixel's
// next sample index; callers iterate sampleIndex from 0 to
// SamplesPerPixel-1.
func (s *PixelSampler) StartSample(sampleIndex int) {
	s.currentSample = sampleIndex
	s.current1D = 0
	s.current2D = 0
}

func (s *PixelSampler) SamplesPerPixel() int { return s.samplesPerPixel }

// Generate1D draws the next independent scalar dimension of the
// current sample (lens radius, Russian-roulette threshold, light
// selection, ...).
func (s *PixelSampler) Generate1D() float32 {
	s.current1D++
	return s.rng.Float32()
}

// Generate2D draws the next independent 2-D dimension (image-plane
// jitter, lens position, BSDF/light sample directions, ...).
func (s *PixelSampler) Generate2D() Vector2 {
	s.current2D++
	return s.rng.Point2()
}

// RNG exposes the underlying generator for call sites that need a raw
// uniform draw outside the dimension bookkeeping (e.g. Russian
// roulette's continuation test).
func (s *PixelSampler) RNG() *vecmath.RNG { return s.rng }
