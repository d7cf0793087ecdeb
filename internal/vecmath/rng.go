// rng.go - Uniform-RNG mit deterministischer Seed-Option
//
// Jeder Pixel-Sampler (internal/sampler) besitzt seine eigene
// RNG-Instanz, geseedet aus dem Worker-Seed (internal/schedule); es
// wird kein globaler Zufallsgenerator geteilt, genau ein Besitzer pro
// RNG.
package vecmath

import "math/rand/v2"

// RNG is a thin wrapper over a PCG source, giving the renderer one
// construction point for both free-running and deterministically
// reproducible sequences when a deterministic seed is configured.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a PCG generator from two 64-bit words. Pixel samplers
// derive theirs with DerivedSeed from the worker seed and pixel index;
// the worker seed is the deterministic seed plus the worker index when
// one is configured, or a time-based value otherwise.
func NewRNG(seed1, seed2 uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// DerivedSeed produces a reproducible per-pixel seed from a worker seed
// and the pixel's flat index using a cheap integer hash, not a
// cryptographic one.
func DerivedSeed(workerSeed uint64, pixelIndex int, sampleIndex int) (uint64, uint64) {
	h := workerSeed
	h ^= uint64(pixelIndex)*0x9E3779B97F4A7C15 + 0x165667B19E3779F9
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h, uint64(sampleIndex)*0xD6E8FEB86659FD93 + 1
}

// Float32 draws a uniform value in [0, 1).
func (g *RNG) Float32() float32 {
	return float32(g.r.Float64())
}

// Point2 draws an independent uniform 2-D sample, used by BSDF and
// light sampling.
func (g *RNG) Point2() Vector2 {
	return Vector2{g.Float32(), g.Float32()}
}

func (g *RNG) IntN(n int) int {
	return g.r.IntN(n)
}
