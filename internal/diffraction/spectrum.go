// spectrum.go - CIE-Farbanpassungsfunktionen und Standardilluminant
//
// Die Farbanpassungsfunktionen (CMF) werden nicht aus einer Tabelle
// interpoliert, sondern ueber die mehrlappige Gauss-Naeherung (Wyman,
// Sloan, Shirley 2013) analytisch ausgewertet: eine geschlossene Form
// genuegt der Diffraktionspipeline, die ohnehin nur grobe spektrale
// Integration ueber wenige zehn Wellenlaengen braucht.
package diffraction

import "math"

// CMF is the CIE 1931 2-degree standard observer's tristimulus
// response at a single wavelength (nanometers).
type CMF struct {
	X, Y, Z float64
}

func gaussianLobe(x, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma1
	if x > mu {
		sigma = sigma2
	}
	t := (x - mu) / sigma
	return math.Exp(-0.5 * t * t)
}

// SampleCMF evaluates the Wyman/Sloan/Shirley multi-lobe Gaussian fit
// to the CIE 1931 standard observer at wavelength lambda (nm).
func SampleCMF(lambda float64) CMF {
	x := 1.056*gaussianLobe(lambda, 599.8, 37.9, 31.0) +
		0.362*gaussianLobe(lambda, 442.0, 16.0, 26.7) -
		0.065*gaussianLobe(lambda, 501.1, 20.4, 26.2)
	y := 0.821*gaussianLobe(lambda, 568.8, 46.9, 40.5) +
		0.286*gaussianLobe(lambda, 530.9, 16.3, 31.1)
	z := 1.217*gaussianLobe(lambda, 437.0, 11.8, 36.0) +
		0.681*gaussianLobe(lambda, 459.0, 26.0, 13.8)
	return CMF{X: x, Y: y, Z: z}
}

// Illuminant is a source spectral power distribution, sampled the same
// way as a CMF: a function of wavelength. Its overall scale is free;
// Pattern divides its result by the peak luminance.
type Illuminant func(lambda float64) float64

// D65Illuminant approximates the CIE D65 daylight spectrum with a
// Planckian-locus blackbody at its correlated color temperature
// (6504 K): close enough for the diffraction pipeline's bloom pattern,
// which only needs a plausible white-point weighting, not colorimetric
// accuracy.
func D65Illuminant(lambda float64) float64 {
	return blackbody(lambda, 6504)
}

func blackbody(lambdaNM, tempK float64) float64 {
	const h = 6.62607015e-34
	const c = 2.99792458e8
	const kB = 1.380649e-23
	lambdaM := lambdaNM * 1e-9
	num := 2 * h * c * c
	denom := math.Pow(lambdaM, 5) * (math.Exp((h*c)/(lambdaM*kB*tempK)) - 1)
	return num / denom
}

// XYZToSRGB converts CIE XYZ (normalized so Y=1 is white) into linear
// sRGB primaries, clamped to non-negative.
func XYZToSRGB(x, y, z float64) (r, g, b float64) {
	r = 3.2406*x - 1.5372*y - 0.4986*z
	g = -0.9689*x + 1.8758*y + 0.0415*z
	b = 0.0557*x - 0.2040*y + 1.0570*z
	return max(r, 0), max(g, 0), max(b, 0)
}
