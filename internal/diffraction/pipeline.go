// pipeline.go - Fraunhofer-Diffraktionspipeline
//
// Schritt fuer Schritt: Blenden-Rasterisierung,
// 2-D-FFT, kontinuierliche-FT-Abschaetzung, spektrale Integration ueber
// CMF+Illuminant, XYZ->RGB, und abschliessende Frequenzraum-Faltung
// mit dem Eingabebild.
package diffraction

import (
	"github.com/mantaray/manta/internal/camera"
	"github.com/mantaray/manta/internal/imaging"
	"github.com/mantaray/manta/internal/vecmath"
)

// Settings configures the diffraction pattern computation.
type Settings struct {
	Aperture     camera.Aperture
	Dirt         *imaging.VectorMap2D
	OutputWidth  int
	OutputHeight int
	SensorWidth  float64 // physical sensor width, meters
	LambdaMin    float64 // nm
	LambdaMax    float64
	LambdaStep   float64
	Illuminant   Illuminant
	SafetyFactor float64 // default 2.0
	Threads      int
}

func (s Settings) withDefaults() Settings {
	if s.Illuminant == nil {
		s.Illuminant = D65Illuminant
	}
	if s.SafetyFactor <= 0 {
		s.SafetyFactor = 2.0
	}
	if s.LambdaStep <= 0 {
		s.LambdaStep = 10
	}
	if s.Threads <= 0 {
		s.Threads = 1
	}
	return s
}

// Pattern computes the normalized RGB diffraction (bloom) pattern for
// the configured aperture and settings.
func Pattern(s Settings) *imaging.VectorMap2D {
	s = s.withDefaults()

	maxRes := s.OutputWidth
	if s.OutputHeight > maxRes {
		maxRes = s.OutputHeight
	}
	n := nextPowerOfTwo(int(float64(maxRes) * s.SafetyFactor))

	apertureMap := RasterizeAperture(s.Aperture, s.Dirt, n)
	complexMap := imaging.NewComplexMap2D(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			complexMap.Set(x, y, complex(apertureMap.At(x, y), 0))
		}
	}

	if err := complexMap.FFT(s.Threads); err != nil {
		return imaging.NewVectorMap2D(s.OutputWidth, s.OutputHeight)
	}
	rolled := complexMap.Roll()
	estimator := rolled.CFTEstimate(s.SensorWidth, s.SensorWidth)

	out := imaging.NewVectorMap2D(s.OutputWidth, s.OutputHeight)
	pixelFreqStep := 1.0 / s.SensorWidth

	maxLuminance := 0.0
	xyz := make([][3]float64, s.OutputWidth*s.OutputHeight)

	for j := 0; j < s.OutputHeight; j++ {
		py := float64(j) - float64(s.OutputHeight)/2
		for i := 0; i < s.OutputWidth; i++ {
			px := float64(i) - float64(s.OutputWidth)/2

			var accX, accY, accZ float64
			for lambda := s.LambdaMin; lambda <= s.LambdaMax; lambda += s.LambdaStep {
				fx := px * pixelFreqStep / lambda
				fy := py * pixelFreqStep / lambda

				v := estimator.SampleFrequency(fx, fy, s.SensorWidth, s.SensorWidth)
				intensity := real(v)*real(v) + imag(v)*imag(v)

				cmf := SampleCMF(lambda)
				src := s.Illuminant(lambda)
				accX += intensity * src * cmf.X * s.LambdaStep
				accY += intensity * src * cmf.Y * s.LambdaStep
				accZ += intensity * src * cmf.Z * s.LambdaStep
			}

			idx := j*s.OutputWidth + i
			xyz[idx] = [3]float64{accX, accY, accZ}
			if accY > maxLuminance {
				maxLuminance = accY
			}
		}
	}

	if maxLuminance == 0 {
		maxLuminance = 1
	}
	for idx, v := range xyz {
		r, g, b := XYZToSRGB(v[0]/maxLuminance, v[1]/maxLuminance, v[2]/maxLuminance)
		out.Data[idx] = vecmath.Vector4{X: float32(r), Y: float32(g), Z: float32(b), W: 1}
	}

	return out
}

// Convolve applies the post-processing convolution step: image ⊛
// diffraction in frequency space, padding both to a
// common safe size and clipping back to the image's own resolution.
func Convolve(image *imaging.VectorMap2D, diffraction *imaging.VectorMap2D, threads int) *imaging.VectorMap2D {
	n := nextPowerOfTwo(int(float64(maxIntLocal(image.Width, image.Height, diffraction.Width, diffraction.Height)) * 1.5))

	out := imaging.NewVectorMap2D(image.Width, image.Height)
	for ch := 0; ch < 3; ch++ {
		channelFn := channelSelector(ch)
		a := toComplexChannel(image, n, channelFn)
		b := toComplexChannel(diffraction, n, channelFn)

		a.FFT(threads)
		b.FFT(threads)
		a.MulPointwise(b)
		a.InverseFFT(threads)

		centered := a.Unpad(image.Width, image.Height)
		for y := 0; y < image.Height; y++ {
			for x := 0; x < image.Width; x++ {
				val := real(centered.At(x, y))
				v := out.At(x, y)
				switch ch {
				case 0:
					v.X = float32(val)
				case 1:
					v.Y = float32(val)
				default:
					v.Z = float32(val)
				}
				out.Set(x, y, v)
			}
		}
	}
	return out
}

func channelSelector(ch int) func(vecmath.Vector4) float64 {
	return func(v vecmath.Vector4) float64 {
		switch ch {
		case 0:
			return float64(v.X)
		case 1:
			return float64(v.Y)
		default:
			return float64(v.Z)
		}
	}
}

func toComplexChannel(m *imaging.VectorMap2D, n int, channel func(vecmath.Vector4) float64) *imaging.ComplexMap2D {
	out := imaging.NewComplexMap2D(n, n)
	ox, oy := (n-m.Width)/2, (n-m.Height)/2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.Set(x+ox, y+oy, complex(channel(m.At(x, y)), 0))
		}
	}
	return out
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func maxIntLocal(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
