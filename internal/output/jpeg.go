// jpeg.go - JPEG-Output-Knoten: sRGB-Gamma waehrend der Quantisierung
//
// Nutzt image/jpeg direkt, wie der Teacher es in vision/image.go fuer
// Thumbnail-Export tut: kein eigener Huffman-Coder, kein DCT von Hand.
// Das einzige Eigene ist die lineare-RGB -> sRGB-Gamma-Abbildung vor
// dem Quantisieren nach uint8.
package output

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"os"

	"github.com/mantaray/manta/internal/vecmath"
)

// WriteJPEG gamma-encodes pixels (linear RGB) into an 8-bit sRGB JPEG
// and writes it to w at the given quality (1..100).
func WriteJPEG(w io.Writer, pixels []vecmath.RGB, width, height, quality int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp01()
			img.SetRGBA(x, y, color.RGBA{
				R: gammaEncode(c.R),
				G: gammaEncode(c.G),
				B: gammaEncode(c.B),
				A: 255,
			})
		}
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// WriteJPEGFile is a convenience wrapper creating path and JPEG-encoding
// pixels into it.
func WriteJPEGFile(path string, pixels []vecmath.RGB, width, height, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJPEG(f, pixels, width, height, quality)
}

// gammaEncode applies the sRGB transfer function to a linear channel
// value in [0, 1] and quantizes to a byte via round(clamp(c,0,1)*255),
// per the JPEG output contract.
func gammaEncode(linear float32) uint8 {
	l := float64(linear)
	var s float64
	switch {
	case l <= 0.0031308:
		s = 12.92 * l
	default:
		s = 1.055*math.Pow(l, 1/2.4) - 0.055
	}
	return uint8(math.Round(clamp(s, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
