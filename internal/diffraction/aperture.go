// aperture.go - Blenden-Rasterisierung fuer die Diffraktionspipeline
//
// Die Blende wird supersampled in ein Graustufenbild gerastert und
// dann mit golang.org/x/image/draw auf die Zielaufloesung
// heruntergefiltert, statt direkt bei Zielaufloesung zu samplen: ein
// N-Eck-Blendenrand antialiast sonst sichtbar treppenartig.
package diffraction

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/mantaray/manta/internal/camera"
	"github.com/mantaray/manta/internal/imaging"
)

const supersample = 4

// RasterizeAperture renders ap's transmittance into an N x N
// RealMap2D, optionally modulated by a dirt map sampled over the same
// unit-disk domain.
func RasterizeAperture(ap camera.Aperture, dirt *imaging.VectorMap2D, n int) *imaging.RealMap2D {
	hi := n * supersample
	mask := image.NewGray(image.Rect(0, 0, hi, hi))
	for y := 0; y < hi; y++ {
		ny := (float32(y)+0.5)/float32(hi)*2 - 1
		for x := 0; x < hi; x++ {
			nx := (float32(x)+0.5)/float32(hi)*2 - 1
			if ap.Filter(nx, ny) {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	down := image.NewGray(image.Rect(0, 0, n, n))
	draw.CatmullRom.Scale(down, down.Bounds(), mask, mask.Bounds(), draw.Over, nil)

	out := imaging.NewRealMap2D(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			transmittance := float64(down.GrayAt(x, y).Y) / 255.0
			if dirt != nil {
				u := float64(x) / float64(n)
				v := float64(y) / float64(n)
				d := dirt.BilinearSample(u, v)
				transmittance *= float64(d.X)
			}
			out.Set(x, y, transmittance)
		}
	}
	return out
}
