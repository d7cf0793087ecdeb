// complexmap.go - ComplexMap2D: FFT-Ruecgrat der Diffraktionspipeline
//
// Die eigentliche 1-D-Transformation kommt aus gonum.org/v1/gonum/dsp/fourier;
// dieses Modul fuegt die Zeilen-dann-Spalten-2-D-Fan-out-Logik, das
// Padding-Tracking und die kontinuierliche-FT-Abschaetzung (CFT) hinzu.
package imaging

import (
	"context"
	"math"
	"math/cmplx"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ComplexMap2D is a row-major complex field. FFT transforms it at its
// current size; PadToPowerOfTwo produces a power-of-two side length.
type ComplexMap2D struct {
	Width, Height int
	Data          []complex128

	// margin is the zero-padding introduced by PadToPowerOfTwo, in
	// texels on each side; Roll and CFTEstimate carry it over to their
	// results, and SampleFrequency does not read it.
	marginX, marginY int
}

func NewComplexMap2D(w, h int) *ComplexMap2D {
	return &ComplexMap2D{Width: w, Height: h, Data: make([]complex128, w*h)}
}

func (m *ComplexMap2D) At(x, y int) complex128 { return m.Data[y*m.Width+x] }
func (m *ComplexMap2D) Set(x, y int, v complex128) {
	m.Data[y*m.Width+x] = v
}

func (m *ComplexMap2D) Sample(x, y int) complex128 {
	x = clampInt(x, 0, m.Width-1)
	y = clampInt(y, 0, m.Height-1)
	return m.At(x, y)
}

func (m *ComplexMap2D) row(y int) []complex128 {
	return m.Data[y*m.Width : y*m.Width+m.Width]
}

func (m *ComplexMap2D) column(x int, buf []complex128) []complex128 {
	if buf == nil || len(buf) != m.Height {
		buf = make([]complex128, m.Height)
	}
	for y := 0; y < m.Height; y++ {
		buf[y] = m.Data[y*m.Width+x]
	}
	return buf
}

func (m *ComplexMap2D) setColumn(x int, col []complex128) {
	for y := 0; y < m.Height; y++ {
		m.Data[y*m.Width+x] = col[y]
	}
}

// FFT runs the forward 2-D transform in place: a row FFT of length
// Width on every row, then a column FFT of length Height on every
// column, each with its own plan so no goroutine shares FFT scratch
// state. Work is spread across threads goroutines via errgroup,
// following the same fixed worker-pool discipline used by the tile
// scheduler.
func (m *ComplexMap2D) FFT(threads int) error {
	return m.transform(threads, false)
}

// InverseFFT runs the inverse transform in place and scales the result
// by 1/(Width*Height), so InverseFFT after FFT returns the input.
func (m *ComplexMap2D) InverseFFT(threads int) error {
	return m.transform(threads, true)
}

func (m *ComplexMap2D) transform(threads int, inverse bool) error {
	if threads < 1 {
		threads = 1
	}

	if err := m.fanOut(threads, m.Height, func(y int) {
		r := m.row(y)
		rowPlan := fourier.NewCmplxFFT(m.Width)
		if inverse {
			copy(r, rowPlan.Sequence(nil, r))
		} else {
			copy(r, rowPlan.Coefficients(nil, r))
		}
	}); err != nil {
		return err
	}

	if err := m.fanOut(threads, m.Width, func(x int) {
		col := m.column(x, nil)
		colPlan := fourier.NewCmplxFFT(m.Height)
		if inverse {
			col = colPlan.Sequence(nil, col)
		} else {
			col = colPlan.Coefficients(nil, col)
		}
		m.setColumn(x, col)
	}); err != nil {
		return err
	}

	if inverse {
		m.MulScalar(complex(1/float64(m.Width*m.Height), 0))
	}
	return nil
}

func (m *ComplexMap2D) fanOut(threads, n int, work func(i int)) error {
	g, _ := errgroup.WithContext(context.Background())
	chunk := (n + threads - 1) / threads
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				work(i)
			}
			return nil
		})
	}
	return g.Wait()
}

// Roll performs the diagonal quadrant swap used to move the FFT's DC
// term to the map's center before CFT sampling.
func (m *ComplexMap2D) Roll() *ComplexMap2D {
	out := NewComplexMap2D(m.Width, m.Height)
	out.marginX, out.marginY = m.marginX, m.marginY
	hw, hh := m.Width/2, m.Height/2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sx, sy := (x+hw)%m.Width, (y+hh)%m.Height
			out.Set(sx, sy, m.At(x, y))
		}
	}
	return out
}

// PadToPowerOfTwo zero-pads the map so its side length is the smallest
// power of two >= max(w,h)*safetyFactor, centering the original content and
// recording the applied margin for later unpadding.
func (m *ComplexMap2D) PadToPowerOfTwo(safetyFactor float64) *ComplexMap2D {
	n := nextPowerOfTwo(int(float64(maxInt(m.Width, m.Height)) * safetyFactor))
	out := NewComplexMap2D(n, n)
	ox, oy := (n-m.Width)/2, (n-m.Height)/2
	out.marginX, out.marginY = ox, oy
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.Set(x+ox, y+oy, m.At(x, y))
		}
	}
	return out
}

// Unpad extracts the central w x h region, inverting PadToPowerOfTwo,
// used after frequency-domain convolution.
func (m *ComplexMap2D) Unpad(w, h int) *ComplexMap2D {
	ox := (m.Width - w) / 2
	oy := (m.Height - h) / 2
	out := NewComplexMap2D(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, m.At(x+ox, y+oy))
		}
	}
	return out
}

func (m *ComplexMap2D) MulScalar(s complex128) {
	for i := range m.Data {
		m.Data[i] *= s
	}
}

// MulPointwise multiplies element-wise by another map of equal size,
// used for frequency-space convolution.
func (m *ComplexMap2D) MulPointwise(o *ComplexMap2D) {
	for i := range m.Data {
		m.Data[i] *= o.Data[i]
	}
}

// CFTEstimate converts the (already FFT'd and rolled) map into a
// continuous-FT estimator by scaling by 1/(fsx*fsy) and applying the
// checkerboard phase (-1)^(kx+ky) that the discrete FFT introduces
// relative to the physical continuous transform.
func (m *ComplexMap2D) CFTEstimate(apertureWidth, apertureHeight float64) *ComplexMap2D {
	fsx := float64(m.Width) / apertureWidth
	fsy := float64(m.Height) / apertureHeight
	scale := complex(1/(fsx*fsy), 0)

	out := NewComplexMap2D(m.Width, m.Height)
	out.marginX, out.marginY = m.marginX, m.marginY
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			phase := 1.0
			if (x+y)%2 != 0 {
				phase = -1.0
			}
			out.Set(x, y, m.At(x, y)*scale*complex(phase, 0))
		}
	}
	return out
}

// SampleFrequency bilinearly samples the estimator at a (possibly
// fractional, possibly negative) spatial-frequency coordinate, mapping
// it back onto map texels via the map's own sampling-frequency pitch.
func (m *ComplexMap2D) SampleFrequency(fx, fy, apertureWidth, apertureHeight float64) complex128 {
	u := fx*apertureWidth + float64(m.Width)/2
	v := fy*apertureHeight + float64(m.Height)/2
	x0, y0 := int(math.Floor(u)), int(math.Floor(v))
	tx, ty := u-float64(x0), v-float64(y0)

	c00 := m.Sample(x0, y0)
	c10 := m.Sample(x0+1, y0)
	c01 := m.Sample(x0, y0+1)
	c11 := m.Sample(x0+1, y0+1)

	top := c00 + (c10-c00)*complex(tx, 0)
	bot := c01 + (c11-c01)*complex(tx, 0)
	return top + (bot-top)*complex(ty, 0)
}

// IsReal reports whether every sample's imaginary part is within tol
// of zero: a real-valued aperture transform must stay real after the
// checkerboard-phase correction.
func (m *ComplexMap2D) IsReal(tol float64) bool {
	for _, v := range m.Data {
		if cmplx.Abs(complex(0, imag(v))) > tol {
			return false
		}
	}
	return true
}
