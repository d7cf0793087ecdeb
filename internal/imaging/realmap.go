// realmap.go - RealMap2D: Backing-Storage fuer Skalarfelder
//
// Enthaelt Punkt-Sampling, bilineares Sampling, Roll (Viertel-Tausch)
// und Padding auf eine Zweierpotenz mit Rand-Tracking.
package imaging

// RealMap2D is a row-major scalar field, the backing storage shared by
// spectral and dirt-map data (Component B).
type RealMap2D struct {
	Width, Height int
	Data          []float64
}

func NewRealMap2D(w, h int) *RealMap2D {
	return &RealMap2D{Width: w, Height: h, Data: make([]float64, w*h)}
}

func (m *RealMap2D) At(x, y int) float64 {
	return m.Data[y*m.Width+x]
}

func (m *RealMap2D) Set(x, y int, v float64) {
	m.Data[y*m.Width+x] = v
}

// Sample performs nearest-neighbor lookup, clamping to the map bounds.
func (m *RealMap2D) Sample(x, y int) float64 {
	x = clampInt(x, 0, m.Width-1)
	y = clampInt(y, 0, m.Height-1)
	return m.At(x, y)
}

// BilinearSample interpolates over the four nearest texels using the
// fractional part of (u, v) in [0, 1) map-normalized coordinates.
func (m *RealMap2D) BilinearSample(u, v float64) float64 {
	fx := u*float64(m.Width) - 0.5
	fy := v*float64(m.Height) - 0.5
	x0 := int(floor(fx))
	y0 := int(floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := m.Sample(x0, y0)
	c10 := m.Sample(x0+1, y0)
	c01 := m.Sample(x0, y0+1)
	c11 := m.Sample(x0+1, y0+1)

	top := c00 + (c10-c00)*tx
	bot := c01 + (c11-c01)*tx
	return top + (bot-top)*ty
}

// Roll swaps quadrants diagonally (DC-to-center convention), the
// operation FFT-magnitude maps need before CFT sampling.
func (m *RealMap2D) Roll() *RealMap2D {
	out := NewRealMap2D(m.Width, m.Height)
	hw, hh := m.Width/2, m.Height/2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sx := (x + hw) % m.Width
			sy := (y + hh) % m.Height
			out.Set(sx, sy, m.At(x, y))
		}
	}
	return out
}

// PadToPowerOfTwo returns a map of side length n (the smallest power of
// two >= max(w,h)*margin) with the original data centered and zero
// elsewhere, plus the left/right margin; the top/bottom margin differs
// from it when the map is not square.
func (m *RealMap2D) PadToPowerOfTwo(margin float64) (*RealMap2D, int) {
	n := nextPowerOfTwo(int(float64(maxInt(m.Width, m.Height)) * margin))
	out := NewRealMap2D(n, n)
	ox := (n - m.Width) / 2
	oy := (n - m.Height) / 2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.Set(x+ox, y+oy, m.At(x, y))
		}
	}
	return out, ox
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func floor(v float64) float64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
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
