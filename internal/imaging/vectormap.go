// vectormap.go - VectorMap2D: 4-Komponenten-Kartenspeicher
package imaging

import "github.com/mantaray/manta/internal/vecmath"

// VectorMap2D is a row-major 4-vector field, used for the "dirt" map
// modulating aperture transmittance among other uses.
type VectorMap2D struct {
	Width, Height int
	Data          []vecmath.Vector4
}

func NewVectorMap2D(w, h int) *VectorMap2D {
	return &VectorMap2D{Width: w, Height: h, Data: make([]vecmath.Vector4, w*h)}
}

func (m *VectorMap2D) At(x, y int) vecmath.Vector4 {
	return m.Data[y*m.Width+x]
}

func (m *VectorMap2D) Set(x, y int, v vecmath.Vector4) {
	m.Data[y*m.Width+x] = v
}

func (m *VectorMap2D) Sample(x, y int) vecmath.Vector4 {
	x = clampInt(x, 0, m.Width-1)
	y = clampInt(y, 0, m.Height-1)
	return m.At(x, y)
}

func (m *VectorMap2D) BilinearSample(u, v float64) vecmath.Vector4 {
	fx := u*float64(m.Width) - 0.5
	fy := v*float64(m.Height) - 0.5
	x0 := int(floor(fx))
	y0 := int(floor(fy))
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))

	c00 := m.Sample(x0, y0)
	c10 := m.Sample(x0+1, y0)
	c01 := m.Sample(x0, y0+1)
	c11 := m.Sample(x0+1, y0+1)

	top := c00.Scale(1 - tx).Add(c10.Scale(tx))
	bot := c01.Scale(1 - tx).Add(c11.Scale(tx))
	return top.Scale(1 - ty).Add(bot.Scale(ty))
}
