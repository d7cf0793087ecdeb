// imageplane.go - ImagePlane: Sample-Akkumulation und Rekonstruktion
//
// Jeder Sample splattet in jeden ganzzahligen Pixel innerhalb des
// Filter-Supports; Zaehler und Nenner werden getrennt akkumuliert.
// Ein TileBuffer laesst Worker lock-frei in ihre eigene, um den
// Filterradius erweiterte Kachel schreiben; der Merge ins globale
// ImagePlane geschieht einmalig unter Lock bei Kachel-Fertigstellung.
package imaging

import (
	"sync"

	"github.com/mantaray/manta/internal/vecmath"
)

// ImagePlane is the final accumulation target.
type ImagePlane struct {
	Width, Height int
	Filter        Filter

	mu     sync.Mutex
	accum  []vecmath.Vector4
}

func NewImagePlane(width, height int, filter Filter) *ImagePlane {
	return &ImagePlane{
		Width:  width,
		Height: height,
		Filter: filter,
		accum:  make([]vecmath.Vector4, width*height),
	}
}

// Splat adds a sample directly into the global accumulator under lock.
// Used by single-threaded rendering and tests; the tiled worker path
// uses TileBuffer + Merge instead to avoid lock contention per-sample.
func (p *ImagePlane) Splat(pos vecmath.Vector2, radiance vecmath.RGB) {
	p.mu.Lock()
	defer p.mu.Unlock()
	splatInto(p.accum, p.Width, p.Height, p.Filter, pos, radiance)
}

// Finalize divides every pixel's weighted color by its accumulated
// weight, yielding black for pixels with zero weight.
func (p *ImagePlane) Finalize() []vecmath.RGB {
	out := make([]vecmath.RGB, len(p.accum))
	for i, v := range p.accum {
		out[i] = v.Finalize()
	}
	return out
}

func (p *ImagePlane) At(x, y int) vecmath.Vector4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accum[y*p.Width+x]
}

// splatInto is the shared inner loop used by both ImagePlane.Splat and
// TileBuffer.Splat: iterate every integer pixel within the filter's
// square support and accumulate (w*radiance, w).
func splatInto(accum []vecmath.Vector4, width, height int, filter Filter, pos vecmath.Vector2, radiance vecmath.RGB) {
	radius := filter.Radius()
	x0 := clampInt(int(pos.X-radius), 0, width-1)
	x1 := clampInt(int(pos.X+radius), 0, width-1)
	y0 := clampInt(int(pos.Y-radius), 0, height-1)
	y1 := clampInt(int(pos.Y+radius), 0, height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float32(x) + 0.5) - pos.X
			dy := (float32(y) + 0.5) - pos.Y
			w := filter.Evaluate(dx, dy)
			if w == 0 {
				continue
			}
			idx := y*width + x
			accum[idx] = accum[idx].Add(vecmath.RGBW(radiance, w))
		}
	}
}

// TileBounds describes a worker's owned rectangle, expanded by the
// filter radius so every sample's splat stays within the buffer.
type TileBounds struct {
	X0, Y0, X1, Y1 int // exclusive-excluded: [X0,X1) x [Y0,Y1), tile-owned region
}

// TileBuffer is a worker-local accumulation grid covering a tile
// expanded by floor(filter radius)+1 on every side, so splats near tile
// edges never write outside the buffer. No locking: exactly one
// worker owns a TileBuffer at a time.
type TileBuffer struct {
	bounds  TileBounds
	radius  int
	originX int // bounds.X0 - radius, the buffer's world-space (0,0)
	originY int
	width   int
	height  int
	filter  Filter
	accum   []vecmath.Vector4
}

func NewTileBuffer(bounds TileBounds, filter Filter) *TileBuffer {
	radius := int(filter.Radius()) + 1
	originX := bounds.X0 - radius
	originY := bounds.Y0 - radius
	width := (bounds.X1 - bounds.X0) + 2*radius
	height := (bounds.Y1 - bounds.Y0) + 2*radius
	return &TileBuffer{
		bounds:  bounds,
		radius:  radius,
		originX: originX,
		originY: originY,
		width:   width,
		height:  height,
		filter:  filter,
		accum:   make([]vecmath.Vector4, width*height),
	}
}

// Splat accepts a sample position in global image coordinates.
func (t *TileBuffer) Splat(pos vecmath.Vector2, radiance vecmath.RGB) {
	local := vecmath.Vector2{X: pos.X - float32(t.originX), Y: pos.Y - float32(t.originY)}
	splatInto(t.accum, t.width, t.height, t.filter, local, radiance)
}

// Merge adds the tile's local accumulator into the global ImagePlane
// under a single lock acquisition, clipping to the plane's bounds.
// Boundary pixels are merged under this per-tile lock at tile
// completion, never per-sample.
func (p *ImagePlane) Merge(t *TileBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ly := 0; ly < t.height; ly++ {
		gy := t.originY + ly
		if gy < 0 || gy >= p.Height {
			continue
		}
		for lx := 0; lx < t.width; lx++ {
			gx := t.originX + lx
			if gx < 0 || gx >= p.Width {
				continue
			}
			src := t.accum[ly*t.width+lx]
			if src.W == 0 && src.X == 0 && src.Y == 0 && src.Z == 0 {
				continue
			}
			idx := gy*p.Width + gx
			p.accum[idx] = p.accum[idx].Add(src)
		}
	}
}
