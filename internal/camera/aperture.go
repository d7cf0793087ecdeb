// aperture.go - Polygonale und kreisfoermige Blenden fuer die Tiefenschaerfe
//
// Beide Blendenformen implementieren nur einen Filtertest in
// Blendenkoordinaten (Einheitskreis): liegt ein Lens-Sample innerhalb
// der Blendenoeffnung, wird es akzeptiert, sonst verworfen und neu
// gezogen.
package camera

import "github.com/chewxy/math32"

// Aperture decides whether a lens-plane sample (in unit-disk
// coordinates, before scaling by the physical lens radius) lies
// within the aperture's opening.
type Aperture interface {
	Filter(x, y float32) bool
}

// CircularAperture is the simplest case: every point of the unit disk
// passes.
type CircularAperture struct{}

func (CircularAperture) Filter(x, y float32) bool {
	return x*x+y*y <= 1
}

type polygonEdge struct {
	refX, refY   float32
	dirX, dirY   float32
	cache        float32
}

// PolygonalAperture models an N-bladed iris: a regular polygon whose
// edges can be rounded (BladeCurvature towards 1) to interpolate
// between a sharp polygon and a perfect circle, the way a real lens's
// diaphragm blades round off under larger apertures.
type PolygonalAperture struct {
	edges         []polygonEdge
	BladeCurvature float32
}

// NewPolygonalAperture builds an edgeCount-sided regular polygon rotated by
// angle radians; halfOffset rotates by an extra half edge-step, useful
// for aligning a flat edge to the top instead of a vertex.
func NewPolygonalAperture(edgeCount int, angle float32, halfOffset bool) *PolygonalAperture {
	const defaultAngle = math32.Pi / 2
	dtheta := 2 * math32.Pi / float32(edgeCount)
	offset := angle + defaultAngle
	if halfOffset {
		offset += dtheta / 2
	}

	refX := make([]float32, edgeCount)
	refY := make([]float32, edgeCount)
	for i := 0; i < edgeCount; i++ {
		theta := dtheta*float32(i) + offset
		refX[i] = math32.Cos(theta)
		refY[i] = math32.Sin(theta)
	}

	edges := make([]polygonEdge, edgeCount)
	for i := 0; i < edgeCount; i++ {
		next := (i + 1) % edgeCount
		dx := refX[next] - refX[i]
		dy := refY[next] - refY[i]
		mag := math32.Sqrt(dx*dx + dy*dy)
		dx /= mag
		dy /= mag

		edges[i] = polygonEdge{
			refX: refX[i], refY: refY[i],
			dirX: dx, dirY: dy,
		}
		edges[i].cache = dy*refX[i] - dx*refY[i]
	}

	return &PolygonalAperture{edges: edges}
}

// Filter follows the reference polygon-blade test: a convex-polygon
// half-plane sign check, falling back to a blended polygon/circle
// radial limit once BladeCurvature is nonzero so blades round off
// instead of cutting a hard corner.
func (a *PolygonalAperture) Filter(x, y float32) bool {
	sign := 0 // 0 = undetermined, -1/+1 = established half-plane side
	inside := true
	for _, e := range a.edges {
		dx := x - e.refX
		dy := y - e.refY
		c := e.dirY*dx - e.dirX*dy
		switch {
		case c == 0:
			continue
		case c < 0:
			if sign == 1 {
				inside = false
			} else {
				sign = -1
			}
		default:
			if sign == -1 {
				inside = false
			} else {
				sign = 1
			}
		}
		if !inside {
			break
		}
	}
	if inside {
		return true
	}

	if a.BladeCurvature == 0 {
		return false
	}

	mag2 := x*x + y*y
	if mag2 > 1 {
		return false
	}
	if a.BladeCurvature == 1 {
		return true
	}

	magInv := 1 / math32.Sqrt(mag2)
	radialX := x * magInv
	radialY := y * magInv

	limit := float32(math32.MaxFloat32)
	for _, e := range a.edges {
		div := e.dirY*radialX - e.dirX*radialY
		if div == 0 {
			continue
		}
		r := e.cache / div
		if r > 0 && r < limit {
			limit = r
		}
	}

	radiusMid := a.BladeCurvature + limit*(1-a.BladeCurvature)
	return mag2 <= radiusMid*radiusMid
}
