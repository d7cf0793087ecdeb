// tiles.go - Kachelmuster fuer den Bild-Scheduler
//
// Der Spiral-Modus beginnt in der Bildmitte und dreht sich nach
// aussen, sodass ein frueh abgebrochener Render (Vorschau) das
// visuell wichtigste Bildzentrum zuerst fertigstellt. Row-Major ist
// der einfache Fallback ohne diese Eigenschaft.
package schedule

import (
	"math"
	"sort"

	"github.com/mantaray/manta/internal/imaging"
)

const defaultTileSize = 64

// Pattern selects the order tiles are enqueued in.
type Pattern int

const (
	PatternSpiral Pattern = iota
	PatternRowMajor
)

// Tiles partitions a width x height image into tileSize x tileSize
// blocks (the last row/column clipped to the image edge), ordered per
// pattern.
func Tiles(width, height, tileSize int, pattern Pattern) []imaging.TileBounds {
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize

	grid := make([]imaging.TileBounds, 0, cols*rows)
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			grid = append(grid, imaging.TileBounds{X0: x0, Y0: y0, X1: x1, Y1: y1})
		}
	}

	if pattern == PatternSpiral {
		return spiralOrder(grid, cols, rows)
	}
	return grid
}

type scoredTile struct {
	tile imaging.TileBounds
	ring float64
	ang  float64
}

// spiralOrder reorders a row-major tile grid into a center-outward
// spiral by sorting on Chebyshev distance from the grid's center cell,
// breaking ties by angle so same-ring tiles still sweep around
// consistently instead of jumping erratically.
func spiralOrder(grid []imaging.TileBounds, cols, rows int) []imaging.TileBounds {
	cx, cy := float64(cols-1)/2, float64(rows-1)/2

	scored := make([]scoredTile, len(grid))
	for i, t := range grid {
		col := i % cols
		row := i / cols
		dx := float64(col) - cx
		dy := float64(row) - cy
		scored[i] = scoredTile{tile: t, ring: math.Max(math.Abs(dx), math.Abs(dy)), ang: math.Atan2(dy, dx)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].ring != scored[j].ring {
			return scored[i].ring < scored[j].ring
		}
		return scored[i].ang < scored[j].ang
	})

	out := make([]imaging.TileBounds, len(scored))
	for i, s := range scored {
		out[i] = s.tile
	}
	return out
}
