// kdtree.go - SAH-KD-Baum-Konstruktion
//
// Die Knoten werden als getaggte Variante statt als gepacktes 64-Bit-
// Wort modelliert; das Layout-Invariant (Knoten 0 ist Wurzel, Below-
// Kind folgt direkt auf den Eltern-Knoten) bleibt erhalten.
package accel

import (
	"log/slog"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/mantaray/manta/internal/vecmath"
)

const (
	kdTraversalCost    = 50.0
	kdIntersectionCost = 50.0
	kdEmptyBonus       = 0.0
	kdMaxDepth         = 64
	kdMaxBadRefines    = 3
)

// node is one entry of the flat KD-tree array.
type node struct {
	axis int8 // 0,1,2 = interior split axis; 3 = leaf

	// interior
	split      float32
	aboveChild int32 // below child is always index+1

	// leaf
	primCount  int32
	inlineFace int32 // valid when primCount == 1
	faceOffset int32 // valid when primCount > 1: offset into Tree.Faces
}

func (n *node) isLeaf() bool { return n.axis == 3 }

// Tree is the built SAH KD-tree, ready for closestHit/occluded queries
// against the FaceSet it was built from.
type Tree struct {
	Nodes []node
	Faces []int // flat leaf face list, non-overlapping contiguous ranges
	Bounds AABB

	geom        FaceSet
	maxLeafSize int
}

// BuildOptions configures tree construction.
type BuildOptions struct {
	MaxLeafSize int
	// ReportProgress starts a background goroutine printing build
	// percent-complete at roughly 50 Hz until construction finishes.
	ReportProgress bool
}

type edgeType int8

const (
	edgeStart edgeType = iota
	edgeEnd
)

type boundEdge struct {
	t    float32
	face int
	kind edgeType
}

// Build constructs a KD-tree over every face of geom within worldBounds.
// geom must remain immutable for the tree's lifetime.
func Build(geom FaceSet, worldBounds AABB, opts BuildOptions) *Tree {
	if opts.MaxLeafSize <= 0 {
		opts.MaxLeafSize = 1
	}

	t := &Tree{geom: geom, Bounds: worldBounds, maxLeafSize: opts.MaxLeafSize}

	n := geom.NumFaces()
	allFaces := make([]int, n)
	bounds := make([]AABB, n)
	for i := 0; i < n; i++ {
		allFaces[i] = i
		bounds[i] = geom.FaceBounds(i)
	}

	var progress atomic.Uint64 // math.Float64bits of a [0,1] fraction
	stop := make(chan struct{})
	if opts.ReportProgress {
		go reportBuildProgress(&progress, stop)
	}

	b := &builder{tree: t, bounds: bounds, progress: &progress}
	b.buildNode(worldBounds, allFaces, kdMaxDepth, 0, 1.0)

	if opts.ReportProgress {
		close(stop)
	}
	return t
}

func reportBuildProgress(progress *atomic.Uint64, stop chan struct{}) {
	ticker := time.NewTicker(20 * time.Millisecond) // ~50 Hz
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			slog.Debug("kd-tree build complete", "percent", 100.0)
			return
		case <-ticker.C:
			frac := math.Float64frombits(progress.Load())
			slog.Debug("kd-tree build progress", "percent", frac*100)
		}
	}
}

type builder struct {
	tree     *Tree
	bounds   []AABB
	progress *atomic.Uint64
}

func (b *builder) addEffort(effort float64) {
	for {
		old := b.progress.Load()
		next := math.Float64frombits(old) + effort
		if b.progress.CompareAndSwap(old, math.Float64bits(next)) {
			return
		}
	}
}

// buildNode recurses, returning the index of the node it wrote (always
// the next free slot in tree.Nodes).
func (b *builder) buildNode(bounds AABB, faces []int, depth int, badRefines int, effort float64) int {
	nodeIndex := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, node{})

	if len(faces) <= b.tree.maxLeafSize || depth == 0 {
		b.makeLeaf(nodeIndex, bounds, faces, effort)
		return nodeIndex
	}

	axis, splitT, splitFaces, ok := b.chooseSplit(bounds, faces, badRefines)
	if !ok {
		b.makeLeaf(nodeIndex, bounds, faces, effort)
		return nodeIndex
	}

	below, above := partitionFaces(faces, splitFaces, axis, splitT, b.bounds)

	nextBadRefines := badRefines
	if splitFaces.cost > splitFaces.oldCost {
		nextBadRefines++
	}

	belowBounds := bounds
	belowBounds.Max = belowBounds.Max.WithComponent(axis, splitT)
	aboveBounds := bounds
	aboveBounds.Min = aboveBounds.Min.WithComponent(axis, splitT)

	totalFaces := float64(len(below) + len(above))
	belowEffort, aboveEffort := effort, 0.0
	if totalFaces > 0 {
		belowEffort = effort * float64(len(below)) / totalFaces
		aboveEffort = effort * float64(len(above)) / totalFaces
	}

	b.tree.Nodes[nodeIndex].axis = int8(axis)
	b.tree.Nodes[nodeIndex].split = splitT

	b.buildNode(belowBounds, below, depth-1, nextBadRefines, belowEffort)
	aboveIndex := b.buildNode(aboveBounds, above, depth-1, nextBadRefines, aboveEffort)
	b.tree.Nodes[nodeIndex].aboveChild = int32(aboveIndex)

	return nodeIndex
}

func (b *builder) makeLeaf(nodeIndex int, bounds AABB, faces []int, effort float64) {
	kept := make([]int, 0, len(faces))
	for _, f := range faces {
		if b.tree.geom.Overlaps(f, bounds) {
			kept = append(kept, f)
		}
	}
	faces = kept

	n := &b.tree.Nodes[nodeIndex]
	n.axis = 3
	n.primCount = int32(len(faces))
	switch len(faces) {
	case 0:
	case 1:
		n.inlineFace = int32(faces[0])
	default:
		n.faceOffset = int32(len(b.tree.Faces))
		b.tree.Faces = append(b.tree.Faces, faces...)
	}
	b.addEffort(effort)
}

type splitChoice struct {
	cost    float32
	oldCost float32
}

// chooseSplit implements the SAH cost sweep, retrying up to two other
// axes and falling back to a leaf when refines keep coming out worse
// or the cost ratio against a plain leaf is too poor.
func (b *builder) chooseSplit(bounds AABB, faces []int, badRefines int) (axis int, splitT float32, choice splitChoice, ok bool) {
	totalSA := bounds.SurfaceArea()
	if totalSA <= 0 {
		return 0, 0, splitChoice{}, false
	}
	oldCost := kdIntersectionCost * float32(len(faces))

	startAxis := bounds.MaximumExtentAxis()
	var bestAxis int = -1
	var bestT float32
	var bestCost float32 = math.MaxFloat32

	for retry := 0; retry < 3; retry++ {
		a := (startAxis + retry) % 3
		edges := buildEdges(faces, b.bounds, a)
		if len(edges) == 0 {
			continue
		}

		nBelow, nAbove := 0, len(faces)
		invTotalSA := 1 / totalSA
		d := bounds.Diagonal()
		var otherAxesArea float32
		switch a {
		case 0:
			otherAxesArea = 2 * (d.Y*d.Z)
		case 1:
			otherAxesArea = 2 * (d.X*d.Z)
		default:
			otherAxesArea = 2 * (d.X*d.Y)
		}
		min := bounds.Min.Component(a)
		max := bounds.Max.Component(a)

		for _, e := range edges {
			if e.kind == edgeEnd {
				nAbove--
			}
			if e.t > min && e.t < max {
				belowExtent := e.t - min
				aboveExtent := max - e.t
				belowSA := faceSlabArea(bounds, a, belowExtent, otherAxesArea)
				aboveSA := faceSlabArea(bounds, a, aboveExtent, otherAxesArea)
				pBelow := belowSA * invTotalSA
				pAbove := aboveSA * invTotalSA

				eb := float32(0)
				if nBelow == 0 || nAbove == 0 {
					eb = kdEmptyBonus
				}
				cost := kdTraversalCost + kdIntersectionCost*(1-eb)*(pBelow*float32(nBelow)+pAbove*float32(nAbove))
				if cost < bestCost {
					bestCost = cost
					bestT = e.t
					bestAxis = a
				}
			}
			if e.kind == edgeStart {
				nBelow++
			}
		}

		if bestAxis == a {
			break
		}
	}

	if bestAxis < 0 {
		return 0, 0, splitChoice{}, false
	}

	choice = splitChoice{cost: bestCost, oldCost: oldCost}
	if (badRefines == kdMaxBadRefines-1 && bestCost > oldCost) ||
		(bestCost > 4*oldCost && len(faces) < b.tree.maxLeafSize*4) {
		// One more bad refine would trip the cap, or the split is far
		// worse than leaving a (slightly oversized) leaf: emit a leaf.
		return 0, 0, splitChoice{}, false
	}
	if badRefines >= kdMaxBadRefines {
		return 0, 0, splitChoice{}, false
	}

	return bestAxis, bestT, choice, true
}

// faceSlabArea is the surface area of `bounds` with its extent along
// `axis` replaced by `extent`, expressed via the precomputed area of
// the two other faces (otherAxesArea = 2*perpendicular cross term).
func faceSlabArea(bounds AABB, axis int, extent float32, otherAxesArea float32) float32 {
	d := bounds.Diagonal()
	var o1, o2 float32
	switch axis {
	case 0:
		o1, o2 = d.Y, d.Z
	case 1:
		o1, o2 = d.X, d.Z
	default:
		o1, o2 = d.X, d.Y
	}
	return otherAxesArea + 2*extent*(o1+o2)
}

func buildEdges(faces []int, bounds []AABB, axis int) []boundEdge {
	edges := make([]boundEdge, 0, len(faces)*2)
	for _, f := range faces {
		bb := bounds[f]
		edges = append(edges,
			boundEdge{t: bb.Min.Component(axis), face: f, kind: edgeStart},
			boundEdge{t: bb.Max.Component(axis), face: f, kind: edgeEnd},
		)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t != edges[j].t {
			return edges[i].t < edges[j].t
		}
		return edges[i].kind < edges[j].kind // Start < End at ties
	})
	return edges
}

func partitionFaces(faces []int, _ splitChoice, axis int, splitT float32, bounds []AABB) (below, above []int) {
	for _, f := range faces {
		bb := bounds[f]
		if bb.Min.Component(axis) < splitT {
			below = append(below, f)
		}
		if bb.Max.Component(axis) > splitT {
			above = append(above, f)
		}
		if bb.Min.Component(axis) == bb.Max.Component(axis) && bb.Min.Component(axis) == splitT {
			below = append(below, f)
		}
	}
	return below, above
}
