// traverse.go - Iterative KD-Baum-Traversierung
//
// Ein Stack aus bis zu 64 Frames ersetzt die heap-allozierte Rekursion;
// beide Operationen (ClosestHit, Occluded) teilen sich dieselbe
// Kontrollstruktur.
package accel

import "github.com/mantaray/manta/internal/vecmath"

const kdMaxStackDepth = 64

type stackFrame struct {
	nodeIndex  int32
	tMin, tMax float32
}

// ClosestHit finds the nearest face intersection along ray within
// (tMin, tMax], or reports no hit.
func (t *Tree) ClosestHit(ray vecmath.Ray, tMin, tMax float32) (CoarseIntersection, bool) {
	t0, t1, hitBox := t.Bounds.IntersectRay(ray.O, ray.InvD, tMin, tMax)
	if !hitBox {
		return CoarseIntersection{}, false
	}
	t0 = max32(t0, tMin)
	t1 = min32(t1, tMax)

	var stack [kdMaxStackDepth]stackFrame
	sp := 0

	nodeIndex := int32(0)
	curTMin, curTMax := t0, t1

	var best CoarseIntersection
	haveBest := false
	closestT := t1

	for {
		if closestT < curTMin {
			break
		}
		n := &t.Nodes[nodeIndex]
		if !n.isLeaf() {
			axis := int(n.axis)
			invDirA := ray.InvD.Component(axis)
			tPlane := (n.split - ray.O.Component(axis)) * invDirA
			if invDirA == 0 || isInfinite(invDirA) {
				if ray.O.Component(axis) == n.split {
					tPlane = 0
				}
			}

			belowFirst := (ray.O.Component(axis) - n.split) < 0 ||
				(ray.O.Component(axis) == n.split && ray.D.Component(axis) <= 0)

			var firstChild, secondChild int32
			if belowFirst {
				firstChild, secondChild = nodeIndex+1, n.aboveChild
			} else {
				firstChild, secondChild = n.aboveChild, nodeIndex+1
			}

			switch {
			case tPlane > curTMax || tPlane <= 0:
				nodeIndex = firstChild
				continue
			case tPlane < curTMin:
				nodeIndex = secondChild
				continue
			default:
				stack[sp] = stackFrame{nodeIndex: secondChild, tMin: tPlane, tMax: curTMax}
				sp++
				nodeIndex = firstChild
				curTMax = tPlane
				continue
			}
		}

		// Leaf: test every face, tracking the closest hit.
		for _, face := range t.leafFaces(n) {
			if hit, ok := t.geom.IntersectFace(ray, face, tMin, closestT); ok {
				closestT = hit.T
				best = hit
				haveBest = true
			}
		}

		if sp == 0 {
			break
		}
		sp--
		frame := stack[sp]
		nodeIndex = frame.nodeIndex
		curTMin = frame.tMin
		curTMax = frame.tMax
		if closestT < curTMin {
			break
		}
	}

	return best, haveBest
}

// Occluded reports whether any face blocks the segment from p0 along
// dir up to maxDist, stopping at the first hit.
func (t *Tree) Occluded(p0, dir vecmath.Vector3, maxDist float32) bool {
	ray := vecmath.NewRay(p0, dir)
	t0, t1, hitBox := t.Bounds.IntersectRay(ray.O, ray.InvD, 1e-4, maxDist)
	if !hitBox {
		return false
	}

	var stack [kdMaxStackDepth]stackFrame
	sp := 0
	nodeIndex := int32(0)
	curTMin, curTMax := t0, t1

	for {
		n := &t.Nodes[nodeIndex]
		if !n.isLeaf() {
			axis := int(n.axis)
			invDirA := ray.InvD.Component(axis)
			tPlane := (n.split - ray.O.Component(axis)) * invDirA
			if ray.O.Component(axis) == n.split {
				tPlane = 0
			}

			belowFirst := (ray.O.Component(axis) - n.split) < 0 ||
				(ray.O.Component(axis) == n.split && ray.D.Component(axis) <= 0)

			var firstChild, secondChild int32
			if belowFirst {
				firstChild, secondChild = nodeIndex+1, n.aboveChild
			} else {
				firstChild, secondChild = n.aboveChild, nodeIndex+1
			}

			switch {
			case tPlane > curTMax || tPlane <= 0:
				nodeIndex = firstChild
				continue
			case tPlane < curTMin:
				nodeIndex = secondChild
				continue
			default:
				stack[sp] = stackFrame{nodeIndex: secondChild, tMin: tPlane, tMax: curTMax}
				sp++
				nodeIndex = firstChild
				curTMax = tPlane
				continue
			}
		}

		for _, face := range t.leafFaces(n) {
			if _, ok := t.geom.IntersectFace(ray, face, 1e-4, maxDist); ok {
				return true
			}
		}

		if sp == 0 {
			return false
		}
		sp--
		frame := stack[sp]
		nodeIndex = frame.nodeIndex
		curTMin = frame.tMin
		curTMax = frame.tMax
	}
}

func (t *Tree) leafFaces(n *node) []int {
	switch n.primCount {
	case 0:
		return nil
	case 1:
		return []int{int(n.inlineFace)}
	default:
		return t.Faces[n.faceOffset : n.faceOffset+n.primCount]
	}
}

// ExhaustiveClosestHit iterates every face directly, used as the
// reference oracle used to cross-check the KD-tree against a brute-force scan.
func ExhaustiveClosestHit(geom FaceSet, ray vecmath.Ray, tMin, tMax float32) (CoarseIntersection, bool) {
	closestT := tMax
	var best CoarseIntersection
	found := false
	for f := 0; f < geom.NumFaces(); f++ {
		if hit, ok := geom.IntersectFace(ray, f, tMin, closestT); ok {
			closestT = hit.T
			best = hit
			found = true
		}
	}
	return best, found
}

func isInfinite(v float32) bool {
	return v > 3.4e38 || v < -3.4e38
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
