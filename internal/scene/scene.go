// scene.go - Szenenobjektliste und Lichterliste
//
// Scene selbst traegt keine Geometrie: sie ist nur die Reihenfolge,
// in der der Pfad-Integrator Objekte und Lichter abfragt. Jedes
// SceneObject besitzt seinen eigenen KD-Baum, sodass getrennt
// geladene Meshes unabhaengig beschleunigt werden.
package scene

import (
	"github.com/mantaray/manta/internal/accel"
	"github.com/mantaray/manta/internal/vecmath"
)

type (
	Vector3 = vecmath.Vector3
	RGB     = vecmath.RGB
)

// SceneObject couples one piece of accelerated geometry with the
// material index assigned to faces that carry no override (-1 in
// their auxiliary data).
type SceneObject struct {
	Geometry        accel.FaceSet
	Tree            *accel.Tree
	DefaultMaterial int32
}

// FastIntersection is the cheap pre-cull mentioned by the per-bounce
// ray march: a bounding-box-only test before the full closest-hit
// walk. The KD-tree's root bounds double as the object's bounding
// volume.
func (o *SceneObject) FastIntersection(ray vecmath.Ray, tMin, tMax float32) bool {
	_, _, hit := o.Tree.Bounds.IntersectRay(ray.O, ray.InvD, tMin, tMax)
	return hit
}

func (o *SceneObject) FindClosestIntersection(ray vecmath.Ray, tMin, tMax float32) (accel.CoarseIntersection, bool) {
	return o.Tree.ClosestHit(ray, tMin, tMax)
}

func (o *SceneObject) Occluded(p0, dir vecmath.Vector3, maxDist float32) bool {
	return o.Tree.Occluded(p0, dir, maxDist)
}

// Scene is the ordered object list and ordered light list the path
// integrator walks every bounce: ordering only affects which hit wins
// ties at equal depth, never correctness.
type Scene struct {
	Objects []*SceneObject
	Lights  []Light
	Library *MaterialLibrary
}

// FindClosestIntersection walks every object, keeping the nearest hit;
// mirrors ExhaustiveClosestHit's fold but one level up, across objects
// instead of across faces within one object's tree.
func (s *Scene) FindClosestIntersection(ray vecmath.Ray, tMin, tMax float32) (accel.CoarseIntersection, *SceneObject, bool) {
	closestT := tMax
	var best accel.CoarseIntersection
	var bestObj *SceneObject
	found := false

	for _, obj := range s.Objects {
		if !obj.FastIntersection(ray, tMin, closestT) {
			continue
		}
		hit, ok := obj.FindClosestIntersection(ray, tMin, closestT)
		if ok {
			closestT = hit.T
			best = hit
			bestObj = obj
			found = true
		}
	}
	return best, bestObj, found
}

// Occluded tests the segment against every object, stopping at the
// first block.
func (s *Scene) Occluded(p0, dir vecmath.Vector3, maxDist float32) bool {
	for _, obj := range s.Objects {
		if obj.Occluded(p0, dir, maxDist) {
			return true
		}
	}
	return false
}
