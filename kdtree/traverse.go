package kdtree

import (
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// stackEntry is one frame of the explicit traversal stack: a node to
// visit together with its valid [tMin,tMax] parametric range.
type stackEntry struct {
	nodeIndex  int
	tMin, tMax float64
}

// Intersect finds the closest primitive hit along ray within
// [ray.TMin, ray.TMax], traversing iteratively with an explicit stack
// rather than recursion (spec.md §4.3). Returns ok=false on a miss with
// no partial state retained.
func (k *KDTree) Intersect(ray geometry.Ray) (float64, geometry.DifferentialGeometry, bool) {
	invDir := [3]float64{safeInv(ray.Direction.X), safeInv(ray.Direction.Y), safeInv(ray.Direction.Z)}
	invDirVec := mathutil.Vec3{X: invDir[0], Y: invDir[1], Z: invDir[2]}

	tMin, tMax, hit := k.bound.IntersectP(ray.Origin, invDirVec, ray.TMin, ray.TMax)
	if !hit {
		return 0, geometry.DifferentialGeometry{}, false
	}

	var stack [64]stackEntry
	top := 0
	nodeIndex := 0

	var bestDG geometry.DifferentialGeometry
	hitAny := false
	rayCopy := ray

	for {
		n := &k.nodes[nodeIndex]
		if rayCopy.TMax < tMin {
			break
		}
		if !n.isLeaf() {
			axis := int(n.splitAxis())
			originAxis := axisValue(ray.Origin, axis)
			dirAxis := axisValue(ray.Direction, axis)

			var tSplit float64
			if dirAxis != 0 {
				tSplit = (n.splitPos() - originAxis) * invAxis(invDir, axis)
			} else {
				tSplit = (n.splitPos() - originAxis) * 1e30
			}

			first, second := nodeIndex+1, n.rightChild()
			belowFirst := (originAxis < n.splitPos()) || (originAxis == n.splitPos() && dirAxis <= 0)
			if !belowFirst {
				first, second = second, first
			}

			switch {
			case tSplit > tMax || tSplit <= 0:
				nodeIndex = first
				continue
			case tSplit < tMin:
				nodeIndex = second
				continue
			default:
				stack[top] = stackEntry{nodeIndex: second, tMin: tSplit, tMax: tMax}
				top++
				nodeIndex = first
				tMax = tSplit
				continue
			}
		}

		for i := 0; i < n.primCount; i++ {
			prim := k.prims[k.primitives[n.primStart+i]]
			if t, dg, ok := prim.Intersect(rayCopy); ok {
				rayCopy.TMax = t
				bestDG = dg
				hitAny = true
			}
		}

		if top == 0 {
			break
		}
		top--
		nodeIndex = stack[top].nodeIndex
		tMin = stack[top].tMin
		tMax = stack[top].tMax
	}

	if !hitAny {
		return 0, geometry.DifferentialGeometry{}, false
	}
	return rayCopy.TMax, bestDG, true
}

// IntersectP is a shadow-ray test: true iff any primitive is hit within
// the ray's window, without computing intersection geometry.
func (k *KDTree) IntersectP(ray geometry.Ray) bool {
	invDir := [3]float64{safeInv(ray.Direction.X), safeInv(ray.Direction.Y), safeInv(ray.Direction.Z)}
	invDirVec := mathutil.Vec3{X: invDir[0], Y: invDir[1], Z: invDir[2]}
	tMin, tMax, hit := k.bound.IntersectP(ray.Origin, invDirVec, ray.TMin, ray.TMax)
	if !hit {
		return false
	}

	var stack [64]stackEntry
	top := 0
	nodeIndex := 0

	for {
		n := &k.nodes[nodeIndex]
		if !n.isLeaf() {
			axis := int(n.splitAxis())
			originAxis := axisValue(ray.Origin, axis)
			dirAxis := axisValue(ray.Direction, axis)

			var tSplit float64
			if dirAxis != 0 {
				tSplit = (n.splitPos() - originAxis) * invAxis(invDir, axis)
			} else {
				tSplit = (n.splitPos() - originAxis) * 1e30
			}

			first, second := nodeIndex+1, n.rightChild()
			belowFirst := (originAxis < n.splitPos()) || (originAxis == n.splitPos() && dirAxis <= 0)
			if !belowFirst {
				first, second = second, first
			}

			switch {
			case tSplit > tMax || tSplit <= 0:
				nodeIndex = first
				continue
			case tSplit < tMin:
				nodeIndex = second
				continue
			default:
				stack[top] = stackEntry{nodeIndex: second, tMin: tSplit, tMax: tMax}
				top++
				nodeIndex = first
				tMax = tSplit
				continue
			}
		}

		for i := 0; i < n.primCount; i++ {
			prim := k.prims[k.primitives[n.primStart+i]]
			if prim.IntersectP(ray) {
				return true
			}
		}

		if top == 0 {
			return false
		}
		top--
		nodeIndex = stack[top].nodeIndex
		tMin = stack[top].tMin
		tMax = stack[top].tMax
	}
}

func safeInv(x float64) float64 {
	if x == 0 {
		return 1e300
	}
	return 1 / x
}

func invAxis(inv [3]float64, axis int) float64 { return inv[axis] }

func axisValue(v interface{ At(int) float64 }, axis int) float64 { return v.At(axis) }
