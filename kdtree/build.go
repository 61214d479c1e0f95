package kdtree

import (
	"math"
	"sort"

	core "github.com/gorender/core"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// Default SAH cost constants from the original engine's KDTree
// constructor (intersect cost 80, traversal cost 1, empty-space bonus
// 0.5), scaled relative to each other rather than to any absolute unit.
const (
	DefaultIntersectCost  = 80.0
	DefaultTraversalCost  = 1.0
	DefaultEmptySpaceBonus = 0.5
	DefaultMaxPrimitives  = 1
)

// KDTree is an immutable-after-Build acceleration structure over a flat
// list of scene primitives. Build once; read-only during tracing.
type KDTree struct {
	prims []geometry.Shape
	nodes []node
	// primitives is the shared index array leaf nodes slice into;
	// primitives straddling a split appear in both children's ranges.
	primitives []int32

	bound mathutil.AABB

	traversalCost, intersectCost, emptyBonus float64
	maxPrims, maxDepth                       int
	depthReached                             int

	built bool
}

// NewKDTree creates a tree over prims with the original engine's default
// cost constants; call Build before Intersect/IntersectP.
func NewKDTree(prims []geometry.Shape) *KDTree {
	return &KDTree{
		prims:         prims,
		traversalCost: DefaultTraversalCost,
		intersectCost: DefaultIntersectCost,
		emptyBonus:    DefaultEmptySpaceBonus,
		maxPrims:      DefaultMaxPrimitives,
		maxDepth:      -1,
	}
}

// WorldBound returns the tree's overall bound; only valid after Build.
func (k *KDTree) WorldBound() mathutil.AABB { return k.bound }

// IsBuilt reports whether Build has run.
func (k *KDTree) IsBuilt() bool { return k.built }

type boundEdge struct {
	t        float64
	primNum  int
	starting bool
}

// Build constructs the tree with a recursive SAH split search, depth
// capped at 8 + 1.3*log2(N) clamped to 48. The cap is computed by the
// first Build and kept by any later Build of the same tree.
func (k *KDTree) Build() {
	n := len(k.prims)
	if k.maxDepth < 0 {
		k.maxDepth = clampInt(int(8+1.3*log2(float64(n))), 0, 48)
	}

	primBounds := make([]mathutil.AABB, n)
	primNums := make([]int, n)
	k.bound = mathutil.EmptyAABB()
	for i, p := range k.prims {
		b := p.WorldBound()
		k.bound = k.bound.Union(b)
		primBounds[i] = b
		primNums[i] = i
	}

	edges := [3][]boundEdge{
		make([]boundEdge, 2*n),
		make([]boundEdge, 2*n),
		make([]boundEdge, 2*n),
	}
	prims0 := make([]int, n)
	prims1 := make([]int, (k.maxDepth+1)*n)

	k.nodes = nil
	k.primitives = nil

	k.buildRecursive(k.bound, primBounds, primNums, k.maxDepth, edges, prims0, prims1, 0)
	k.built = true

	leaves, interior := 0, 0
	for _, nd := range k.nodes {
		if nd.leaf {
			leaves++
		} else {
			interior++
		}
	}
	core.Logger().Debug("kd-tree build finished",
		"primitives", n, "leaves", leaves, "interior", interior, "maxDepth", k.maxDepth, "depthReached", k.depthReached)
}

// buildRecursive mirrors the original engine's BuildInternal: it reserves
// the current node's slot (appending to k.nodes) before recursing so the
// invariant "left child at nodeIndex+1" holds by construction, and only
// learns the right child's index after the left subtree finishes.
func (k *KDTree) buildRecursive(nodeBounds mathutil.AABB, allPrimBounds []mathutil.AABB, primNums []int, depth int, edges [3][]boundEdge, prims0, prims1 []int, badRefines int) int {
	nodeIndex := len(k.nodes)
	k.nodes = append(k.nodes, node{})

	nPrimitives := len(primNums)
	if nPrimitives <= k.maxPrims || depth == 0 {
		k.initLeaf(nodeIndex, primNums, depth)
		return nodeIndex
	}

	bestAxis, bestOffset := -1, -1
	bestCost := math.Inf(1)
	oldCost := k.intersectCost * float64(nPrimitives)
	totalSA := nodeBounds.SurfaceArea()
	invTotalSA := 1 / totalSA
	d := nodeBounds.Max.Sub(nodeBounds.Min)

	axis := nodeBounds.MaximumExtent()
	retries := 0

	var nBelow, nAbove int

retrySplit:
	for i, pn := range primNums {
		bb := allPrimBounds[pn]
		edges[axis][2*i] = boundEdge{t: bb.Min.At(axis), primNum: pn, starting: true}
		edges[axis][2*i+1] = boundEdge{t: bb.Max.At(axis), primNum: pn, starting: false}
	}
	axisEdges := edges[axis][:2*nPrimitives]
	sort.Slice(axisEdges, func(i, j int) bool {
		if axisEdges[i].t == axisEdges[j].t {
			return edgeTypeRank(axisEdges[i]) < edgeTypeRank(axisEdges[j])
		}
		return axisEdges[i].t < axisEdges[j].t
	})

	nBelow, nAbove = 0, nPrimitives
	otherAxis0, otherAxis1 := (axis+1)%3, (axis+2)%3
	for i := 0; i < 2*nPrimitives; i++ {
		if !axisEdges[i].starting {
			nAbove--
		}
		edgeT := axisEdges[i].t

		if edgeT > nodeBounds.Min.At(axis) && edgeT < nodeBounds.Max.At(axis) {
			belowSA := 2 * (d.At(otherAxis0)*d.At(otherAxis1) + (edgeT-nodeBounds.Min.At(axis))*(d.At(otherAxis0)+d.At(otherAxis1)))
			aboveSA := 2 * (d.At(otherAxis0)*d.At(otherAxis1) + (nodeBounds.Max.At(axis)-edgeT)*(d.At(otherAxis0)+d.At(otherAxis1)))

			pBelow := belowSA * invTotalSA
			pAbove := aboveSA * invTotalSA

			eb := 0.0
			if nAbove == 0 || nBelow == 0 {
				eb = k.emptyBonus
			}

			cost := k.traversalCost + k.intersectCost*(1-eb)*(pBelow*float64(nBelow)+pAbove*float64(nAbove))
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestOffset = i
			}
		}

		if axisEdges[i].starting {
			nBelow++
		}
	}

	if bestAxis == -1 && retries < 2 {
		retries++
		axis = (axis + 1) % 3
		goto retrySplit
	}

	if bestCost > oldCost {
		badRefines++
	}
	if (bestCost > 4*oldCost && nPrimitives < 16) || bestAxis == -1 || badRefines == 3 {
		k.initLeaf(nodeIndex, primNums, depth)
		return nodeIndex
	}

	n0, n1 := 0, 0
	bestEdges := edges[bestAxis][:2*nPrimitives]
	for i := 0; i < bestOffset; i++ {
		if bestEdges[i].starting {
			prims0[n0] = bestEdges[i].primNum
			n0++
		}
	}
	for i := bestOffset + 1; i < 2*nPrimitives; i++ {
		if !bestEdges[i].starting {
			prims1[n1] = bestEdges[i].primNum
			n1++
		}
	}

	tsplit := bestEdges[bestOffset].t
	bounds0, bounds1 := nodeBounds, nodeBounds
	bounds0.Max = bounds0.Max.WithAt(bestAxis, tsplit)
	bounds1.Min = bounds1.Min.WithAt(bestAxis, tsplit)

	k.buildRecursive(bounds0, allPrimBounds, append([]int(nil), prims0[:n0]...), depth-1, edges, prims0, prims1[nPrimitives:], badRefines)

	aboveChild := len(k.nodes)
	k.nodes[nodeIndex] = node{axis: uint8(bestAxis), split: tsplit, aboveChild: aboveChild}
	k.buildRecursive(bounds1, allPrimBounds, append([]int(nil), prims1[:n1]...), depth-1, edges, prims0, prims1[nPrimitives:], badRefines)

	return nodeIndex
}

func (k *KDTree) initLeaf(nodeIndex int, primNums []int, depth int) {
	start := len(k.primitives)
	for _, p := range primNums {
		k.primitives = append(k.primitives, int32(p))
	}
	k.nodes[nodeIndex] = node{leaf: true, primStart: start, primCount: len(primNums)}

	if used := k.maxDepth - depth; used > k.depthReached {
		k.depthReached = used
	}
}

func edgeTypeRank(e boundEdge) int {
	if e.starting {
		return 0
	}
	return 1
}

func log2(x float64) float64 { return math.Log2(x) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
