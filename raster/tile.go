package raster

// Barycentric holds the three perspective-correct-ready barycentric
// weights for a point inside a triangle, already normalized to sum to 1.
type Barycentric struct {
	W0, W1, W2 float64
}

// barycentricAt computes normalized barycentric weights for pixel (x,y)
// from the triangle's three half-space edge evaluations — each edge's
// value at a vertex is proportional to twice the area of the sub-triangle
// opposite that vertex (spec.md §4.6 step 6: "barycentric reconstruction").
func barycentricAt(te triangleEdges, x, y int) (Barycentric, bool) {
	e0 := te.e[0].evalAt(x, y)
	e1 := te.e[1].evalAt(x, y)
	e2 := te.e[2].evalAt(x, y)
	sum := e0 + e1 + e2
	if sum == 0 {
		return Barycentric{}, false
	}
	inv := 1 / float64(sum)
	// e1 is the edge v1->v2, opposite v0; e2 is v2->v0, opposite v1;
	// e0 is v0->v1, opposite v2.
	return Barycentric{
		W0: float64(e1) * inv,
		W1: float64(e2) * inv,
		W2: float64(e0) * inv,
	}, true
}

// interpolate reconstructs a pixel's screen-space Z, 1/w, and varyings
// from the triangle's three vertices and barycentric weights, then
// divides the pre-multiplied varyings back down by the interpolated 1/w
// (spec.md §4.6 step 7: "undo the invW pre-multiplication").
func interpolate(v0, v1, v2 ScreenVertex, bc Barycentric) (z, invW float64, varyings [MaxVaryings]float64) {
	z = bc.W0*v0.Z + bc.W1*v1.Z + bc.W2*v2.Z
	invW = bc.W0*v0.InvW + bc.W1*v1.InvW + bc.W2*v2.InvW

	n := v0.NumVaryings
	for i := 0; i < n; i++ {
		raw := bc.W0*v0.Varyings[i] + bc.W1*v1.Varyings[i] + bc.W2*v2.Varyings[i]
		varyings[i] = raw / invW
	}
	return z, invW, varyings
}

// Fragment is what the tile rasterizer hands the pixel stage: a screen
// pixel coordinate, its reconstructed depth, and its un-premultiplied
// varyings.
type Fragment struct {
	X, Y        int
	Z           float64
	Varyings    [MaxVaryings]float64
	NumVaryings int
}

// RasterizeTile walks every triangle queued against tile (x0,y0)-(x1,y1),
// emitting one Fragment per covered pixel to emit. Trivial-accept
// triangles skip the inside test entirely; partial triangles subdivide
// into SubBlockSize blocks, testing each block's four corners before
// falling back to a per-pixel inside test on straddling blocks (spec.md
// §4.6 step 6).
func RasterizeTile(tris []BinnedTriangle, x0, y0, x1, y1 int, emit func(Fragment)) {
	for _, bt := range tris {
		switch bt.Class {
		case binAccept:
			rasterizeRegion(bt, x0, y0, x1, y1, emit)
		default:
			rasterizePartial(bt, x0, y0, x1, y1, emit)
		}
	}
}

func rasterizePartial(bt BinnedTriangle, x0, y0, x1, y1 int, emit func(Fragment)) {
	for by := y0; by <= y1; by += SubBlockSize {
		for bx := x0; bx <= x1; bx += SubBlockSize {
			ex := minInt(bx+SubBlockSize-1, x1)
			ey := minInt(by+SubBlockSize-1, y1)
			class, reject := classifyTile(bt.Edges, bx, by, ex, ey)
			if reject {
				continue
			}
			if class == binAccept {
				rasterizeRegion(bt, bx, by, ex, ey, emit)
			} else {
				rasterizeRegionTested(bt, bx, by, ex, ey, emit)
			}
		}
	}
}

// rasterizeRegion emits every pixel in a trivially-accepted region without
// an inside test.
func rasterizeRegion(bt BinnedTriangle, x0, y0, x1, y1 int, emit func(Fragment)) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			emitFragment(bt, x, y, emit)
		}
	}
}

// rasterizeRegionTested emits only pixels that pass the per-pixel inside
// test, the fallback for blocks straddling a triangle edge.
func rasterizeRegionTested(bt BinnedTriangle, x0, y0, x1, y1 int, emit func(Fragment)) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if bt.Edges.insideAt(x, y) {
				emitFragment(bt, x, y, emit)
			}
		}
	}
}

func emitFragment(bt BinnedTriangle, x, y int, emit func(Fragment)) {
	bc, ok := barycentricAt(bt.Edges, x, y)
	if !ok {
		return
	}
	z, _, varyings := interpolate(bt.V0, bt.V1, bt.V2, bc)
	emit(Fragment{X: x, Y: y, Z: z, Varyings: varyings, NumVaryings: bt.V0.NumVaryings})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
