package raster

// fixedShift is the fractional bit count of the 28.4 fixed-point format
// spec.md §4.6 step 5 names for binning's half-space coefficients: 28
// integer bits, 4 fractional bits.
const fixedShift = 4

func toFixed(x float64) int64 {
	return int64(x * (1 << fixedShift))
}

// edgeFunction is a half-space function for one triangle edge, evaluated
// as C1*x + C2*y + C3 in 28.4 fixed point; positive inside for a
// consistently-wound triangle (spec.md §4.6 step 5: "Fixed-point (28.4)
// half-space coefficients (C1,C2,C3)").
type edgeFunction struct {
	c1, c2, c3 int64
}

// newEdgeFunction builds the half-space function for the directed edge
// v0->v1, oriented so that the interior of a triangle with positive signed
// area (clockwise on screen in a Y-down space) evaluates positive.
func newEdgeFunction(v0, v1 ScreenVertex) edgeFunction {
	x0, y0 := toFixed(v0.X), toFixed(v0.Y)
	x1, y1 := toFixed(v1.X), toFixed(v1.Y)
	c1 := y0 - y1
	c2 := x1 - x0
	c3 := -(c1*x0 + c2*y0)
	return edgeFunction{c1: c1, c2: c2, c3: c3}
}

// evalAt evaluates the edge function at integer pixel coordinates (x,y),
// sampling at the pixel center per the top-left fill rule's tie-break
// (spec.md §8 "Tile queues ... counted by pixel centres under the chosen
// top-left fill rule").
func (e edgeFunction) evalAt(x, y int) int64 {
	fx := toFixed(float64(x)) + (1 << (fixedShift - 1))
	fy := toFixed(float64(y)) + (1 << (fixedShift - 1))
	return e.c1*fx + e.c2*fy + e.c3
}

// triangleEdges holds the three half-space functions of a screen-space
// triangle, consistently oriented so the triangle's interior is where all
// three evaluate >= 0 (ties resolved by the top-left rule in insideTopLeft).
type triangleEdges struct {
	e        [3]edgeFunction
	topLeft  [3]bool
	flip     bool // true if v0,v1,v2 have negative signed area and edges were negated
}

func newTriangleEdges(v0, v1, v2 ScreenVertex) triangleEdges {
	area := signedArea2(v0, v1, v2)
	te := triangleEdges{
		e: [3]edgeFunction{
			newEdgeFunction(v0, v1),
			newEdgeFunction(v1, v2),
			newEdgeFunction(v2, v0),
		},
	}
	if area < 0 {
		// CCW in this Y-down space (negative area) evaluates negative by
		// newEdgeFunction's convention; negate all three so interior is
		// uniformly >= 0.
		for i := range te.e {
			te.e[i].c1, te.e[i].c2, te.e[i].c3 = -te.e[i].c1, -te.e[i].c2, -te.e[i].c3
		}
		te.flip = true
	}
	pairs := [3][2]ScreenVertex{{v0, v1}, {v1, v2}, {v2, v0}}
	for i, pr := range pairs {
		te.topLeft[i] = isTopLeftEdge(pr[0], pr[1])
	}
	return te
}

// isTopLeftEdge reports whether the directed edge a->b is a "top" edge
// (horizontal, going right) or a "left" edge (going down), the standard
// top-left fill-rule tie-break so shared edges between adjacent triangles
// are never both filled and skipped (spec.md §8: "no pixel is shaded
// twice for the same primitive").
func isTopLeftEdge(a, b ScreenVertex) bool {
	if a.Y == b.Y {
		return b.X > a.X
	}
	return b.Y > a.Y
}

// insideAt reports whether pixel (x,y) lies inside the triangle, applying
// the top-left tie-break on edges whose evaluation is exactly zero.
func (te triangleEdges) insideAt(x, y int) bool {
	for i, e := range te.e {
		v := e.evalAt(x, y)
		if v > 0 {
			continue
		}
		if v == 0 && te.topLeft[i] {
			continue
		}
		return false
	}
	return true
}
