package raster

// ScreenVertex is a clipped vertex after perspective divide and viewport
// transform: X/Y are screen pixels, Z is normalized device depth, InvW is
// 1/w stored in place of w so every later interpolation is linear in
// screen space (spec.md §4.6 step 4: "each varying is pre-multiplied by
// invW so later interpolation is linear in screen space").
type ScreenVertex struct {
	X, Y, Z, InvW float64
	Varyings      [MaxVaryings]float64
	NumVaryings   int
}

// Viewport maps NDC [-1,1]^2 to screen pixels [X0,X0+Width) x [Y0,Y0+Height).
type Viewport struct {
	X0, Y0        float64
	Width, Height float64
}

// Project performs the perspective divide and viewport transform on a
// clipped vertex, pre-multiplying every varying by invW (spec.md §4.6
// step 4).
func Project(v Vertex, vp Viewport) ScreenVertex {
	invW := 1 / v.ClipPos.W
	ndcX := v.ClipPos.X * invW
	ndcY := v.ClipPos.Y * invW
	ndcZ := v.ClipPos.Z * invW

	out := ScreenVertex{
		X:           vp.X0 + (ndcX*0.5+0.5)*vp.Width,
		Y:           vp.Y0 + (1-(ndcY*0.5+0.5))*vp.Height, // screen Y grows downward
		Z:           ndcZ,
		InvW:        invW,
		NumVaryings: v.NumVaryings,
	}
	for i := 0; i < v.NumVaryings; i++ {
		out.Varyings[i] = v.Varyings[i] * invW
	}
	return out
}

// CullMode selects which winding order is discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// signedArea2 returns twice the signed screen-space area of the triangle
// a,b,c; negative for counter-clockwise winding in a Y-down screen space,
// positive for clockwise.
func signedArea2(a, b, c ScreenVertex) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// BackfaceCull reports whether a triangle should be discarded under the
// given cull mode and winding convention (spec.md §4.6 step 4: "Back-face
// test uses signed screen-space area with configurable winding and cull
// mode", §8 scenario 6).
func BackfaceCull(a, b, c ScreenVertex, mode CullMode, frontCCW bool) bool {
	if mode == CullNone {
		return false
	}
	area := signedArea2(a, b, c)
	isFront := area < 0 // Y-down screen space: CCW in NDC has negative area here
	if !frontCCW {
		isFront = !isFront
	}
	if mode == CullBack {
		return !isFront
	}
	return isFront
}
