package geometry

// solveLinearSystem2x2 solves A*[x,y]^T = B for a 2x2 system, returning
// false (and leaving x,y untouched) when A is singular. Used everywhere a
// shape solves for partial derivatives or barycentric coordinates from a
// 2x2 parametric matrix (spec: degenerate cases fall back to a local
// orthonormal basis rather than propagating the failure).
func solveLinearSystem2x2(a [2][2]float64, b [2]float64) (x, y float64, ok bool) {
	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]
	if det == 0 {
		return 0, 0, false
	}
	invDet := 1 / det
	x = (a[1][1]*b[0] - a[0][1]*b[1]) * invDet
	y = (a[0][0]*b[1] - a[1][0]*b[0]) * invDet
	return x, y, true
}
