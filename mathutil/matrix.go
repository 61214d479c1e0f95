package mathutil

import "math"

// Mat4 is a 4x4 matrix in row-major order, used for the world/local
// transform pair every Shape owns (spec.md §3 "Shape").
//
//	| M[0][0] M[0][1] M[0][2] M[0][3] |
//	| M[1][0] M[1][1] M[1][2] M[1][3] |
//	| M[2][0] M[2][1] M[2][2] M[2][3] |
//	| M[3][0] M[3][1] M[3][2] M[3][3] |
type Mat4 struct {
	M [4][4]float64
}

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := range 4 {
		m.M[i][i] = 1
	}
	return m
}

// Translation returns a translation matrix.
func Translation(v Vec3) Mat4 {
	m := Identity()
	m.M[0][3] = v.X
	m.M[1][3] = v.Y
	m.M[2][3] = v.Z
	return m
}

// ScaleMat returns a non-uniform scale matrix.
func ScaleMat(v Vec3) Mat4 {
	m := Identity()
	m.M[0][0] = v.X
	m.M[1][1] = v.Y
	m.M[2][2] = v.Z
	return m
}

// RotateX returns a rotation matrix around the X axis (radians).
func RotateX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m.M[1][1], m.M[1][2] = c, -s
	m.M[2][1], m.M[2][2] = s, c
	return m
}

// RotateY returns a rotation matrix around the Y axis (radians).
func RotateY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m.M[0][0], m.M[0][2] = c, s
	m.M[2][0], m.M[2][2] = -s, c
	return m
}

// RotateZ returns a rotation matrix around the Z axis (radians).
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m.M[0][0], m.M[0][1] = c, -s
	m.M[1][0], m.M[1][1] = s, c
	return m
}

// RotateAxis returns a rotation matrix of angle radians about a unit axis,
// via Rodrigues' formula. Used by the scene-transform quaternion/axis-angle
// nodes ("<rotation w x y z/>" in spec.md §6).
func RotateAxis(axis Vec3, angle float64) Mat4 {
	a := axis.Normalize()
	s, c := math.Sincos(angle)
	t := 1 - c
	m := Identity()
	m.M[0][0] = t*a.X*a.X + c
	m.M[0][1] = t*a.X*a.Y - s*a.Z
	m.M[0][2] = t*a.X*a.Z + s*a.Y
	m.M[1][0] = t*a.X*a.Y + s*a.Z
	m.M[1][1] = t*a.Y*a.Y + c
	m.M[1][2] = t*a.Y*a.Z - s*a.X
	m.M[2][0] = t*a.X*a.Z - s*a.Y
	m.M[2][1] = t*a.Y*a.Z + s*a.X
	m.M[2][2] = t*a.Z*a.Z + c
	return m
}

// Mul returns m * n (m applied after n, i.e. matrices compose left-to-right
// the same way spec.md's transform stacks of <translation/><rotation/><scale/> do).
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for i := range 4 {
		for j := range 4 {
			var sum float64
			for k := range 4 {
				sum += m.M[i][k] * n.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// TransformPoint applies the matrix to a point (implicit w=1), dividing
// by the resulting w to stay in affine space. Used for local->world mesh
// pre-transform (spec.md §3 "TriangleMesh": positions are pre-transformed
// at construction).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3]
	y := m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3]
	z := m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3]
	w := m.M[3][0]*p.X + m.M[3][1]*p.Y + m.M[3][2]*p.Z + m.M[3][3]
	if w == 1 {
		return Vec3{x, y, z}
	}
	return Vec3{x, y, z}.Div(w)
}

// TransformVector applies only the linear part of the matrix (no
// translation) — the correct transform for ray directions and for dpdu/dpdv.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// TransformVec4 applies the full homogeneous matrix to a Vec4, the
// operation the rasterizer's vertex stage performs to produce clip_position.
func (m Mat4) TransformVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z + m.M[0][3]*v.W,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z + m.M[1][3]*v.W,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z + m.M[2][3]*v.W,
		W: m.M[3][0]*v.X + m.M[3][1]*v.Y + m.M[3][2]*v.Z + m.M[3][3]*v.W,
	}
}

// Transpose returns the matrix transpose.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := range 4 {
		for j := range 4 {
			r.M[i][j] = m.M[j][i]
		}
	}
	return r
}

// Inverse returns the matrix inverse via Gauss-Jordan elimination with
// partial pivoting. Every Shape carries its world<->local pair as a
// computed-once inverse (spec.md §3), so this runs once per shape at
// scene-construction time, never per-ray.
func (m Mat4) Inverse() Mat4 {
	indxc := [4]int{}
	indxr := [4]int{}
	ipiv := [4]int{}
	minv := m.M

	for i := range 4 {
		big := 0.0
		irow, icol := 0, 0
		for j := range 4 {
			if ipiv[j] != 1 {
				for k := range 4 {
					if ipiv[k] == 0 {
						if v := math.Abs(minv[j][k]); v >= big {
							big = v
							irow, icol = j, k
						}
					}
				}
			}
		}
		ipiv[icol]++
		if irow != icol {
			minv[irow], minv[icol] = minv[icol], minv[irow]
		}
		indxr[i] = irow
		indxc[i] = icol
		if minv[icol][icol] == 0 {
			// Singular matrix: recovered degeneracy, return identity
			// rather than propagate NaNs (spec.md §7 numerical degeneracies).
			return Identity()
		}
		pivinv := 1.0 / minv[icol][icol]
		minv[icol][icol] = 1.0
		for j := range 4 {
			minv[icol][j] *= pivinv
		}
		for j := range 4 {
			if j != icol {
				save := minv[j][icol]
				minv[j][icol] = 0
				for k := range 4 {
					minv[j][k] -= minv[icol][k] * save
				}
			}
		}
	}
	for j := 3; j >= 0; j-- {
		if indxr[j] != indxc[j] {
			for k := range 4 {
				minv[k][indxr[j]], minv[k][indxc[j]] = minv[k][indxc[j]], minv[k][indxr[j]]
			}
		}
	}
	return Mat4{M: minv}
}

// SwapsHandedness reports whether the matrix's linear part flips
// orientation (negative determinant of the upper-left 3x3). Used to derive
// a shape's default winding when no explicit reverseOrientation flag is set.
func (m Mat4) SwapsHandedness() bool {
	det := m.M[0][0]*(m.M[1][1]*m.M[2][2]-m.M[1][2]*m.M[2][1]) -
		m.M[0][1]*(m.M[1][0]*m.M[2][2]-m.M[1][2]*m.M[2][0]) +
		m.M[0][2]*(m.M[1][0]*m.M[2][1]-m.M[1][1]*m.M[2][0])
	return det < 0
}
