// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mathutil provides the fixed-arity vector, matrix, and color
// arithmetic the rest of this core is built on: 2/3/4-wide vectors, a
// 4x4 transform matrix, and RGB/XYZ color. Types use value semantics
// throughout and expose direct lane access rather than hiding components
// behind accessors, matching how the rasterizer and path tracer touch
// individual coordinates in their hot loops.
package mathutil

import "math"

// Vec2 is a 2-lane vector, used for UV coordinates and screen offsets.
type Vec2 struct {
	X, Y float64
}

// V2 constructs a Vec2.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(w Vec2) Vec2    { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2    { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Vec3 is a 3-lane vector: positions, directions, normals, RGB colors.
// No invariants beyond IEEE-754 finiteness, checked only on debug paths
// by callers that care (see core.debugAssert).
type Vec3 struct {
	X, Y, Z float64
}

// V3 constructs a Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vec3) Neg() Vec3       { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) Div(s float64) Vec3 { return v.Mul(1 / s) }

// MulVec3 returns the component-wise (Hadamard) product, used for
// modulating throughput/radiance by a BSDF value or texture sample.
func (v Vec3) MulVec3(w Vec3) Vec3 { return Vec3{v.X * w.X, v.Y * w.Y, v.Z * w.Z} }

func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) LengthSq() float64 { return v.Dot(v) }
func (v Vec3) Length() float64   { return math.Sqrt(v.LengthSq()) }

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to itself rather than producing NaN lanes — a recovered
// numerical degeneracy, never propagated (spec error taxonomy §7).
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// MaxComponent returns the largest of the three lanes.
func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// MaxDimension returns the index (0, 1, or 2) of the largest-magnitude lane.
// Used by the KD-tree and the triangle bound code to pick a split/major axis.
func (v Vec3) MaxDimension() int {
	a := v.Abs()
	switch {
	case a.X > a.Y && a.X > a.Z:
		return 0
	case a.Y > a.Z:
		return 1
	default:
		return 2
	}
}

// At returns the lane at index 0, 1, or 2.
func (v Vec3) At(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithAt returns a copy of v with the given axis lane replaced.
func (v Vec3) WithAt(axis int, val float64) Vec3 {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

// Lerp linearly interpolates between v and w; t=0 returns v, t=1 returns w.
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return v.Mul(1 - t).Add(w.Mul(t))
}

// Reflect reflects v (pointing away from the surface) about normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return n.Mul(2 * v.Dot(n)).Sub(v)
}

// FaceForward flips v so it lies in the same hemisphere as ref.
func (v Vec3) FaceForward(ref Vec3) Vec3 {
	if v.Dot(ref) < 0 {
		return v.Neg()
	}
	return v
}

// CoordinateSystem builds an orthonormal right-handed basis (t1, t2) given
// a unit vector v1, using Duff et al.'s branchless construction. Used as
// the shading-frame fallback when a surface carries no tangent (the
// "singular UV matrix" degeneracy named in spec.md §4.4).
func CoordinateSystem(v1 Vec3) (t1, t2 Vec3) {
	sign := math.Copysign(1, v1.Z)
	a := -1 / (sign + v1.Z)
	b := v1.X * v1.Y * a
	t1 = Vec3{1 + sign*v1.X*v1.X*a, sign * b, -sign * v1.X}
	t2 = Vec3{b, sign + v1.Y*v1.Y*a, -v1.Y}
	return t1, t2
}

// Vec4 is a 4-lane vector used for clip-space positions and homogeneous
// varyings carried through the rasterizer pipeline.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 constructs a Vec4.
func V4(x, y, z, w float64) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

// FromVec3 lifts a Vec3 to a Vec4 with the given W (1 for points, 0 for directions).
func FromVec3(v Vec3, w float64) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W}
}
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W}
}
func (v Vec4) Mul(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Lerp linearly interpolates between v and w.
func (v Vec4) Lerp(w Vec4, t float64) Vec4 {
	return v.Mul(1 - t).Add(w.Mul(t))
}

// At returns the lane at index 0..3.
func (v Vec4) At(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return v.W
	}
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates two scalars.
func Lerp(t, a, b float64) float64 { return a + t*(b-a) }
