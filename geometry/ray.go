// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geometry holds the scene-side primitives the ray integrator and
// the KD-tree build traverse: rays, shapes, triangle meshes, and the
// analytic quadric primitives, all expressed over mathutil's vector and
// matrix types.
package geometry

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Ray is a parametric line segment with a validity window [TMin, TMax] and
// a Time sample for motion blur; Depth tracks recursive bounce count for
// integrators that cap recursion.
type Ray struct {
	Origin, Direction mathutil.Vec3
	TMin, TMax        float64
	Time              float64
	Depth             int
}

// NewRay constructs a ray with the default [1e-3, +Inf) window integrators
// use to avoid immediately re-hitting the surface a ray was spawned from.
func NewRay(origin, dir mathutil.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir, TMin: 1e-3, TMax: math.Inf(1)}
}

// Eval returns the point at parameter t along the ray.
func (r Ray) Eval(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayDifferential extends Ray with two auxiliary rays offset by one pixel
// in screen X/Y, used to estimate texture-space footprint for mipmap
// level selection. HasDifferentials false means RxOrigin/RxDirection/
// RyOrigin/RyDirection are undefined and must not be read.
type RayDifferential struct {
	Ray
	HasDifferentials          bool
	RxOrigin, RxDirection     mathutil.Vec3
	RyOrigin, RyDirection     mathutil.Vec3
}

// ScaleDifferentials shrinks the auxiliary ray offsets by s, used by the
// renderer to account for multiple samples per pixel (spec: scale by
// 1/sqrt(samples_per_pixel)).
func (rd *RayDifferential) ScaleDifferentials(s float64) {
	if !rd.HasDifferentials {
		return
	}
	rd.RxOrigin = rd.Origin.Add(rd.RxOrigin.Sub(rd.Origin).Mul(s))
	rd.RyOrigin = rd.Origin.Add(rd.RyOrigin.Sub(rd.Origin).Mul(s))
	rd.RxDirection = rd.Direction.Add(rd.RxDirection.Sub(rd.Direction).Mul(s))
	rd.RyDirection = rd.Direction.Add(rd.RyDirection.Sub(rd.Direction).Mul(s))
}
