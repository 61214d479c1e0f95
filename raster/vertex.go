// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster implements the tile-based software rasterizer: vertex
// input assembly through a direct-mapped cache, clip-space culling and
// clipping, fixed-point tile binning, tile/block rasterization with
// barycentric attribute interpolation, and a programmable depth/blend
// pixel stage (spec.md §4.6, §4.7).
package raster

import "github.com/gorender/core/mathutil"

// MaxVaryings is the number of interpolated varying registers a vertex
// shader may produce, spec.md §4.6 step 2's "up to 32 varying registers".
const MaxVaryings = 32

// Vertex is what the vertex stage produces: a clip-space position plus a
// fixed-size varying register file. Varyings beyond NumVaryings are
// ignored by downstream stages.
type Vertex struct {
	ClipPos     mathutil.Vec4
	Varyings    [MaxVaryings]float64
	NumVaryings int
}

// Lerp linearly interpolates clip position and every active varying
// between two vertices, the primitive Sutherland-Hodgman clipping and
// screen-space barycentric reconstruction both build on.
func (v Vertex) Lerp(o Vertex, t float64) Vertex {
	out := Vertex{ClipPos: v.ClipPos.Lerp(o.ClipPos, t), NumVaryings: v.NumVaryings}
	for i := 0; i < v.NumVaryings; i++ {
		out.Varyings[i] = v.Varyings[i] + (o.Varyings[i]-v.Varyings[i])*t
	}
	return out
}

// VertexInput is the fixed-function attribute set fetched from bound
// vertex streams per index (spec.md §4.6 step 1), handed to a
// user-provided VertexShader.
type VertexInput struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	UV       mathutil.Vec2
	Color    mathutil.RGB
}

// VertexShader transforms one VertexInput into a clip-space Vertex.
type VertexShader func(in VertexInput) Vertex
