// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package core provides the ambient stack shared by the rest of this
// module: a process-wide logger, and the error taxonomy that the
// rasterizer (package raster) and path tracer (package trace) are built
// on.
//
// core does not itself rasterize a triangle or trace a ray. It exists so
// that every other package — mathutil, geometry, kdtree, shading, raster,
// trace, film — can log through one switch and fail through one set of
// sentinel errors, instead of each package inventing its own.
package core
