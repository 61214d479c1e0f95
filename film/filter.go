// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package film accumulates filtered radiance samples into a blocked pixel
// array and hands out non-overlapping rectangular blocks to worker
// goroutines in a deterministic centre-out spiral (spec.md §3 "Film /
// FilmBlock", §4.2, §4.9 "BlockGenerator").
package film

import "math"

// filterTableSize is the resolution of the 1-D filter lookup table spec.md
// §4.2 step 3 indexes by "|delta|*inv_w*TABLE_SIZE".
const filterTableSize = 16

// Filter is a separable 2-D reconstruction filter evaluated as the product
// of two 1-D evaluations, the standard film-filter factoring every entry in
// this taxonomy (Gaussian, Box, Triangle...) shares.
type Filter interface {
	// Radius returns the filter's half-width in x and y, in pixels.
	Radius() (float64, float64)
	// Evaluate returns the filter's weight at offset (x,y) from the
	// sample, x and y each within [-radius,radius].
	Evaluate(x, y float64) float64
}

// GaussianFilter is the default reconstruction filter (spec.md §4.2:
// "Gaussian by default"), alpha controlling falloff steepness.
type GaussianFilter struct {
	RadiusX, RadiusY float64
	Alpha            float64

	expX, expY float64
}

// NewGaussianFilter builds a GaussianFilter with the given radius and
// falloff alpha (2.0 is the conventional default).
func NewGaussianFilter(radiusX, radiusY, alpha float64) *GaussianFilter {
	return &GaussianFilter{
		RadiusX: radiusX, RadiusY: radiusY, Alpha: alpha,
		expX: math.Exp(-alpha * radiusX * radiusX),
		expY: math.Exp(-alpha * radiusY * radiusY),
	}
}

func (f *GaussianFilter) Radius() (float64, float64) { return f.RadiusX, f.RadiusY }

func (f *GaussianFilter) Evaluate(x, y float64) float64 {
	return f.gaussian1D(x, f.expX) * f.gaussian1D(y, f.expY)
}

func (f *GaussianFilter) gaussian1D(d, expv float64) float64 {
	v := math.Exp(-f.Alpha*d*d) - expv
	if v < 0 {
		return 0
	}
	return v
}

// filterTable precomputes Evaluate at filterTableSize steps along each
// axis from 0 to radius, the lookup spec.md §4.2 step 3 describes ("index
// a 1-D filter table by |delta|*inv_w*TABLE_SIZE").
type filterTable struct {
	filter           Filter
	radiusX, radiusY float64
	invRadiusX       float64
	invRadiusY       float64
	table            [filterTableSize][filterTableSize]float64
}

func newFilterTable(f Filter) *filterTable {
	rx, ry := f.Radius()
	ft := &filterTable{filter: f, radiusX: rx, radiusY: ry}
	if rx > 0 {
		ft.invRadiusX = 1 / rx
	}
	if ry > 0 {
		ft.invRadiusY = 1 / ry
	}
	for y := 0; y < filterTableSize; y++ {
		fy := (float64(y) + 0.5) / filterTableSize * ry
		for x := 0; x < filterTableSize; x++ {
			fx := (float64(x) + 0.5) / filterTableSize * rx
			ft.table[y][x] = f.Evaluate(fx, fy)
		}
	}
	return ft
}

// lookup returns the precomputed weight for an offset (dx,dy), mirroring
// into the table's single quadrant since every filter in this taxonomy is
// symmetric about both axes.
func (ft *filterTable) lookup(dx, dy float64) float64 {
	ax, ay := math.Abs(dx)*ft.invRadiusX, math.Abs(dy)*ft.invRadiusY
	ix := int(ax * filterTableSize)
	iy := int(ay * filterTableSize)
	if ix >= filterTableSize {
		ix = filterTableSize - 1
	}
	if iy >= filterTableSize {
		iy = filterTableSize - 1
	}
	return ft.table[iy][ix]
}
