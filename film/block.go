package film

import (
	"math"
	"sync"

	"github.com/gorender/core/container"
	"github.com/gorender/core/mathutil"
)

// filmPixel is the accumulator spec.md §3 names: "{color_xyz, weight_sum}".
type filmPixel struct {
	xyz        mathutil.XYZ
	weightSum  float64
}

// FilmBlock owns a rectangular region of the film's pixel grid plus the
// reconstruction-filter lookup table used to splat samples into it
// (spec.md §3 "Film / FilmBlock").
type FilmBlock struct {
	X0, Y0, X1, Y1 int // half-open pixel bounds [X0,X1) x [Y0,Y1)
	filter         *filterTable

	mu   sync.Mutex // guards pixels; see AddSample doc for when it's needed
	grid *container.BlockedArray2[filmPixel]
}

// NewFilmBlock creates a block covering [x0,x1)x[y0,y1) using the given
// reconstruction filter.
func NewFilmBlock(x0, y0, x1, y1 int, filter Filter) *FilmBlock {
	w, h := x1-x0, y1-y0
	return &FilmBlock{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		filter: newFilterTable(filter),
		grid:   container.NewBlockedArray2[filmPixel](w, h, 2),
	}
}

// AddSample splats a sample at image-space (sx,sy) with radiance L into
// every pixel the filter's support overlaps (spec.md §4.2 steps 1-3).
// Contributions are added under a mutex: the spec calls for an atomic add
// only when filter_width > 0.5 since adjacent blocks' supports can then
// overlap; a single mutex per block is this core's chosen implementation
// of that requirement and is always correct, merely more conservative than
// per-pixel atomics when the filter is narrow.
func (b *FilmBlock) AddSample(sx, sy float64, L mathutil.RGB) {
	if L.HasNaN() {
		return
	}
	xyz := L.ToXYZ()

	dx, dy := sx-0.5, sy-0.5
	x0 := int(math.Ceil(dx - b.filter.radiusX))
	x1 := int(math.Floor(dx + b.filter.radiusX))
	y0 := int(math.Ceil(dy - b.filter.radiusY))
	y1 := int(math.Floor(dy + b.filter.radiusY))

	x0 = maxInt(x0, b.X0)
	x1 = minInt(x1, b.X1-1)
	y0 = maxInt(y0, b.Y0)
	y1 = minInt(y1, b.Y1-1)
	if x0 > x1 || y0 > y1 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			w := b.filter.lookup(float64(x)-dx, float64(y)-dy)
			if w == 0 {
				continue
			}
			p := b.grid.At(x-b.X0, y-b.Y0)
			p.xyz = p.xyz.Add(xyz.Mul(w))
			p.weightSum += w
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Pixel returns the resolved linear RGB color at local block coordinates
// (x,y), dividing accumulated XYZ by weight_sum (spec.md §4.2 "Final pixel
// colour"), or black if no sample ever reached that pixel.
func (b *FilmBlock) Pixel(x, y int) mathutil.RGB {
	p := b.grid.Get(x, y)
	if p.weightSum <= 0 {
		return mathutil.RGB{}
	}
	return p.xyz.Mul(1 / p.weightSum).ToRGB()
}

// Width and Height report the block's pixel extent.
func (b *FilmBlock) Width() int  { return b.X1 - b.X0 }
func (b *FilmBlock) Height() int { return b.Y1 - b.Y0 }
