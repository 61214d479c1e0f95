package film

import "github.com/gorender/core/mathutil"

// Film owns one main FilmBlock sized to the full image resolution; worker
// blocks merge their pixels into it once resolved (spec.md §3: "Film owns
// one main FilmBlock sized to image resolution").
type Film struct {
	Width, Height int
	main          *FilmBlock
}

// NewFilm creates a Film of the given resolution using filter as the
// reconstruction filter for every block it generates.
func NewFilm(width, height int, filter Filter) *Film {
	return &Film{
		Width: width, Height: height,
		main: NewFilmBlock(0, 0, width, height, filter),
	}
}

// NewBlock allocates a worker-owned FilmBlock covering [x0,x1)x[y0,y1),
// using the given reconstruction filter (the Film itself keeps no filter).
func (f *Film) NewBlock(x0, y0, x1, y1 int, filter Filter) *FilmBlock {
	return NewFilmBlock(x0, y0, x1, y1, filter)
}

// AddBlock merges a resolved worker block's samples into the main film.
// Blocks from a BlockGenerator never overlap, so this requires no
// synchronization beyond what FilmBlock.AddSample already does on the
// source block (spec.md §4.9: "Film assembly uses per-pixel mutex or
// lock-free atomic adds").
func (f *Film) AddBlock(b *FilmBlock) {
	for y := b.Y0; y < b.Y1; y++ {
		for x := b.X0; x < b.X1; x++ {
			p := b.grid.Get(x-b.X0, y-b.Y0)
			if p.weightSum <= 0 {
				continue
			}
			dst := f.main.grid.At(x, y)
			dst.xyz = dst.xyz.Add(p.xyz)
			dst.weightSum += p.weightSum
		}
	}
}

// Pixel returns the resolved linear RGB color at (x,y) in the full image.
func (f *Film) Pixel(x, y int) mathutil.RGB { return f.main.Pixel(x, y) }

// ToRGBBuffer resolves every pixel into a row-major, top-to-bottom RGB
// float buffer (the layout ioformat.WritePFM consumes as is).
func (f *Film) ToRGBBuffer() []mathutil.RGB {
	out := make([]mathutil.RGB, f.Width*f.Height)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			out[y*f.Width+x] = f.Pixel(x, y)
		}
	}
	return out
}
