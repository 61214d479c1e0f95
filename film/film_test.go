package film

import (
	"math"
	"testing"

	"github.com/gorender/core/mathutil"
)

func TestGaussianFilterZeroAtRadius(t *testing.T) {
	f := NewGaussianFilter(2, 2, 2)
	if v := f.Evaluate(2, 0); math.Abs(v) > 1e-9 {
		t.Errorf("Evaluate at radius = %v, want ~0", v)
	}
	if v := f.Evaluate(0, 0); v <= 0 {
		t.Errorf("Evaluate at center = %v, want > 0", v)
	}
}

func TestFilmBlockSingleSampleResolvesToItsColor(t *testing.T) {
	b := NewFilmBlock(0, 0, 4, 4, NewGaussianFilter(0.5, 0.5, 2))
	c := mathutil.RGB{R: 0.5, G: 0.25, B: 0.75}
	b.AddSample(2.5, 2.5, c)

	got := b.Pixel(2, 2)
	if math.Abs(got.R-c.R) > 1e-3 || math.Abs(got.G-c.G) > 1e-3 || math.Abs(got.B-c.B) > 1e-3 {
		t.Errorf("Pixel(2,2) = %v, want ~%v", got, c)
	}
}

func TestFilmBlockUnsampledPixelIsBlack(t *testing.T) {
	b := NewFilmBlock(0, 0, 4, 4, NewGaussianFilter(0.5, 0.5, 2))
	got := b.Pixel(0, 0)
	if !got.IsBlack() {
		t.Errorf("unsampled pixel = %v, want black", got)
	}
}

func TestFilmAddBlockMergesIntoMain(t *testing.T) {
	filter := NewGaussianFilter(0.5, 0.5, 2)
	f := NewFilm(8, 8, filter)

	b := f.NewBlock(2, 2, 6, 6, filter)
	c := mathutil.RGB{R: 1, G: 1, B: 1}
	b.AddSample(3.5, 3.5, c)
	f.AddBlock(b)

	got := f.Pixel(3, 3)
	if math.Abs(got.R-1) > 1e-3 {
		t.Errorf("merged pixel = %v, want ~white", got)
	}
}

func TestBlockGeneratorCoversEveryTileExactlyOnce(t *testing.T) {
	g := NewBlockGenerator(100, 70, 16)
	covered := make(map[[2]int]bool)
	count := 0
	for {
		x0, y0, x1, y1, ok := g.Next()
		if !ok {
			break
		}
		count++
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				key := [2]int{x, y}
				if covered[key] {
					t.Fatalf("pixel %v covered by more than one block", key)
				}
				covered[key] = true
			}
		}
	}
	if count != g.Count() {
		t.Errorf("handed out %d blocks, Count() = %d", count, g.Count())
	}
	if len(covered) != 100*70 {
		t.Errorf("covered %d pixels, want %d", len(covered), 100*70)
	}
}

func TestBlockGeneratorExhausted(t *testing.T) {
	g := NewBlockGenerator(10, 10, 16)
	_, _, _, _, ok := g.Next()
	if !ok {
		t.Fatal("first Next() should succeed for a non-empty image")
	}
	if _, _, _, _, ok := g.Next(); ok {
		t.Error("second Next() should fail: only one 16x16 tile covers a 10x10 image")
	}
}
