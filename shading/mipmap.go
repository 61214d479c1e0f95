package shading

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gorender/core/mathutil"
)

// AddressMode selects what Texel returns for an out-of-range lookup,
// named after the original engine's TextureAddressMode (TAM_Wrap,
// TAM_Mirror, TAM_Clamp). There are no zero or one modes; only the three
// below exist.
type AddressMode int

const (
	AddressWrap AddressMode = iota
	AddressMirror
	AddressClamp
)

// MipMap is a pre-baked image pyramid: level 0 is the base resolution,
// each subsequent level halves both dimensions down to 1x1.
type MipMap struct {
	levels        [][]mathutil.RGB
	widths, heights []int
}

// NewMipMapFromLevels wraps already-baked level data — the shape the
// texture binary format in spec.md §6 stores on disk (concatenated RGB
// float triples per level) already matches: ioformat's texture loader
// hands pre-split levels straight to this constructor, no filtering
// needed.
func NewMipMapFromLevels(widths, heights []int, levels [][]mathutil.RGB) *MipMap {
	return &MipMap{levels: levels, widths: widths, heights: heights}
}

// NewMipMap builds a full chain from a single base level using bilinear
// resampling at each halving (spec.md §4.10, recovered from
// `original_source/Purple/Purple/MipMap.cpp`'s pre-baked-pyramid design,
// generalized here to build the chain in-process instead of assuming an
// external DDS mip chain). The downsample step runs through
// `golang.org/x/image/draw`'s bilinear scaler over a float-backed image
// adapter so two-thirds of the pyramid is built by the same resampling
// machinery the asset pipeline uses for on-disk LDR textures.
func NewMipMap(width, height int, base []mathutil.RGB) *MipMap {
	var widths, heights []int
	var levels [][]mathutil.RGB

	w, h := width, height
	cur := base
	for {
		widths = append(widths, w)
		heights = append(heights, h)
		levels = append(levels, cur)
		if w == 1 && h == 1 {
			break
		}
		nw, nh := maxInt(1, w/2), maxInt(1, h/2)
		cur = downsample(cur, w, h, nw, nh)
		w, h = nw, nh
	}
	return &MipMap{levels: levels, widths: widths, heights: heights}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// downsample resamples src (w x h) down to (nw x nh) by running it
// through a rgbFloatImage adapter and x/image/draw's bilinear scaler.
func downsample(src []mathutil.RGB, w, h, nw, nh int) []mathutil.RGB {
	srcImg := &rgbFloatImage{pix: src, w: w, h: h}
	dstImg := newRGBFloatImage(nw, nh)
	draw.BiLinear.Scale(dstImg, image.Rect(0, 0, nw, nh), srcImg, image.Rect(0, 0, w, h), draw.Src, nil)
	return dstImg.pix
}

// rgbFloatImage adapts a float64 RGB texel buffer to image.Image/
// draw.Image so it can be driven through x/image/draw's scalers without
// quantizing radiance through a fixed bit depth until the final Set/At
// round trip, which uses a wide linear fixed-point encoding (see
// rgbFloatColor) to keep values above 1.0 intact.
type rgbFloatImage struct {
	pix  []mathutil.RGB
	w, h int
}

func newRGBFloatImage(w, h int) *rgbFloatImage {
	return &rgbFloatImage{pix: make([]mathutil.RGB, w*h), w: w, h: h}
}

func (im *rgbFloatImage) ColorModel() color.Model { return rgbFloatModel{} }
func (im *rgbFloatImage) Bounds() image.Rectangle  { return image.Rect(0, 0, im.w, im.h) }

func (im *rgbFloatImage) At(x, y int) color.Color {
	if x < 0 || x >= im.w || y < 0 || y >= im.h {
		return rgbFloatColor{}
	}
	return rgbFloatColor(im.pix[y*im.w+x])
}

func (im *rgbFloatImage) Set(x, y int, c color.Color) {
	if x < 0 || x >= im.w || y < 0 || y >= im.h {
		return
	}
	im.pix[y*im.w+x] = rgbFloatModel{}.toRGB(c)
}

// rgbFloatColor carries a linear-light RGB triple through color.Color's
// 16-bit-channel interface using a fixed 1.0 == 0x2000 scale, giving 3
// stops of headroom above white before clipping — enough for the
// moderately-HDR texel values this engine's materials produce, without
// the complexity of a true floating-point image type.
type rgbFloatColor mathutil.RGB

const rgbFloatScale = 0x2000

func (c rgbFloatColor) RGBA() (r, g, b, a uint32) {
	clampChan := func(v float64) uint32 {
		scaled := v * rgbFloatScale
		if scaled < 0 {
			scaled = 0
		}
		if scaled > 0xffff {
			scaled = 0xffff
		}
		return uint32(scaled)
	}
	return clampChan(c.R), clampChan(c.G), clampChan(c.B), 0xffff
}

type rgbFloatModel struct{}

func (rgbFloatModel) Convert(c color.Color) color.Color {
	return rgbFloatColor(rgbFloatModel{}.toRGB(c))
}

func (rgbFloatModel) toRGB(c color.Color) mathutil.RGB {
	if rc, ok := c.(rgbFloatColor); ok {
		return mathutil.RGB(rc)
	}
	r, g, b, _ := c.RGBA()
	return mathutil.RGB{
		R: float64(r) / rgbFloatScale,
		G: float64(g) / rgbFloatScale,
		B: float64(b) / rgbFloatScale,
	}
}

// Levels returns the number of mip levels.
func (m *MipMap) Levels() int { return len(m.levels) }

// texel fetches one texel at level, applying addrU/addrV out-of-range
// policy (ported from `MipMap.h`'s `Texel`).
func (m *MipMap) texel(level, x, y int, addrU, addrV AddressMode) mathutil.RGB {
	w, h := m.widths[level], m.heights[level]
	x = addressAxis(x, w, addrU)
	y = addressAxis(y, h, addrV)
	return m.levels[level][y*w+x]
}

func addressAxis(v, n int, mode AddressMode) int {
	if v >= 0 && v < n {
		return v
	}
	switch mode {
	case AddressWrap:
		return modulo(v, n)
	case AddressMirror:
		v = modulo(v, 2*n)
		if v >= n {
			v = 2*n - v - 1
		}
		return v
	default: // AddressClamp
		return int(mathutil.Clamp(float64(v), 0, float64(n-1)))
	}
}

func modulo(a, b int) int {
	n := a / b
	a -= n * b
	if a < 0 {
		a += b
	}
	return a
}

func (m *MipMap) bilinear(level int, u, v float64, addrU, addrV AddressMode) mathutil.RGB {
	if level >= len(m.levels) {
		level = len(m.levels) - 1
	}
	w, h := m.widths[level], m.heights[level]

	fu := u*float64(w) - 0.5
	fv := v*float64(h) - 0.5
	x := int(math.Floor(fu))
	y := int(math.Floor(fv))
	dx1 := fu - float64(x)
	dy1 := fv - float64(y)
	dx2 := 1 - dx1
	dy2 := 1 - dy1

	t00 := m.texel(level, x, y, addrU, addrV)
	t01 := m.texel(level, x, y+1, addrU, addrV)
	t10 := m.texel(level, x+1, y, addrU, addrV)
	t11 := m.texel(level, x+1, y+1, addrU, addrV)

	return t00.Mul(dx2 * dy2).Add(t01.Mul(dx2 * dy1)).Add(t10.Mul(dx1 * dy2)).Add(t11.Mul(dx1 * dy1))
}

// Lookup performs a trilinear filtered lookup at uv, choosing the mip
// level from the texture-space footprint
// max(|dudx|,|dudy|,|dvdx|,|dvdy|) * max(width,height) (spec.md §4.10).
func (m *MipMap) Lookup(u, v, dudx, dudy, dvdx, dvdy float64, addrU, addrV AddressMode) mathutil.RGB {
	maxDim := float64(maxInt(m.widths[0], m.heights[0]))
	footprint := math.Max(math.Max(math.Abs(dudx), math.Abs(dudy)), math.Max(math.Abs(dvdx), math.Abs(dvdy))) * maxDim

	if footprint <= 0 {
		return m.bilinear(0, u, v, addrU, addrV)
	}

	level := math.Log2(footprint)
	if level < 0 {
		return m.bilinear(0, u, v, addrU, addrV)
	}
	if level >= float64(len(m.levels)-1) {
		return m.bilinear(len(m.levels)-1, u, v, addrU, addrV)
	}

	lo := int(level)
	frac := level - float64(lo)
	a := m.bilinear(lo, u, v, addrU, addrV)
	b := m.bilinear(lo+1, u, v, addrU, addrV)
	return a.Mul(1 - frac).Add(b.Mul(frac))
}
