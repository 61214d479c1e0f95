package shading

import (
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// Texture evaluates a shading quantity at a hit point, the shading-layer
// equivalent of the original engine's templated Texture<T> interface.
type Texture interface {
	Eval(dg geometry.DifferentialGeometry) mathutil.RGB
}

// ConstantTexture always returns the same value, used for materials fed a
// plain `r,g,b` scene-file value rather than an image filename (spec.md
// §6 material texture nodes).
type ConstantTexture struct {
	Value mathutil.RGB
}

func (t ConstantTexture) Eval(geometry.DifferentialGeometry) mathutil.RGB { return t.Value }

// ImageTexture samples a MipMap using the hit's uv and screen-space
// derivatives, with a per-axis address-mode policy (spec.md §3: "lookup
// uses an address-mode policy per axis").
type ImageTexture struct {
	Mip          *MipMap
	AddressU     AddressMode
	AddressV     AddressMode
	UVScale      mathutil.Vec2
	UVOffset     mathutil.Vec2
}

// NewImageTexture defaults UVScale to 1,1 and UVOffset to 0,0.
func NewImageTexture(mip *MipMap, addrU, addrV AddressMode) *ImageTexture {
	return &ImageTexture{Mip: mip, AddressU: addrU, AddressV: addrV, UVScale: mathutil.Vec2{X: 1, Y: 1}}
}

func (t *ImageTexture) Eval(dg geometry.DifferentialGeometry) mathutil.RGB {
	u := dg.UV.X*t.UVScale.X + t.UVOffset.X
	v := dg.UV.Y*t.UVScale.Y + t.UVOffset.Y
	return t.Mip.Lookup(u, v, dg.DUDX, dg.DUDY, dg.DVDX, dg.DVDY, t.AddressU, t.AddressV)
}
