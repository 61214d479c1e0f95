package mathutil

import "math"

// RGB is a linear-light color triple. Spectral color is out of scope
// (spec.md §1 Non-goals); every radiance/reflectance value in this core
// is an RGB triple.
type RGB struct {
	R, G, B float64
}

func NewRGB(r, g, b float64) RGB { return RGB{r, g, b} }

func (c RGB) Add(d RGB) RGB    { return RGB{c.R + d.R, c.G + d.G, c.B + d.B} }
func (c RGB) Sub(d RGB) RGB    { return RGB{c.R - d.R, c.G - d.G, c.B - d.B} }
func (c RGB) Mul(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}
func (c RGB) MulRGB(d RGB) RGB { return RGB{c.R * d.R, c.G * d.G, c.B * d.B} }
func (c RGB) Div(s float64) RGB {
	return c.Mul(1 / s)
}

// IsBlack reports whether every channel is exactly zero — used to
// short-circuit estimators on zero throughput (spec.md §7 "Sample failures").
func (c RGB) IsBlack() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// Clamp restricts every channel to [lo, hi].
func (c RGB) Clamp(lo, hi float64) RGB {
	return RGB{Clamp(c.R, lo, hi), Clamp(c.G, lo, hi), Clamp(c.B, lo, hi)}
}

// Luminance returns the Rec.709 relative luminance, used by the path
// integrator's Russian-roulette survival probability (spec.md §4.8).
func (c RGB) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// HasNaN reports whether any channel is NaN — a debug-path check only,
// never run in the per-pixel hot loop (spec.md §3 "IEEE-754 finiteness
// checks on debug paths").
func (c RGB) HasNaN() bool {
	return math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B)
}

// XYZ is the CIE 1931 color space the film accumulates samples in
// (spec.md §4.2 step 1: "Convert L from RGB to CIE XYZ").
type XYZ struct {
	X, Y, Z float64
}

// ToXYZ converts a linear RGB triple to CIE XYZ using the standard
// Rec.709/sRGB primaries matrix.
func (c RGB) ToXYZ() XYZ {
	return XYZ{
		X: 0.412453*c.R + 0.357580*c.G + 0.180423*c.B,
		Y: 0.212671*c.R + 0.715160*c.G + 0.072169*c.B,
		Z: 0.019334*c.R + 0.119193*c.G + 0.950227*c.B,
	}
}

// ToRGB converts a CIE XYZ triple back to linear RGB, the inverse of ToXYZ.
func (c XYZ) ToRGB() RGB {
	return RGB{
		R: 3.240481343200526*c.X - 1.537151516271318*c.Y - 0.4985363261688878*c.Z,
		G: -0.9692549499965681*c.X + 1.875990001489891*c.Y + 0.04155592655829283*c.Z,
		B: 0.05564663913517714*c.X - 0.2040413383665112*c.Y + 1.057311069645344*c.Z,
	}
}

func (c XYZ) Add(d XYZ) XYZ { return XYZ{c.X + d.X, c.Y + d.Y, c.Z + d.Z} }
func (c XYZ) Mul(s float64) XYZ {
	return XYZ{c.X * s, c.Y * s, c.Z * s}
}
