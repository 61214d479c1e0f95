// Package shading implements BxDFs, the BSDF frame that composes them, and
// the texture/material layer that builds BSDFs at a hit point.
package shading

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Type is a bitmask tagging a BxDF's reflection/transmission behavior and
// its roughness class, mirrored from the original engine's BSDFType enum.
type Type uint32

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	AllTypes        = Diffuse | Glossy | Specular
	AllReflection   = Reflection | AllTypes
	AllTransmission = Transmission | AllTypes
	All             = AllReflection | AllTransmission
)

// Matches reports whether t is a subset of flags.
func (t Type) Matches(flags Type) bool { return t&flags == t }

// BxDF is a single scattering term evaluated in the shading-local frame,
// where +z is the shading normal and cos(theta) = w.Z.
type BxDF interface {
	Type() Type
	Eval(wo, wi mathutil.Vec3) mathutil.RGB
	Sample(wo mathutil.Vec3, u1, u2 float64) (wi mathutil.Vec3, f mathutil.RGB, pdf float64)
	Pdf(wo, wi mathutil.Vec3) float64
}

func cosTheta(w mathutil.Vec3) float64    { return w.Z }
func absCosTheta(w mathutil.Vec3) float64 { return math.Abs(w.Z) }

func sinTheta2(w mathutil.Vec3) float64 {
	return math.Max(0, 1-w.Z*w.Z)
}

func sinTheta(w mathutil.Vec3) float64 { return math.Sqrt(sinTheta2(w)) }

func sinPhi(w mathutil.Vec3) float64 {
	st := sinTheta(w)
	if st == 0 {
		return 1
	}
	return mathutil.Clamp(w.Y/st, -1, 1)
}

func cosPhi(w mathutil.Vec3) float64 {
	st := sinTheta(w)
	if st == 0 {
		return 0
	}
	return mathutil.Clamp(w.X/st, -1, 1)
}

func sameHemisphere(w, wp mathutil.Vec3) bool { return w.Z*wp.Z > 0 }

func sphericalDirection(cosTheta, sinTheta, phi float64) mathutil.Vec3 {
	return mathutil.Vec3{X: sinTheta * math.Cos(phi), Y: sinTheta * math.Sin(phi), Z: cosTheta}
}

// cosineSampleHemisphere draws a direction in the +z hemisphere with
// probability proportional to cos(theta), via Malley's method over a
// concentric disk sample (original engine: BxDF::Sample's default body).
func cosineSampleHemisphere(u1, u2 float64) mathutil.Vec3 {
	dx, dy := concentricSampleDisk(u1, u2)
	z := math.Sqrt(math.Max(0, 1-dx*dx-dy*dy))
	return mathutil.Vec3{X: dx, Y: dy, Z: z}
}

func concentricSampleDisk(u1, u2 float64) (float64, float64) {
	sx := 2*u1 - 1
	sy := 2*u2 - 1
	if sx == 0 && sy == 0 {
		return 0, 0
	}
	var r, theta float64
	if math.Abs(sx) > math.Abs(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = math.Pi/2 - (math.Pi/4)*(sx/sy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}

func cosineHemispherePdf(cosTheta float64) float64 { return cosTheta * (1 / math.Pi) }

func uniformSampleHemisphere(u1, u2 float64) mathutil.Vec3 {
	z := u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return mathutil.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

func uniformHemispherePdf() float64 { return 1 / (2 * math.Pi) }

// defaultSample is the BxDF base-class Sample used by every non-specular
// BxDF that has no better importance-sampling strategy: cosine-weighted
// hemisphere, flipped into wo's hemisphere.
func defaultSample(b BxDF, wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64) {
	wi := cosineSampleHemisphere(u1, u2)
	if wo.Z < 0 {
		wi.Z *= -1
	}
	pdf := defaultPdf(wo, wi)
	return wi, b.Eval(wo, wi), pdf
}

// defaultPdf is the BxDF base-class Pdf matching defaultSample.
func defaultPdf(wo, wi mathutil.Vec3) float64 {
	return cosineHemispherePdf(absCosTheta(wi))
}
