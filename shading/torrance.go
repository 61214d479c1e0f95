package shading

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// MicrofacetDistribution is the half-vector distribution a Torrance-
// Sparrow BxDF samples from and evaluates D() against.
type MicrofacetDistribution interface {
	D(wh mathutil.Vec3) float64
	SampleH(wo mathutil.Vec3, u1, u2 float64) (wi mathutil.Vec3, pdf float64)
	Pdf(wo, wi mathutil.Vec3) float64
}

// Blinn is the Blinn-Phong microfacet distribution, parametrized by a
// specular exponent.
type Blinn struct {
	Exponent float64
}

func (b Blinn) D(wh mathutil.Vec3) float64 {
	return (b.Exponent + 2) * (1 / (2 * math.Pi)) * math.Pow(absCosTheta(wh), b.Exponent)
}

func (b Blinn) SampleH(wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, float64) {
	cosTh := math.Pow(u1, 1/(b.Exponent+1))
	sinTh := math.Sqrt(math.Max(0, 1-cosTh*cosTh))
	phi := 2 * math.Pi * u2

	wh := sphericalDirection(cosTh, sinTh, phi)
	if !sameHemisphere(wh, wo) {
		wh = wh.Neg()
	}

	wi := wh.Mul(2 * wo.Dot(wh)).Sub(wo)

	blinnPdf := (b.Exponent + 1) * math.Pow(absCosTheta(wh), b.Exponent) / (2 * math.Pi * 4 * wo.Dot(wh))
	if wo.Dot(wh) <= 0 {
		blinnPdf = 0
	}
	return wi, blinnPdf
}

func (b Blinn) Pdf(wo, wi mathutil.Vec3) float64 {
	wh := wo.Add(wi).Normalize()
	if wo.Dot(wh) <= 0 {
		return 0
	}
	return (b.Exponent + 1) * math.Pow(absCosTheta(wh), b.Exponent) / (2 * math.Pi * 4 * wo.Dot(wh))
}

// TorranceSparrow is a glossy microfacet BRDF combining a Fresnel term,
// a microfacet distribution, and the Torrance-Sparrow geometric
// attenuation factor.
type TorranceSparrow struct {
	R            mathutil.RGB
	Fresnel      Fresnel
	Distribution MicrofacetDistribution
}

func (t TorranceSparrow) Type() Type { return Reflection | Glossy }

func (t TorranceSparrow) g(wo, wi, wh mathutil.Vec3) float64 {
	nDotWh := absCosTheta(wh)
	nDotWo := absCosTheta(wo)
	nDotWi := absCosTheta(wi)
	oDotWh := math.Abs(wo.Dot(wh))
	return math.Min(1, math.Min(2*nDotWh*nDotWo/oDotWh, 2*nDotWh*nDotWi/oDotWh))
}

func (t TorranceSparrow) Eval(wo, wi mathutil.Vec3) mathutil.RGB {
	cosThetaO := absCosTheta(wo)
	cosThetaI := absCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return mathutil.RGB{}
	}

	wh := wo.Add(wi).Normalize()
	cosThetaH := wi.Dot(wh)

	f := t.Fresnel.Evaluate(cosThetaH)
	d := t.Distribution.D(wh)
	g := t.g(wo, wi, wh)

	return t.R.MulRGB(f).Mul(d * g / (4 * cosThetaI * cosThetaO))
}

func (t TorranceSparrow) Sample(wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64) {
	wi, pdf := t.Distribution.SampleH(wo, u1, u2)
	if !sameHemisphere(wo, wi) {
		return wi, mathutil.RGB{}, pdf
	}
	return wi, t.Eval(wo, wi), pdf
}

func (t TorranceSparrow) Pdf(wo, wi mathutil.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return t.Distribution.Pdf(wo, wi)
}
