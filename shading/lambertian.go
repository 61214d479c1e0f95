package shading

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Lambertian is a perfectly diffuse BRDF: f = R/pi.
type Lambertian struct {
	R mathutil.RGB
}

func (l Lambertian) Type() Type { return Reflection | Diffuse }

func (l Lambertian) Eval(wo, wi mathutil.Vec3) mathutil.RGB {
	return l.R.Mul(1 / math.Pi)
}

func (l Lambertian) Sample(wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64) {
	return defaultSample(l, wo, u1, u2)
}

func (l Lambertian) Pdf(wo, wi mathutil.Vec3) float64 { return defaultPdf(wo, wi) }

// OrenNayar is a microfacet-diffuse BRDF parametrized by surface
// roughness sigma (in degrees), precomputing the A/B coefficients from
// Oren & Nayar's qualitative model (spec.md §4.5).
type OrenNayar struct {
	R    mathutil.RGB
	A, B float64
}

// NewOrenNayar precomputes A = 1 - sigma^2/(2*sigma^2+0.33) and
// B = 0.45*sigma^2/(sigma^2+0.09) from sigma given in degrees.
func NewOrenNayar(r mathutil.RGB, sigmaDegrees float64) OrenNayar {
	sigma := sigmaDegrees * math.Pi / 180
	sigma2 := sigma * sigma
	return OrenNayar{
		R: r,
		A: 1 - sigma2/(2*sigma2+0.33),
		B: 0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func (o OrenNayar) Type() Type { return Reflection | Diffuse }

func (o OrenNayar) Eval(wo, wi mathutil.Vec3) mathutil.RGB {
	sinThetaI := sinTheta(wi)
	sinThetaO := sinTheta(wo)

	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		sinPhiI, cosPhiI := sinPhi(wi), cosPhi(wi)
		sinPhiO, cosPhiO := sinPhi(wo), cosPhi(wo)
		dCos := cosPhiI*cosPhiO + sinPhiI*sinPhiO
		maxCos = math.Max(0, dCos)
	}

	var sinAlpha, tanBeta float64
	if absCosTheta(wi) > absCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / absCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / absCosTheta(wo)
	}

	return o.R.Mul((1 / math.Pi) * (o.A + o.B*maxCos*sinAlpha*tanBeta))
}

func (o OrenNayar) Sample(wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64) {
	return defaultSample(o, wo, u1, u2)
}

func (o OrenNayar) Pdf(wo, wi mathutil.Vec3) float64 { return defaultPdf(wo, wi) }
