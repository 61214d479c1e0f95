package shading

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// SpecularReflection is a perfect-mirror delta BRDF: zero everywhere
// except the one direction sampling returns, where eval/pdf are
// meaningless (the integrator must special-case BSDF_Specular and never
// call Eval/Pdf directly on it — spec.md §4.5).
type SpecularReflection struct {
	R       mathutil.RGB
	Fresnel Fresnel
}

func (s SpecularReflection) Type() Type { return Reflection | Specular }

func (s SpecularReflection) Eval(wo, wi mathutil.Vec3) mathutil.RGB { return mathutil.RGB{} }

func (s SpecularReflection) Pdf(wo, wi mathutil.Vec3) float64 { return 0 }

func (s SpecularReflection) Sample(wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64) {
	wi := mathutil.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	f := s.Fresnel.Evaluate(cosTheta(wo)).MulRGB(s.R).Div(absCosTheta(wi))
	return wi, f, 1
}

// SpecularTransmission is a perfect dielectric refraction delta BTDF.
type SpecularTransmission struct {
	T          mathutil.RGB
	EtaI, EtaT float64
	Fresnel    Dielectric
}

func NewSpecularTransmission(t mathutil.RGB, etaI, etaT float64) SpecularTransmission {
	return SpecularTransmission{T: t, EtaI: etaI, EtaT: etaT, Fresnel: Dielectric{EtaI: etaI, EtaT: etaT}}
}

func (s SpecularTransmission) Type() Type { return Transmission | Specular }

func (s SpecularTransmission) Eval(wo, wi mathutil.Vec3) mathutil.RGB { return mathutil.RGB{} }

func (s SpecularTransmission) Pdf(wo, wi mathutil.Vec3) float64 { return 0 }

func (s SpecularTransmission) Sample(wo mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64) {
	entering := cosTheta(wo) > 0
	ei, et := s.EtaI, s.EtaT
	if !entering {
		ei, et = et, ei
	}

	sini2 := sinTheta2(wo)
	eta := ei / et
	sint2 := eta * eta * sini2
	if sint2 >= 1 {
		return mathutil.Vec3{}, mathutil.RGB{}, 0
	}

	cost := math.Sqrt(math.Max(0, 1-sint2))
	if entering {
		cost = -cost
	}

	wi := mathutil.Vec3{X: eta * -wo.X, Y: eta * -wo.Y, Z: cost}
	f := s.Fresnel.Evaluate(cosTheta(wo))
	one := mathutil.RGB{R: 1, G: 1, B: 1}
	out := one.Sub(f).MulRGB(s.T).Div(absCosTheta(wi))
	return wi, out, 1
}
