package shading

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Fresnel evaluates reflectance at the dielectric/conductor interface a
// BxDF samples, as a function of the cosine between the incident
// direction and the surface normal.
type Fresnel interface {
	Evaluate(cosi float64) mathutil.RGB
}

// NoOpFresnel always returns full reflectance; used by Mirror materials,
// which want the reflect color passed through unattenuated (spec.md §4.12:
// "Mirror -> SpecularReflection with a no-op Fresnel").
type NoOpFresnel struct{}

func (NoOpFresnel) Evaluate(cosi float64) mathutil.RGB { return mathutil.RGB{R: 1, G: 1, B: 1} }

// Conductor is FrCond: reflectance of a conductor with complex index of
// refraction (eta, k).
type Conductor struct {
	Eta, K mathutil.RGB
}

func (f Conductor) Evaluate(cosi float64) mathutil.RGB {
	return frCond(math.Abs(cosi), f.Eta, f.K)
}

func frCond(cosi float64, eta, k mathutil.RGB) mathutil.RGB {
	tmp := eta.MulRGB(eta).Add(k.MulRGB(k)).Mul(cosi * cosi)
	one := mathutil.RGB{R: 1, G: 1, B: 1}
	rParl2Num := tmp.Sub(eta.Mul(2 * cosi)).Add(one)
	rParl2Denom := tmp.Add(eta.Mul(2 * cosi)).Add(one)
	rParl2 := componentDiv(rParl2Num, rParl2Denom)

	tmpF := eta.MulRGB(eta).Add(k.MulRGB(k))
	cosi2 := mathutil.RGB{R: cosi * cosi, G: cosi * cosi, B: cosi * cosi}
	rPerp2Num := tmpF.Sub(eta.Mul(2 * cosi)).Add(cosi2)
	rPerp2Denom := tmpF.Add(eta.Mul(2 * cosi)).Add(cosi2)
	rPerp2 := componentDiv(rPerp2Num, rPerp2Denom)

	return rParl2.Add(rPerp2).Mul(0.5)
}

func componentDiv(a, b mathutil.RGB) mathutil.RGB {
	return mathutil.RGB{R: a.R / b.R, G: a.G / b.G, B: a.B / b.B}
}

// Dielectric is FresnelDielectric: reflectance at a dielectric boundary
// with real indices of refraction eta_i (incident side) and eta_t
// (transmitted side).
type Dielectric struct {
	EtaI, EtaT float64
}

func (f Dielectric) Evaluate(cosi float64) mathutil.RGB {
	cosi = mathutil.Clamp(cosi, -1, 1)

	entering := cosi > 0
	ei, et := f.EtaI, f.EtaT
	if !entering {
		ei, et = et, ei
	}

	sint := ei / et * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return mathutil.RGB{R: 1, G: 1, B: 1}
	}
	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	return frDiel(math.Abs(cosi), cost, ei, et)
}

func frDiel(cosi, cost, etai, etat float64) mathutil.RGB {
	rParl := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rPerp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	v := (rParl*rParl + rPerp*rPerp) / 2
	return mathutil.RGB{R: v, G: v, B: v}
}
