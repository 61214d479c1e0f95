package shading

import (
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// Material builds a BSDF at a hit point by evaluating its bound textures,
// the shading-layer equivalent of the original engine's per-material
// GetBSDF (spec.md §4.12, recovered from `Purple/Material.cpp`).
type Material interface {
	GetBSDF(dgGeom, dgShading geometry.DifferentialGeometry) *BSDF
}

func saturate(c mathutil.RGB) mathutil.RGB { return c.Clamp(0, 1) }

// Matte is a Lambertian or Oren-Nayar diffuse surface, switching on
// whether Sigma (in degrees) is zero (spec.md §4.12).
type Matte struct {
	Kd    Texture
	Sigma Texture // may be nil, treated as constant zero
}

func (m Matte) GetBSDF(dgGeom, dgShading geometry.DifferentialGeometry) *BSDF {
	bsdf := NewBSDF(dgShading, dgGeom.Normal, 1)
	r := saturate(m.Kd.Eval(dgShading))

	sigma := 0.0
	if m.Sigma != nil {
		sigma = m.Sigma.Eval(dgShading).R
	}
	if sigma == 0 {
		bsdf.Add(Lambertian{R: r})
	} else {
		bsdf.Add(NewOrenNayar(r, sigma))
	}
	return bsdf
}

// Mirror is a perfect specular reflector with a no-op Fresnel, so the
// reflect color passes through unattenuated (spec.md §4.12).
type Mirror struct {
	Kr Texture
}

func (m Mirror) GetBSDF(dgGeom, dgShading geometry.DifferentialGeometry) *BSDF {
	bsdf := NewBSDF(dgShading, dgGeom.Normal, 1)
	r := saturate(m.Kr.Eval(dgShading))
	if !r.IsBlack() {
		bsdf.Add(SpecularReflection{R: r, Fresnel: NoOpFresnel{}})
	}
	return bsdf
}

// Glass is a dielectric surface with both specular reflection and
// transmission lobes sharing one index of refraction (spec.md §4.12).
type Glass struct {
	Kr, Kt Texture
	Index  Texture
}

func (g Glass) GetBSDF(dgGeom, dgShading geometry.DifferentialGeometry) *BSDF {
	ior := 1.5
	if g.Index != nil {
		ior = g.Index.Eval(dgShading).R
	}

	bsdf := NewBSDF(dgShading, dgGeom.Normal, ior)

	r := saturate(g.Kr.Eval(dgShading))
	t := saturate(g.Kt.Eval(dgShading))

	if !r.IsBlack() {
		fresnel := Dielectric{EtaI: 1, EtaT: ior}
		bsdf.Add(SpecularReflection{R: r, Fresnel: fresnel})
	}
	if !t.IsBlack() {
		bsdf.Add(NewSpecularTransmission(t, 1, ior))
	}
	return bsdf
}

// Plastic layers a diffuse Lambertian lobe under a glossy Torrance-
// Sparrow lobe with a Blinn distribution, each from its own
// texture-bound reflectance (spec.md §4.12).
type Plastic struct {
	Kd, Ks   Texture
	Exponent Texture // may be nil, defaults to 30
}

func (p Plastic) GetBSDF(dgGeom, dgShading geometry.DifferentialGeometry) *BSDF {
	bsdf := NewBSDF(dgShading, dgGeom.Normal, 1)

	kd := saturate(p.Kd.Eval(dgShading))
	if !kd.IsBlack() {
		bsdf.Add(Lambertian{R: kd})
	}

	ks := saturate(p.Ks.Eval(dgShading))
	if !ks.IsBlack() {
		exponent := 30.0
		if p.Exponent != nil {
			exponent = p.Exponent.Eval(dgShading).R
		}
		fresnel := Dielectric{EtaI: 1, EtaT: 1.5}
		bsdf.Add(TorranceSparrow{R: ks, Fresnel: fresnel, Distribution: Blinn{Exponent: exponent}})
	}
	return bsdf
}
