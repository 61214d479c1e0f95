package trace

import (
	"math"

	"github.com/gorender/core/container"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/light"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
	"github.com/gorender/core/shading"
)

// SurfaceIntegrator computes outgoing radiance at a ray/scene
// intersection (spec.md §4.8: "all surface integrators implement
// Li(scene, renderer, ray, isect, sample, rng, arena) -> RGB"). The
// renderer argument from the original signature is dropped here: a
// recursive integrator call is simply a Go method call on the same
// integrator value, with no need for a separate collaborator handle.
type SurfaceIntegrator interface {
	Li(scene *Scene, ray geometry.RayDifferential, isect geometry.DifferentialGeometry, sample *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB
}

// powerHeuristic is the two-sample MIS weight spec.md §4.8 names:
// w(p,q) = p^2/(p^2+q^2).
func powerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f+g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}

// bsdfAt builds the BSDF at a hit point from the scene's bound material,
// or nil if the shape has none (an unlit/background hit).
func bsdfAt(scene *Scene, isect geometry.DifferentialGeometry) *shading.BSDF {
	mat := scene.MaterialFor(isect.Shape)
	if mat == nil {
		return nil
	}
	return mat.GetBSDF(isect, isect)
}

// estimateDirect evaluates one light's contribution at a hit point via
// multiple importance sampling: one light sample and one BSDF sample,
// each weighted by the power heuristic and combined (spec.md §4.8
// "Direct-lighting"). Delta lights skip the BSDF-sample half, since no
// BSDF-generated direction can ever land exactly on a zero-area light.
func estimateDirect(scene *Scene, l light.Light, pt, wo, n mathutil.Vec3, bsdf *shading.BSDF, u1, u2, uComponent, lu1, lu2 float64) mathutil.RGB {
	result := mathutil.RGB{}

	// Light-sampling half.
	wi, li, lightPdf, vis := l.SampleLi(pt, lu1, lu2)
	if lightPdf > 0 && !li.IsBlack() {
		f := bsdf.Eval(wo, wi, shading.All).Mul(math.Abs(wi.Dot(n)))
		if !f.IsBlack() && vis.Unoccluded(scene) {
			if l.IsDelta() {
				result = result.Add(f.MulRGB(li).Mul(1 / lightPdf))
			} else {
				bsdfPdf := bsdf.Pdf(wo, wi, shading.All)
				weight := powerHeuristic(1, lightPdf, 1, bsdfPdf)
				result = result.Add(f.MulRGB(li).Mul(weight / lightPdf))
			}
		}
	}

	// BSDF-sampling half, skipped for delta lights.
	if !l.IsDelta() {
		wiB, f, bsdfPdf, sampledType := bsdf.Sample(wo, u1, u2, uComponent, shading.All)
		f = f.Mul(math.Abs(wiB.Dot(n)))
		if bsdfPdf > 0 && !f.IsBlack() {
			lightPdfB := l.Pdf(pt, wiB)
			if li := transmittedRadiance(scene, l, pt, wiB); lightPdfB > 0 && !li.IsBlack() {
				weight := bsdfSampleWeight(sampledType, bsdfPdf, lightPdfB)
				result = result.Add(f.MulRGB(li).Mul(weight / bsdfPdf))
			}
		}
	}

	return result
}

// bsdfSampleWeight applies the power heuristic unless the sampled
// component was specular, in which case the BSDF half is taken alone
// (a specular direction has probability zero under any light-sampling
// strategy, so MIS degenerates to weight 1).
func bsdfSampleWeight(sampledType shading.Type, bsdfPdf, lightPdf float64) float64 {
	if sampledType&shading.Specular != 0 {
		return 1
	}
	return powerHeuristic(1, bsdfPdf, 1, lightPdf)
}

// transmittedRadiance re-queries an area light along a BSDF-sampled
// direction for its emitted radiance toward pt, resolving occlusion
// against the scene. Delta lights never reach this path (see
// estimateDirect) and return black.
func transmittedRadiance(scene *Scene, l light.Light, pt, wi mathutil.Vec3) mathutil.RGB {
	var shape geometry.Shape
	switch al := l.(type) {
	case light.AreaLight:
		shape = al.Shape
	case *light.AreaLight:
		shape = al.Shape
	default:
		return mathutil.RGB{}
	}

	ray := geometry.NewRay(pt, wi)
	ray.TMax = 1e30
	thit, dg, hit := shape.Intersect(ray)
	if !hit {
		return mathutil.RGB{}
	}
	shadowRay := geometry.NewRay(pt, wi)
	shadowRay.TMax = thit * (1 - 1e-3)
	if scene.IntersectP(shadowRay) {
		return mathutil.RGB{}
	}
	if dg.Normal.Dot(wi.Mul(-1)) > 0 {
		if al, ok := l.(light.AreaLight); ok {
			return al.Le
		}
		if al, ok := l.(*light.AreaLight); ok {
			return al.Le
		}
	}
	return mathutil.RGB{}
}

// sampleAllUniform sums every light's direct contribution at a hit point,
// each light contributing one MIS-weighted estimate (spec.md §4.8
// "Sample_All_Uniform").
func sampleAllUniform(scene *Scene, pt, wo, n mathutil.Vec3, bsdf *shading.BSDF, rng *sampling.RNG) mathutil.RGB {
	total := mathutil.RGB{}
	for _, l := range scene.Lights {
		total = total.Add(estimateDirect(scene, l, pt, wo, n, bsdf,
			rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()))
	}
	return total
}

// sampleOneUniform picks one light uniformly and scales its estimate by
// the light count, an unbiased alternative to summing every light that
// costs one light estimate per call (spec.md §4.8 "Sample_One_Uniform").
func sampleOneUniform(scene *Scene, pt, wo, n mathutil.Vec3, bsdf *shading.BSDF, rng *sampling.RNG) mathutil.RGB {
	nLights := len(scene.Lights)
	if nLights == 0 {
		return mathutil.RGB{}
	}
	idx := rng.Intn(nLights)
	l := scene.Lights[idx]
	contrib := estimateDirect(scene, l, pt, wo, n, bsdf,
		rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64())
	return contrib.Mul(float64(nLights))
}
