package trace

import (
	"math"

	"github.com/gorender/core/container"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
	"github.com/gorender/core/shading"
)

// LightStrategy selects how DirectLightingIntegrator distributes its
// light-sampling budget across a scene's lights (spec.md §4.8: "Direct
// lighting supports Sample_All_Uniform and Sample_One_Uniform").
type LightStrategy int

const (
	SampleAllUniform LightStrategy = iota
	SampleOneUniform
)

// DirectLightingIntegrator estimates outgoing radiance as emission plus
// one MIS-combined light/BSDF sample per light (or per single chosen
// light), with no multi-bounce indirect diffuse term, recursing only into
// specular reflection/transmission up to MaxDepth (spec.md §4.8
// "Direct-lighting").
type DirectLightingIntegrator struct {
	Strategy LightStrategy
	MaxDepth int
}

// Li implements SurfaceIntegrator.
func (d DirectLightingIntegrator) Li(scene *Scene, ray geometry.RayDifferential, isect geometry.DifferentialGeometry, sample *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB {
	wo := ray.Direction.Mul(-1)
	n := isect.Normal
	p := isect.Point

	result := mathutil.RGB{}
	if al := scene.AreaLightFor(isect.Shape); al != nil {
		result = result.Add(al.Emit(n, wo))
	}

	bsdf := bsdfAt(scene, isect)
	if bsdf == nil {
		return result
	}

	switch d.Strategy {
	case SampleOneUniform:
		result = result.Add(sampleOneUniform(scene, p, wo, n, bsdf, rng))
	default:
		result = result.Add(sampleAllUniform(scene, p, wo, n, bsdf, rng))
	}

	if ray.Depth+1 < d.MaxDepth {
		result = result.Add(d.specularTerm(scene, ray, isect, bsdf, shading.Reflection, sample, rng, arena))
		result = result.Add(d.specularTerm(scene, ray, isect, bsdf, shading.Transmission, sample, rng, arena))
	}

	return result
}

func (d DirectLightingIntegrator) specularTerm(scene *Scene, ray geometry.RayDifferential, isect geometry.DifferentialGeometry, bsdf *shading.BSDF, kind shading.Type, sample *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB {
	wo := ray.Direction.Mul(-1)
	flags := shading.Specular | kind
	wiDir, f, pdf, _ := bsdf.Sample(wo, rng.Float64(), rng.Float64(), rng.Float64(), flags)
	if pdf == 0 || f.IsBlack() {
		return mathutil.RGB{}
	}

	spawned := geometry.NewRay(isect.Point, wiDir)
	spawned.Depth = ray.Depth + 1
	rd := geometry.RayDifferential{Ray: spawned}

	_, nextIsect, hit := scene.Intersect(spawned)
	var li mathutil.RGB
	if !hit {
		li = scene.EnvironmentRadiance(spawned)
	} else {
		li = d.Li(scene, rd, nextIsect, sample, rng, arena)
	}
	return f.MulRGB(li).Mul(math.Abs(wiDir.Dot(isect.Normal)) / pdf)
}
