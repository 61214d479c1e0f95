package trace

import (
	"math"

	"github.com/gorender/core/container"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
	"github.com/gorender/core/shading"
)

// WhittedIntegrator evaluates only analytic delta-light contributions plus
// recursive specular reflection/transmission (spec.md §4.8 "Whitted": no
// Monte-Carlo area-light sampling, no indirect diffuse bounce).
type WhittedIntegrator struct {
	MaxDepth int
}

// Li implements SurfaceIntegrator.
func (wi WhittedIntegrator) Li(scene *Scene, ray geometry.RayDifferential, isect geometry.DifferentialGeometry, sample *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB {
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

	for _, l := range scene.Lights {
		if !l.IsDelta() {
			continue
		}
		wiDir, li, pdf, vis := l.SampleLi(p, rng.Float64(), rng.Float64())
		if pdf == 0 || li.IsBlack() {
			continue
		}
		f := bsdf.Eval(wo, wiDir, shading.All)
		if f.IsBlack() || !vis.Unoccluded(scene) {
			continue
		}
		result = result.Add(f.MulRGB(li).Mul(math.Abs(wiDir.Dot(n)) / pdf))
	}

	if ray.Depth+1 < wi.MaxDepth {
		result = result.Add(wi.specularTerm(scene, ray, isect, bsdf, shading.Reflection, sample, rng, arena))
		result = result.Add(wi.specularTerm(scene, ray, isect, bsdf, shading.Transmission, sample, rng, arena))
	}

	return result
}

// specularTerm recurses one bounce along a sampled specular-reflection or
// specular-transmission direction, scaling the returned radiance by the
// usual cos(theta)/pdf factor.
func (wi WhittedIntegrator) specularTerm(scene *Scene, ray geometry.RayDifferential, isect geometry.DifferentialGeometry, bsdf *shading.BSDF, kind shading.Type, sample *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB {
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
		li = wi.Li(scene, rd, nextIsect, sample, rng, arena)
	}
	return f.MulRGB(li).Mul(math.Abs(wiDir.Dot(isect.Normal)) / pdf)
}
