package trace

import (
	"math"

	"github.com/gorender/core/container"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
	"github.com/gorender/core/shading"
)

// rouletteStartDepth is the bounce index after which PathIntegrator begins
// probabilistically terminating low-throughput paths (spec.md §4.8
// "Path": "after bounce 3, q = min(0.5, luminance(beta))").
const rouletteStartDepth = 3

// PathIntegrator unrolls the recursive Whitted/direct-lighting recursion
// into an iterative bounce loop carrying a throughput weight beta, with
// Russian-roulette termination once beta's luminance has had a chance to
// decay (spec.md §4.8 "Path").
type PathIntegrator struct {
	MaxDepth int
}

// Li implements SurfaceIntegrator.
func (p PathIntegrator) Li(scene *Scene, ray geometry.RayDifferential, isect geometry.DifferentialGeometry, sample *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB {
	result := mathutil.RGB{}
	beta := mathutil.RGB{R: 1, G: 1, B: 1}
	currentRay := ray.Ray
	currentIsect := isect
	specularBounce := true // bounce 0 counts as "specular" so its own Le is always added

	for depth := 0; ; depth++ {
		if depth == 0 || specularBounce {
			if al := scene.AreaLightFor(currentIsect.Shape); al != nil {
				result = result.Add(beta.MulRGB(al.Emit(currentIsect.Normal, currentRay.Direction.Mul(-1))))
			}
		}

		bsdf := bsdfAt(scene, currentIsect)
		if bsdf == nil {
			break
		}

		wo := currentRay.Direction.Mul(-1)
		result = result.Add(beta.MulRGB(sampleOneUniform(scene, currentIsect.Point, wo, currentIsect.Normal, bsdf, rng)))

		wi, f, pdf, sampledType := bsdf.Sample(wo, rng.Float64(), rng.Float64(), rng.Float64(), shading.All)
		if pdf == 0 || f.IsBlack() {
			break
		}
		specularBounce = sampledType&shading.Specular != 0

		beta = beta.MulRGB(f).Mul(math.Abs(wi.Dot(currentIsect.Normal)) / pdf)

		if depth > rouletteStartDepth {
			q := math.Min(0.5, beta.Luminance())
			if rng.Float64() > q {
				break
			}
			beta = beta.Mul(1 / q)
		}

		if depth >= p.MaxDepth {
			break
		}

		next := geometry.NewRay(currentIsect.Point, wi)
		next.Depth = currentRay.Depth + 1

		_, nextIsect, hit := scene.Intersect(next)
		if !hit {
			if specularBounce {
				result = result.Add(beta.MulRGB(scene.EnvironmentRadiance(next)))
			}
			break
		}
		currentRay = next
		currentIsect = nextIsect
	}

	return result
}
