package trace

import (
	"math"

	"github.com/gorender/core/container"
	"github.com/gorender/core/film"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
	"github.com/gorender/core/schedule"
)

// Renderer drives the tile scheduler spec.md §4.9 describes: one worker
// per pool thread repeatedly asks a BlockGenerator for the next tile,
// clones the sampler for that tile, draws every sample with the camera
// and integrator, and merges the finished block into the film.
type Renderer struct {
	Camera          *Camera
	Integrator      SurfaceIntegrator
	Sampler         sampling.Sampler
	Filter          film.Filter
	SamplesPerPixel int
	SceneSeed       uint64
}

// Render draws scene into f, splitting the image into blockSize x
// blockSize tiles handed out ring by ring from the center (film.BlockGenerator)
// and processed by every worker in pool.
func (r *Renderer) Render(scene *Scene, f *film.Film, width, height, blockSize int, pool *schedule.Pool) {
	gen := film.NewBlockGenerator(width, height, blockSize)
	invSqrtSPP := 1.0
	if r.SamplesPerPixel > 0 {
		invSqrtSPP = 1 / math.Sqrt(float64(r.SamplesPerPixel))
	}

	workers := pool.Workers()
	for w := 0; w < workers; w++ {
		pool.Go(func() {
			r.renderWorker(scene, f, gen, invSqrtSPP)
		})
	}
	pool.Wait()
}

// renderWorker implements the pseudocode in spec.md §4.9: "block = ask
// generator; while block: sampler = main_sampler.clone_for(...); while (n
// = sampler.get_more_samples(...)) > 0: ...; arena.free_all(); film.add_
// block(block); block = ask generator".
func (r *Renderer) renderWorker(scene *Scene, f *film.Film, gen *film.BlockGenerator, invSqrtSPP float64) {
	arena := container.NewArena(0)

	for {
		x0, y0, x1, y1, ok := gen.Next()
		if !ok {
			return
		}

		blockSampler := r.Sampler.CloneFor(x0, y0, x1, y1, r.SceneSeed)
		rng := sampling.NewRNG(sampling.SeedForTile(r.SceneSeed, x0, y0))
		samples := make([]sampling.Sample, blockSampler.MaximumSampleCount())
		block := f.NewBlock(x0, y0, x1, y1, r.Filter)

		for {
			n := blockSampler.GetMoreSamples(samples, rng)
			if n == 0 {
				break
			}
			for i := 0; i < n; i++ {
				s := &samples[i]
				ray := r.Camera.GenerateRay(s.CameraSample)
				ray.ScaleDifferentials(invSqrtSPP)
				l := r.traceRay(scene, ray, s, rng, arena)
				block.AddSample(s.ImageX, s.ImageY, l)
			}
			arena.FreeAll()
		}

		f.AddBlock(block)
	}
}

// traceRay resolves one camera ray against the scene and hands a hit to
// the configured integrator, or the scene's environment radiance on a
// miss.
func (r *Renderer) traceRay(scene *Scene, ray geometry.RayDifferential, s *sampling.Sample, rng *sampling.RNG, arena *container.Arena) mathutil.RGB {
	_, isect, hit := scene.Intersect(ray.Ray)
	if !hit {
		return scene.EnvironmentRadiance(ray.Ray)
	}
	return r.Integrator.Li(scene, ray, isect, s, rng, arena)
}
