package sampling

// Sampler generates the per-pixel Sample bundles a render worker consumes
// in the renderer loop of spec.md §4.9. A Sampler prototype is immutable;
// CloneFor returns a thread-owned sampler covering one rectangular region,
// seeded deterministically from that region's origin (spec.md §5).
type Sampler interface {
	// GetMoreSamples fills samples (reusing its backing array when
	// possible) and returns how many were produced; 0 means the region
	// is exhausted or samples is shorter than MaximumSampleCount.
	GetMoreSamples(samples []Sample, rng *RNG) int

	// MaximumSampleCount returns the largest batch GetMoreSamples can
	// produce in one call, so callers can size their sample buffer once.
	MaximumSampleCount() int

	// CloneFor returns an independent sampler over [x0,x1)x[y0,y1), seeded
	// from sceneSeed and the region origin.
	CloneFor(x0, y0, x1, y1 int, sceneSeed uint64) Sampler
}

// StratifiedSampler divides every pixel into an xPixelSamples x
// yPixelSamples grid and draws one jittered (or centered) sample per
// cell — spec.md §8 scenario 4: "Stratified 4x4 over [0,1)^2. Each of the
// 16 strata contains exactly one sample."
type StratifiedSampler struct {
	x0, y0, x1, y1         int
	xPixelSamples          int
	yPixelSamples          int
	jitter                 bool
	curX, curY             int
	rng                    *RNG
	samples1DCount         []int
	samples2DCount         []int
}

// NewStratifiedSampler creates a prototype sampler; CloneFor is what
// actually gets used by render workers.
func NewStratifiedSampler(x0, y0, x1, y1, xPixelSamples, yPixelSamples int, jitter bool) *StratifiedSampler {
	return &StratifiedSampler{
		x0: x0, y0: y0, x1: x1, y1: y1,
		xPixelSamples: xPixelSamples,
		yPixelSamples: yPixelSamples,
		jitter:        jitter,
		curX:          x0,
		curY:          y0,
	}
}

func (s *StratifiedSampler) MaximumSampleCount() int {
	return s.xPixelSamples * s.yPixelSamples
}

func (s *StratifiedSampler) CloneFor(x0, y0, x1, y1 int, sceneSeed uint64) Sampler {
	seed := SeedForTile(sceneSeed, x0, y0)
	return &StratifiedSampler{
		x0: x0, y0: y0, x1: x1, y1: y1,
		xPixelSamples: s.xPixelSamples,
		yPixelSamples: s.yPixelSamples,
		jitter:        s.jitter,
		curX:          x0,
		curY:          y0,
		rng:           NewRNG(seed),
	}
}

// GetMoreSamples produces every sample for the next unvisited pixel in
// this sampler's region, advancing a raster-order cursor. It returns 0
// once every pixel in [x0,x1)x[y0,y1) has been visited, and also, without
// advancing, when samples holds fewer than MaximumSampleCount entries.
func (s *StratifiedSampler) GetMoreSamples(samples []Sample, rng *RNG) int {
	if s.curY >= s.y1 {
		return 0
	}
	if s.rng == nil {
		s.rng = rng
	}
	n := s.xPixelSamples * s.yPixelSamples
	if len(samples) < n {
		return 0
	}

	px, py := s.curX, s.curY
	stratify2D(samples[:n], s.xPixelSamples, s.yPixelSamples, s.rng, s.jitter, px, py)

	s.curX++
	if s.curX >= s.x1 {
		s.curX = s.x0
		s.curY++
	}
	return n
}

// stratify2D fills samples with one stratified (px,py)-pixel-local sample
// per (xPixelSamples x yPixelSamples) grid cell, in image-space
// coordinates (pixel integer + sub-pixel offset).
func stratify2D(samples []Sample, nx, ny int, rng *RNG, jitter bool, px, py int) {
	idx := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			var jx, jy float64 = 0.5, 0.5
			if jitter {
				jx, jy = rng.Float64(), rng.Float64()
			}
			samples[idx].ImageX = float64(px) + (float64(x)+jx)/float64(nx)
			samples[idx].ImageY = float64(py) + (float64(y)+jy)/float64(ny)
			samples[idx].LensU = rng.Float64()
			samples[idx].LensV = rng.Float64()
			samples[idx].Time = rng.Float64()
			samples[idx].fillArrays(rng)
			idx++
		}
	}
	// Latin-hypercube shuffle the lens coordinates across the batch so
	// lens sampling remains well stratified even though the image
	// coordinate grid above is a regular grid (pbrt-style combination).
	lens := lensCoords(samples)
	invN := 1 / float64(len(lens))
	for i := range lens {
		lens[i][0] = (float64(i) + lens[i][0]) * invN
		lens[i][1] = (float64(i) + lens[i][1]) * invN
	}
	LatinHypercubeShuffle2D(lens, rng)
	writeLensCoords(samples, lens)
}

func lensCoords(samples []Sample) [][2]float64 {
	out := make([][2]float64, len(samples))
	for i := range samples {
		out[i] = [2]float64{samples[i].LensU, samples[i].LensV}
	}
	return out
}

func writeLensCoords(samples []Sample, lens [][2]float64) {
	for i := range samples {
		samples[i].LensU = lens[i][0]
		samples[i].LensV = lens[i][1]
	}
}
