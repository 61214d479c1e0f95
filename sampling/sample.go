package sampling

// CameraSample is the per-pixel sample bundle spec.md §3 names: a 2-D
// image-space coordinate (including the sub-pixel jitter), a 2-D lens
// coordinate for depth of field, and a time sample for motion blur.
type CameraSample struct {
	ImageX, ImageY float64
	LensU, LensV   float64
	Time           float64
}

// Sample extends CameraSample with the 1-D/2-D sample arrays integrators
// reserve at scene-load time (one light sample and one BSDF sample per
// bounce, for example). Request*Array returns the offset to store at and
// use later when pulling samples for a given bounce.
type Sample struct {
	CameraSample
	samples1D [][]float64
	samples2D [][][2]float64
}

// Request1DArray reserves room for n 1-D sample values per pixel sample
// and returns the index to pass to Array1D.
func (s *Sample) Request1DArray(n int) int {
	s.samples1D = append(s.samples1D, make([]float64, n))
	return len(s.samples1D) - 1
}

// Request2DArray reserves room for n 2-D sample values per pixel sample.
func (s *Sample) Request2DArray(n int) int {
	s.samples2D = append(s.samples2D, make([][2]float64, n))
	return len(s.samples2D) - 1
}

// Array1D returns the reserved 1-D sample slice at the given index.
func (s *Sample) Array1D(index int) []float64 { return s.samples1D[index] }

// Array2D returns the reserved 2-D sample slice at the given index.
func (s *Sample) Array2D(index int) [][2]float64 { return s.samples2D[index] }

// fillArrays regenerates every reserved 1-D/2-D array with fresh uniform
// samples from rng. Stratification is not applied within these auxiliary
// arrays (only the primary image/lens samples are stratified) — matching
// the teacher-era convention that only pixel antialiasing is stratified
// and light/BSDF arrays use plain uniform draws, adaptive sampling being
// out of scope (spec.md §1 Non-goals).
func (s *Sample) fillArrays(rng *RNG) {
	for i := range s.samples1D {
		for j := range s.samples1D[i] {
			s.samples1D[i][j] = rng.Float64()
		}
	}
	for i := range s.samples2D {
		for j := range s.samples2D[i] {
			s.samples2D[i][j] = [2]float64{rng.Float64(), rng.Float64()}
		}
	}
}
