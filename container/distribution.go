package container

import "sort"

// Distribution1D is a piecewise-constant 1-D probability distribution
// built from a non-negative step function, with an inverse-CDF sampler.
// Invariants (spec.md §8): cdf[0]=0, cdf[N]=1, strictly monotone where
// pdf>0; if the function integrates to zero the CDF degrades to uniform.
type Distribution1D struct {
	function []float64
	cdf      []float64
	integral float64
}

// NewDistribution1D builds the distribution over the given step function.
func NewDistribution1D(f []float64) *Distribution1D {
	n := len(f)
	d := &Distribution1D{
		function: append([]float64(nil), f...),
		cdf:      make([]float64, n+1),
	}
	d.cdf[0] = 0
	for i := 1; i <= n; i++ {
		d.cdf[i] = d.cdf[i-1] + f[i-1]/float64(n)
	}
	d.integral = d.cdf[n]
	if d.integral == 0 {
		// Degenerate: degrade to the uniform CDF (spec.md §3 invariant).
		for i := 1; i <= n; i++ {
			d.cdf[i] = float64(i) / float64(n)
		}
	} else {
		for i := 1; i <= n; i++ {
			d.cdf[i] /= d.integral
		}
	}
	d.cdf[n] = 1 // force exact end, guarding float drift
	return d
}

// Count returns the number of step-function entries.
func (d *Distribution1D) Count() int { return len(d.function) }

// Integral returns the unnormalized integral of the original function.
func (d *Distribution1D) Integral() float64 { return d.integral }

// SampleContinuous draws a continuous sample in [0,1) via inverse CDF,
// returning the sample value, its pdf, and the bucket it landed in.
func (d *Distribution1D) SampleContinuous(u float64) (sample, pdf float64, bucket int) {
	i := d.findInterval(u)
	du := u - d.cdf[i]
	if d.cdf[i+1]-d.cdf[i] > 0 {
		du /= d.cdf[i+1] - d.cdf[i]
	}
	if d.integral > 0 {
		pdf = d.function[i] / d.integral
	} else {
		pdf = 1
	}
	n := float64(len(d.function))
	return (float64(i) + du) / n, pdf, i
}

// SampleDiscrete draws a discrete bucket index i such that
// cdf[i] <= u < cdf[i+1] (spec.md §8 invariant), plus its pmf.
func (d *Distribution1D) SampleDiscrete(u float64) (index int, pmf float64) {
	i := d.findInterval(u)
	n := float64(len(d.function))
	if d.integral > 0 {
		pmf = d.function[i] / (d.integral * n)
	} else {
		pmf = 1 / n
	}
	return i, pmf
}

// FunctionAt returns the raw (unnormalized) step-function value at index.
func (d *Distribution1D) FunctionAt(index int) float64 { return d.function[index] }

// DiscretePDF returns the probability mass assigned to bucket index.
func (d *Distribution1D) DiscretePDF(index int) float64 {
	n := float64(len(d.function))
	if d.integral > 0 {
		return d.function[index] / (d.integral * n)
	}
	return 1 / n
}

func (d *Distribution1D) findInterval(u float64) int {
	// cdf[i] <= u < cdf[i+1]; sort.Search finds the first index where
	// cdf[i] > u, then we step back one.
	n := len(d.function)
	i := sort.Search(n, func(i int) bool { return d.cdf[i+1] > u })
	if i >= n {
		i = n - 1
	}
	return i
}

// Distribution2D is a 2-D piecewise-constant distribution: one conditional
// distribution per row (nV of them) plus one marginal over the rows
// (spec.md §3). Sampling
// first picks a row via the marginal, then a column via that row's
// conditional — the standard pbrt-style two-stage inverse-CDF approach,
// used here for importance-sampling an environment map or an image-based
// light's power distribution.
type Distribution2D struct {
	conditional []*Distribution1D // one per row (v)
	marginal    *Distribution1D
}

// NewDistribution2D builds a 2-D distribution from a nU x nV function,
// stored row-major (func[v*nU+u]).
func NewDistribution2D(fn []float64, nU, nV int) *Distribution2D {
	d := &Distribution2D{conditional: make([]*Distribution1D, nV)}
	marginalFunc := make([]float64, nV)
	for v := 0; v < nV; v++ {
		row := fn[v*nU : (v+1)*nU]
		cond := NewDistribution1D(row)
		d.conditional[v] = cond
		marginalFunc[v] = cond.Integral()
	}
	d.marginal = NewDistribution1D(marginalFunc)
	return d
}

// SampleContinuous draws a (u, v) pair in [0,1)^2 plus the joint pdf.
func (d *Distribution2D) SampleContinuous(u0, u1 float64) (u, v, pdf float64) {
	d2, pdfV, row := d.marginal.SampleContinuous(u1)
	v = d2
	d1, pdfU, _ := d.conditional[row].SampleContinuous(u0)
	u = d1
	return u, v, pdfU * pdfV
}

// Pdf returns the joint pdf at a given (u, v) location in [0,1)^2:
// func(u,v) / (integral of func over the whole domain), the standard
// ratio for a piecewise-constant 2-D density.
func (d *Distribution2D) Pdf(u, v float64) float64 {
	if d.marginal.Integral() == 0 {
		return 0
	}
	nU := d.conditional[0].Count()
	nV := d.marginal.Count()
	iu := clampIndex(int(u*float64(nU)), nU)
	iv := clampIndex(int(v*float64(nV)), nV)
	return d.conditional[iv].FunctionAt(iu) / d.marginal.Integral()
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
