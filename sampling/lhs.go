package sampling

// LatinHypercube fills samples (a flat nSamples*nDim buffer, row-major:
// sample i's dimensions at samples[i*nDim:(i+1)*nDim]) with a Latin
// Hypercube pattern: each dimension is independently stratified into
// nSamples equal bins and then randomly permuted across samples, so the
// marginal distribution along every single dimension stays perfectly
// stratified even though the joint distribution is not a regular grid.
func LatinHypercube(samples []float64, nSamples, nDim int, rng *RNG) {
	invN := 1 / float64(nSamples)
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nDim; j++ {
			sj := (float64(i) + rng.Float64()) * invN
			samples[nDim*i+j] = sj
		}
	}
	for i := 0; i < nDim; i++ {
		for j := 0; j < nSamples; j++ {
			other := j + rng.Intn(nSamples-j)
			samples[nDim*j+i], samples[nDim*other+i] = samples[nDim*other+i], samples[nDim*j+i]
		}
	}
}

// LatinHypercubeShuffle2D re-randomizes a set of already-generated 2-D
// points in place so their per-axis stratification is preserved but the
// joint pairing is shuffled, the same permutation step LatinHypercube
// performs on its own freshly-drawn samples. Used to decorrelate lens
// coordinates from the regular pixel-antialiasing grid in
// StratifiedSampler (spec.md §4.9's sampler prototype feeds both).
func LatinHypercubeShuffle2D(points [][2]float64, rng *RNG) {
	n := len(points)
	for axis := 0; axis < 2; axis++ {
		for j := 0; j < n; j++ {
			other := j + rng.Intn(n-j)
			points[j][axis], points[other][axis] = points[other][axis], points[j][axis]
		}
	}
}
