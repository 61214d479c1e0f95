package raster

// DepthFunc is the depth-test comparison function (spec.md §4.7: "Depth
// compare is selected from {never, less, <=, equal, !=, >=, greater,
// always}").
type DepthFunc int

const (
	DepthNever DepthFunc = iota
	DepthLess
	DepthLessEqual
	DepthEqual
	DepthNotEqual
	DepthGreaterEqual
	DepthGreater
	DepthAlways
)

// Passes reports whether a candidate depth z passes against the current
// stored depth under this comparison function.
func (f DepthFunc) Passes(z, stored float64) bool {
	switch f {
	case DepthNever:
		return false
	case DepthLess:
		return z < stored
	case DepthLessEqual:
		return z <= stored
	case DepthEqual:
		return z == stored
	case DepthNotEqual:
		return z != stored
	case DepthGreaterEqual:
		return z >= stored
	case DepthGreater:
		return z > stored
	default: // DepthAlways
		return true
	}
}
