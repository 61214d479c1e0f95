package geometry

import "github.com/gorender/core/mathutil"

// Transform is the local<->world affine pair every Shape owns, plus the
// reverse-orientation flag that flips sampled/computed normals. Carrying
// the inverse alongside the forward matrix avoids re-inverting it on every
// ray (shapes intersect in local space).
type Transform struct {
	LocalToWorld, WorldToLocal mathutil.Mat4
	ReverseOrientation         bool
}

// NewTransform builds a Transform from a local-to-world matrix, computing
// and caching its inverse once.
func NewTransform(localToWorld mathutil.Mat4, reverseOrientation bool) Transform {
	return Transform{
		LocalToWorld:       localToWorld,
		WorldToLocal:       localToWorld.Inverse(),
		ReverseOrientation: reverseOrientation,
	}
}

// SwapsHandedness reports whether this transform flips handedness, in
// which case a shape's computed normal must additionally be negated on
// top of ReverseOrientation.
func (t Transform) SwapsHandedness() bool {
	return t.LocalToWorld.SwapsHandedness()
}

// ToLocal transforms a world-space ray into this shape's local space.
func (t Transform) ToLocal(r Ray) Ray {
	local := r
	local.Origin = t.WorldToLocal.TransformPoint(r.Origin)
	local.Direction = t.WorldToLocal.TransformVector(r.Direction)
	return local
}
