package mathutil

import "math"

// AABB is an axis-aligned bounding box. The zero value is the point box at
// the origin, not an empty box; EmptyAABB returns the empty box (Min at
// +Inf, Max at -Inf), the identity element for Union.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a degenerate box that Union with anything returns
// that thing unchanged.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// BoundPoint returns the single-point bounding box.
func BoundPoint(p Vec3) AABB { return AABB{Min: p, Max: p} }

// UnionPoint returns the smallest box containing both b and p.
func (b AABB) UnionPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Diagonal returns Max - Min.
func (b AABB) Diagonal() Vec3 { return b.Max.Sub(b.Min) }

// SurfaceArea returns the box's surface area, the core quantity the KD-tree
// SAH cost model is built on (spec.md §4.3).
func (b AABB) SurfaceArea() float64 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// MaximumExtent returns the axis (0, 1, or 2) along which the box is
// largest, used by the KD-tree build to pick its candidate split axis.
func (b AABB) MaximumExtent() int {
	d := b.Diagonal()
	return d.MaxDimension()
}

// Centroid returns the box center.
func (b AABB) Centroid() Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Overlaps reports whether two boxes intersect on all three axes.
func (b AABB) Overlaps(o AABB) bool {
	x := b.Max.X >= o.Min.X && b.Min.X <= o.Max.X
	y := b.Max.Y >= o.Min.Y && b.Min.Y <= o.Max.Y
	z := b.Max.Z >= o.Min.Z && b.Min.Z <= o.Max.Z
	return x && y && z
}

// Inside reports whether p lies within the box (inclusive).
func (b AABB) Inside(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectP clips the ray segment [tMin, tMax] against the box using the
// slab method. It returns the clipped [t0, t1] and whether any overlap
// exists. Used by KD-tree traversal to clip the ray against world_bound
// before the stack-based descent (spec.md §4.3).
func (b AABB) IntersectP(origin, invDir Vec3, tMin, tMax float64) (t0, t1 float64, hit bool) {
	t0, t1 = tMin, tMax
	for axis := 0; axis < 3; axis++ {
		o := origin.At(axis)
		inv := invDir.At(axis)
		lo := (b.Min.At(axis) - o) * inv
		hi := (b.Max.At(axis) - o) * inv
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo > t0 {
			t0 = lo
		}
		if hi < t1 {
			t1 = hi
		}
		if t0 > t1 {
			return t0, t1, false
		}
	}
	return t0, t1, true
}

// Transform returns the bounding box of the 8 transformed corners of b —
// used to compute a shape's world_bound from its local_bound and
// world<->local transform (spec.md §3 "Shape").
func (b AABB) Transform(m Mat4) AABB {
	r := EmptyAABB()
	for i := 0; i < 8; i++ {
		p := Vec3{
			pick(i&1 != 0, b.Min.X, b.Max.X),
			pick(i&2 != 0, b.Min.Y, b.Max.Y),
			pick(i&4 != 0, b.Min.Z, b.Max.Z),
		}
		r = r.UnionPoint(m.TransformPoint(p))
	}
	return r
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return b
	}
	return a
}

// Sphere is an analytic bounding sphere, used by Shape.WorldBound for the
// Sphere primitive and by light-sampling cone derivation (spec.md §4.4).
type Sphere struct {
	Center Vec3
	Radius float64
}
