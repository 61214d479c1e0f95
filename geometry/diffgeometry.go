package geometry

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// DifferentialGeometry is the intersection record every Shape.Intersect
// fills: world-space hit point, shading normal, uv, and the partial
// derivatives needed for anisotropic shading and texture filtering.
// Normal is always normalize(normalize(cross(dpdu,dpdv))).
type DifferentialGeometry struct {
	Shape                Shape
	PrimIndex            int
	Point                mathutil.Vec3
	Normal               mathutil.Vec3
	UV                   mathutil.Vec2
	DPDU, DPDV           mathutil.Vec3
	DNDU, DNDV           mathutil.Vec3
	DPDX, DPDY           mathutil.Vec3
	DUDX, DVDX           float64
	DUDY, DVDY           float64
}

// NewDifferentialGeometry fills the fixed part of a DifferentialGeometry;
// screen-space derivatives start zeroed until ComputeDifferentials runs.
func NewDifferentialGeometry(p, dpdu, dpdv, dndu, dndv mathutil.Vec3, uv mathutil.Vec2, shape Shape) DifferentialGeometry {
	return DifferentialGeometry{
		Shape:  shape,
		Point:  p,
		Normal: dpdu.Cross(dpdv).Normalize().Normalize(),
		UV:     uv,
		DPDU:   dpdu, DPDV: dpdv,
		DNDU: dndu, DNDV: dndv,
	}
}

// ComputeDifferentials solves for the screen-space uv derivatives from a
// ray's auxiliary rays, replacing the original's goto-fail control flow
// with an early return to the zero-derivative case (spec.md §9).
func (dg *DifferentialGeometry) ComputeDifferentials(ray RayDifferential) {
	if !ray.HasDifferentials {
		dg.zeroDifferentials()
		return
	}

	d := -dg.Normal.Dot(dg.Point)
	tx := -(dg.Normal.Dot(ray.RxOrigin) + d) / dg.Normal.Dot(ray.RxDirection)
	if math.IsNaN(tx) {
		dg.zeroDifferentials()
		return
	}
	ty := -(dg.Normal.Dot(ray.RyOrigin) + d) / dg.Normal.Dot(ray.RyDirection)
	if math.IsNaN(ty) {
		dg.zeroDifferentials()
		return
	}

	px := ray.RxOrigin.Add(ray.RxDirection.Mul(tx))
	py := ray.RyOrigin.Add(ray.RyDirection.Mul(ty))
	dg.DPDX = px.Sub(dg.Point)
	dg.DPDY = py.Sub(dg.Point)

	ax0, ax1 := dominantAxisPair(dg.Normal)

	a := [2][2]float64{
		{dg.DPDU.At(ax0), dg.DPDV.At(ax0)},
		{dg.DPDU.At(ax1), dg.DPDV.At(ax1)},
	}
	bx := [2]float64{px.At(ax0) - dg.Point.At(ax0), px.At(ax1) - dg.Point.At(ax1)}
	by := [2]float64{py.At(ax0) - dg.Point.At(ax0), py.At(ax1) - dg.Point.At(ax1)}

	if u, v, ok := solveLinearSystem2x2(a, bx); ok {
		dg.DUDX, dg.DVDX = u, v
	} else {
		dg.DUDX, dg.DVDX = 0, 0
	}
	if u, v, ok := solveLinearSystem2x2(a, by); ok {
		dg.DUDY, dg.DVDY = u, v
	} else {
		dg.DUDY, dg.DVDY = 0, 0
	}
}

func (dg *DifferentialGeometry) zeroDifferentials() {
	dg.DUDX, dg.DVDX, dg.DUDY, dg.DVDY = 0, 0, 0, 0
	dg.DPDX, dg.DPDY = mathutil.Vec3{}, mathutil.Vec3{}
}

// dominantAxisPair picks the two axes orthogonal to n's dominant axis, the
// 2-D projection a ray-plane differential intersection is solved in.
func dominantAxisPair(n mathutil.Vec3) (int, int) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ax > ay && ax > az {
		return 1, 2
	}
	if ay > az {
		return 0, 2
	}
	return 0, 1
}
