package geometry

import "github.com/gorender/core/mathutil"

// Shape is the capability set every scene primitive implements, a tagged
// union over {Sphere, Cylinder, Disk, TriangleMesh, Triangle} in the
// Go sense: a shared interface rather than a virtual base, dispatched by
// the concrete type stored in it (spec.md §9's re-architecture guidance
// against dynamic_cast-style polymorphism).
type Shape interface {
	LocalBound() mathutil.AABB
	WorldBound() mathutil.AABB
	Intersect(ray Ray) (tHit float64, dg DifferentialGeometry, ok bool)
	IntersectP(ray Ray) bool
	Area() float64

	// Sample draws a point and its outward normal uniformly over the
	// shape's surface area.
	Sample(u1, u2 float64) (p, n mathutil.Vec3)
	Pdf(pt mathutil.Vec3) float64

	// SampleFrom draws a point visible from pt (e.g. a cone over a sphere
	// seen from outside) and PdfFrom is its matching solid-angle density.
	SampleFrom(pt mathutil.Vec3, u1, u2 float64) (p, n mathutil.Vec3)
	PdfFrom(pt, wi mathutil.Vec3) float64
}

// shapePdfFrom is the default Shape.PdfFrom implementation (re-intersect
// the shape along wi and convert the area pdf to solid angle), shared by
// every primitive that does not need a specialized cone-sampling pdf.
func shapePdfFrom(s Shape, pt, wi mathutil.Vec3) float64 {
	ray := NewRay(pt, wi)
	ray.TMax = 1e30
	thit, dg, ok := s.Intersect(ray)
	if !ok {
		return 0
	}
	hit := ray.Eval(thit)
	d2 := pt.Sub(hit).LengthSq()
	denom := mathutil.Clamp(-dg.Normal.Dot(wi), 1e-12, 1) * s.Area()
	if denom <= 0 {
		return 0
	}
	return d2 / denom
}

// uniformAreaPdf is the default Shape.Pdf implementation: 1/Area.
func uniformAreaPdf(s Shape) float64 {
	a := s.Area()
	if a <= 0 {
		return 0
	}
	return 1 / a
}
