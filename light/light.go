// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package light holds the light source taxonomy the ray integrators sample
// against: PointLight and DirectionalLight (delta lights with a fixed
// direction and pdf 1), and AreaLight (emission from a Shape's surface).
// Recovered from `Purple/Light.h`/`Purple/Light.cpp`, which declare the
// same three concrete lights under one base class.
package light

import (
	"math"

	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// Occluder is the shadow-ray test a VisibilityTester needs; kdtree.KDTree
// satisfies it without this package importing kdtree directly.
type Occluder interface {
	IntersectP(ray geometry.Ray) bool
}

// VisibilityTester defers the shadow-ray test until the caller has decided
// the light sample is otherwise worth using, matching the original's
// `VisibilityTester` out-parameter on `Sample_f`.
type VisibilityTester struct {
	P0, P1 mathutil.Vec3
}

// Unoccluded casts a shadow ray from P0 to P1 and reports whether nothing
// blocks it, pulling the endpoints in by a small epsilon on both ends to
// avoid immediate self-intersection.
func (v VisibilityTester) Unoccluded(scene Occluder) bool {
	d := v.P1.Sub(v.P0)
	dist := d.Length()
	if dist < 1e-9 {
		return true
	}
	dir := d.Mul(1 / dist)
	ray := geometry.NewRay(v.P0, dir)
	ray.TMax = dist * (1 - 1e-3)
	return !scene.IntersectP(ray)
}

// Light is the sampling interface every light type implements (spec.md
// §4.8's "lights" and "delta lights", taxonomy recovered from Light.h).
type Light interface {
	// SampleLi samples an incident direction wi from pt toward the light,
	// returning the incident radiance, the sample's pdf with respect to
	// solid angle at pt, and a VisibilityTester for the caller to resolve.
	SampleLi(pt mathutil.Vec3, u1, u2 float64) (wi mathutil.Vec3, li mathutil.RGB, pdf float64, vis VisibilityTester)

	// Pdf returns the solid-angle density SampleLi would have used for
	// wi, for the light side of a multiple-importance-sampling weight.
	// Delta lights always return 0: a direction picked by the BSDF can
	// never land exactly on a delta light's single supported direction.
	Pdf(pt mathutil.Vec3, wi mathutil.Vec3) float64

	// IsDelta reports whether the light has zero extent, so it is never
	// selected for the BSDF half of MIS (spec.md §9: "delta lights").
	IsDelta() bool

	// Power returns the light's total emitted power, used by light
	// importance-selection heuristics; sceneRadius bounds infinite-extent
	// lights like DirectionalLight that need a finite scene scale.
	Power(sceneRadius float64) mathutil.RGB
}

// PointLight emits intensity uniformly in all directions from a single
// point (Light.cpp's PointLight::Sample_f / Power).
type PointLight struct {
	P         mathutil.Vec3
	Intensity mathutil.RGB
}

func (l PointLight) SampleLi(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64, VisibilityTester) {
	d := l.P.Sub(pt)
	dist2 := d.LengthSq()
	wi := d.Mul(1 / math.Sqrt(dist2))
	li := l.Intensity.Mul(1 / dist2)
	return wi, li, 1, VisibilityTester{P0: pt, P1: l.P}
}

func (l PointLight) Pdf(mathutil.Vec3, mathutil.Vec3) float64 { return 0 }
func (l PointLight) IsDelta() bool                            { return true }

func (l PointLight) Power(float64) mathutil.RGB {
	return l.Intensity.Mul(4 * math.Pi)
}

// DirectionalLight emits parallel radiance from a fixed direction, as if
// from an infinitely distant source (Light.cpp's DirectionalLight).
type DirectionalLight struct {
	Direction mathutil.Vec3 // direction the light travels, world space
	Radiance  mathutil.RGB
}

func (l DirectionalLight) SampleLi(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64, VisibilityTester) {
	wi := l.Direction.Mul(-1).Normalize()
	far := pt.Add(wi.Mul(1e6))
	return wi, l.Radiance, 1, VisibilityTester{P0: pt, P1: far}
}

func (l DirectionalLight) Pdf(mathutil.Vec3, mathutil.Vec3) float64 { return 0 }
func (l DirectionalLight) IsDelta() bool                            { return true }

func (l DirectionalLight) Power(sceneRadius float64) mathutil.RGB {
	return l.Radiance.Mul(math.Pi * sceneRadius * sceneRadius)
}

// AreaLight emits constant radiance Le from the front face (the side its
// Shape's outward normal points toward) of a surface (Light.cpp's
// AreaLight, whose Sample_f was left stubbed to black; this fills in the
// shape-sampling implementation the original's comment left undone).
type AreaLight struct {
	Shape geometry.Shape
	Le    mathutil.RGB
}

func (l AreaLight) SampleLi(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.RGB, float64, VisibilityTester) {
	p, n := l.Shape.SampleFrom(pt, u1, u2)
	wi := p.Sub(pt)
	dist := wi.Length()
	if dist < 1e-9 {
		return mathutil.Vec3{}, mathutil.RGB{}, 0, VisibilityTester{}
	}
	wi = wi.Mul(1 / dist)

	pdf := l.Shape.PdfFrom(pt, wi)
	if pdf <= 0 {
		return wi, mathutil.RGB{}, 0, VisibilityTester{P0: pt, P1: p}
	}

	le := l.Emit(n, wi.Mul(-1))
	return wi, le, pdf, VisibilityTester{P0: pt, P1: p}
}

func (l AreaLight) Pdf(pt mathutil.Vec3, wi mathutil.Vec3) float64 {
	return l.Shape.PdfFrom(pt, wi)
}

func (l AreaLight) IsDelta() bool { return false }

func (l AreaLight) Power(float64) mathutil.RGB {
	return l.Le.Mul(math.Pi * l.Shape.Area())
}

// Emit returns the emitted radiance toward w from a point with surface
// normal n, zero unless w lies in the hemisphere the normal points into.
func (l AreaLight) Emit(n, w mathutil.Vec3) mathutil.RGB {
	if n.Dot(w) > 0 {
		return l.Le
	}
	return mathutil.RGB{}
}
