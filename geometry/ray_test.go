package geometry

import (
	"math"
	"testing"

	"github.com/gorender/core/mathutil"
)

func TestRayEval(t *testing.T) {
	r := NewRay(mathutil.Vec3{X: 1, Y: 2, Z: 3}, mathutil.Vec3{X: 1, Y: 0, Z: 0})
	p := r.Eval(5)
	want := mathutil.Vec3{X: 6, Y: 2, Z: 3}
	if p != want {
		t.Errorf("Eval(5) = %v, want %v", p, want)
	}
}

func TestRayDifferentialScale(t *testing.T) {
	rd := RayDifferential{
		Ray:              NewRay(mathutil.Vec3{}, mathutil.Vec3{X: 0, Y: 0, Z: 1}),
		HasDifferentials: true,
		RxOrigin:         mathutil.Vec3{X: 1, Y: 0, Z: 0},
		RyOrigin:         mathutil.Vec3{X: 0, Y: 1, Z: 0},
		RxDirection:      mathutil.Vec3{X: 0, Y: 0, Z: 1},
		RyDirection:      mathutil.Vec3{X: 0, Y: 0, Z: 1},
	}
	rd.ScaleDifferentials(0.5)
	if math.Abs(rd.RxOrigin.X-0.5) > 1e-12 {
		t.Errorf("RxOrigin.X after scale = %v, want 0.5", rd.RxOrigin.X)
	}
}

func TestRayDefaultWindow(t *testing.T) {
	r := NewRay(mathutil.Vec3{}, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	if r.TMin != 1e-3 {
		t.Errorf("TMin = %v, want 1e-3", r.TMin)
	}
	if !math.IsInf(r.TMax, 1) {
		t.Errorf("TMax = %v, want +Inf", r.TMax)
	}
}
