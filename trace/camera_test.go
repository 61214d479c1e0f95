package trace

import (
	"math"
	"testing"

	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
)

func TestNewPerspectiveCameraBuildsOrthonormalBasis(t *testing.T) {
	c := NewPerspectiveCamera(
		mathutil.Vec3{X: 0, Y: 0, Z: -5},
		mathutil.Vec3{X: 0, Y: 0, Z: 0},
		mathutil.Vec3{X: 0, Y: 1, Z: 0},
		60, 200, 100, 0, 1)

	if d := c.forward.Dot(c.right); math.Abs(d) > 1e-9 {
		t.Errorf("forward.right = %v, want 0", d)
	}
	if d := c.forward.Dot(c.up); math.Abs(d) > 1e-9 {
		t.Errorf("forward.up = %v, want 0", d)
	}
	if d := c.right.Dot(c.up); math.Abs(d) > 1e-9 {
		t.Errorf("right.up = %v, want 0", d)
	}
	if l := c.forward.Length(); math.Abs(l-1) > 1e-9 {
		t.Errorf("|forward| = %v, want 1", l)
	}
}

func TestGenerateRayCenterPixelPointsAtForward(t *testing.T) {
	c := NewPerspectiveCamera(
		mathutil.Vec3{X: 0, Y: 0, Z: -5},
		mathutil.Vec3{X: 0, Y: 0, Z: 0},
		mathutil.Vec3{X: 0, Y: 1, Z: 0},
		60, 200, 200, 0, 1)

	rd := c.GenerateRay(sampling.CameraSample{ImageX: 100, ImageY: 100})
	if d := rd.Direction.Sub(c.forward).Length(); d > 1e-6 {
		t.Errorf("center-pixel ray direction = %+v, want forward %+v", rd.Direction, c.forward)
	}
}

func TestGenerateRayDifferentialsOffsetByOnePixel(t *testing.T) {
	c := NewPerspectiveCamera(
		mathutil.Vec3{X: 0, Y: 0, Z: -5},
		mathutil.Vec3{X: 0, Y: 0, Z: 0},
		mathutil.Vec3{X: 0, Y: 1, Z: 0},
		60, 200, 200, 0, 1)

	rd := c.GenerateRay(sampling.CameraSample{ImageX: 100, ImageY: 100})
	if !rd.HasDifferentials {
		t.Fatal("expected HasDifferentials = true")
	}
	if rd.RxDirection == rd.Direction {
		t.Error("x-differential direction should differ from the primary ray")
	}
	if rd.RyDirection == rd.Direction {
		t.Error("y-differential direction should differ from the primary ray")
	}
}

func TestThinLensDepthOfFieldOffsetsOrigin(t *testing.T) {
	c := NewPerspectiveCamera(
		mathutil.Vec3{X: 0, Y: 0, Z: -5},
		mathutil.Vec3{X: 0, Y: 0, Z: 0},
		mathutil.Vec3{X: 0, Y: 1, Z: 0},
		60, 200, 200, 0.5, 5)

	origin, _ := c.ray(100, 100, 0.9, 0.1)
	if origin == c.Origin {
		t.Error("a nonzero lens sample should offset the ray origin away from the eye")
	}
}

func TestThinLensFocalPointIndependentOfLensSample(t *testing.T) {
	c := NewPerspectiveCamera(
		mathutil.Vec3{X: 0, Y: 0, Z: -5},
		mathutil.Vec3{X: 0, Y: 0, Z: 0},
		mathutil.Vec3{X: 0, Y: 1, Z: 0},
		60, 200, 200, 0.5, 5)

	o1, d1 := c.ray(120, 80, 0.2, 0.7)
	o2, d2 := c.ray(120, 80, 0.8, 0.3)

	focus1 := o1.Add(d1.Mul(5 / d1.Dot(c.forward)))
	focus2 := o2.Add(d2.Mul(5 / d2.Dot(c.forward)))
	if focus1.Sub(focus2).Length() > 1e-6 {
		t.Errorf("focal points diverge across lens samples: %+v vs %+v", focus1, focus2)
	}
}
