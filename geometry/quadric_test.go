package geometry

import (
	"math"
	"testing"

	"github.com/gorender/core/mathutil"
)

func TestCylinderIntersect(t *testing.T) {
	c := NewCylinder(identityTransform(), 1, -1, 1, 2*math.Pi)
	ray := NewRay(mathutil.Vec3{X: -5, Y: 0, Z: 0}, mathutil.Vec3{X: 1, Y: 0, Z: 0})
	ray.TMax = math.Inf(1)
	thit, _, ok := c.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(thit-4) > 1e-9 {
		t.Errorf("thit = %v, want 4", thit)
	}
}

func TestCylinderMissOutsideZRange(t *testing.T) {
	c := NewCylinder(identityTransform(), 1, -1, 1, 2*math.Pi)
	ray := NewRay(mathutil.Vec3{X: -5, Y: 0, Z: 5}, mathutil.Vec3{X: 1, Y: 0, Z: 0})
	ray.TMax = math.Inf(1)
	if _, _, ok := c.Intersect(ray); ok {
		t.Error("expected a miss outside the clipped z range")
	}
}

func TestDiskIntersect(t *testing.T) {
	d := NewDisk(identityTransform(), 0, 2, 0, 2*math.Pi)
	ray := NewRay(mathutil.Vec3{X: 0.5, Y: 0.5, Z: -1}, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	ray.TMax = math.Inf(1)
	thit, dg, ok := d.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(thit-1) > 1e-9 {
		t.Errorf("thit = %v, want 1", thit)
	}
	if math.Abs(math.Abs(dg.Normal.Z)-1) > 1e-6 {
		t.Errorf("disk normal should point along z: %v", dg.Normal)
	}
}

func TestDiskMissOutsideRadius(t *testing.T) {
	d := NewDisk(identityTransform(), 0, 1, 0, 2*math.Pi)
	ray := NewRay(mathutil.Vec3{X: 5, Y: 0, Z: -1}, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	ray.TMax = math.Inf(1)
	if _, _, ok := d.Intersect(ray); ok {
		t.Error("expected a miss beyond the disk radius")
	}
}

func TestDiskInnerRadiusAnnulus(t *testing.T) {
	d := NewDisk(identityTransform(), 0, 2, 1, 2*math.Pi)
	ray := NewRay(mathutil.Vec3{X: 0.5, Y: 0, Z: -1}, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	ray.TMax = math.Inf(1)
	if _, _, ok := d.Intersect(ray); ok {
		t.Error("expected a miss inside the inner radius")
	}
}
