package geometry

import (
	"math"
	"testing"

	"github.com/gorender/core/mathutil"
)

func unitTriangleMesh() *TriangleMesh {
	positions := []mathutil.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	uvs := []mathutil.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 0, Y: 1},
	}
	indices := []uint32{0, 1, 2}
	return NewTriangleMesh(identityTransform(), indices, positions, nil, nil, uvs)
}

func TestTriangleIntersectHit(t *testing.T) {
	mesh := unitTriangleMesh()
	tri := mesh.Triangle(0)

	ray := NewRay(mathutil.Vec3{X: 0.2, Y: 0.2, Z: -1}, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	ray.TMax = math.Inf(1)

	thit, dg, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(thit-1) > 1e-9 {
		t.Errorf("thit = %v, want 1", thit)
	}
	wantN := mathutil.Vec3{X: 0, Y: 0, Z: 1}
	if dg.Normal.Sub(wantN).Length() > 1e-6 {
		t.Errorf("normal = %v, want %v", dg.Normal, wantN)
	}
}

func TestTriangleIntersectMiss(t *testing.T) {
	mesh := unitTriangleMesh()
	tri := mesh.Triangle(0)
	ray := NewRay(mathutil.Vec3{X: 5, Y: 5, Z: -1}, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	ray.TMax = math.Inf(1)
	if _, _, ok := tri.Intersect(ray); ok {
		t.Error("expected a miss outside the triangle")
	}
}

// TestTriangleBarycentricAtVertices is spec.md §8's barycentric
// interpolation invariant evaluated at the triangle's own vertices: the
// reconstructed UV must equal the per-vertex UV.
func TestTriangleBarycentricAtVertices(t *testing.T) {
	mesh := unitTriangleMesh()
	tri := mesh.Triangle(0)

	cases := []struct {
		origin mathutil.Vec3
		wantUV mathutil.Vec2
	}{
		{mathutil.Vec3{X: 0, Y: 0, Z: -1}, mathutil.Vec2{X: 0, Y: 0}},
		{mathutil.Vec3{X: 1, Y: 0, Z: -1}, mathutil.Vec2{X: 1, Y: 0}},
		{mathutil.Vec3{X: 0, Y: 1, Z: -1}, mathutil.Vec2{X: 0, Y: 1}},
	}
	for _, c := range cases {
		ray := NewRay(c.origin, mathutil.Vec3{X: 0, Y: 0, Z: 1})
		ray.TMax = math.Inf(1)
		_, dg, ok := tri.Intersect(ray)
		if !ok {
			t.Fatalf("expected a hit at vertex origin %v", c.origin)
		}
		if math.Abs(dg.UV.X-c.wantUV.X) > 1e-5 || math.Abs(dg.UV.Y-c.wantUV.Y) > 1e-5 {
			t.Errorf("UV at %v = %v, want %v", c.origin, dg.UV, c.wantUV)
		}
	}
}

func TestTriangleAreaAndMeshArea(t *testing.T) {
	mesh := unitTriangleMesh()
	tri := mesh.Triangle(0)
	if math.Abs(tri.Area()-0.5) > 1e-9 {
		t.Errorf("triangle area = %v, want 0.5", tri.Area())
	}
	if math.Abs(mesh.Area()-0.5) > 1e-9 {
		t.Errorf("mesh area = %v, want 0.5", mesh.Area())
	}
}

func TestMeshSampleOnPlane(t *testing.T) {
	mesh := unitTriangleMesh()
	p, n := mesh.Sample(0.3, 0.6)
	if math.Abs(p.Z) > 1e-9 {
		t.Errorf("sampled point off the triangle's plane: %v", p)
	}
	if math.Abs(math.Abs(n.Z)-1) > 1e-6 {
		t.Errorf("sampled normal not perpendicular to plane: %v", n)
	}
}
