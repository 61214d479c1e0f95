package trace

import (
	"math"
	"testing"

	"github.com/gorender/core/geometry"
	"github.com/gorender/core/light"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/shading"
)

type boundedStub struct{ bound mathutil.AABB }

func (b boundedStub) Intersect(ray geometry.Ray) (float64, geometry.DifferentialGeometry, bool) {
	return 0, geometry.DifferentialGeometry{}, false
}
func (b boundedStub) IntersectP(ray geometry.Ray) bool { return false }
func (b boundedStub) WorldBound() mathutil.AABB        { return b.bound }

func TestSceneBoundingSphereRadiusIsHalfTheDiagonal(t *testing.T) {
	scene := &Scene{Accel: boundedStub{bound: mathutil.AABB{
		Min: mathutil.Vec3{X: -1, Y: -1, Z: -1},
		Max: mathutil.Vec3{X: 1, Y: 1, Z: 1},
	}}}
	want := mathutil.Vec3{X: 2, Y: 2, Z: 2}.Length() / 2
	if got := scene.BoundingSphereRadius(); math.Abs(got-want) > 1e-12 {
		t.Errorf("BoundingSphereRadius = %v, want %v", got, want)
	}
}

func TestSceneMaterialForReturnsNilWhenUnbound(t *testing.T) {
	shape := geometry.NewSphere(geometry.NewTransform(mathutil.Identity(), false), 1, -1, 1, 2*math.Pi)
	scene := &Scene{Accel: boundedStub{}, Materials: map[geometry.Shape]shading.Material{}}
	if m := scene.MaterialFor(shape); m != nil {
		t.Errorf("MaterialFor on an unbound shape = %v, want nil", m)
	}
}

func TestSceneMaterialForReturnsBoundMaterial(t *testing.T) {
	shape := geometry.NewSphere(geometry.NewTransform(mathutil.Identity(), false), 1, -1, 1, 2*math.Pi)
	mat := shading.Matte{Kd: shading.ConstantTexture{Value: mathutil.RGB{R: 1}}}
	scene := &Scene{Accel: boundedStub{}, Materials: map[geometry.Shape]shading.Material{shape: mat}}
	if got := scene.MaterialFor(shape); got != mat {
		t.Errorf("MaterialFor = %v, want %v", got, mat)
	}
}

func TestSceneEnvironmentRadianceSumsInfiniteLights(t *testing.T) {
	scene := &Scene{
		Accel: boundedStub{},
		Infinite: []light.Light{
			light.DirectionalLight{Direction: mathutil.Vec3{X: 0, Y: -1, Z: 0}, Radiance: mathutil.RGB{R: 0.5, G: 0.5, B: 0.5}},
			light.DirectionalLight{Direction: mathutil.Vec3{X: 0, Y: -1, Z: 0}, Radiance: mathutil.RGB{R: 0.25, G: 0.25, B: 0.25}},
		},
	}
	ray := geometry.NewRay(mathutil.Vec3{}, mathutil.Vec3{X: 0, Y: 1, Z: 0})
	got := scene.EnvironmentRadiance(ray)
	if math.Abs(got.R-0.75) > 1e-9 {
		t.Errorf("EnvironmentRadiance.R = %v, want 0.75", got.R)
	}
}
