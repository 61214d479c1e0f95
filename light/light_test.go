package light

import (
	"math"
	"testing"

	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

type nopOccluder struct{ blocked bool }

func (o nopOccluder) IntersectP(geometry.Ray) bool { return o.blocked }

func TestPointLightIsDeltaWithUnitPdf(t *testing.T) {
	pl := PointLight{P: mathutil.Vec3{X: 0, Y: 0, Z: 2}, Intensity: mathutil.RGB{R: 1, G: 1, B: 1}}
	if !pl.IsDelta() {
		t.Error("PointLight.IsDelta() = false, want true")
	}
	wi, li, pdf, _ := pl.SampleLi(mathutil.Vec3{}, 0, 0)
	if pdf != 1 {
		t.Errorf("pdf = %v, want 1", pdf)
	}
	if pl.Pdf(mathutil.Vec3{}, wi) != 0 {
		t.Error("delta light Pdf() should always be 0")
	}
	want := mathutil.Vec3{X: 0, Y: 0, Z: 1}
	if wi.Sub(want).Length() > 1e-9 {
		t.Errorf("wi = %v, want %v", wi, want)
	}
	if math.Abs(li.R-0.25) > 1e-9 {
		t.Errorf("li.R = %v, want 0.25 (1/2^2)", li.R)
	}
}

func TestDirectionalLightConstantRadianceAnyDistance(t *testing.T) {
	dl := DirectionalLight{Direction: mathutil.Vec3{X: 0, Y: 0, Z: 1}, Radiance: mathutil.RGB{R: 2, G: 2, B: 2}}
	_, li1, _, _ := dl.SampleLi(mathutil.Vec3{}, 0, 0)
	_, li2, _, _ := dl.SampleLi(mathutil.Vec3{X: 1000}, 0, 0)
	if li1 != li2 {
		t.Errorf("radiance should not depend on point, got %v and %v", li1, li2)
	}
}

func TestVisibilityTesterBlockedByOccluder(t *testing.T) {
	vis := VisibilityTester{P0: mathutil.Vec3{}, P1: mathutil.Vec3{X: 0, Y: 0, Z: 5}}
	if vis.Unoccluded(nopOccluder{blocked: true}) {
		t.Error("Unoccluded() = true with a blocking occluder, want false")
	}
	if !vis.Unoccluded(nopOccluder{blocked: false}) {
		t.Error("Unoccluded() = false with no occluder, want true")
	}
}

func TestAreaLightEmitsOnlyFromFrontFace(t *testing.T) {
	al := AreaLight{Le: mathutil.RGB{R: 5, G: 5, B: 5}}
	n := mathutil.Vec3{X: 0, Y: 0, Z: 1}
	front := al.Emit(n, mathutil.Vec3{X: 0, Y: 0, Z: 1})
	back := al.Emit(n, mathutil.Vec3{X: 0, Y: 0, Z: -1})
	if front != al.Le {
		t.Errorf("front-face emission = %v, want %v", front, al.Le)
	}
	if !back.IsBlack() {
		t.Errorf("back-face emission = %v, want black", back)
	}
}

func TestAreaLightPowerScalesWithArea(t *testing.T) {
	small := AreaLight{Shape: constAreaShape{area: 1}, Le: mathutil.RGB{R: 1, G: 1, B: 1}}
	big := AreaLight{Shape: constAreaShape{area: 4}, Le: mathutil.RGB{R: 1, G: 1, B: 1}}
	if big.Power(0).R <= small.Power(0).R {
		t.Errorf("larger-area light should have more power: big=%v small=%v", big.Power(0), small.Power(0))
	}
}

// constAreaShape is a minimal geometry.Shape stub exercising only the
// methods AreaLight needs.
type constAreaShape struct{ area float64 }

func (constAreaShape) LocalBound() mathutil.AABB { return mathutil.AABB{} }
func (constAreaShape) WorldBound() mathutil.AABB { return mathutil.AABB{} }
func (constAreaShape) Intersect(geometry.Ray) (float64, geometry.DifferentialGeometry, bool) {
	return 0, geometry.DifferentialGeometry{}, false
}
func (constAreaShape) IntersectP(geometry.Ray) bool { return false }
func (s constAreaShape) Area() float64              { return s.area }
func (constAreaShape) Sample(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	return mathutil.Vec3{}, mathutil.Vec3{X: 0, Y: 0, Z: 1}
}
func (constAreaShape) Pdf(mathutil.Vec3) float64 { return 1 }
func (constAreaShape) SampleFrom(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	return mathutil.Vec3{X: 0, Y: 0, Z: 1}, mathutil.Vec3{X: 0, Y: 0, Z: 1}
}
func (constAreaShape) PdfFrom(pt, wi mathutil.Vec3) float64 { return 1 }
