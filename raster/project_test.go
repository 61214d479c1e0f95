package raster

import (
	"math"
	"testing"

	"github.com/gorender/core/mathutil"
)

func TestProjectDividesByWAndMapsToViewport(t *testing.T) {
	v := Vertex{ClipPos: mathutil.V4(0.5, -0.5, 0.4, 2), NumVaryings: 1}
	v.Varyings[0] = 4 // premultiplied by w=2 upstream, so post-divide should read back as 2

	vp := Viewport{X0: 0, Y0: 0, Width: 200, Height: 100}
	sv := Project(v, vp)

	if math.Abs(sv.InvW-0.5) > 1e-9 {
		t.Errorf("InvW = %v, want 0.5", sv.InvW)
	}
	wantX := (0.25*0.5 + 0.5) * 200 // ndcX = 0.5/2 = 0.25
	if math.Abs(sv.X-wantX) > 1e-9 {
		t.Errorf("X = %v, want %v", sv.X, wantX)
	}
	// Y grows downward: ndcY = -0.25 maps to a larger screen Y than center.
	wantY := (1 - (-0.25*0.5 + 0.5)) * 100
	if math.Abs(sv.Y-wantY) > 1e-9 {
		t.Errorf("Y = %v, want %v", sv.Y, wantY)
	}
	// Varying was premultiplied by invW on the way out of Project.
	if math.Abs(sv.Varyings[0]-4*0.5) > 1e-9 {
		t.Errorf("Varyings[0] = %v, want %v", sv.Varyings[0], 4*0.5)
	}
}

// TestBackfaceCullWindingFlip is spec.md §8 scenario 6: a CCW triangle with
// cull=back, front_ccw=true rasterizes; flipping front_ccw=false culls it.
func TestBackfaceCullWindingFlip(t *testing.T) {
	a := ScreenVertex{X: 0, Y: 0}
	b := ScreenVertex{X: 0, Y: 10}
	c := ScreenVertex{X: 10, Y: 0}

	if BackfaceCull(a, b, c, CullBack, true) {
		t.Fatal("expected triangle to survive back-face cull with front_ccw=true")
	}
	if !BackfaceCull(a, b, c, CullBack, false) {
		t.Fatal("expected triangle to be culled once front_ccw is flipped to false")
	}
}

func TestBackfaceCullNoneNeverCulls(t *testing.T) {
	a := ScreenVertex{X: 0, Y: 0}
	b := ScreenVertex{X: 0, Y: 10}
	c := ScreenVertex{X: 10, Y: 0}
	if BackfaceCull(a, b, c, CullNone, true) || BackfaceCull(a, b, c, CullNone, false) {
		t.Fatal("CullNone must never cull")
	}
}

func TestBackfaceCullFrontModeIsInverseOfBack(t *testing.T) {
	a := ScreenVertex{X: 0, Y: 0}
	b := ScreenVertex{X: 0, Y: 10}
	c := ScreenVertex{X: 10, Y: 0}
	for _, frontCCW := range []bool{true, false} {
		back := BackfaceCull(a, b, c, CullBack, frontCCW)
		front := BackfaceCull(a, b, c, CullFront, frontCCW)
		if back == front {
			t.Errorf("frontCCW=%v: CullBack and CullFront agreed (%v); they must disagree for a non-degenerate triangle", frontCCW, back)
		}
	}
}
