package mathutil

import (
	"math"
	"testing"
)

func TestIdentityTransformPoint(t *testing.T) {
	p := V3(1, 2, 3)
	if got := Identity().TransformPoint(p); !vec3AlmostEqual(got, p) {
		t.Errorf("Identity().TransformPoint(%+v) = %+v", p, got)
	}
}

func TestTranslation(t *testing.T) {
	m := Translation(V3(10, 20, 30))
	got := m.TransformPoint(V3(1, 1, 1))
	want := V3(11, 21, 31)
	if !vec3AlmostEqual(got, want) {
		t.Errorf("Translation().TransformPoint = %+v, want %+v", got, want)
	}
	// Translation must not affect vectors.
	if got := m.TransformVector(V3(1, 1, 1)); !vec3AlmostEqual(got, V3(1, 1, 1)) {
		t.Errorf("Translation().TransformVector = %+v, want unchanged", got)
	}
}

func TestScale(t *testing.T) {
	m := ScaleMat(V3(2, 3, 4))
	got := m.TransformPoint(V3(1, 1, 1))
	want := V3(2, 3, 4)
	if !vec3AlmostEqual(got, want) {
		t.Errorf("Scale().TransformPoint = %+v, want %+v", got, want)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	got := m.TransformPoint(V3(1, 0, 0))
	want := V3(0, 1, 0)
	if !vec3AlmostEqual(got, want) {
		t.Errorf("RotateZ(90deg)*{1,0,0} = %+v, want %+v", got, want)
	}
}

func TestRotateAxisIdentityOnZeroAngle(t *testing.T) {
	m := RotateAxis(V3(0, 0, 1), 0)
	p := V3(3, 4, 5)
	if got := m.TransformPoint(p); !vec3AlmostEqual(got, p) {
		t.Errorf("RotateAxis(axis,0) should be identity, got %+v", got)
	}
}

func TestMatMulComposition(t *testing.T) {
	// tr.Mul(s) scales first, then translates (m*n applies n first).
	s := ScaleMat(V3(2, 2, 2))
	tr := Translation(V3(1, 0, 0))
	combined := tr.Mul(s)
	got := combined.TransformPoint(V3(1, 0, 0))
	want := V3(3, 0, 0) // scale to (2,0,0) then translate by (1,0,0)
	if !vec3AlmostEqual(got, want) {
		t.Errorf("Mul composition = %+v, want %+v", got, want)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tests := []Mat4{
		Identity(),
		Translation(V3(5, -3, 2)),
		ScaleMat(V3(2, 0.5, 4)),
		RotateY(1.234),
		Translation(V3(1, 2, 3)).Mul(RotateX(0.5)).Mul(ScaleMat(V3(1, 2, 3))),
	}
	p := V3(1.5, -2.5, 0.75)
	for i, m := range tests {
		inv := m.Inverse()
		roundTrip := inv.TransformPoint(m.TransformPoint(p))
		if !vec3AlmostEqual(roundTrip, p) {
			t.Errorf("case %d: inverse round trip = %+v, want %+v", i, roundTrip, p)
		}
	}
}

func TestSwapsHandedness(t *testing.T) {
	if Identity().SwapsHandedness() {
		t.Error("identity should not swap handedness")
	}
	if got := ScaleMat(V3(-1, 1, 1)).SwapsHandedness(); !got {
		t.Error("single-axis mirror should swap handedness")
	}
}

func TestAABBTransform(t *testing.T) {
	b := AABB{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	got := b.Transform(Translation(V3(5, 0, 0)))
	want := AABB{Min: V3(4, -1, -1), Max: V3(6, 1, 1)}
	if !vec3AlmostEqual(got.Min, want.Min) || !vec3AlmostEqual(got.Max, want.Max) {
		t.Errorf("AABB.Transform = %+v, want %+v", got, want)
	}
}
