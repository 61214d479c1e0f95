package mathutil

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < epsilon }

func vec3AlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); !vec3AlmostEqual(got, V3(5, 7, 9)) {
		t.Errorf("Add = %+v, want {5 7 9}", got)
	}
	if got := b.Sub(a); !vec3AlmostEqual(got, V3(3, 3, 3)) {
		t.Errorf("Sub = %+v, want {3 3 3}", got)
	}
	if got := a.Mul(2); !vec3AlmostEqual(got, V3(2, 4, 6)) {
		t.Errorf("Mul = %+v, want {2 4 6}", got)
	}
	if got := a.Dot(b); !almostEqual(got, 32) {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	if got := x.Cross(y); !vec3AlmostEqual(got, V3(0, 0, 1)) {
		t.Errorf("Cross(x,y) = %+v, want {0 0 1}", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"unit x", V3(1, 0, 0)},
		{"arbitrary", V3(3, 4, 0)},
		{"zero", V3(0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if tt.v.LengthSq() == 0 {
				if !vec3AlmostEqual(n, tt.v) {
					t.Errorf("zero vector should normalize to itself, got %+v", n)
				}
				return
			}
			if !almostEqual(n.Length(), 1) {
				t.Errorf("Normalize() length = %v, want 1", n.Length())
			}
		})
	}
}

func TestVec3MaxDimension(t *testing.T) {
	tests := []struct {
		v    Vec3
		want int
	}{
		{V3(5, 1, 1), 0},
		{V3(1, 5, 1), 1},
		{V3(1, 1, 5), 2},
		{V3(-9, 1, 1), 0},
	}
	for _, tt := range tests {
		if got := tt.v.MaxDimension(); got != tt.want {
			t.Errorf("MaxDimension(%+v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestCoordinateSystemOrthonormal(t *testing.T) {
	dirs := []Vec3{V3(0, 0, 1), V3(0, 0, -1), V3(1, 0, 0).Normalize(), V3(1, 1, 1).Normalize()}
	for _, v1 := range dirs {
		t1, t2 := CoordinateSystem(v1)
		if !almostEqual(v1.Dot(t1), 0) || !almostEqual(v1.Dot(t2), 0) || !almostEqual(t1.Dot(t2), 0) {
			t.Errorf("CoordinateSystem(%+v) not orthogonal: t1=%+v t2=%+v", v1, t1, t2)
		}
		if !almostEqual(t1.Length(), 1) || !almostEqual(t2.Length(), 1) {
			t.Errorf("CoordinateSystem(%+v) not unit length", v1)
		}
	}
}

func TestReflect(t *testing.T) {
	// Incoming direction pointing away from surface, straight up, normal straight up.
	wo := V3(0, 0, 1)
	n := V3(0, 0, 1)
	got := wo.Reflect(n)
	if !vec3AlmostEqual(got, V3(0, 0, 1)) {
		t.Errorf("Reflect straight-on = %+v, want {0 0 1}", got)
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5,0,1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5,0,1) = %v, want 0", got)
	}
	if got := Lerp(0.5, 0, 10); !almostEqual(got, 5) {
		t.Errorf("Lerp(0.5,0,10) = %v, want 5", got)
	}
}
