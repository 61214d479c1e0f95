package container

import "testing"

func TestBlockedArray2SetGet(t *testing.T) {
	a := NewBlockedArray2[int](10, 10, 2)
	for v := 0; v < 10; v++ {
		for u := 0; u < 10; u++ {
			a.Set(u, v, u*100+v)
		}
	}
	for v := 0; v < 10; v++ {
		for u := 0; u < 10; u++ {
			if got := a.Get(u, v); got != u*100+v {
				t.Fatalf("Get(%d,%d) = %d, want %d", u, v, got, u*100+v)
			}
		}
	}
}

func TestBlockedArray2InBounds(t *testing.T) {
	a := NewBlockedArray2[int](4, 4, 1)
	if !a.InBounds(0, 0) || !a.InBounds(3, 3) {
		t.Error("corner indices should be in bounds")
	}
	if a.InBounds(4, 0) || a.InBounds(-1, 0) {
		t.Error("out of range indices should not be in bounds")
	}
}

func TestBlockedArray2NonPowerOfTwoDims(t *testing.T) {
	a := NewBlockedArray2[float64](5, 7, 2)
	a.Set(4, 6, 3.14)
	if got := a.Get(4, 6); got != 3.14 {
		t.Fatalf("Get = %v, want 3.14", got)
	}
}
