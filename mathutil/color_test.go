package mathutil

import "testing"

func TestRGBXYZRoundTrip(t *testing.T) {
	colors := []RGB{
		NewRGB(1, 1, 1),
		NewRGB(0.5, 0.25, 0.75),
		NewRGB(0, 0, 0),
		NewRGB(1, 0, 0),
	}
	for _, c := range colors {
		back := c.ToXYZ().ToRGB()
		if !almostEqual(back.R, c.R) || !almostEqual(back.G, c.G) || !almostEqual(back.B, c.B) {
			t.Errorf("RGB->XYZ->RGB roundtrip: got %+v, want %+v", back, c)
		}
	}
}

func TestIsBlack(t *testing.T) {
	if !NewRGB(0, 0, 0).IsBlack() {
		t.Error("zero color should be black")
	}
	if NewRGB(0.001, 0, 0).IsBlack() {
		t.Error("non-zero color should not be black")
	}
}

func TestLuminanceWhiteIsOne(t *testing.T) {
	if got := NewRGB(1, 1, 1).Luminance(); !almostEqual(got, 1) {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
}

func TestClampRGB(t *testing.T) {
	c := NewRGB(-1, 0.5, 2).Clamp(0, 1)
	if c.R != 0 || c.G != 0.5 || c.B != 1 {
		t.Errorf("Clamp = %+v, want {0 0.5 1}", c)
	}
}
