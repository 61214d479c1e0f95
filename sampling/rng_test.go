package sampling

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("sample %d diverged: %v != %v", i, va, vb)
		}
	}
}

func TestRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	if same {
		t.Fatal("distinct seeds produced identical streams")
	}
}

func TestRNGFloat64Range(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want [0,1)", v)
		}
	}
}

func TestSeedForTileDeterministic(t *testing.T) {
	a := SeedForTile(123, 4, 5)
	b := SeedForTile(123, 4, 5)
	if a != b {
		t.Fatalf("SeedForTile not deterministic: %v != %v", a, b)
	}
}

func TestSeedForTileVariesByTile(t *testing.T) {
	seeds := map[uint64]bool{}
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			seeds[SeedForTile(1, x, y)] = true
		}
	}
	if len(seeds) != 64 {
		t.Fatalf("expected 64 distinct seeds, got %d", len(seeds))
	}
}
