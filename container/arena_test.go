package container

import "testing"

func TestArenaAllocBasic(t *testing.T) {
	a := NewArena(0)
	buf := a.Alloc(64)
	if len(buf) != 64 {
		t.Fatalf("Alloc(64) returned %d bytes", len(buf))
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("freshly allocated arena memory should be zeroed")
		}
	}
}

func TestArenaFreeAllRewinds(t *testing.T) {
	a := NewArena(256)
	buf1 := a.Alloc(64)
	buf1[0] = 0xFF
	before := a.BytesAllocated()
	if before == 0 {
		t.Fatal("expected non-zero bytes allocated")
	}
	a.FreeAll()
	if a.BytesAllocated() != 0 {
		t.Fatalf("BytesAllocated after FreeAll = %d, want 0", a.BytesAllocated())
	}
	buf2 := a.Alloc(64)
	if buf2[0] != 0 {
		t.Fatal("memory reused after FreeAll should read as zero again")
	}
}

func TestArenaOversizedBlock(t *testing.T) {
	a := NewArena(128)
	buf := a.Alloc(4096)
	if len(buf) != 4096 {
		t.Fatalf("oversized Alloc returned %d bytes, want 4096", len(buf))
	}
}

func TestArenaMultipleBlocksReused(t *testing.T) {
	a := NewArena(64)
	// Force several block rollovers.
	for i := 0; i < 10; i++ {
		a.Alloc(48)
	}
	blocksAfterFirstPass := len(a.used)
	a.FreeAll()
	for i := 0; i < 10; i++ {
		a.Alloc(48)
	}
	if len(a.used) > blocksAfterFirstPass {
		t.Errorf("second pass grew block chain from %d to %d; expected reuse via available list",
			blocksAfterFirstPass, len(a.used))
	}
}

func TestAllocTTyped(t *testing.T) {
	type pair struct{ A, B int64 }
	a := NewArena(0)
	s := AllocT[pair](a, 4)
	if len(s) != 4 {
		t.Fatalf("AllocT returned len %d, want 4", len(s))
	}
	s[2].A = 42
	if s[2].A != 42 {
		t.Fatal("write to typed arena slice did not persist")
	}
}
