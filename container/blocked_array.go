package container

// BlockedArray2 is a 2-D array of T laid out in power-of-two tiles of
// side 1<<logBlock, so that rasterization and film-resolve access patterns
// stay cache-local (spec.md §3 "Blocked 2-D array", §4.2).
//
// Index math: ((vBlk*uBlocks + uBlk) * B^2 + vOff*B + uOff), exactly as
// spec.md §4.2 specifies.
type BlockedArray2[T any] struct {
	uRes, vRes int
	uBlocks    int
	logBlock   uint
	data       []T
}

// NewBlockedArray2 creates a uRes x vRes blocked array with tiles of side
// 1<<logBlock (2 => 4x4 tiles, matching the teacher's sparse-strips tile
// size; callers needing the rasterizer's 64x64 screen tiles pass 6).
func NewBlockedArray2[T any](uRes, vRes int, logBlock uint) *BlockedArray2[T] {
	b := 1 << logBlock
	uBlocks := roundUpDiv(uRes, b)
	vBlocks := roundUpDiv(vRes, b)
	return &BlockedArray2[T]{
		uRes:     uRes,
		vRes:     vRes,
		uBlocks:  uBlocks,
		logBlock: logBlock,
		data:     make([]T, uBlocks*vBlocks*b*b),
	}
}

func roundUpDiv(a, b int) int { return (a + b - 1) / b }

func (a *BlockedArray2[T]) block(off int) int { return off >> a.logBlock }
func (a *BlockedArray2[T]) offset(off int) int {
	mask := (1 << a.logBlock) - 1
	return off & mask
}

// index computes the storage offset for (u, v). Out-of-bounds access is a
// programming error and is only checked in debug builds by callers that
// want the panic (spec.md §3 invariant: "indexing out of bounds is a
// programming error (asserted debug)").
func (a *BlockedArray2[T]) index(u, v int) int {
	bu, bv := a.block(u), a.block(v)
	ou, ov := a.offset(u), a.offset(v)
	b := 1 << a.logBlock
	return (bv*a.uBlocks+bu)*b*b + ov*b + ou
}

// At returns a pointer to the element at (u, v) for in-place mutation.
func (a *BlockedArray2[T]) At(u, v int) *T {
	return &a.data[a.index(u, v)]
}

// Get returns the element at (u, v) by value.
func (a *BlockedArray2[T]) Get(u, v int) T { return a.data[a.index(u, v)] }

// Set stores val at (u, v).
func (a *BlockedArray2[T]) Set(u, v int, val T) { a.data[a.index(u, v)] = val }

func (a *BlockedArray2[T]) Width() int  { return a.uRes }
func (a *BlockedArray2[T]) Height() int { return a.vRes }

// InBounds reports whether (u, v) is a valid index.
func (a *BlockedArray2[T]) InBounds(u, v int) bool {
	return u >= 0 && u < a.uRes && v >= 0 && v < a.vRes
}
