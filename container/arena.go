// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package container provides the allocation and layout primitives shared
// by the rasterizer and path tracer: a per-thread bump arena for
// transient, trivially-destructible allocations (BxDFs, clip-stage
// vertices), a cache-friendly blocked 2-D array for framebuffers and film
// blocks, and the discrete/continuous inverse-CDF samplers used by area
// lights and 2-D importance sampling.
package container

// defaultBlockSize is 32 KiB, matching spec.md §3 "Memory arena".
const defaultBlockSize = 32 * 1024

// arenaAlign is the alignment every allocation honors. 16 bytes is enough
// for a Vec4/RGB+weight pixel accumulator or an arena-allocated BxDF.
const arenaAlign = 16

// block is one chain link of the arena: a flat byte buffer plus an offset.
type block struct {
	buf    []byte
	offset int
}

func newBlock(size int) *block {
	return &block{buf: make([]byte, size)}
}

func (b *block) reset() { b.offset = 0 }

// alloc returns a 16-byte-aligned slice of n bytes from this block, or nil
// if it doesn't fit.
func (b *block) alloc(n int) []byte {
	aligned := (b.offset + arenaAlign - 1) &^ (arenaAlign - 1)
	if aligned+n > len(b.buf) {
		return nil
	}
	b.offset = aligned + n
	s := b.buf[aligned : aligned+n : aligned+n]
	clear(s) // a block reused after FreeAll still holds old bytes
	return s
}

// Arena is a bump allocator with a chain of cache-aligned blocks. It is
// built for the per-sample/per-draw-call allocation pattern in spec.md
// §4.1: allocate freely during one frame or one sample, then FreeAll to
// rewind everything in O(blocks) without running any destructors.
//
// Arena holds only trivially destructible data by convention — the Go
// equivalent of spec.md §9's "require BxDFs to be plain-old-data": never
// store a type in an Arena whose correctness depends on a finalizer or a
// Close method running.
//
// Arena is not safe for concurrent use. Spec.md §5 calls for one Arena
// per worker thread, reset between samples/draw calls.
type Arena struct {
	blockSize int
	current   *block
	used      []*block // blocks in use, current included, oldest first
	available []*block // blocks released by FreeAll, ready for reuse
}

// NewArena creates an arena whose normal-sized blocks are blockSize bytes.
// A blockSize of 0 uses the 32 KiB default.
func NewArena(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	a := &Arena{blockSize: blockSize}
	a.current = newBlock(blockSize)
	a.used = append(a.used, a.current)
	return a
}

// Alloc returns n bytes of 16-byte-aligned, zero-initialized memory valid
// until the next FreeAll. Requests larger than the block size get a
// dedicated oversized block (spec.md §4.1 block growth policy) that is
// not returned to the available list on FreeAll — oversized blocks are
// simply dropped and reallocated if needed again, since caching them would
// grow the available list unboundedly for a one-off large request.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	if buf := a.current.alloc(n); buf != nil {
		return buf
	}
	if n > a.blockSize-arenaAlign {
		big := newBlock(n + arenaAlign)
		big.alloc(n) // reserve alignment offset
		a.used = append(a.used, big)
		return big.buf[:n]
	}
	a.current = a.nextBlock()
	a.used = append(a.used, a.current)
	buf := a.current.alloc(n)
	return buf
}

// nextBlock pulls a reusable block off the available list, or allocates a
// fresh one — "released blocks are cached on an available list and reused
// before further system allocation" (spec.md §4.1).
func (a *Arena) nextBlock() *block {
	if n := len(a.available); n > 0 {
		b := a.available[n-1]
		a.available = a.available[:n-1]
		b.reset()
		return b
	}
	return newBlock(a.blockSize)
}

// FreeAll rewinds the arena to block zero. Pointers returned between two
// FreeAll calls remain valid until the next FreeAll; callers must not use
// a slice returned by Alloc after the following FreeAll (spec.md §4.1
// contract). No destructors run — see the Arena doc comment.
func (a *Arena) FreeAll() {
	if len(a.used) == 0 {
		return
	}
	a.used[0].reset()
	a.current = a.used[0]
	for _, b := range a.used[1:] {
		if len(b.buf) != a.blockSize {
			continue // oversized block: dropped, see Alloc
		}
		b.reset()
		a.available = append(a.available, b)
	}
	a.used = a.used[:1]
}

// BytesAllocated reports the number of bytes currently handed out across
// all blocks, for diagnostics/logging only.
func (a *Arena) BytesAllocated() int {
	total := 0
	for _, b := range a.used {
		total += b.offset
	}
	return total
}
