package container

import "unsafe"

// AllocT returns a default-initialized slice of n T values carved out of
// the arena, implementing spec.md §4.1's "alloc<T>(n) -> &mut[T]". T must
// be a fixed-size, pointer-free (or at least arena-lifetime-safe) value
// type — the BxDF set in package shading is the primary consumer, and it
// is plain data by construction (spec.md §9).
func AllocT[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	buf := a.Alloc(size * n)
	if buf == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// New allocates room for a single T and returns a pointer to it, zeroed.
func New[T any](a *Arena) *T {
	s := AllocT[T](a, 1)
	if s == nil {
		return nil
	}
	return &s[0]
}
