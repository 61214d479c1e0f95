package raster

// vertexCacheSize is the direct-mapped post-transform vertex cache's entry
// count, spec.md §4.6 step 1: "a direct-mapped vertex cache of 16 entries
// keyed by index & 15". Per-thread only (spec.md §5: "Vertex cache:
// per-thread (no sharing)").
const vertexCacheSize = 16

// vertexCache memoizes the most recently transformed vertex at each of 16
// slots, so a shared index within a small working set skips re-running the
// vertex shader.
type vertexCache struct {
	tag   [vertexCacheSize]uint32
	valid [vertexCacheSize]bool
	vtx   [vertexCacheSize]Vertex
}

func newVertexCache() *vertexCache {
	return &vertexCache{}
}

// fetch returns the cached vertex for index if present (a cache hit), or
// runs decode+vs to produce one, stores it at index&15, and returns it.
func (c *vertexCache) fetch(index uint32, decode func(uint32) VertexInput, vs VertexShader) Vertex {
	slot := index & (vertexCacheSize - 1)
	if c.valid[slot] && c.tag[slot] == index {
		return c.vtx[slot]
	}
	v := vs(decode(index))
	c.tag[slot] = index
	c.valid[slot] = true
	c.vtx[slot] = v
	return v
}

// reset clears every slot, used between draw calls that rebind vertex
// streams (a stale cache entry would otherwise read the wrong buffer).
func (c *vertexCache) reset() {
	for i := range c.valid {
		c.valid[i] = false
	}
}
