package raster

import "github.com/gorender/core/schedule"

// PixelShader runs once per surviving fragment. Returning ok=false
// discards the fragment before the depth test (a PS "discard").
type PixelShader func(f Fragment) (color RGBA, ok bool)

// DrawState bundles the fixed-function state a Draw call needs beyond the
// shaders themselves.
type DrawState struct {
	Viewport  Viewport
	Cull      CullMode
	FrontCCW  bool
	DepthFunc DepthFunc
	DepthWrite bool
	Blend     BlendState
	Target    *FrameBuffer
	ColorSlot int
}

// Pipeline runs the full state machine spec.md §4.6 describes: input
// assembly through a per-thread vertex cache, a user vertex shader, clip,
// project+cull, bin to tiles, tile rasterization, and a pixel stage with
// depth test and blend (spec.md §4.6 steps 1-7).
type Pipeline struct {
	pool *schedule.Pool
}

// NewPipeline creates a Pipeline dispatching tile work across pool.
func NewPipeline(pool *schedule.Pool) *Pipeline {
	return &Pipeline{pool: pool}
}

// Draw rasterizes indices[start:start+count] (taken three at a time) as
// a triangle list.
func (p *Pipeline) Draw(indices []uint32, start, count int, decode func(uint32) VertexInput, vs VertexShader, ps PixelShader, state DrawState) {
	if !state.Target.bound {
		panic("gorender: draw without a bound framebuffer")
	}

	grid := NewTileGrid(int(state.Viewport.Width), int(state.Viewport.Height))
	cache := newVertexCache()

	for i := start; i+3 <= start+count; i += 3 {
		a := cache.fetch(indices[i], decode, vs)
		b := cache.fetch(indices[i+1], decode, vs)
		c := cache.fetch(indices[i+2], decode, vs)

		clipped := ClipTriangle(a, b, c)
		if len(clipped) < 3 {
			continue
		}
		// Fan-triangulate the clipped polygon (spec.md §4.6 step 3 yields
		// 0, 3, 4, or 5 vertices; a convex fan reconstructs the triangle
		// list from any of those counts).
		for k := 1; k+1 < len(clipped); k++ {
			p0 := Project(clipped[0], state.Viewport)
			p1 := Project(clipped[k], state.Viewport)
			p2 := Project(clipped[k+1], state.Viewport)
			if BackfaceCull(p0, p1, p2, state.Cull, state.FrontCCW) {
				continue
			}
			grid.Bin(p0, p1, p2)
		}
	}

	target := state.Target
	color := target.Color(state.ColorSlot)
	depth := target.Depth()

	p.pool.ParallelFor(grid.TilesX*grid.TilesY, func(idx int) {
		tx, ty := idx%grid.TilesX, idx/grid.TilesX
		tris := grid.Tile(tx, ty)
		if len(tris) == 0 {
			return
		}
		x0, y0 := tx*TileSize, ty*TileSize
		x1 := minInt(x0+TileSize-1, grid.Width-1)
		y1 := minInt(y0+TileSize-1, grid.Height-1)

		RasterizeTile(tris, x0, y0, x1, y1, func(f Fragment) {
			p.shadeFragment(f, ps, state, color, depth)
		})
	})
}

func (p *Pipeline) shadeFragment(f Fragment, ps PixelShader, state DrawState, color, depth *Attachment) {
	c, ok := ps(f)
	if !ok {
		return
	}

	if depth != nil {
		stored := depth.GetDepth(f.X, f.Y)
		if !state.DepthFunc.Passes(f.Z, stored) {
			return
		}
		if state.DepthWrite {
			depth.SetDepth(f.X, f.Y, f.Z)
		}
	}

	if color == nil {
		return
	}
	dst := color.Get(f.X, f.Y)
	color.Set(f.X, f.Y, state.Blend.Apply(c, dst))
}
