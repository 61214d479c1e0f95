package raster

import "sync"

// TileSize is the edge length of a screen bin tile in pixels (spec.md
// §4.6 step 5: "64x64 tiles").
const TileSize = 64

// SubBlockSize is the edge length of a tile's rasterization sub-block
// (spec.md §4.6 step 6: "8x8 blocks").
const SubBlockSize = 8

// binClass is what a tile's relationship to a triangle's bounding box
// classifies to: fully inside the triangle's three half-spaces
// (trivial-accept, skip per-pixel testing), or only partially covered
// (spec.md §4.6 step 5: "encode (accept|partial) in the low bit").
type binClass int

const (
	binPartial binClass = iota
	binAccept
)

// BinnedTriangle is a triangle queued against one tile, carrying its
// screen-space vertices, half-space edge functions, and whether the tile
// trivially accepts it.
type BinnedTriangle struct {
	V0, V1, V2 ScreenVertex
	Edges      triangleEdges
	Class      binClass
}

// tileQueue holds every triangle binned against one tile. Tiles are
// written by the binning phase and read by the rasterization phase; those
// phases are pool.Wait-separated, so no synchronization is needed within
// a tile once binning completes (spec.md §5 "Per-tile triangle queues").
type tileQueue struct {
	mu   sync.Mutex
	tris []BinnedTriangle
}

// TileGrid partitions a width x height image into TileSize tiles and
// collects each tile's queued triangles.
type TileGrid struct {
	Width, Height int
	TilesX, TilesY int
	tiles          []tileQueue
}

// NewTileGrid creates the tile grid for a width x height render target.
func NewTileGrid(width, height int) *TileGrid {
	tx := (width + TileSize - 1) / TileSize
	ty := (height + TileSize - 1) / TileSize
	return &TileGrid{
		Width: width, Height: height,
		TilesX: tx, TilesY: ty,
		tiles: make([]tileQueue, tx*ty),
	}
}

// Reset empties every tile's queue, for reuse across draw calls.
func (g *TileGrid) Reset() {
	for i := range g.tiles {
		g.tiles[i].tris = g.tiles[i].tris[:0]
	}
}

// Tile returns the triangles queued against tile (tx,ty).
func (g *TileGrid) Tile(tx, ty int) []BinnedTriangle {
	return g.tiles[ty*g.TilesX+tx].tris
}

// Bin evaluates the three half-space functions at each overlapping tile's
// four corners and pushes the triangle onto every tile it touches,
// classifying each as trivial-accept or partial (spec.md §4.6 step 5).
// Triangles whose bbox lies entirely outside the image are silently
// dropped, completing the clip+cull pipeline's final reject stage.
func (g *TileGrid) Bin(v0, v1, v2 ScreenVertex) {
	minX := minFloat(v0.X, v1.X, v2.X)
	maxX := maxFloat(v0.X, v1.X, v2.X)
	minY := minFloat(v0.Y, v1.Y, v2.Y)
	maxY := maxFloat(v0.Y, v1.Y, v2.Y)

	if maxX < 0 || maxY < 0 || minX >= float64(g.Width) || minY >= float64(g.Height) {
		return
	}

	tx0 := clampInt(int(minX)/TileSize, 0, g.TilesX-1)
	tx1 := clampInt(int(maxX)/TileSize, 0, g.TilesX-1)
	ty0 := clampInt(int(minY)/TileSize, 0, g.TilesY-1)
	ty1 := clampInt(int(maxY)/TileSize, 0, g.TilesY-1)

	edges := newTriangleEdges(v0, v1, v2)

	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			x0, y0 := tx*TileSize, ty*TileSize
			x1, y1 := x0+TileSize-1, y0+TileSize-1
			class, reject := classifyTile(edges, x0, y0, x1, y1)
			if reject {
				continue
			}
			bt := BinnedTriangle{V0: v0, V1: v1, V2: v2, Edges: edges, Class: class}
			q := &g.tiles[ty*g.TilesX+tx]
			q.mu.Lock()
			q.tris = append(q.tris, bt)
			q.mu.Unlock()
		}
	}
}

// classifyTile evaluates each of the triangle's three half-space
// functions at the tile's four corners. If any edge has all four corners
// strictly outside, the tile can be rejected outright; if every edge has
// all four corners inside, the tile is a trivial accept; otherwise it is
// partial (spec.md §4.6 step 5).
func classifyTile(te triangleEdges, x0, y0, x1, y1 int) (class binClass, reject bool) {
	corners := [4][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}}
	allAccept := true
	for _, e := range te.e {
		allOutside := true
		for _, c := range corners {
			if e.evalAt(c[0], c[1]) >= 0 {
				allOutside = false
			} else {
				allAccept = false
			}
		}
		if allOutside {
			return binPartial, true
		}
	}
	if allAccept {
		return binAccept, false
	}
	return binPartial, false
}

func minFloat(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
