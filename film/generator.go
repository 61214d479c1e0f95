package film

import "sync"

// BlockGenerator hands out non-overlapping rectangular regions in a
// deterministic centre-out spiral so two worker threads never receive
// overlapping blocks (spec.md §3: "A BlockGenerator hands out rectangular
// FilmBlocks in a centre-out spiral; two worker threads must never receive
// overlapping blocks", §4.9: "BlockGenerator.next is protected by a
// mutex; the spiral pattern is deterministic").
type BlockGenerator struct {
	width, height int
	blockSize     int

	mu     sync.Mutex
	blocks []blockRect
	next   int
}

type blockRect struct{ x0, y0, x1, y1 int }

// NewBlockGenerator precomputes the full centre-out spiral of blockSize
// tiles over a width x height image. Precomputing (rather than generating
// lazily) keeps Next O(1) and trivially deterministic regardless of how
// many goroutines call it concurrently.
func NewBlockGenerator(width, height, blockSize int) *BlockGenerator {
	g := &BlockGenerator{width: width, height: height, blockSize: blockSize}
	g.blocks = spiralBlocks(width, height, blockSize)
	return g
}

// Next returns the next block in the spiral and true, or false once every
// block has been handed out. Safe for concurrent use.
func (g *BlockGenerator) Next() (x0, y0, x1, y1 int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next >= len(g.blocks) {
		return 0, 0, 0, 0, false
	}
	b := g.blocks[g.next]
	g.next++
	return b.x0, b.y0, b.x1, b.y1, true
}

// Count returns the total number of blocks this generator will hand out.
func (g *BlockGenerator) Count() int { return len(g.blocks) }

// spiralBlocks computes the tile grid covering width x height and orders
// it centre-out by spiralTileOrder.
func spiralBlocks(width, height, blockSize int) []blockRect {
	nx := (width + blockSize - 1) / blockSize
	ny := (height + blockSize - 1) / blockSize
	if nx == 0 || ny == 0 {
		return nil
	}

	order := spiralTileOrder(nx, ny)
	blocks := make([]blockRect, 0, nx*ny)
	for _, t := range order {
		x0 := t[0] * blockSize
		y0 := t[1] * blockSize
		x1 := minInt(x0+blockSize, width)
		y1 := minInt(y0+blockSize, height)
		blocks = append(blocks, blockRect{x0, y0, x1, y1})
	}
	return blocks
}

// spiralTileOrder returns every (tx,ty) in [0,nx)x[0,ny), ordered by
// increasing Chebyshev distance from the grid's centre tile — a simple,
// deterministic centre-out visiting order (ties broken by a fixed scan),
// standing in for the original's ring-walk spiral without reproducing its
// exact turn sequence.
func spiralTileOrder(nx, ny int) [][2]int {
	cx, cy := (nx-1)/2, (ny-1)/2
	order := make([][2]int, 0, nx*ny)
	for d := 0; ; d++ {
		found := false
		for ty := 0; ty < ny; ty++ {
			for tx := 0; tx < nx; tx++ {
				if chebyshev(tx-cx, ty-cy) == d {
					order = append(order, [2]int{tx, ty})
					found = true
				}
			}
		}
		if len(order) >= nx*ny {
			break
		}
		if !found && d > nx+ny {
			break
		}
	}
	return order
}

func chebyshev(x, y int) int {
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	if x > y {
		return x
	}
	return y
}
