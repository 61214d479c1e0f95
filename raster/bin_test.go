package raster

import "testing"

func fullViewportTriangle() (ScreenVertex, ScreenVertex, ScreenVertex) {
	return ScreenVertex{X: -1000, Y: -1000, InvW: 1},
		ScreenVertex{X: 2000, Y: -1000, InvW: 1},
		ScreenVertex{X: 0, Y: 2000, InvW: 1}
}

func TestClassifyTileRejectsWhenOutsideOneEdge(t *testing.T) {
	a, b, c := triVerts() // small triangle near origin
	te := newTriangleEdges(a, b, c)
	_, reject := classifyTile(te, 1000, 1000, 1063, 1063)
	if !reject {
		t.Fatal("tile far from triangle bbox should be rejected")
	}
}

func TestClassifyTileAcceptsWhenTileFullyInside(t *testing.T) {
	a, b, c := fullViewportTriangle()
	te := newTriangleEdges(a, b, c)
	class, reject := classifyTile(te, 0, 0, 63, 63)
	if reject {
		t.Fatal("tile well inside the triangle must not be rejected")
	}
	if class != binAccept {
		t.Errorf("class = %v, want binAccept", class)
	}
}

func TestTileGridBinPlacesTriangleInOverlappingTilesOnly(t *testing.T) {
	grid := NewTileGrid(256, 256)
	// Small triangle confined to the top-left 10x10 pixels: only tile (0,0).
	a, b, c := triVerts()
	grid.Bin(a, b, c)

	if len(grid.Tile(0, 0)) != 1 {
		t.Fatalf("tile (0,0) has %d triangles, want 1", len(grid.Tile(0, 0)))
	}
	for ty := 0; ty < grid.TilesY; ty++ {
		for tx := 0; tx < grid.TilesX; tx++ {
			if tx == 0 && ty == 0 {
				continue
			}
			if len(grid.Tile(tx, ty)) != 0 {
				t.Errorf("tile (%d,%d) unexpectedly has %d triangles", tx, ty, len(grid.Tile(tx, ty)))
			}
		}
	}
}

func TestTileGridBinDropsTrianglesOutsideImage(t *testing.T) {
	grid := NewTileGrid(64, 64)
	a := ScreenVertex{X: 1000, Y: 1000}
	b := ScreenVertex{X: 1010, Y: 1000}
	c := ScreenVertex{X: 1000, Y: 1010}
	grid.Bin(a, b, c)

	for ty := 0; ty < grid.TilesY; ty++ {
		for tx := 0; tx < grid.TilesX; tx++ {
			if len(grid.Tile(tx, ty)) != 0 {
				t.Fatal("off-screen triangle should not be binned anywhere")
			}
		}
	}
}

func TestTileGridResetEmptiesEveryTile(t *testing.T) {
	grid := NewTileGrid(128, 128)
	a, b, c := triVerts()
	grid.Bin(a, b, c)
	grid.Reset()
	for ty := 0; ty < grid.TilesY; ty++ {
		for tx := 0; tx < grid.TilesX; tx++ {
			if len(grid.Tile(tx, ty)) != 0 {
				t.Fatal("Reset should empty every tile's queue")
			}
		}
	}
}
