package world

import (
	"math"
	"testing"
)

func TestTileAtOutOfBounds(t *testing.T) {
	g := NewGrid(10, 8, 32)

	tests := []struct {
		name string
		x, y float64
	}{
		{"左侧越界", -1, 10},
		{"上方越界", 10, -0.5},
		{"右侧越界", 320, 10},
		{"下方越界", 10, 256},
		{"远处越界", 1e9, -1e9},
		{"NaN 坐标", math.NaN(), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.TileAt(tt.x, tt.y); got != OutOfBounds {
				t.Errorf("TileAt(%v, %v) = %v, want %v", tt.x, tt.y, got, OutOfBounds)
			}
			if g.IsWalkable(tt.x, tt.y) {
				t.Errorf("IsWalkable(%v, %v) should be false outside the map", tt.x, tt.y)
			}
		})
	}
}

func TestTileAtConvertsWorldCoordinates(t *testing.T) {
	g := NewGrid(4, 4, 32)
	g.Set(2, 1, Wall)

	if got := g.TileAt(64, 32); got != Wall {
		t.Errorf("TileAt(64, 32) = %v, want wall", got)
	}
	if got := g.TileAt(95.9, 63.9); got != Wall {
		t.Errorf("TileAt(95.9, 63.9) = %v, want wall", got)
	}
	if got := g.TileAt(96, 32); got != Grass {
		t.Errorf("TileAt(96, 32) = %v, want grass", got)
	}
}

func TestWalkabilityRule(t *testing.T) {
	tests := []struct {
		tile Tile
		want bool
	}{
		{Grass, true},
		{Obstacle, true},
		{Floor, true},
		{Wall, false},
	}

	for _, tt := range tests {
		t.Run(tt.tile.String(), func(t *testing.T) {
			g := NewGrid(1, 1, 10)
			g.Set(0, 0, tt.tile)
			if got := g.IsWalkable(5, 5); got != tt.want {
				t.Errorf("IsWalkable on %v = %v, want %v", tt.tile, got, tt.want)
			}
		})
	}
}

func TestNilGridIsPermissive(t *testing.T) {
	var g *Grid

	if !g.IsWalkable(123, -456) {
		t.Error("nil grid should be walkable everywhere")
	}
	if got := g.TileAt(0, 0); got != Grass {
		t.Errorf("nil grid TileAt = %v, want grass", got)
	}
	if w, h := g.WorldSize(); w != 0 || h != 0 {
		t.Errorf("nil grid WorldSize = (%v, %v), want (0, 0)", w, h)
	}
	if got := g.SpeedMultiplierAt(1, 1, 0.5); got != 1 {
		t.Errorf("nil grid SpeedMultiplierAt = %v, want 1", got)
	}
	// 写入不应崩溃
	g.Set(0, 0, Wall)
}

func TestSetIgnoresOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3, 1)
	g.Set(-1, 0, Wall)
	g.Set(3, 3, Wall)
	if n := g.Count(Wall); n != 0 {
		t.Errorf("expected no walls after out-of-bounds writes, got %d", n)
	}
}

func TestParseGridRoundTrip(t *testing.T) {
	rows := []string{
		"..%#",
		"_#..",
	}
	g, err := ParseGrid(rows, 16)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	if g.Width() != 4 || g.Height() != 2 {
		t.Fatalf("unexpected size %dx%d", g.Width(), g.Height())
	}
	got := g.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], rows[i])
		}
	}

	if _, err := ParseGrid([]string{"...", ".."}, 16); err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := ParseGrid([]string{".x."}, 16); err == nil {
		t.Error("expected error for unknown glyph")
	}
}

func TestSpeedMultiplierAt(t *testing.T) {
	g, _ := ParseGrid([]string{".%_"}, 10)

	if got := g.SpeedMultiplierAt(5, 5, 0.6); got != 1 {
		t.Errorf("grass multiplier = %v, want 1", got)
	}
	if got := g.SpeedMultiplierAt(15, 5, 0.6); got != 0.6 {
		t.Errorf("obstacle multiplier = %v, want 0.6", got)
	}
	if got := g.SpeedMultiplierAt(25, 5, 0.6); got != 1 {
		t.Errorf("floor multiplier = %v, want 1", got)
	}
}

func TestReachable(t *testing.T) {
	g, _ := ParseGrid([]string{
		"..#..",
		"..#..",
		"#####",
		".....",
	}, 1)

	seen := g.Reachable(0, 0)
	if !seen[1*5+1] {
		t.Error("(1,1) should be reachable from (0,0)")
	}
	if seen[0*5+3] {
		t.Error("(3,0) is behind a wall and should not be reachable")
	}
	if seen[3*5+0] {
		t.Error("bottom row should not be reachable")
	}

	if got := g.Reachable(2, 0); got[0] {
		t.Error("flood fill starting on a wall should reach nothing")
	}
}
