package spawn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/deadlands/pkg/mapgen"
	"github.com/gonewx/deadlands/pkg/world"
)

func filledGrid(w, h int, tileSize float64, t world.Tile) *world.Grid {
	g := world.NewGrid(w, h, tileSize)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			g.Set(col, row, t)
		}
	}
	return g
}

func within(d, lo, hi float64) bool {
	eps := 1e-6
	return d >= lo-eps && d <= hi+eps
}

func TestFindPositionSatisfiesConstraint(t *testing.T) {
	res := mapgen.NewGenerator(nil, nil).Generate(rand.New(rand.NewSource(11)))
	grid := res.Grid
	w, h := grid.WorldSize()
	finder := NewFinder(grid, rand.New(rand.NewSource(12)))

	var peers []Point
	found := 0
	for i := 0; i < 500; i++ {
		ref := Point{X: finder.Rand().Float64() * w, Y: finder.Rand().Float64() * h}
		c := Constraint{
			Reference:      ref,
			MinDistance:    600,
			MaxDistance:    1200,
			MinSeparation:  40,
			Peers:          peers,
			MustBeWalkable: true,
		}
		p, ok := finder.FindPosition(c)
		if !ok {
			continue
		}
		found++

		if !grid.IsWalkable(p.X, p.Y) {
			t.Fatalf("position (%.1f, %.1f) is not walkable", p.X, p.Y)
		}
		if d := p.Dist(ref); !within(d, c.MinDistance, c.MaxDistance) {
			t.Fatalf("position at distance %.3f, want [%v, %v]", d, c.MinDistance, c.MaxDistance)
		}
		for _, peer := range peers {
			if p.Dist(peer) < c.MinSeparation {
				t.Fatalf("position (%.1f, %.1f) is %.1f from a peer", p.X, p.Y, p.Dist(peer))
			}
		}
		peers = append(peers, p)
	}

	if found < 100 {
		t.Errorf("only %d/500 searches succeeded on a mostly open map", found)
	}
}

func TestFindPositionExhaustsBudget(t *testing.T) {
	t.Run("全是墙", func(t *testing.T) {
		finder := NewFinder(filledGrid(20, 20, 10, world.Wall), rand.New(rand.NewSource(1)))
		_, ok := finder.FindPosition(Constraint{
			Reference: Point{X: 100, Y: 100}, MinDistance: 10, MaxDistance: 50, MustBeWalkable: true,
		})
		if ok {
			t.Error("expected no position on an all-wall map")
		}
	})

	t.Run("环形区域完全在地图之外", func(t *testing.T) {
		finder := NewFinder(world.NewGrid(10, 10, 10), rand.New(rand.NewSource(1)))
		// 地图 100×100，参考点在左上角，最小距离 500：钳制后的点都离参考点太近
		_, ok := finder.FindPosition(Constraint{
			Reference: Point{X: 0, Y: 0}, MinDistance: 500, MaxDistance: 600, MustBeWalkable: true, Attempts: 50,
		})
		if ok {
			t.Error("clamped candidates must be rejected when they leave the annulus")
		}
	})

	t.Run("同伴占满了空间", func(t *testing.T) {
		finder := NewFinder(world.NewGrid(10, 10, 10), rand.New(rand.NewSource(1)))
		_, ok := finder.FindPosition(Constraint{
			Reference: Point{X: 50, Y: 50}, MinDistance: 0, MaxDistance: 20,
			MinSeparation: 100, Peers: []Point{{X: 50, Y: 50}},
		})
		if ok {
			t.Error("expected separation to reject every candidate")
		}
	})
}

func TestFindPositionScatter(t *testing.T) {
	grid := world.NewGrid(40, 40, 16)
	// 中间一栋 6×6 的建筑
	for row := 15; row < 21; row++ {
		for col := 15; col < 21; col++ {
			grid.Set(col, row, world.Floor)
		}
	}
	for col := 15; col < 21; col++ {
		grid.Set(col, 15, world.Wall)
		grid.Set(col, 20, world.Wall)
	}
	finder := NewFinder(grid, rand.New(rand.NewSource(3)))

	c := Constraint{
		MustBeWalkable:    true,
		AllowedTiles:      []world.Tile{world.Grass},
		BuildingClearance: 64,
		Margin:            8,
		Attempts:          50,
	}
	w, h := grid.WorldSize()
	found := 0
	for i := 0; i < 300; i++ {
		p, ok := finder.FindPosition(c)
		if !ok {
			continue
		}
		found++
		if grid.TileAt(p.X, p.Y) != world.Grass {
			t.Fatalf("scatter point (%.1f, %.1f) is on %v", p.X, p.Y, grid.TileAt(p.X, p.Y))
		}
		if p.X < 8 || p.Y < 8 || p.X > w-8 || p.Y > h-8 {
			t.Fatalf("scatter point (%.1f, %.1f) violates the map margin", p.X, p.Y)
		}
		// 建筑占据 [240, 336) 像素，检查范围覆盖到的格子不能与它相交
		if p.X+64 >= 240 && p.X-64 < 336 && p.Y+64 >= 240 && p.Y-64 < 336 {
			t.Fatalf("scatter point (%.1f, %.1f) is too close to the building", p.X, p.Y)
		}
	}
	if found < 100 {
		t.Errorf("only %d/300 scatter searches succeeded", found)
	}
}

func TestFindPositionNilGrid(t *testing.T) {
	finder := NewFinder(nil, rand.New(rand.NewSource(1)))

	if _, ok := finder.FindPosition(Constraint{MustBeWalkable: true}); ok {
		t.Error("scatter mode needs map bounds")
	}

	p, ok := finder.FindPosition(Constraint{
		Reference: Point{X: -1000, Y: -1000}, MinDistance: 10, MaxDistance: 20, MustBeWalkable: true,
	})
	if !ok {
		t.Fatal("nil grid should be permissive in annulus mode")
	}
	if d := p.Dist(Point{X: -1000, Y: -1000}); !within(d, 10, 20) {
		t.Errorf("distance %.3f outside [10, 20]", d)
	}
}

func TestFindPositionDeterministic(t *testing.T) {
	grid := world.NewGrid(50, 50, 10)
	c := Constraint{Reference: Point{X: 250, Y: 250}, MinDistance: 50, MaxDistance: 150, MustBeWalkable: true}

	a, _ := NewFinder(grid, rand.New(rand.NewSource(99))).FindPosition(c)
	b, _ := NewFinder(grid, rand.New(rand.NewSource(99))).FindPosition(c)
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestFinderClampStaysInsideMap(t *testing.T) {
	grid := world.NewGrid(10, 10, 10)
	finder := NewFinder(grid, nil)

	p := finder.clamp(Point{X: 1e6, Y: -5}, 0)
	if p.Y != 0 || p.X >= 100 || math.Abs(p.X-100) > 1e-9 {
		t.Errorf("clamp = %v", p)
	}
	if !grid.IsWalkable(p.X, p.Y) {
		t.Error("clamped point on the far edge should still be inside the grid")
	}
}
