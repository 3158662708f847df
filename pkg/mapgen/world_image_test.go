package mapgen

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewPalette(t *testing.T) {
	t.Run("默认调色板", func(t *testing.T) {
		p, err := NewPalette(config.DefaultWorldConfig().Palette)
		if err != nil {
			t.Fatalf("NewPalette failed: %v", err)
		}
		for _, tile := range world.Tiles {
			if len(p[tile]) == 0 {
				t.Errorf("no colors for %v", tile)
			}
		}
		if len(p[world.Wall]) != 5 {
			t.Errorf("wall variants = %d, want 5", len(p[world.Wall]))
		}
	})

	t.Run("颜色格式错误", func(t *testing.T) {
		if _, err := NewPalette(map[string][]string{"grass": {"#zzzzzz"}}); err == nil {
			t.Error("expected error for invalid color")
		}
	})

	t.Run("缺少地块时使用兜底颜色", func(t *testing.T) {
		p, err := NewPalette(map[string][]string{"grass": {"#00ff00"}})
		if err != nil {
			t.Fatalf("NewPalette failed: %v", err)
		}
		rng := rand.New(rand.NewSource(1))
		if c := p.pick(world.Wall, rng); c != fallbackColor {
			t.Errorf("missing wall color should fall back, got %v", c)
		}
		if c := p.pick(world.Grass, rng); c != (color.RGBA{G: 0xff, A: 0xff}) {
			t.Errorf("single variant should always be used, got %v", c)
		}
	})
}

func TestWorldImageRender(t *testing.T) {
	grid, err := world.ParseGrid([]string{
		"%%%%%%%%",
		"%..##..%",
		"%.#__#.%",
		"%.#__#.%",
		"%..#_#.%",
		"%%%%%%%%",
	}, 8)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	palette, err := NewPalette(config.DefaultWorldConfig().Palette)
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}

	img := NewWorldImage(grid, palette, rand.New(rand.NewSource(1)))
	defer img.Dispose()

	w, h := img.Size()
	if w != 64 || h != 48 {
		t.Errorf("image size = %dx%d, want 64x48", w, h)
	}

	screen := ebiten.NewImage(32, 24)
	cameras := []struct {
		name string
		x, y float64
	}{
		{"左上角", 0, 0},
		{"中间", 16, 12},
		{"小数偏移", 10.5, 3.25},
		{"超出右下角", 50, 40},
		{"完全在世界之外", 500, 500},
		{"负偏移", -20, -20},
	}
	for _, cam := range cameras {
		t.Run(cam.name, func(t *testing.T) {
			img.Render(screen, cam.x, cam.y)
		})
	}
}

func TestWorldImageNilSafe(t *testing.T) {
	var img *WorldImage
	screen := ebiten.NewImage(4, 4)
	img.Render(screen, 0, 0)
	img.Dispose()
}
