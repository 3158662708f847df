package mapgen

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fallbackColor 调色板缺少某种地块时使用的颜色（醒目的洋红色，方便发现配置遗漏）
var fallbackColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Palette 地块类型 -> 候选颜色
type Palette map[world.Tile][]color.RGBA

// NewPalette 从配置中的 "地块名 -> 十六进制颜色列表" 构建调色板
func NewPalette(entries map[string][]string) (Palette, error) {
	p := make(Palette, len(world.Tiles))
	for _, tile := range world.Tiles {
		for _, s := range entries[tile.String()] {
			c, err := config.ParseHexColor(s)
			if err != nil {
				return nil, fmt.Errorf("palette %s: %w", tile, err)
			}
			p[tile] = append(p[tile], c)
		}
	}
	return p, nil
}

// pick 随机挑选一种颜色变体
func (p Palette) pick(t world.Tile, rng *rand.Rand) color.RGBA {
	variants := p[t]
	switch len(variants) {
	case 0:
		return fallbackColor
	case 1:
		return variants[0]
	}
	return variants[rng.Intn(len(variants))]
}

// shade 按比例调暗颜色
func shade(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// WorldImage 预渲染的整张世界图像
//
// 网格生成后只合成一次，之后每帧只需要把视口大小的区域贴到屏幕上，
// 而不是逐格绘制。1 个世界坐标单位对应 1 个像素。
type WorldImage struct {
	image    *ebiten.Image
	tileSize int
}

// NewWorldImage 把网格合成为一张图像
//
// 每格从调色板中随机挑选颜色变体；Obstacle 绘制为草地上的灌木，
// Wall 带描边，Floor 带木板缝。
func NewWorldImage(grid *world.Grid, palette Palette, rng *rand.Rand) *WorldImage {
	if rng == nil {
		rng = NewRand(0)
	}
	ts := int(math.Round(grid.TileSize()))
	if ts < 1 {
		ts = 1
	}

	w, h := grid.Width()*ts, grid.Height()*ts
	img := ebiten.NewImage(max(w, 1), max(h, 1))

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			drawTile(img, grid.At(col, row), col*ts, row*ts, ts, palette, rng)
		}
	}

	return &WorldImage{image: img, tileSize: ts}
}

// drawTile 绘制单个地块
func drawTile(dst *ebiten.Image, t world.Tile, x, y, ts int, palette Palette, rng *rand.Rand) {
	rect := image.Rect(x, y, x+ts, y+ts)
	cell := dst.SubImage(rect).(*ebiten.Image)
	fx, fy, fs := float32(x), float32(y), float32(ts)

	switch t {
	case world.Obstacle:
		cell.Fill(palette.pick(world.Grass, rng))
		bush := palette.pick(world.Obstacle, rng)
		vector.FillCircle(dst, fx+fs/2, fy+fs/2, fs*0.4, bush, false)
	case world.Wall:
		c := palette.pick(world.Wall, rng)
		cell.Fill(c)
		vector.StrokeRect(dst, fx+0.5, fy+0.5, fs-1, fs-1, 1, shade(c, 0.7), false)
	case world.Floor:
		c := palette.pick(world.Floor, rng)
		cell.Fill(c)
		if ts >= 4 {
			vector.StrokeLine(dst, fx, fy+fs/2, fx+fs, fy+fs/2, 1, shade(c, 0.85), false)
		}
	default:
		cell.Fill(palette.pick(t, rng))
	}
}

// Image 返回预渲染图像
func (w *WorldImage) Image() *ebiten.Image {
	return w.image
}

// Size 返回图像像素尺寸
func (w *WorldImage) Size() (int, int) {
	b := w.image.Bounds()
	return b.Dx(), b.Dy()
}

// Render 把相机可见的区域贴到屏幕上
//
// 参数:
//   - screen: 目标视口
//   - cameraX, cameraY: 相机左上角的世界坐标
//
// 相机超出世界范围时只绘制重叠部分，其余区域保持不变。
func (w *WorldImage) Render(screen *ebiten.Image, cameraX, cameraY float64) {
	if w == nil || w.image == nil {
		return
	}
	sb := screen.Bounds()
	x0 := int(math.Floor(cameraX))
	y0 := int(math.Floor(cameraY))

	viewportRect := image.Rect(x0, y0, x0+sb.Dx(), y0+sb.Dy())
	src := viewportRect.Intersect(w.image.Bounds())
	if src.Empty() {
		return
	}

	visible := w.image.SubImage(src).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(src.Min.X)-cameraX, float64(src.Min.Y)-cameraY)
	screen.DrawImage(visible, op)
}

// Dispose 释放图像占用的显存
func (w *WorldImage) Dispose() {
	if w == nil || w.image == nil {
		return
	}
	w.image.Deallocate()
	w.image = nil
}
