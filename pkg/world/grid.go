package world

import "math"

// Grid 世界网格（height × width 个地块）
//
// 生命周期：
//   - 由 mapgen.Generator 在会话开始时创建并填充
//   - 生成结束后只读，游戏过程中不会再改写任何地块
//
// nil *Grid 是合法的：在网格初始化之前发起的查询会得到宽松的默认值
// （处处可行走），而不是空指针崩溃。
type Grid struct {
	width    int
	height   int
	tileSize float64
	cells    []Tile
}

// NewGrid 创建一个全部为 Grass 的网格
//
// 参数:
//   - width, height: 网格尺寸（单位：格）
//   - tileSize: 每格边长（单位：像素/世界坐标）
func NewGrid(width, height int, tileSize float64) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if tileSize <= 0 {
		tileSize = 1
	}
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		cells:    make([]Tile, width*height),
	}
}

// Width 网格宽度（格）
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

// Height 网格高度（格）
func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// TileSize 每格边长（世界坐标）
func (g *Grid) TileSize() float64 {
	if g == nil {
		return 1
	}
	return g.tileSize
}

// WorldSize 返回整个世界的像素尺寸
func (g *Grid) WorldSize() (w, h float64) {
	if g == nil {
		return 0, 0
	}
	return float64(g.width) * g.tileSize, float64(g.height) * g.tileSize
}

// InBounds 检查格子坐标是否在网格范围内
func (g *Grid) InBounds(col, row int) bool {
	if g == nil {
		return false
	}
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// At 返回格子坐标处的地块，越界返回 OutOfBounds
func (g *Grid) At(col, row int) Tile {
	if g == nil {
		return Grass
	}
	if !g.InBounds(col, row) {
		return OutOfBounds
	}
	return g.cells[row*g.width+col]
}

// Set 写入格子坐标处的地块，越界写入被忽略
// 只有地图生成阶段会调用
func (g *Grid) Set(col, row int, t Tile) {
	if !g.InBounds(col, row) {
		return
	}
	g.cells[row*g.width+col] = t
}

// WorldToTile 将世界坐标转换为格子坐标（向下取整）
// NaN 与无穷大坐标映射到 (-1, -1)，即越界
func (g *Grid) WorldToTile(x, y float64) (col, row int) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return -1, -1
	}
	ts := g.TileSize()
	return int(math.Floor(x / ts)), int(math.Floor(y / ts))
}

// TileCenter 返回格子中心的世界坐标
func (g *Grid) TileCenter(col, row int) (x, y float64) {
	ts := g.TileSize()
	return (float64(col) + 0.5) * ts, (float64(row) + 0.5) * ts
}

// TileAt 返回世界坐标处的地块（get_tile_at）
//
// 越界坐标返回 OutOfBounds（Obstacle），调用者无需事先做边界检查。
// 网格未初始化（nil）时返回 Grass。
func (g *Grid) TileAt(x, y float64) Tile {
	if g == nil {
		return Grass
	}
	col, row := g.WorldToTile(x, y)
	return g.At(col, row)
}

// IsWalkable 检查世界坐标是否可行走（is_walkable）
//
// 越界坐标不可行走：世界边界由网格自身强制执行，
// 实体控制器不需要再单独做地图尺寸钳制。
// 网格未初始化（nil）时处处可行走。
func (g *Grid) IsWalkable(x, y float64) bool {
	if g == nil {
		return true
	}
	col, row := g.WorldToTile(x, y)
	if !g.InBounds(col, row) {
		return false
	}
	return g.cells[row*g.width+col].Walkable()
}

// Count 统计某种地块的数量
func (g *Grid) Count(t Tile) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Rows 以字符串形式导出网格（每行一个字符串），用于调试和测试
func (g *Grid) Rows() []string {
	if g == nil {
		return nil
	}
	rows := make([]string, g.height)
	buf := make([]rune, g.width)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			buf[c] = g.cells[r*g.width+c].Glyph()
		}
		rows[r] = string(buf)
	}
	return rows
}
