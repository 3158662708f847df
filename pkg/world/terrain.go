package world

import "fmt"

// SpeedMultiplierAt 返回世界坐标处的移动速度倍率
// 位于 Obstacle 上时返回 obstacleMultiplier，其余返回 1
func (g *Grid) SpeedMultiplierAt(x, y, obstacleMultiplier float64) float64 {
	if g == nil {
		return 1
	}
	if g.TileAt(x, y) == Obstacle {
		return obstacleMultiplier
	}
	return 1
}

// ParseGrid 从字符画构建网格，字符与 Tile.Glyph 对应
//
// 主要用于测试和工具：
//
//	g, _ := world.ParseGrid([]string{
//	    "....",
//	    ".##.",
//	}, 32)
func ParseGrid(rows []string, tileSize float64) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0, tileSize), nil
	}
	width := len([]rune(rows[0]))
	g := NewGrid(width, len(rows), tileSize)
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", r, len(runes), width)
		}
		for c, ch := range runes {
			t, ok := tileFromGlyph(ch)
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown tile glyph %q", r, c, ch)
			}
			g.Set(c, r, t)
		}
	}
	return g, nil
}

func tileFromGlyph(ch rune) (Tile, bool) {
	switch ch {
	case '.':
		return Grass, true
	case '%':
		return Obstacle, true
	case '#':
		return Wall, true
	case '_':
		return Floor, true
	}
	return Grass, false
}

// Reachable 从起点格子做四邻域洪泛填充，返回每个格子是否可达
// 可行走地块之间可以互相到达，Wall 阻断
func (g *Grid) Reachable(col, row int) []bool {
	if g == nil {
		return nil
	}
	seen := make([]bool, len(g.cells))
	if !g.InBounds(col, row) || !g.At(col, row).Walkable() {
		return seen
	}

	stack := [][2]int{{col, row}}
	seen[row*g.width+col] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nc, nr := p[0]+d[0], p[1]+d[1]
			if !g.InBounds(nc, nr) {
				continue
			}
			idx := nr*g.width + nc
			if seen[idx] || !g.cells[idx].Walkable() {
				continue
			}
			seen[idx] = true
			stack = append(stack, [2]int{nc, nr})
		}
	}
	return seen
}
