package spawn

import "math"

// PlayerStart 返回玩家出生点（实体中心）
//
// 地图中心可行走时直接使用；否则以一个地块为步长逐步扩大搜索半径，
// 返回最先找到的可行走位置。没有网格或整张地图都不可行走时返回 false。
func (f *Finder) PlayerStart() (Point, bool) {
	if f.grid == nil {
		return Point{}, false
	}

	w, h := f.grid.WorldSize()
	center := Point{X: w / 2, Y: h / 2}
	if f.grid.IsWalkable(center.X, center.Y) {
		return center, true
	}

	step := f.grid.TileSize()
	limit := math.Hypot(w, h) / 2
	for r := step; r <= limit+step; r += step {
		p, ok := f.FindPosition(Constraint{
			Reference:      center,
			MaxDistance:    r,
			MustBeWalkable: true,
		})
		if ok {
			return p, true
		}
	}
	return Point{}, false
}
