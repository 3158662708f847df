// Package collision 处理实体与地形、实体与实体之间的碰撞
//
// 这里不保存任何实体引用：调用者传入当前位置和期望移动，得到新的坐标。
// 地形只通过 Terrain 接口查询，网格由调用者显式注入。
package collision

import "math"

// Body 可碰撞实体的最小形状（MovableBody）
//
// X、Y 是包围盒左上角的世界坐标。
type Body struct {
	X, Y          float64
	Width, Height float64
}

// Center 返回包围盒中心
func (b Body) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Radius 以宽度为直径的近似圆半径
func (b Body) Radius() float64 {
	return b.Width / 2
}

// At 返回移动到新左上角坐标后的副本
func (b Body) At(x, y float64) Body {
	b.X, b.Y = x, y
	return b
}

// CenterDistance 返回两个包围盒中心之间的距离
func CenterDistance(a, b Body) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	return math.Hypot(ax-bx, ay-by)
}
