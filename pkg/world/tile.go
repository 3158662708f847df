// Package world 定义世界网格（TileGrid）及其可行走规则
//
// 网格在会话开始时由 mapgen 生成一次，之后只读。
// 所有需要查询地形的组件（碰撞、生成）都显式持有同一个 *Grid 引用，
// 不存在全局“当前网格”。
package world

import "fmt"

// Tile 地块类型编码
type Tile uint8

const (
	// Grass 空地
	Grass Tile = iota
	// Obstacle 障碍物（可通行，但会减速）
	Obstacle
	// Wall 墙体（不可通行）
	Wall
	// Floor 建筑内部地板（可通行）
	Floor
)

// OutOfBounds 越界查询返回的地块类型（视为森林边缘）
const OutOfBounds = Obstacle

// Tiles 所有地块类型
var Tiles = []Tile{Grass, Obstacle, Wall, Floor}

// String 返回地块名称，用于日志和调试输出
func (t Tile) String() string {
	switch t {
	case Grass:
		return "grass"
	case Obstacle:
		return "obstacle"
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// Walkable 报告实体中心点是否允许停留在该地块上
// Grass、Obstacle、Floor 可行走，Wall 不可行走
func (t Tile) Walkable() bool {
	return t == Grass || t == Obstacle || t == Floor
}

// Glyph 返回地块的单字符表示（mapdump / maptui 使用）
func (t Tile) Glyph() rune {
	switch t {
	case Grass:
		return '.'
	case Obstacle:
		return '%'
	case Wall:
		return '#'
	case Floor:
		return '_'
	}
	return '?'
}
