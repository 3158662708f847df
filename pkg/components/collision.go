package components

import "github.com/gonewx/deadlands/pkg/collision"

// BodyComponent 实体在世界中的碰撞体
// X/Y 是包围盒左上角的世界坐标，Width/Height 为包围盒尺寸。
// 墙体碰撞只检测中心点，实体之间按以宽度为直径的圆检测。
type BodyComponent struct {
	collision.Body
}
