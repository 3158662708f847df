package components

import "image/color"

// SpriteComponent 存储实体的视觉表现
// 实体以填充圆绘制，直径等于碰撞体宽度
type SpriteComponent struct {
	Color color.RGBA
}
