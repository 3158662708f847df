// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerDeadZone 指针距离锚点小于该值（屏幕像素）时不移动
const PointerDeadZone = 8.0

// MoveInput 把键盘和指针（鼠标左键 / 触摸）统一成一个移动方向
//
// 键盘优先：WASD 或方向键有任一按下时忽略指针。
// 否则按住指针时朝指针方向移动，方向相对于 Anchor 返回的屏幕位置（通常是玩家）。
type MoveInput struct {
	// Anchor 返回玩家在屏幕上的位置，nil 时不使用指针输入
	Anchor func() (x, y float64)
}

// MoveDirection 实现 systems.DirectionSource
func (in *MoveInput) MoveDirection() (dx, dy float64) {
	dx, dy = KeyboardDirection()
	if dx != 0 || dy != 0 || in == nil || in.Anchor == nil {
		return dx, dy
	}

	pressed, px, py := GetPointerState()
	if !pressed {
		return 0, 0
	}
	ax, ay := in.Anchor()
	return PointerDirection(float64(px), float64(py), ax, ay, PointerDeadZone)
}

// KeyboardDirection 读取 WASD / 方向键，返回各分量为 -1、0、1 的方向
func KeyboardDirection() (dx, dy float64) {
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	return dx, dy
}

// PointerDirection 返回从锚点指向指针的单位向量
// 距离不超过 deadZone 时返回零向量
func PointerDirection(px, py, ax, ay, deadZone float64) (dx, dy float64) {
	dx, dy = px-ax, py-ay
	d := math.Hypot(dx, dy)
	if d <= deadZone {
		return 0, 0
	}
	return dx / d, dy / d
}

// GetPointerState 获取指针的完整状态
// 优先检查触摸，返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}
