package collision

import "math"

// Terrain 碰撞解析需要的地形查询
// *world.Grid 实现了该接口（nil *world.Grid 处处可行走）
type Terrain interface {
	IsWalkable(x, y float64) bool
}

// Resolver 地形碰撞解析器（CollisionResolver）
//
// 所有实体（玩家、各种僵尸）都通过同一个 Resolver 移动，
// 因此它们与墙体的交互完全一致，只是速度和体型不同。
type Resolver struct {
	terrain Terrain
}

// NewResolver 创建碰撞解析器
// terrain 为 nil 时不做任何地形限制
func NewResolver(terrain Terrain) *Resolver {
	return &Resolver{terrain: terrain}
}

// blocked 检查以 (x, y) 为左上角时实体中心是否落在不可行走的位置
//
// 只检测中心点：实体在视觉上可以与墙体边缘重叠最多半个身位。
func (r *Resolver) blocked(b Body, x, y float64) bool {
	if r == nil || r.terrain == nil {
		return false
	}
	return !r.terrain.IsWalkable(x+b.Width/2, y+b.Height/2)
}

// ResolveMovement 沿轴分离的滑动碰撞解析（resolve_movement）
//
// 参数:
//   - b: 当前包围盒
//   - dirX, dirY: 移动方向（不要求单位长度，内部会归一化）
//   - dt: 帧时间（秒）
//   - speed: 速度（世界单位/秒）
//
// 返回:
//   - x, y: 新的左上角坐标
//   - collided: 非零的移动请求完全没有产生位移时为 true
//
// 先只尝试 X 方向；X 被挡时改为只走 Y（保持原 X）。
// 再在已确定的 X 上检查 Y；Y 被挡时退回原 Y，只保留 X 方向的移动。
// 因此斜向撞进 L 形墙角时会沿其中一个轴滑动，而不是被完全挡住。
func (r *Resolver) ResolveMovement(b Body, dirX, dirY, dt, speed float64) (x, y float64, collided bool) {
	length := math.Hypot(dirX, dirY)
	if length == 0 || math.IsNaN(length) {
		return b.X, b.Y, false
	}

	moveX := dirX / length * speed * dt
	moveY := dirY / length * speed * dt
	if moveX == 0 && moveY == 0 {
		return b.X, b.Y, false
	}

	newX, newY := b.X+moveX, b.Y+moveY

	if r.blocked(b, newX, b.Y) {
		newX = b.X
		if r.blocked(b, newX, newY) {
			return b.X, b.Y, true
		}
	}

	if r.blocked(b, newX, newY) {
		newY = b.Y
		if r.blocked(b, newX, newY) {
			return b.X, b.Y, true
		}
	}

	if newX == b.X && newY == b.Y {
		return b.X, b.Y, true
	}
	return newX, newY, false
}

// ResolveBody 与 ResolveMovement 相同，直接返回移动后的包围盒
func (r *Resolver) ResolveBody(b Body, dirX, dirY, dt, speed float64) (Body, bool) {
	x, y, collided := r.ResolveMovement(b, dirX, dirY, dt, speed)
	return b.At(x, y), collided
}
