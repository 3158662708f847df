package collision

import "math"

// PickupRadiusMultiplier 拾取物的判定半径倍率
const PickupRadiusMultiplier = 2.0

// CheckEntityCollision 两个实体的圆形重叠检测（check_entity_collision）
//
// 两者都视为以包围盒中心为圆心、宽度为直径的圆，
// 圆心距离小于半径之和即视为碰撞。只做粗检测，不做碰撞响应。
func CheckEntityCollision(a, b Body) bool {
	return CheckEntityCollisionScaled(a, b, 1)
}

// CheckEntityCollisionScaled 带判定半径倍率的圆形重叠检测
// 拾取物使用 PickupRadiusMultiplier
func CheckEntityCollisionScaled(a, b Body, multiplier float64) bool {
	return CenterDistance(a, b) < (a.Width+b.Width)/2*multiplier
}

// CheckEntityListCollision 检查实体是否与列表中任意一个实体碰撞（check_entity_list_collision）
// 返回第一个命中的下标；没有命中时返回 -1, false
func CheckEntityListCollision(a Body, list []Body) (int, bool) {
	for i, other := range list {
		if CheckEntityCollision(a, other) {
			return i, true
		}
	}
	return -1, false
}

// peerPush 计算 body 被 other 推开的位移
//
// 圆心距离小于 2×radius 时，沿两者连线方向推开 (2×radius - d) × 0.5，
// 另一半由对方在自己的那次计算中承担。距离为 0（包括自己）时不推。
func peerPush(bx, by float64, other Body, minDistance float64) (px, py float64) {
	ox, oy := other.Center()
	dx, dy := bx-ox, by-oy
	d := math.Hypot(dx, dy)
	if d <= 0 || d >= minDistance {
		return 0, 0
	}
	force := (minDistance - d) * 0.5
	return dx / d * force, dy / d * force
}

// CheckPeerCollisions 同类实体之间的分离修正（check_zombie_collisions）
//
// 对 peers 中每个与 body 过近的实体累加推开位移，返回修正后的左上角坐标。
// peers 可以包含 body 自身。逐对比较，复杂度 O(n)；对全体执行一次是 O(n²)，
// 种群较大时改用 PeerGrid。
func CheckPeerCollisions(body Body, peers []Body, radius float64) (x, y float64) {
	bx, by := body.Center()
	minDistance := radius * 2
	x, y = body.X, body.Y
	for _, other := range peers {
		px, py := peerPush(bx, by, other, minDistance)
		x += px
		y += py
	}
	return x, y
}
