package components

// MovementComponent 描述实体本帧的移动意图和上一帧的结果
//
// 控制系统（玩家输入、僵尸追踪）只写入 DirX/DirY/SpeedScale，
// MovementSystem 统一调用碰撞解算，所有实体与墙体的交互因此一致。
type MovementComponent struct {
	DirX, DirY float64 // 期望方向，不要求归一化；零向量表示不移动
	Speed      float64 // 基础速度（像素/秒）
	SpeedScale float64 // 地形等造成的速度倍率，0 视为 1

	Moving   bool // 上一帧是否产生了位移
	Collided bool // 上一帧是否被墙完全挡住
}

// EffectiveSpeed 返回应用倍率后的速度
func (m *MovementComponent) EffectiveSpeed() float64 {
	if m.SpeedScale <= 0 {
		return m.Speed
	}
	return m.Speed * m.SpeedScale
}

// Stop 清除移动意图
func (m *MovementComponent) Stop() {
	m.DirX, m.DirY = 0, 0
}
