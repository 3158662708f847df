package components

// PlayerComponent 标记玩家实体
type PlayerComponent struct {
	Kills int // 击杀数
	Score int // 累计得分
	// HitTimer 受击闪烁剩余时间（秒）
	HitTimer float64
}
