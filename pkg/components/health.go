package components

// HealthComponent 存储实体的生命值信息
// 用于玩家和僵尸
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// IsDead 生命值归零即视为死亡
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// TakeDamage 扣除生命值，不会低于 0
// 返回本次伤害是否致死
func (h *HealthComponent) TakeDamage(amount int) bool {
	if amount <= 0 || h.IsDead() {
		return false
	}
	h.CurrentHealth -= amount
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	return h.CurrentHealth == 0
}
