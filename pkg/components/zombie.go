package components

import (
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/types"
)

// ZombieComponent 僵尸的种类数据和行为状态
//
// 所有种类共用同一组件，差异只来自 Stats。
type ZombieComponent struct {
	Species types.Species
	Stats   config.SpeciesStats

	// AttackTimer 攻击冷却剩余时间（秒），<= 0 时可以攻击
	AttackTimer float64
	// AttackAnimTimer 攻击动作剩余时间，期间僵尸不移动
	AttackAnimTimer float64
	// AttackAngle 发起攻击时朝向玩家的角度（弧度）
	AttackAngle float64

	// Stuck 卡住检测状态
	Stuck spawn.StuckDetector
}

// IsAttacking 是否处于攻击动作中
func (z *ZombieComponent) IsAttacking() bool {
	return z.AttackAnimTimer > 0
}
