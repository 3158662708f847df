package systems

import (
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/spawn"
)

// StuckSystem 把卡在墙后追不上玩家的僵尸重新安置到屏幕外、离玩家更近的位置
type StuckSystem struct {
	entityManager *ecs.EntityManager
	spawner       *spawn.Spawner
	cfg           config.StuckConfig

	relocated int
}

// NewStuckSystem 创建卡住检测系统
func NewStuckSystem(em *ecs.EntityManager, spawner *spawn.Spawner, cfg config.StuckConfig) *StuckSystem {
	return &StuckSystem{entityManager: em, spawner: spawner, cfg: cfg}
}

// Update 推进每只僵尸的卡住检测
// 找不到新位置时僵尸留在原地，检测重新计时
func (s *StuckSystem) Update(dt float64) {
	_, player, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ZombieComponent, *components.BodyComponent](s.entityManager) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)

		pos := centerOf(body)
		if !zombie.Stuck.Check(dt, pos, player, s.cfg) {
			continue
		}

		if dest, ok := s.spawner.Relocate(pos, player); ok {
			moveCenterTo(body, dest)
			pos = dest
			s.relocated++
		}
		zombie.Stuck.Reset(pos)
	}
}

// Relocated 返回累计重新安置的次数
func (s *StuckSystem) Relocated() int {
	return s.relocated
}
