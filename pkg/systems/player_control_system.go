package systems

import (
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
)

// DirectionSource 提供玩家期望的移动方向
// 键盘、手柄或测试脚本都可以实现该接口
type DirectionSource interface {
	MoveDirection() (dx, dy float64)
}

// PlayerControlSystem 把输入方向写入玩家的移动意图
type PlayerControlSystem struct {
	entityManager *ecs.EntityManager
	input         DirectionSource
}

// NewPlayerControlSystem 创建玩家控制系统
func NewPlayerControlSystem(em *ecs.EntityManager, input DirectionSource) *PlayerControlSystem {
	return &PlayerControlSystem{entityManager: em, input: input}
}

// Update 读取输入并更新所有玩家实体的移动方向
func (s *PlayerControlSystem) Update() {
	dx, dy := 0.0, 0.0
	if s.input != nil {
		dx, dy = s.input.MoveDirection()
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.MovementComponent](s.entityManager) {
		mv, _ := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)
		mv.DirX, mv.DirY = dx, dy
	}
}
