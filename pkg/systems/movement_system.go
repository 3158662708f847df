package systems

import (
	"github.com/gonewx/deadlands/pkg/collision"
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
)

// MovementSystem 把所有实体的移动意图交给碰撞解算器
//
// 玩家和各种僵尸都经过同一个 Resolver，与墙体的交互只取决于体型和速度。
type MovementSystem struct {
	entityManager *ecs.EntityManager
	resolver      *collision.Resolver
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, resolver *collision.Resolver) *MovementSystem {
	return &MovementSystem{entityManager: em, resolver: resolver}
}

// Update 解算本帧所有实体的位移
func (s *MovementSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.BodyComponent, *components.MovementComponent](s.entityManager) {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		mv, _ := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)

		if mv.DirX == 0 && mv.DirY == 0 {
			mv.Moving, mv.Collided = false, false
			continue
		}

		x, y, collided := s.resolver.ResolveMovement(body.Body, mv.DirX, mv.DirY, dt, mv.EffectiveSpeed())
		mv.Moving = x != body.X || y != body.Y
		mv.Collided = collided
		body.X, body.Y = x, y
	}
}
