package systems

import (
	"math"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/world"
)

// steeringDeadZone 离玩家小于该距离时僵尸停下，避免原地抖动
const steeringDeadZone = 5.0

// ZombieSteeringSystem 僵尸直线追踪玩家
//
// 只设置移动意图：方向指向玩家中心，站在 Obstacle 上时速度乘以减速倍率。
// 攻击动作期间僵尸停下。实际位移由 MovementSystem 统一解算。
type ZombieSteeringSystem struct {
	entityManager      *ecs.EntityManager
	grid               *world.Grid
	obstacleMultiplier float64
}

// NewZombieSteeringSystem 创建僵尸追踪系统
//
// 参数:
//   - em: 实体管理器
//   - grid: 地形网格（nil 时不减速）
//   - obstacleMultiplier: Obstacle 地块上的速度倍率
func NewZombieSteeringSystem(em *ecs.EntityManager, grid *world.Grid, obstacleMultiplier float64) *ZombieSteeringSystem {
	return &ZombieSteeringSystem{
		entityManager:      em,
		grid:               grid,
		obstacleMultiplier: obstacleMultiplier,
	}
}

// Update 推进攻击计时并更新每只僵尸的移动方向
func (s *ZombieSteeringSystem) Update(dt float64) {
	_, target, hasPlayer := findPlayer(s.entityManager)

	ids := ecs.GetEntitiesWith3[*components.ZombieComponent, *components.BodyComponent, *components.MovementComponent](s.entityManager)
	for _, id := range ids {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		mv, _ := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)

		if zombie.AttackTimer > 0 {
			zombie.AttackTimer -= dt
		}
		if zombie.AttackAnimTimer > 0 {
			zombie.AttackAnimTimer -= dt
		}

		if !hasPlayer || zombie.IsAttacking() {
			mv.Stop()
			continue
		}

		cx, cy := body.Center()
		dx, dy := target.X-cx, target.Y-cy
		if math.Hypot(dx, dy) <= steeringDeadZone {
			mv.Stop()
			continue
		}

		mv.DirX, mv.DirY = dx, dy
		mv.SpeedScale = s.grid.SpeedMultiplierAt(cx, cy, s.obstacleMultiplier)
	}
}
