package systems

import (
	"log"
	"math"

	"github.com/gonewx/deadlands/pkg/collision"
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
)

// PlayerHitFlash 玩家受击后闪烁的时长（秒）
const PlayerHitFlash = 0.2

// ZombieAttackSystem 僵尸近战攻击
//
// 冷却结束且玩家在攻击距离内（或两者碰撞体重叠）时发起一次攻击：
// 记录朝向、进入攻击动作、重置冷却并对玩家造成伤害。
type ZombieAttackSystem struct {
	entityManager *ecs.EntityManager
	hits          int
}

// NewZombieAttackSystem 创建僵尸攻击系统
func NewZombieAttackSystem(em *ecs.EntityManager) *ZombieAttackSystem {
	return &ZombieAttackSystem{entityManager: em}
}

// Update 处理本帧所有僵尸的攻击
// 返回玩家是否在本帧死亡
func (s *ZombieAttackSystem) Update(dt float64) bool {
	playerID, _, ok := findPlayer(s.entityManager)
	if !ok {
		return false
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, playerID)
	playerBody, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, playerID)
	playerHealth, hasHealth := ecs.GetComponent[*components.HealthComponent](s.entityManager, playerID)

	if player.HitTimer > 0 {
		player.HitTimer = math.Max(0, player.HitTimer-dt)
	}
	if hasHealth && playerHealth.IsDead() {
		return false
	}

	died := false
	for _, id := range ecs.GetEntitiesWith2[*components.ZombieComponent, *components.BodyComponent](s.entityManager) {
		zombie, _ := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		if zombie.AttackTimer > 0 {
			continue
		}

		inRange := collision.CenterDistance(body.Body, playerBody.Body) <= zombie.Stats.AttackRange ||
			collision.CheckEntityCollision(body.Body, playerBody.Body)
		if !inRange {
			continue
		}

		zx, zy := body.Center()
		px, py := playerBody.Center()
		zombie.AttackAngle = math.Atan2(py-zy, px-zx)
		zombie.AttackAnimTimer = zombie.Stats.AttackDuration
		zombie.AttackTimer = zombie.Stats.AttackCooldown
		player.HitTimer = PlayerHitFlash
		s.hits++

		if hasHealth && playerHealth.TakeDamage(zombie.Stats.Damage) {
			log.Printf("[ZombieAttackSystem] Player killed by %s zombie", zombie.Species)
			died = true
			break
		}
	}
	return died
}

// Hits 返回累计命中次数
func (s *ZombieAttackSystem) Hits() int {
	return s.hits
}
