package systems

import (
	"log"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/entities"
	"github.com/gonewx/deadlands/pkg/spawn"
)

// SpawnSystem 持续生成僵尸
//
// 每帧把玩家位置和现有僵尸位置交给 Spawner，由它决定是否生成以及生成在哪里。
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	spawner       *spawn.Spawner

	peers   []spawn.Point
	spawned int
}

// NewSpawnSystem 创建僵尸生成系统
func NewSpawnSystem(em *ecs.EntityManager, spawner *spawn.Spawner) *SpawnSystem {
	return &SpawnSystem{entityManager: em, spawner: spawner}
}

// SpawnInitial 会话开始时在地图上散布初始僵尸，远离玩家出生点
// 返回实际生成的数量；玩家尚未创建时不生成
func (s *SpawnSystem) SpawnInitial() int {
	_, player, ok := findPlayer(s.entityManager)
	if !ok {
		return 0
	}

	count := 0
	for _, req := range s.spawner.InitialSpawns(s.spawner.InitialSpawnCount(), player) {
		if s.create(req) {
			count++
		}
	}
	return count
}

// Update 推进生成器一帧
func (s *SpawnSystem) Update(dt float64) {
	_, player, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}

	_, bodies := zombieBodies(s.entityManager)
	s.peers = s.peers[:0]
	for _, b := range bodies {
		s.peers = append(s.peers, centerOf(b))
	}

	if req, ok := s.spawner.Update(dt, player, s.peers); ok {
		s.create(req)
	}
}

// Spawned 返回本系统累计生成的僵尸数量
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

func (s *SpawnSystem) create(req spawn.Request) bool {
	if _, err := entities.NewZombieEntity(s.entityManager, req); err != nil {
		log.Printf("[SpawnSystem] Failed to create %s zombie: %v", req.Species, err)
		return false
	}
	s.spawned++
	return true
}

// Population 返回当前僵尸数量
func (s *SpawnSystem) Population() int {
	return len(ecs.GetEntitiesWith1[*components.ZombieComponent](s.entityManager))
}
