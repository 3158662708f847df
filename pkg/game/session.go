package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/deadlands/pkg/collision"
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/entities"
	"github.com/gonewx/deadlands/pkg/mapgen"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/systems"
	"github.com/gonewx/deadlands/pkg/world"
)

// Session 一局游戏
//
// 创建时生成一次世界，之后网格只读；碰撞解算、出生点搜索和各系统共享同一个 *world.Grid。
// 所有更新都在调用方的单个 goroutine 中同步执行。
type Session struct {
	cfg    *config.Bundle
	seed   int64
	result *mapgen.Result

	entityManager *ecs.EntityManager
	finder        *spawn.Finder
	spawner       *spawn.Spawner
	resolver      *collision.Resolver

	playerControl *systems.PlayerControlSystem
	steering      *systems.ZombieSteeringSystem
	movement      *systems.MovementSystem
	separation    *systems.SeparationSystem
	stuck         *systems.StuckSystem
	attack        *systems.ZombieAttackSystem
	spawnSystem   *systems.SpawnSystem
	camera        *systems.CameraSystem

	player ecs.EntityID
	over   bool
}

// Stats 调试面板显示的会话统计
type Stats struct {
	Seed         int64
	Elapsed      float64
	Population   int
	Cap          int
	Cooldown     float64
	Spawned      int
	Relocated    int
	Hits         int
	PlayerHealth int
	Buildings    int
	Skipped      int
	Bucketed     bool
}

// NewSession 生成世界并放置玩家和初始僵尸
//
// 参数:
//   - cfg: 配置，nil 时使用默认配置
//   - settings: 玩家设置（难度、固定种子），nil 时使用默认设置
//   - input: 玩家移动方向来源，可为 nil（玩家不动）
func NewSession(cfg *config.Bundle, settings *GameSettings, input systems.DirectionSource) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultBundle()
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	seed := settings.Seed
	if seed == 0 {
		seed = mapgen.NewRand(0).Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	gen := mapgen.NewGenerator(cfg.World, cfg.Buildings)
	result := gen.Generate(rng)
	grid := result.Grid

	em := ecs.NewEntityManager()
	finder := spawn.NewFinder(grid, rand.New(rand.NewSource(rng.Int63())))
	vw, vh := float64(cfg.World.Viewport.Width), float64(cfg.World.Viewport.Height)
	spawner := spawn.NewSpawner(finder, cfg.Spawner, settings.Difficulty, cfg.Species, vw, vh)

	start, ok := finder.PlayerStart()
	if !ok {
		return nil, fmt.Errorf("no walkable tile for the player on a %dx%d map (seed %d)", grid.Width(), grid.Height(), seed)
	}
	player, err := entities.NewPlayerEntity(em, start, cfg.World.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	entities.NewCameraEntity(em, player, vw, vh)

	resolver := collision.NewResolver(grid)
	worldW, worldH := grid.WorldSize()
	s := &Session{
		cfg:           cfg,
		seed:          seed,
		result:        result,
		entityManager: em,
		finder:        finder,
		spawner:       spawner,
		resolver:      resolver,
		playerControl: systems.NewPlayerControlSystem(em, input),
		steering:      systems.NewZombieSteeringSystem(em, grid, cfg.World.ObstacleSpeedMultiplier),
		movement:      systems.NewMovementSystem(em, resolver),
		separation:    systems.NewSeparationSystem(em, grid, cfg.Spawner.PeerCollisionRadius, cfg.Spawner.BucketThreshold),
		stuck:         systems.NewStuckSystem(em, spawner, cfg.Spawner.Stuck),
		attack:        systems.NewZombieAttackSystem(em),
		spawnSystem:   systems.NewSpawnSystem(em, spawner),
		camera:        systems.NewCameraSystem(em, worldW, worldH),
		player:        player,
	}

	s.spawnSystem.SpawnInitial()
	s.camera.Update(0)

	log.Printf("[Session] Started: seed=%d difficulty=%s player=(%.0f, %.0f)",
		seed, settings.Difficulty, start.X, start.Y)
	return s, nil
}

// Update 推进一帧
//
// 顺序：输入 → 僵尸追踪 → 统一移动解算 → 僵尸互推 → 卡住重新安置 → 攻击 → 生成 → 镜头。
// 玩家死亡后会话停止推进。
func (s *Session) Update(dt float64) {
	if s.over || dt <= 0 {
		return
	}

	s.playerControl.Update()
	s.steering.Update(dt)
	s.movement.Update(dt)
	s.separation.Update()
	s.stuck.Update(dt)
	if s.attack.Update(dt) {
		s.over = true
		log.Printf("[Session] Game over after %.1fs", s.spawner.Difficulty().Elapsed())
	}
	s.spawnSystem.Update(dt)
	s.camera.Update(dt)

	s.entityManager.RemoveMarkedEntities()
}

// Over 玩家是否已经死亡
func (s *Session) Over() bool {
	return s.over
}

// Grid 返回本局的网格（只读）
func (s *Session) Grid() *world.Grid {
	return s.result.Grid
}

// Seed 返回本局使用的世界种子
func (s *Session) Seed() int64 {
	return s.seed
}

// EntityManager 返回实体管理器
func (s *Session) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Player 返回玩家实体
func (s *Session) Player() ecs.EntityID {
	return s.player
}

// PlayerScreenPosition 返回玩家中心在屏幕上的位置
func (s *Session) PlayerScreenPosition() (x, y float64) {
	body, ok := ecs.GetComponent[*components.BodyComponent](s.entityManager, s.player)
	if !ok {
		return 0, 0
	}
	cx, cy := body.Center()
	camX, camY := s.camera.Position()
	return cx - camX, cy - camY
}

// Camera 返回镜头左上角的世界坐标
func (s *Session) Camera() (x, y float64) {
	return s.camera.Position()
}

// NewWorldImage 按配置的调色板预渲染本局世界
// 调用方负责在会话结束时 Dispose
func (s *Session) NewWorldImage() (*mapgen.WorldImage, error) {
	palette, err := mapgen.NewPalette(s.cfg.World.Palette)
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	return mapgen.NewWorldImage(s.result.Grid, palette, rand.New(rand.NewSource(s.seed))), nil
}

// PlayerContact 返回当前与玩家碰撞体重叠的第一只僵尸
func (s *Session) PlayerContact() (ecs.EntityID, bool) {
	pb, ok := ecs.GetComponent[*components.BodyComponent](s.entityManager, s.player)
	if !ok {
		return 0, false
	}

	ids := ecs.GetEntitiesWith2[*components.ZombieComponent, *components.BodyComponent](s.entityManager)
	bodies := make([]collision.Body, len(ids))
	for i, id := range ids {
		b, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		bodies[i] = b.Body
	}

	i, hit := collision.CheckEntityListCollision(pb.Body, bodies)
	if !hit {
		return 0, false
	}
	return ids[i], true
}

// Stats 返回当前会话统计
func (s *Session) Stats() Stats {
	d := s.spawner.Difficulty()
	st := Stats{
		Seed:       s.seed,
		Elapsed:    d.Elapsed(),
		Population: s.spawnSystem.Population(),
		Cap:        d.Cap(),
		Cooldown:   d.Cooldown(),
		Spawned:    s.spawnSystem.Spawned(),
		Relocated:  s.stuck.Relocated(),
		Hits:       s.attack.Hits(),
		Buildings:  len(s.result.Buildings),
		Skipped:    s.result.Skipped(),
	}
	st.Bucketed = s.separation.Bucketed(st.Population)
	if hp, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.player); ok {
		st.PlayerHealth = hp.CurrentHealth
	}
	return st
}
