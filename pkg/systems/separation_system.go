package systems

import (
	"math"

	"github.com/gonewx/deadlands/pkg/collision"
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/world"
)

// maxPushFraction 单帧分离修正的上限（以格为单位），必须小于 1
const maxPushFraction = 0.9

// SeparationSystem 僵尸之间的互相推开（check_zombie_collisions）
//
// 所有修正都基于本帧开始时的位置快照计算，然后一起应用，
// 所以结果与僵尸的遍历顺序无关。种群不超过 bucketThreshold 时逐对比较，
// 超过后改用 PeerGrid 分桶，两种方式的结果相同。
// 修正量先截断到不足一格（maxPushFraction × tileSize），再交给 Resolver 按移动解算，
// 因此推挤既不会把僵尸推进墙里，也不会让拥挤的僵尸一步跳过单格厚的墙。
type SeparationSystem struct {
	entityManager   *ecs.EntityManager
	resolver        *collision.Resolver
	maxPush         float64
	radius          float64
	bucketThreshold int
	peers           *collision.PeerGrid

	snapshot []collision.Body
}

// NewSeparationSystem 创建分离系统
//
// 参数:
//   - em: 实体管理器
//   - grid: 地形网格，决定分桶范围和单帧推挤上限，修正经由它做墙体解算
//   - radius: 僵尸碰撞半径，距离小于 2×radius 时推开
//   - bucketThreshold: 超过该数量时使用空间分桶，<= 0 表示始终分桶
func NewSeparationSystem(em *ecs.EntityManager, grid *world.Grid, radius float64, bucketThreshold int) *SeparationSystem {
	w, h := grid.WorldSize()
	maxPush := math.Inf(1)
	if grid != nil {
		maxPush = grid.TileSize() * maxPushFraction
	}
	return &SeparationSystem{
		entityManager:   em,
		resolver:        collision.NewResolver(grid),
		maxPush:         maxPush,
		radius:          radius,
		bucketThreshold: bucketThreshold,
		peers:           collision.NewPeerGrid(w, h, radius),
	}
}

// Bucketed 当前种群规模下是否使用空间分桶
func (s *SeparationSystem) Bucketed(population int) bool {
	return population > s.bucketThreshold
}

// Update 计算并应用所有僵尸的分离修正
func (s *SeparationSystem) Update() {
	_, bodies := zombieBodies(s.entityManager)
	if len(bodies) < 2 {
		return
	}

	s.snapshot = s.snapshot[:0]
	for _, b := range bodies {
		s.snapshot = append(s.snapshot, b.Body)
	}

	bucketed := s.Bucketed(len(bodies))
	if bucketed {
		s.peers.Rebuild(s.snapshot)
	}

	for i, b := range bodies {
		var x, y float64
		if bucketed {
			x, y = s.peers.Separation(i)
		} else {
			x, y = collision.CheckPeerCollisions(s.snapshot[i], s.snapshot, s.radius)
		}
		b.X, b.Y = s.applyPush(b.Body, x-b.X, y-b.Y)
	}
}

// applyPush 把一次分离修正作为普通移动解算，返回新的左上角坐标
func (s *SeparationSystem) applyPush(b collision.Body, dx, dy float64) (x, y float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return b.X, b.Y
	}
	length = math.Min(length, s.maxPush)
	x, y, _ = s.resolver.ResolveMovement(b, dx, dy, 1, length)
	return x, y
}
