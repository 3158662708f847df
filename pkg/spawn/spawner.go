package spawn

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/types"
	"github.com/gonewx/deadlands/pkg/world"
)

// Request 一次生成的结果：位置（实体中心）、种类和采样出的速度
type Request struct {
	Position Point
	Species  types.Species
	Speed    float64
	Stats    config.SpeciesStats
}

// Spawner 僵尸生成器
//
// 每帧调用 Update：推进难度，冷却到达且种群未满时尝试在视口之外生成一只僵尸。
type Spawner struct {
	cfg        *config.SpawnerConfig
	species    *config.SpeciesTable
	finder     *Finder
	difficulty *Difficulty

	viewportW, viewportH float64
	minDistance          float64
	maxDistance          float64

	// Verbose 为 true 时记录每次生成和失败
	Verbose bool
}

// NewSpawner 创建僵尸生成器
//
// 参数:
//   - finder: 出生位置搜索器（持有网格和随机源）
//   - cfg: 生成器配置，nil 时使用默认配置
//   - preset: 难度预设名，不存在时回退到默认预设
//   - species: 种类属性表，nil 时使用默认属性表
//   - viewportW, viewportH: 视口尺寸，生成距离由其对角线推算
func NewSpawner(finder *Finder, cfg *config.SpawnerConfig, preset string, species *config.SpeciesTable, viewportW, viewportH float64) *Spawner {
	if cfg == nil {
		cfg = config.DefaultSpawnerConfig()
	}
	if species == nil {
		species = config.DefaultSpeciesTable()
	}

	p, ok := cfg.Preset(preset)
	if !ok {
		log.Printf("[Spawner] Unknown difficulty preset %q, using %q", preset, cfg.DefaultPreset)
	}

	diagonal := math.Hypot(viewportW, viewportH)
	return &Spawner{
		cfg:         cfg,
		species:     species,
		finder:      finder,
		difficulty:  NewDifficulty(p),
		viewportW:   viewportW,
		viewportH:   viewportH,
		minDistance: diagonal * cfg.SpawnDistanceMin,
		maxDistance: diagonal * cfg.SpawnDistanceMax,
	}
}

// Difficulty 返回难度状态机
func (s *Spawner) Difficulty() *Difficulty {
	return s.difficulty
}

// SpawnDistance 返回生成距离区间
func (s *Spawner) SpawnDistance() (lo, hi float64) {
	return s.minDistance, s.maxDistance
}

// Update 推进一帧
//
// 参数:
//   - dt: 帧时间（秒）
//   - player: 玩家中心
//   - peers: 现有僵尸中心，其数量即当前种群
//
// 返回:
//   - 需要生成的僵尸；本帧不生成或找不到位置时返回 false
func (s *Spawner) Update(dt float64, player Point, peers []Point) (Request, bool) {
	d := s.difficulty
	d.Advance(dt)

	var req Request
	spawned := false
	if d.Ready(len(peers)) {
		pos, ok := s.finder.FindPosition(Constraint{
			Reference:      player,
			MinDistance:    s.minDistance,
			MaxDistance:    s.maxDistance,
			MinSeparation:  s.cfg.PeerSeparation,
			Peers:          peers,
			MustBeWalkable: true,
			Attempts:       s.cfg.SpawnAttempts,
		})
		if ok {
			req = s.NewRequest(pos)
			spawned = true
			d.ConsumeSpawn()
			if s.Verbose {
				log.Printf("[Spawner] Spawned %s zombie at (%.0f, %.0f), population %d/%d",
					req.Species, pos.X, pos.Y, len(peers)+1, d.Cap())
			}
		} else if s.Verbose {
			log.Printf("[Spawner] No spawn position after %d attempts, retrying next tick", s.cfg.SpawnAttempts)
		}
	}

	d.RefreshCap()
	return req, spawned
}

// InitialSpawns 会话开始时在整张地图上均匀散布 n 只僵尸
// 样本必须落在可行走地块上，且与玩家出生点的距离不小于最小生成距离；
// 每只僵尸最多采样 SpawnAttempts 次，失败的名额直接放弃，因此可能少于 n 只
func (s *Spawner) InitialSpawns(n int, player Point) []Request {
	c := Constraint{
		MustBeWalkable: true,
		MinSeparation:  s.minDistance,
		Peers:          []Point{player},
		Attempts:       s.cfg.SpawnAttempts,
	}

	var out []Request
	for i := 0; i < n; i++ {
		pos, ok := s.finder.FindPosition(c)
		if !ok {
			continue
		}
		out = append(out, s.NewRequest(pos))
	}
	log.Printf("[Spawner] Initial population: %d/%d zombies", len(out), n)
	return out
}

// InitialSpawnCount 返回当前难度预设的初始僵尸数量
func (s *Spawner) InitialSpawnCount() int {
	return s.difficulty.Preset().InitialSpawnCount
}

// NewRequest 在指定位置创建生成请求：按权重选种类，在种类速度区间内采样速度
func (s *Spawner) NewRequest(pos Point) Request {
	sp := ChooseSpecies(s.species, s.finder.Rand())
	stats, _ := s.species.Stats(sp)
	req := Request{Position: pos, Species: sp}
	if stats != nil {
		req.Stats = *stats
		req.Speed = SampleSpeed(*stats, s.finder.Rand())
	}
	return req
}

// ChooseSpecies 按生成权重随机选择僵尸种类，与位置选择相互独立
func ChooseSpecies(table *config.SpeciesTable, rng *rand.Rand) types.Species {
	totalWeight := 0.0
	for _, sp := range types.AllSpecies {
		totalWeight += table.Weight(sp)
	}
	if totalWeight <= 0 {
		return types.SpeciesWeak
	}

	randNum := rng.Float64() * totalWeight
	cumulativeWeight := 0.0
	chosen := types.SpeciesWeak
	for _, sp := range types.AllSpecies {
		w := table.Weight(sp)
		if w <= 0 {
			continue
		}
		chosen = sp
		cumulativeWeight += w
		if randNum < cumulativeWeight {
			return sp
		}
	}
	return chosen
}

// SampleSpeed 在种类速度区间内均匀采样
func SampleSpeed(stats config.SpeciesStats, rng *rand.Rand) float64 {
	if stats.SpeedMax <= stats.SpeedMin {
		return stats.SpeedMin
	}
	return stats.SpeedMin + rng.Float64()*(stats.SpeedMax-stats.SpeedMin)
}

// Grid 返回搜索器使用的网格
func (s *Spawner) Grid() *world.Grid {
	return s.finder.Grid()
}
