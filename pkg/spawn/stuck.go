package spawn

import (
	"log"
	"math"

	"github.com/gonewx/deadlands/pkg/config"
)

// StuckDetector 单个僵尸的卡住检测状态
//
// 每 CheckInterval 秒比较一次位移：离玩家足够远（应该在追赶、且在屏幕外）
// 却几乎没动时累计卡住时间，达到 Timeout 后报告需要重新安置。
type StuckDetector struct {
	timer   float64
	counter float64
	last    Point
	started bool
}

// Check 推进检测，返回是否需要重新安置
//
// 参数:
//   - dt: 帧时间
//   - pos: 僵尸当前中心
//   - player: 玩家中心
func (s *StuckDetector) Check(dt float64, pos, player Point, cfg config.StuckConfig) bool {
	if !s.started {
		s.last = pos
		s.started = true
	}

	s.timer += dt
	if s.timer < cfg.CheckInterval {
		return false
	}

	moved := pos.Dist(s.last)
	toPlayer := pos.Dist(player)
	s.last = pos
	s.timer = 0

	shouldBeMoving := toPlayer > cfg.ChaseDistance
	farFromPlayer := toPlayer > cfg.FarDistance
	if !(shouldBeMoving && farFromPlayer && moved < cfg.MinMovement) {
		s.counter = 0
		return false
	}

	s.counter += cfg.CheckInterval
	return s.counter >= cfg.Timeout
}

// Reset 重新安置后清空状态
func (s *StuckDetector) Reset(pos Point) {
	s.timer = 0
	s.counter = 0
	s.last = pos
	s.started = true
}

// Relocate 为卡住的僵尸寻找新位置：刚好在屏幕之外、比现在更靠近玩家
//
// 先在 [屏幕外距离, max(屏幕外距离, min(当前距离×ApproachFactor, MaxDistance))] 环形区域内采样，
// 失败时尝试玩家上下左右四个方向上离僵尸最近的可行走点。
// 都不可用时返回 false，僵尸保持原地，下个周期再试。
func (s *Spawner) Relocate(pos, player Point) (Point, bool) {
	cfg := s.cfg.Stuck
	offscreen := math.Max(s.viewportW, s.viewportH)/2 + cfg.OffscreenMargin

	target := math.Min(pos.Dist(player)*cfg.ApproachFactor, cfg.MaxDistance)
	maxDist := math.Max(offscreen, target)

	p, ok := s.finder.FindPosition(Constraint{
		Reference:      player,
		MinDistance:    offscreen,
		MaxDistance:    maxDist,
		MustBeWalkable: true,
		Margin:         cfg.MapMargin,
		Attempts:       cfg.RelocateAttempts,
	})
	if ok {
		if s.Verbose {
			log.Printf("[Spawner] Relocated stuck zombie (%.0f, %.0f) -> (%.0f, %.0f)", pos.X, pos.Y, p.X, p.Y)
		}
		return p, true
	}

	cardinals := []Point{
		{X: player.X - offscreen, Y: player.Y},
		{X: player.X + offscreen, Y: player.Y},
		{X: player.X, Y: player.Y - offscreen},
		{X: player.X, Y: player.Y + offscreen},
	}
	// 四个方向的点已经在屏幕外距离上，只需检查可行走和地图边距
	probe := Constraint{MustBeWalkable: true, Margin: cfg.MapMargin}

	best, bestDist := Point{}, math.Inf(1)
	for _, c := range cardinals {
		if !s.finder.Accepts(&probe, c) {
			continue
		}
		if d := c.Dist(pos); d < bestDist {
			best, bestDist = c, d
		}
	}
	if math.IsInf(bestDist, 1) {
		if s.Verbose {
			log.Printf("[Spawner] No relocation spot for stuck zombie at (%.0f, %.0f)", pos.X, pos.Y)
		}
		return pos, false
	}
	return best, true
}
