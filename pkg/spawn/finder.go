// Package spawn 负责为实体寻找合法的出生位置，以及随时间提升难度的僵尸生成器
//
// 所有采样都使用调用者注入的 *rand.Rand，固定种子可以复现每一个结果。
package spawn

import (
	"math"
	"math/rand"

	"github.com/gonewx/deadlands/pkg/world"
)

// DefaultAttempts Constraint.Attempts 为 0 时的采样次数
const DefaultAttempts = 20

// distanceEpsilon 环形区域边界检查的相对容差
const distanceEpsilon = 1e-9

// Point 世界坐标中的一个点
type Point struct {
	X, Y float64
}

// Dist 返回两点距离
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Constraint 出生位置约束（SpawnConstraint），每次调用时构造
//
// MaxDistance > 0 时在以 Reference 为圆心的环形区域内采样；
// 否则在整张地图上均匀采样（散布模式，道具与初始僵尸使用）。
type Constraint struct {
	Reference   Point
	MinDistance float64
	MaxDistance float64

	// MinSeparation 与 Peers 中每个点的最小距离，0 表示不检查
	MinSeparation float64
	Peers         []Point

	MustBeWalkable bool

	// AllowedTiles 非空时候选点所在地块必须是其中之一
	AllowedTiles []world.Tile
	// BuildingClearance 候选点周围该距离内不能有 Wall 或 Floor
	BuildingClearance float64
	// Margin 候选点与地图边缘的最小距离
	Margin float64

	// Attempts 采样次数上限，0 时使用 DefaultAttempts
	Attempts int
}

// scatter 是否为散布模式
func (c *Constraint) scatter() bool {
	return c.MaxDistance <= 0
}

// Finder 出生位置搜索器（SpawnPositionFinder）
type Finder struct {
	grid *world.Grid
	rng  *rand.Rand
}

// NewFinder 创建搜索器
// grid 为 nil 时处处可行走但没有地图边界（散布模式无法使用）
func NewFinder(grid *world.Grid, rng *rand.Rand) *Finder {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Finder{grid: grid, rng: rng}
}

// Rand 返回搜索器使用的随机源
func (f *Finder) Rand() *rand.Rand {
	return f.rng
}

// Grid 返回搜索器使用的网格，可能为 nil
func (f *Finder) Grid() *world.Grid {
	return f.grid
}

// FindPosition 拒绝采样寻找满足约束的位置（find_position）
//
// 在采样预算内找不到时返回 false；调用者应在之后的帧重试，而不是当作错误。
func (f *Finder) FindPosition(c Constraint) (Point, bool) {
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if c.scatter() && f.grid == nil {
		return Point{}, false
	}

	for i := 0; i < attempts; i++ {
		p := f.sample(&c)
		if f.Accepts(&c, p) {
			return p, true
		}
	}
	return Point{}, false
}

// sample 生成一个候选点（已钳制到地图范围内）
func (f *Finder) sample(c *Constraint) Point {
	var p Point
	if c.scatter() {
		w, h := f.grid.WorldSize()
		p = Point{X: f.rng.Float64() * w, Y: f.rng.Float64() * h}
	} else {
		angle := f.rng.Float64() * 2 * math.Pi
		dist := c.MinDistance + f.rng.Float64()*(c.MaxDistance-c.MinDistance)
		p = Point{
			X: c.Reference.X + math.Cos(angle)*dist,
			Y: c.Reference.Y + math.Sin(angle)*dist,
		}
	}
	return f.clamp(p, c.Margin)
}

// clamp 把点钳制到 [margin, size-margin] 内；上界落在地图之内
func (f *Finder) clamp(p Point, margin float64) Point {
	if f.grid == nil {
		return p
	}
	w, h := f.grid.WorldSize()
	p.X = clampFloat(p.X, margin, math.Nextafter(w-margin, math.Inf(-1)))
	p.Y = clampFloat(p.Y, margin, math.Nextafter(h-margin, math.Inf(-1)))
	return p
}

// Accepts 检查一个点是否满足约束
func (f *Finder) Accepts(c *Constraint, p Point) bool {
	if !c.scatter() {
		// 钳制可能把点拉进或拉出环形区域，需要重新检查（容忍浮点误差）
		d := p.Dist(c.Reference)
		eps := distanceEpsilon * math.Max(1, c.MaxDistance)
		if d < c.MinDistance-eps || d > c.MaxDistance+eps {
			return false
		}
	}

	if f.grid != nil {
		w, h := f.grid.WorldSize()
		if p.X < c.Margin || p.Y < c.Margin || p.X > w-c.Margin || p.Y > h-c.Margin {
			return false
		}
	}

	if c.MustBeWalkable && !f.grid.IsWalkable(p.X, p.Y) {
		return false
	}
	if len(c.AllowedTiles) > 0 && !containsTile(c.AllowedTiles, f.grid.TileAt(p.X, p.Y)) {
		return false
	}
	if c.BuildingClearance > 0 && f.nearBuilding(p, c.BuildingClearance) {
		return false
	}

	if c.MinSeparation > 0 {
		for _, peer := range c.Peers {
			if p.Dist(peer) < c.MinSeparation {
				return false
			}
		}
	}
	return true
}

// nearBuilding 检查点周围 clearance 范围（正方形）内是否有 Wall 或 Floor
func (f *Finder) nearBuilding(p Point, clearance float64) bool {
	if f.grid == nil {
		return false
	}
	minCol, minRow := f.grid.WorldToTile(p.X-clearance, p.Y-clearance)
	maxCol, maxRow := f.grid.WorldToTile(p.X+clearance, p.Y+clearance)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if !f.grid.InBounds(col, row) {
				continue
			}
			if t := f.grid.At(col, row); t == world.Wall || t == world.Floor {
				return true
			}
		}
	}
	return false
}

func containsTile(tiles []world.Tile, t world.Tile) bool {
	for _, x := range tiles {
		if x == t {
			return true
		}
	}
	return false
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
