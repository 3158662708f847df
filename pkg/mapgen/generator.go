// Package mapgen 生成会话世界：森林边缘、建筑、稀疏障碍物，并预渲染世界图像
//
// 生成是一次性的启动步骤，完成后 *world.Grid 只读。
// 所有随机数都来自调用者传入的 *rand.Rand，相同种子得到相同布局。
package mapgen

import (
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/world"
)

// Result 一次生成的结果
type Result struct {
	Grid      *world.Grid
	Buildings []PlacedBuilding
	// Requested 本次抽到的建筑数量（包括放置失败被跳过的）
	Requested int
}

// Skipped 返回因重试耗尽而被跳过的建筑数量
func (r *Result) Skipped() int {
	return r.Requested - len(r.Buildings)
}

// Generator 世界生成器（MapGenerator）
type Generator struct {
	cfg       *config.WorldConfig
	templates *config.BuildingTemplates

	// Verbose 为 true 时逐个记录被跳过的建筑
	Verbose bool
}

// NewGenerator 创建世界生成器
//
// 参数:
//   - cfg: 世界配置，nil 时使用 config.DefaultWorldConfig()
//   - templates: 建筑模板，nil 时使用 config.DefaultBuildingTemplates()
func NewGenerator(cfg *config.WorldConfig, templates *config.BuildingTemplates) *Generator {
	if cfg == nil {
		cfg = config.DefaultWorldConfig()
	}
	if templates == nil {
		templates = config.DefaultBuildingTemplates()
	}
	return &Generator{cfg: cfg, templates: templates}
}

// Config 返回生成器使用的世界配置
func (g *Generator) Config() *config.WorldConfig {
	return g.cfg
}

// NewRand 按种子创建随机源，seed 为 0 时使用当前时间
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate 生成一张新地图
//
// 步骤：全部初始化为 Grass → 森林边缘 → 放置建筑 → 内部稀疏障碍物。
// 任何一步都不会失败；建筑放置重试耗尽时只是少放一栋。
//
// 参数:
//   - rng: 随机源，nil 时按当前时间创建
func (g *Generator) Generate(rng *rand.Rand) *Result {
	if rng == nil {
		rng = NewRand(0)
	}

	grid := world.NewGrid(g.cfg.Width, g.cfg.Height, g.cfg.TileSize)
	g.growForestEdge(grid, rng)

	placer := newBuildingPlacer(grid, g.cfg, g.templates)
	placer.verbose = g.Verbose
	requested := placer.placeAll(rng)

	g.scatterObstacles(grid, placer.footprint, rng)

	result := &Result{
		Grid:      grid,
		Buildings: placer.placed,
		Requested: requested,
	}

	log.Printf("[MapGenerator] Generated %dx%d map: %d/%d buildings placed, %d obstacles",
		grid.Width(), grid.Height(), len(result.Buildings), requested, grid.Count(world.Obstacle))
	return result
}

// inEdgeBand 判断格子是否位于森林边缘带内
func (g *Generator) inEdgeBand(col, row int) bool {
	e := g.cfg.EdgeThickness
	return col < e || row < e || col >= g.cfg.Width-e || row >= g.cfg.Height-e
}

// growForestEdge 边缘带内每格以 ForestDensity 的概率变为 Obstacle
func (g *Generator) growForestEdge(grid *world.Grid, rng *rand.Rand) {
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			if !g.inEdgeBand(col, row) {
				continue
			}
			if rng.Float64() < g.cfg.ForestDensity {
				grid.Set(col, row, world.Obstacle)
			}
		}
	}
}

// scatterObstacles 边缘带以外的 Grass 以 ObstacleDensity 的概率变为 Obstacle，跳过建筑占地
func (g *Generator) scatterObstacles(grid *world.Grid, footprint []bool, rng *rand.Rand) {
	if g.cfg.ObstacleDensity <= 0 {
		return
	}
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			if g.inEdgeBand(col, row) || footprint[row*grid.Width()+col] {
				continue
			}
			if grid.At(col, row) != world.Grass {
				continue
			}
			if rng.Float64() < g.cfg.ObstacleDensity {
				grid.Set(col, row, world.Obstacle)
			}
		}
	}
}
