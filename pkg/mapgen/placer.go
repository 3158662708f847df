package mapgen

import (
	"log"
	"math/rand"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/world"
)

// placementMargin 建筑原点与森林边缘带之间至少保留的格数
const placementMargin = 2

// PlacedBuilding 已放置的建筑（只在生成期间用于邻近判定，之后仅供调试和测试）
type PlacedBuilding struct {
	OriginX  int // 左上角列
	OriginY  int // 左上角行
	Size     int // 模板外接正方形边长
	Template *config.BuildingTemplate
}

// tooClose 判断候选原点是否落在已有建筑的邻近范围内
//
// 两栋建筑原点的切比雪夫距离必须不小于 (sizeA+sizeB)/2（整数除法），
// 这是外接正方形的保守近似，不做精确的几何相交测试。
func (b PlacedBuilding) tooClose(x, y, size int) bool {
	limit := (b.Size + size) / 2
	return abs(x-b.OriginX) < limit && abs(y-b.OriginY) < limit
}

// buildingPlacer 负责抽取并盖印建筑模板（BuildingPlacer）
type buildingPlacer struct {
	grid      *world.Grid
	cfg       *config.WorldConfig
	templates *config.BuildingTemplates
	verbose   bool

	placed    []PlacedBuilding
	footprint []bool // 被建筑外接矩形覆盖的格子
}

func newBuildingPlacer(grid *world.Grid, cfg *config.WorldConfig, templates *config.BuildingTemplates) *buildingPlacer {
	return &buildingPlacer{
		grid:      grid,
		cfg:       cfg,
		templates: templates,
		footprint: make([]bool, grid.Width()*grid.Height()),
	}
}

// placeAll 抽取建筑数量并逐个放置，返回抽到的数量
func (p *buildingPlacer) placeAll(rng *rand.Rand) int {
	if p.cfg.MaxBuildings <= 0 || p.templates.Count() == 0 {
		return 0
	}

	count := p.cfg.MinBuildings
	if span := p.cfg.MaxBuildings - p.cfg.MinBuildings + 1; span > 1 {
		count += rng.Intn(span)
	}
	for i := 0; i < count; i++ {
		tier, ok := p.pickTier(rng)
		if !ok {
			break
		}
		candidates := p.templates.ForTier(tier)
		tpl := candidates[rng.Intn(len(candidates))]

		if !p.place(tpl, rng) && p.verbose {
			log.Printf("[MapGenerator] Skipped building %d (%s, %s): no free origin after %d attempts",
				i, tpl.Name, tier, p.cfg.PlacementAttempts)
		}
	}
	return count
}

// pickTier 按权重选择建筑档位，没有模板的档位权重视为 0
func (p *buildingPlacer) pickTier(rng *rand.Rand) (config.Tier, bool) {
	totalWeight := 0.0
	for _, t := range config.Tiers {
		if len(p.templates.ForTier(t)) > 0 {
			totalWeight += p.cfg.TierWeights.Weight(t)
		}
	}
	if totalWeight <= 0 {
		return 0, false
	}

	randNum := rng.Float64() * totalWeight
	cumulativeWeight := 0.0
	var last config.Tier
	for _, t := range config.Tiers {
		if len(p.templates.ForTier(t)) == 0 {
			continue
		}
		w := p.cfg.TierWeights.Weight(t)
		if w <= 0 {
			continue
		}
		last = t
		cumulativeWeight += w
		if randNum < cumulativeWeight {
			return t, true
		}
	}
	// 浮点累加误差兜底
	return last, true
}

// place 在重试预算内为模板寻找原点并盖印，找不到时返回 false
func (p *buildingPlacer) place(tpl *config.BuildingTemplate, rng *rand.Rand) bool {
	minX := p.cfg.EdgeThickness + placementMargin
	minY := minX
	maxX := p.grid.Width() - p.cfg.EdgeThickness - tpl.Width() - placementMargin
	maxY := p.grid.Height() - p.cfg.EdgeThickness - tpl.Height() - placementMargin
	if maxX < minX || maxY < minY {
		return false
	}

	size := tpl.Size()
	for attempt := 0; attempt < p.cfg.PlacementAttempts; attempt++ {
		x := minX + rng.Intn(maxX-minX+1)
		y := minY + rng.Intn(maxY-minY+1)
		if p.overlapsPlaced(x, y, size) {
			continue
		}

		p.stamp(tpl, x, y)
		p.placed = append(p.placed, PlacedBuilding{OriginX: x, OriginY: y, Size: size, Template: tpl})
		return true
	}
	return false
}

func (p *buildingPlacer) overlapsPlaced(x, y, size int) bool {
	for _, b := range p.placed {
		if b.tooClose(x, y, size) {
			return true
		}
	}
	return false
}

// stamp 把模板的非零单元写入网格（覆盖森林边缘写下的 Obstacle），并记录占地
func (p *buildingPlacer) stamp(tpl *config.BuildingTemplate, originX, originY int) {
	for r := 0; r < tpl.Height(); r++ {
		for c := 0; c < tpl.Width(); c++ {
			col, row := originX+c, originY+r
			if !p.grid.InBounds(col, row) {
				continue
			}
			p.footprint[row*p.grid.Width()+col] = true

			switch tpl.At(c, r) {
			case config.MarkerWall:
				p.grid.Set(col, row, world.Wall)
			case config.MarkerFloor:
				p.grid.Set(col, row, world.Floor)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
