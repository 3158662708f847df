package config

import (
	"fmt"

	"github.com/gonewx/deadlands/pkg/types"
	"gopkg.in/yaml.v3"
)

// SpeciesStatsPath 僵尸种类属性配置的默认路径
const SpeciesStatsPath = "data/species.yaml"

// SpeciesStats 单个僵尸种类的属性
type SpeciesStats struct {
	SpeedMin       float64 `yaml:"speedMin"`       // 最低速度（像素/秒），生成时在区间内均匀采样
	SpeedMax       float64 `yaml:"speedMax"`       // 最高速度（像素/秒）
	Health         int     `yaml:"health"`         // 血量
	Damage         int     `yaml:"damage"`         // 单次攻击伤害
	Size           float64 `yaml:"size"`           // 碰撞盒边长（正方形）
	AttackRange    float64 `yaml:"attackRange"`    // 攻击距离
	AttackCooldown float64 `yaml:"attackCooldown"` // 攻击冷却（秒）
	AttackDuration float64 `yaml:"attackDuration"` // 攻击动作持续时间（秒），期间不移动
	Score          int     `yaml:"score"`          // 击杀得分
	Weight         float64 `yaml:"weight"`         // 生成权重
	Tint           string  `yaml:"tint"`           // 渲染颜色
}

// SpeciesTable 僵尸种类属性表
type SpeciesTable struct {
	Species map[string]SpeciesStats `yaml:"species"`
}

// DefaultSpeciesTable 返回与 data/species.yaml 一致的默认属性表
func DefaultSpeciesTable() *SpeciesTable {
	return &SpeciesTable{
		Species: map[string]SpeciesStats{
			"weak": {
				SpeedMin: 60, SpeedMax: 90, Health: 100, Damage: 10, Size: 24,
				AttackRange: 40, AttackCooldown: 1.0, AttackDuration: 0.3,
				Score: 10, Weight: 60, Tint: "#3a3a3a",
			},
			"fast": {
				SpeedMin: 110, SpeedMax: 150, Health: 50, Damage: 5, Size: 18,
				AttackRange: 36, AttackCooldown: 0.6, AttackDuration: 0.2,
				Score: 15, Weight: 20, Tint: "#3050c8",
			},
			"tough": {
				SpeedMin: 35, SpeedMax: 55, Health: 300, Damage: 25, Size: 36,
				AttackRange: 48, AttackCooldown: 1.6, AttackDuration: 0.4,
				Score: 30, Weight: 20, Tint: "#b02828",
			},
		},
	}
}

// LoadSpeciesTable 从 YAML 文件加载僵尸种类属性
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species stats file %s: %w", path, err)
	}

	table, err := ParseSpeciesTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid species stats in %s: %w", path, err)
	}
	return table, nil
}

// ParseSpeciesTable 解析 YAML 内容
func ParseSpeciesTable(data []byte) (*SpeciesTable, error) {
	var table SpeciesTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse species stats YAML: %w", err)
	}
	if err := validateSpeciesTable(&table); err != nil {
		return nil, err
	}
	return &table, nil
}

// validateSpeciesTable 验证属性表的完整性和合法性
func validateSpeciesTable(table *SpeciesTable) error {
	if len(table.Species) == 0 {
		return fmt.Errorf("at least one species is required")
	}

	totalWeight := 0.0
	for name, s := range table.Species {
		if _, err := types.ParseSpecies(name); err != nil {
			return err
		}
		if s.SpeedMin <= 0 || s.SpeedMax < s.SpeedMin {
			return fmt.Errorf("species %s: speed range invalid: min(%.1f) max(%.1f)", name, s.SpeedMin, s.SpeedMax)
		}
		if s.Health <= 0 {
			return fmt.Errorf("species %s: health must be positive, got %d", name, s.Health)
		}
		if s.Damage < 0 {
			return fmt.Errorf("species %s: damage cannot be negative, got %d", name, s.Damage)
		}
		if s.Size <= 0 {
			return fmt.Errorf("species %s: size must be positive, got %.1f", name, s.Size)
		}
		if s.AttackCooldown < 0 || s.AttackDuration < 0 || s.AttackRange < 0 {
			return fmt.Errorf("species %s: attack timings cannot be negative", name)
		}
		if s.Weight < 0 {
			return fmt.Errorf("species %s: weight cannot be negative, got %.1f", name, s.Weight)
		}
		if s.Tint != "" {
			if _, err := ParseHexColor(s.Tint); err != nil {
				return fmt.Errorf("species %s: %w", name, err)
			}
		}
		totalWeight += s.Weight
	}

	if totalWeight <= 0 {
		return fmt.Errorf("species weights must have a positive total")
	}
	return nil
}

// Stats 获取指定种类的属性
// 如果种类不存在，返回 nil 和 false
func (t *SpeciesTable) Stats(s types.Species) (*SpeciesStats, bool) {
	if t == nil {
		return nil, false
	}
	stats, ok := t.Species[s.String()]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// Weight 获取指定种类的生成权重，不存在时返回 0
func (t *SpeciesTable) Weight(s types.Species) float64 {
	if stats, ok := t.Stats(s); ok {
		return stats.Weight
	}
	return 0
}
