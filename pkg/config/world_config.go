package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WorldConfigPath 世界生成配置的默认路径
const WorldConfigPath = "data/world.yaml"

// TierWeights 建筑尺寸档位的权重（小型最常见，大型最少）
type TierWeights struct {
	Small  float64 `yaml:"small" json:"small"`
	Medium float64 `yaml:"medium" json:"medium"`
	Large  float64 `yaml:"large" json:"large"`
}

// Total 返回权重之和
func (w TierWeights) Total() float64 {
	return w.Small + w.Medium + w.Large
}

// Weight 返回指定档位的权重
func (w TierWeights) Weight(t Tier) float64 {
	switch t {
	case TierSmall:
		return w.Small
	case TierMedium:
		return w.Medium
	case TierLarge:
		return w.Large
	}
	return 0
}

// ViewportConfig 视口（屏幕）尺寸，用于计算生成距离和镜头钳制
type ViewportConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// PlayerConfig 玩家属性
type PlayerConfig struct {
	Size   float64 `yaml:"size" json:"size"`
	Speed  float64 `yaml:"speed" json:"speed" jsonschema:"description=Movement speed in world units per second"`
	Health int     `yaml:"health" json:"health"`
}

// WorldConfig 世界生成配置
//
// 配置文件位置: data/world.yaml
type WorldConfig struct {
	TileSize float64 `yaml:"tileSize" json:"tileSize" jsonschema:"description=Edge length of one tile in world units"`
	Width    int     `yaml:"width" json:"width" jsonschema:"description=Map width in tiles"`
	Height   int     `yaml:"height" json:"height" jsonschema:"description=Map height in tiles"`

	// EdgeThickness 森林边缘带宽度（格）
	EdgeThickness int `yaml:"edgeThickness" json:"edgeThickness"`
	// ForestDensity 边缘带内每格变为 Obstacle 的概率
	ForestDensity float64 `yaml:"forestDensity" json:"forestDensity"`

	MinBuildings      int         `yaml:"minBuildings" json:"minBuildings"`
	MaxBuildings      int         `yaml:"maxBuildings" json:"maxBuildings"`
	TierWeights       TierWeights `yaml:"tierWeights" json:"tierWeights"`
	PlacementAttempts int         `yaml:"placementAttempts" json:"placementAttempts" jsonschema:"description=Origin retries per building before it is skipped"`

	// ObstacleDensity 内部空地随机变为 Obstacle 的概率
	ObstacleDensity float64 `yaml:"obstacleDensity" json:"obstacleDensity"`
	// ObstacleSpeedMultiplier 位于 Obstacle 上时的移动速度倍率
	ObstacleSpeedMultiplier float64 `yaml:"obstacleSpeedMultiplier" json:"obstacleSpeedMultiplier"`

	Viewport ViewportConfig `yaml:"viewport" json:"viewport"`
	Player   PlayerConfig   `yaml:"player" json:"player"`

	// Palette 地块名 -> 候选颜色列表（预渲染时随机挑选一种）
	Palette map[string][]string `yaml:"palette" json:"palette"`
}

// DefaultWorldConfig 返回与 data/world.yaml 一致的默认配置
func DefaultWorldConfig() *WorldConfig {
	return &WorldConfig{
		TileSize:          32,
		Width:             100,
		Height:            100,
		EdgeThickness:     3,
		ForestDensity:     0.4,
		MinBuildings:      8,
		MaxBuildings:      15,
		TierWeights:       TierWeights{Small: 0.5, Medium: 0.3, Large: 0.2},
		PlacementAttempts: 50,
		ObstacleDensity:   0.03,

		ObstacleSpeedMultiplier: 0.6,

		Viewport: ViewportConfig{Width: 800, Height: 600},
		Player:   PlayerConfig{Size: 32, Speed: 200, Health: 100},
		Palette: map[string][]string{
			"grass":    {"#4a7a3a", "#507f3f", "#467536", "#4d7d3c"},
			"obstacle": {"#6b5232", "#5f4a2d"},
			"wall":     {"#6e6e6e", "#747474", "#686868", "#7a7a7a", "#707070"},
			"floor":    {"#8b6b44"},
		},
	}
}

// LoadWorldConfig 从 YAML 文件加载世界生成配置
func LoadWorldConfig(path string) (*WorldConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world config %s: %w", path, err)
	}

	cfg, err := ParseWorldConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid world config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseWorldConfig 解析 YAML 内容，未给出的字段沿用默认值
func ParseWorldConfig(data []byte) (*WorldConfig, error) {
	cfg := DefaultWorldConfig()
	// 调色板整体替换而不是合并
	cfg.Palette = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse world config YAML: %w", err)
	}
	if cfg.Palette == nil {
		cfg.Palette = DefaultWorldConfig().Palette
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *WorldConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tileSize must be positive, got %v", c.TileSize)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.EdgeThickness < 0 || 2*c.EdgeThickness > c.Width || 2*c.EdgeThickness > c.Height {
		return fmt.Errorf("edgeThickness %d does not fit a %dx%d map", c.EdgeThickness, c.Width, c.Height)
	}
	if c.ForestDensity < 0 || c.ForestDensity > 1 {
		return fmt.Errorf("forestDensity must be in [0, 1], got %v", c.ForestDensity)
	}
	if c.ObstacleDensity < 0 || c.ObstacleDensity > 1 {
		return fmt.Errorf("obstacleDensity must be in [0, 1], got %v", c.ObstacleDensity)
	}
	if c.MinBuildings < 0 || c.MaxBuildings < c.MinBuildings {
		return fmt.Errorf("building count range invalid: min(%d) max(%d)", c.MinBuildings, c.MaxBuildings)
	}
	if c.TierWeights.Small < 0 || c.TierWeights.Medium < 0 || c.TierWeights.Large < 0 {
		return fmt.Errorf("tierWeights cannot be negative: %+v", c.TierWeights)
	}
	if c.MaxBuildings > 0 && c.TierWeights.Total() <= 0 {
		return fmt.Errorf("tierWeights must have a positive total when buildings are enabled")
	}
	if c.PlacementAttempts < 1 {
		return fmt.Errorf("placementAttempts must be at least 1, got %d", c.PlacementAttempts)
	}
	if c.ObstacleSpeedMultiplier <= 0 || c.ObstacleSpeedMultiplier > 1 {
		return fmt.Errorf("obstacleSpeedMultiplier must be in (0, 1], got %v", c.ObstacleSpeedMultiplier)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport size must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Player.Size <= 0 || c.Player.Speed <= 0 || c.Player.Health <= 0 {
		return fmt.Errorf("player size, speed and health must be positive, got %+v", c.Player)
	}

	for name, colors := range c.Palette {
		if len(colors) == 0 {
			return fmt.Errorf("palette entry %s has no colors", name)
		}
		for _, s := range colors {
			if _, err := ParseHexColor(s); err != nil {
				return fmt.Errorf("palette entry %s: %w", name, err)
			}
		}
	}

	return nil
}

// WorldPixelSize 返回世界的像素尺寸
func (c *WorldConfig) WorldPixelSize() (w, h float64) {
	return float64(c.Width) * c.TileSize, float64(c.Height) * c.TileSize
}
