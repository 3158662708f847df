package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// SpawnerConfigPath 生成器配置的默认路径
const SpawnerConfigPath = "data/spawner.yaml"

// DifficultyPreset 难度预设
//
// 难度随会话时间推进：
//   - 每隔 CooldownDecreaseInterval 秒，生成冷却减少 CooldownDecreaseAmount，直到 CooldownFloor
//   - 种群上限 = min(PopulationCeiling, InitialPopulationCap + int(elapsed / CapIncreasePeriod))
type DifficultyPreset struct {
	InitialPopulationCap int     `yaml:"initialPopulationCap"`
	PopulationCeiling    int     `yaml:"populationCeiling"`
	CapIncreasePeriod    float64 `yaml:"capIncreasePeriod"` // 上限每增加 1 所需秒数

	InitialCooldown          float64 `yaml:"initialCooldown"` // 两次生成之间的初始间隔（秒）
	CooldownFloor            float64 `yaml:"cooldownFloor"`
	CooldownDecreaseInterval float64 `yaml:"cooldownDecreaseInterval"`
	CooldownDecreaseAmount   float64 `yaml:"cooldownDecreaseAmount"`

	InitialSpawnCount int `yaml:"initialSpawnCount"` // 会话开始时随机散布的僵尸数量
}

// StuckConfig 卡住检测与重新安置参数
type StuckConfig struct {
	CheckInterval    float64 `yaml:"checkInterval"`    // 检测周期（秒）
	MinMovement      float64 `yaml:"minMovement"`      // 一个周期内低于该位移视为没动
	Timeout          float64 `yaml:"timeout"`          // 累计卡住多久后触发重新安置
	FarDistance      float64 `yaml:"farDistance"`      // 只有离玩家超过该距离才允许重新安置
	ChaseDistance    float64 `yaml:"chaseDistance"`    // 离玩家超过该距离才算“应该在移动”
	RelocateAttempts int     `yaml:"relocateAttempts"` // 重新安置的采样次数
	OffscreenMargin  float64 `yaml:"offscreenMargin"`  // 屏幕半径之外的额外余量
	MaxDistance      float64 `yaml:"maxDistance"`      // 重新安置离玩家的最远距离
	ApproachFactor   float64 `yaml:"approachFactor"`   // 目标距离 = 当前距离 × 该系数
	MapMargin        float64 `yaml:"mapMargin"`        // 离地图边缘的最小距离
}

// SpawnerConfig 僵尸生成器配置
//
// 配置文件位置: data/spawner.yaml
type SpawnerConfig struct {
	DefaultPreset string                      `yaml:"defaultPreset"`
	Presets       map[string]DifficultyPreset `yaml:"presets"`

	// 生成距离 = 屏幕对角线 × 倍率，最小值保证新僵尸出现在视口之外
	SpawnDistanceMin float64 `yaml:"spawnDistanceMin"`
	SpawnDistanceMax float64 `yaml:"spawnDistanceMax"`

	PeerSeparation      float64 `yaml:"peerSeparation"`      // 新僵尸与已有僵尸的最小距离
	SpawnAttempts       int     `yaml:"spawnAttempts"`       // 单次生成的采样次数
	PeerCollisionRadius float64 `yaml:"peerCollisionRadius"` // 僵尸互相推开的半径
	BucketThreshold     int     `yaml:"bucketThreshold"`     // 种群超过该值时改用空间分桶

	Stuck StuckConfig `yaml:"stuck"`
}

// DefaultSpawnerConfig 返回与 data/spawner.yaml 一致的默认配置
func DefaultSpawnerConfig() *SpawnerConfig {
	return &SpawnerConfig{
		DefaultPreset: "normal",
		Presets: map[string]DifficultyPreset{
			"easy": {
				InitialPopulationCap: 6, PopulationCeiling: 30, CapIncreasePeriod: 30,
				InitialCooldown: 3.0, CooldownFloor: 1.0,
				CooldownDecreaseInterval: 30, CooldownDecreaseAmount: 0.1,
				InitialSpawnCount: 3,
			},
			"normal": {
				InitialPopulationCap: 10, PopulationCeiling: 50, CapIncreasePeriod: 20,
				InitialCooldown: 2.0, CooldownFloor: 0.5,
				CooldownDecreaseInterval: 30, CooldownDecreaseAmount: 0.1,
				InitialSpawnCount: 5,
			},
			"hard": {
				InitialPopulationCap: 15, PopulationCeiling: 80, CapIncreasePeriod: 12,
				InitialCooldown: 1.5, CooldownFloor: 0.3,
				CooldownDecreaseInterval: 20, CooldownDecreaseAmount: 0.15,
				InitialSpawnCount: 8,
			},
		},
		SpawnDistanceMin:    0.6,
		SpawnDistanceMax:    1.2,
		PeerSeparation:      40,
		SpawnAttempts:       20,
		PeerCollisionRadius: 12,
		BucketThreshold:     64,
		Stuck: StuckConfig{
			CheckInterval:    0.5,
			MinMovement:      5,
			Timeout:          1.0,
			FarDistance:      500,
			ChaseDistance:    50,
			RelocateAttempts: 30,
			OffscreenMargin:  100,
			MaxDistance:      500,
			ApproachFactor:   0.8,
			MapMargin:        50,
		},
	}
}

// LoadSpawnerConfig 从 YAML 文件加载生成器配置
func LoadSpawnerConfig(path string) (*SpawnerConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawner config %s: %w", path, err)
	}

	cfg, err := ParseSpawnerConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid spawner config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSpawnerConfig 解析 YAML 内容，未给出的标量字段沿用默认值
func ParseSpawnerConfig(data []byte) (*SpawnerConfig, error) {
	cfg := DefaultSpawnerConfig()
	cfg.Presets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse spawner config YAML: %w", err)
	}
	if cfg.Presets == nil {
		cfg.Presets = DefaultSpawnerConfig().Presets
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *SpawnerConfig) Validate() error {
	if len(c.Presets) == 0 {
		return fmt.Errorf("at least one difficulty preset is required")
	}
	if _, ok := c.Presets[c.DefaultPreset]; !ok {
		return fmt.Errorf("defaultPreset %q is not defined", c.DefaultPreset)
	}

	for name, p := range c.Presets {
		if p.InitialPopulationCap < 0 || p.PopulationCeiling < p.InitialPopulationCap {
			return fmt.Errorf("preset %s: population range invalid: initial(%d) ceiling(%d)",
				name, p.InitialPopulationCap, p.PopulationCeiling)
		}
		if p.CapIncreasePeriod <= 0 {
			return fmt.Errorf("preset %s: capIncreasePeriod must be positive", name)
		}
		if p.CooldownFloor <= 0 || p.InitialCooldown < p.CooldownFloor {
			return fmt.Errorf("preset %s: cooldown range invalid: initial(%.2f) floor(%.2f)",
				name, p.InitialCooldown, p.CooldownFloor)
		}
		if p.CooldownDecreaseInterval <= 0 || p.CooldownDecreaseAmount < 0 {
			return fmt.Errorf("preset %s: cooldown decrease must have a positive interval and non-negative amount", name)
		}
		if p.InitialSpawnCount < 0 {
			return fmt.Errorf("preset %s: initialSpawnCount cannot be negative", name)
		}
	}

	if c.SpawnDistanceMin < 0 || c.SpawnDistanceMax < c.SpawnDistanceMin {
		return fmt.Errorf("spawn distance range invalid: min(%.2f) max(%.2f)", c.SpawnDistanceMin, c.SpawnDistanceMax)
	}
	if c.PeerSeparation < 0 || c.PeerCollisionRadius < 0 {
		return fmt.Errorf("peer distances cannot be negative")
	}
	if c.SpawnAttempts < 1 {
		return fmt.Errorf("spawnAttempts must be at least 1, got %d", c.SpawnAttempts)
	}
	if c.Stuck.CheckInterval <= 0 || c.Stuck.RelocateAttempts < 1 {
		return fmt.Errorf("stuck detection needs a positive checkInterval and relocateAttempts")
	}
	return nil
}

// Preset 返回指定名称的难度预设
// 名称不存在时回退到默认预设，第二个返回值表示是否命中
func (c *SpawnerConfig) Preset(name string) (DifficultyPreset, bool) {
	if p, ok := c.Presets[name]; ok {
		return p, true
	}
	return c.Presets[c.DefaultPreset], false
}

// PresetNames 返回排序后的预设名列表
func (c *SpawnerConfig) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
