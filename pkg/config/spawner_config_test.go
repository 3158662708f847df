package config

import "testing"

func TestSpawnerConfigPreset(t *testing.T) {
	cfg := DefaultSpawnerConfig()

	p, ok := cfg.Preset("hard")
	if !ok || p.PopulationCeiling != 80 {
		t.Errorf("Preset(hard) = %+v, %v", p, ok)
	}

	p, ok = cfg.Preset("nightmare")
	if ok {
		t.Error("unknown preset should report a miss")
	}
	if p != cfg.Presets["normal"] {
		t.Error("unknown preset should fall back to the default preset")
	}

	names := cfg.PresetNames()
	if len(names) != 3 || names[0] != "easy" || names[2] != "normal" {
		t.Errorf("PresetNames = %v", names)
	}
}

func TestParseSpawnerConfig(t *testing.T) {
	t.Run("只覆盖标量字段", func(t *testing.T) {
		cfg, err := ParseSpawnerConfig([]byte("spawnAttempts: 7\npeerSeparation: 25\n"))
		if err != nil {
			t.Fatalf("ParseSpawnerConfig failed: %v", err)
		}
		if cfg.SpawnAttempts != 7 || cfg.PeerSeparation != 25 {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		if len(cfg.Presets) != 3 {
			t.Errorf("presets should fall back to defaults, got %d", len(cfg.Presets))
		}
	})

	t.Run("自定义预设替换默认预设", func(t *testing.T) {
		content := `
defaultPreset: solo
presets:
  solo:
    initialPopulationCap: 1
    populationCeiling: 2
    capIncreasePeriod: 10
    initialCooldown: 1
    cooldownFloor: 1
    cooldownDecreaseInterval: 5
    cooldownDecreaseAmount: 0
`
		cfg, err := ParseSpawnerConfig([]byte(content))
		if err != nil {
			t.Fatalf("ParseSpawnerConfig failed: %v", err)
		}
		if len(cfg.Presets) != 1 {
			t.Errorf("expected only the custom preset, got %v", cfg.PresetNames())
		}
	})

	t.Run("默认预设不存在", func(t *testing.T) {
		if _, err := ParseSpawnerConfig([]byte("defaultPreset: missing\n")); err == nil {
			t.Error("expected error for undefined default preset")
		}
	})
}

func TestSpawnerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SpawnerConfig)
	}{
		{"没有预设", func(c *SpawnerConfig) { c.Presets = map[string]DifficultyPreset{} }},
		{"上限低于初始值", func(c *SpawnerConfig) {
			p := c.Presets["normal"]
			p.PopulationCeiling = 1
			c.Presets["normal"] = p
		}},
		{"冷却下限为零", func(c *SpawnerConfig) {
			p := c.Presets["easy"]
			p.CooldownFloor = 0
			c.Presets["easy"] = p
		}},
		{"冷却初始值低于下限", func(c *SpawnerConfig) {
			p := c.Presets["hard"]
			p.InitialCooldown = 0.1
			c.Presets["hard"] = p
		}},
		{"上限增长周期为零", func(c *SpawnerConfig) {
			p := c.Presets["normal"]
			p.CapIncreasePeriod = 0
			c.Presets["normal"] = p
		}},
		{"生成距离区间颠倒", func(c *SpawnerConfig) { c.SpawnDistanceMax = 0.1 }},
		{"采样次数为零", func(c *SpawnerConfig) { c.SpawnAttempts = 0 }},
		{"间距为负", func(c *SpawnerConfig) { c.PeerSeparation = -1 }},
		{"卡住检测周期为零", func(c *SpawnerConfig) { c.Stuck.CheckInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSpawnerConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
