package spawn

import (
	"log"

	"github.com/gonewx/deadlands/pkg/config"
)

// Difficulty 随会话时间推进的难度状态机
//
// 每隔 CooldownDecreaseInterval 秒生成冷却缩短一次，直到下限；
// 种群上限随时间阶梯式增长，直到 PopulationCeiling。
// 冷却只减不增，上限只增不减。
type Difficulty struct {
	preset config.DifficultyPreset

	elapsed       float64
	spawnTimer    float64
	sinceDecrease float64
	cooldown      float64
	cap           int

	// Verbose 为 true 时记录每次冷却缩短
	Verbose bool
}

// NewDifficulty 按预设创建难度状态机
func NewDifficulty(preset config.DifficultyPreset) *Difficulty {
	return &Difficulty{
		preset:   preset,
		cooldown: preset.InitialCooldown,
		cap:      preset.InitialPopulationCap,
	}
}

// Advance 推进时间，并在到达间隔时缩短生成冷却
func (d *Difficulty) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	d.elapsed += dt
	d.spawnTimer += dt
	d.sinceDecrease += dt

	interval := d.preset.CooldownDecreaseInterval
	if interval <= 0 {
		return
	}
	for d.sinceDecrease >= interval {
		d.sinceDecrease -= interval
		next := d.cooldown - d.preset.CooldownDecreaseAmount
		if next < d.preset.CooldownFloor {
			next = d.preset.CooldownFloor
		}
		if next != d.cooldown && d.Verbose {
			log.Printf("[Spawner] Spawn cooldown %.2fs -> %.2fs at %.0fs", d.cooldown, next, d.elapsed)
		}
		d.cooldown = next
	}
}

// Ready 检查是否应该尝试生成：冷却已到且种群未满
func (d *Difficulty) Ready(population int) bool {
	return d.spawnTimer >= d.cooldown && population < d.cap
}

// ConsumeSpawn 生成成功后重置冷却计时
// 生成失败时不调用，下一帧会立即重试
func (d *Difficulty) ConsumeSpawn() {
	d.spawnTimer = 0
}

// RefreshCap 按已过时间重新计算种群上限
func (d *Difficulty) RefreshCap() {
	next := d.preset.InitialPopulationCap
	if d.preset.CapIncreasePeriod > 0 {
		next += int(d.elapsed / d.preset.CapIncreasePeriod)
	}
	if next > d.preset.PopulationCeiling {
		next = d.preset.PopulationCeiling
	}
	if next > d.cap {
		d.cap = next
	}
}

// Elapsed 会话已过时间（秒）
func (d *Difficulty) Elapsed() float64 { return d.elapsed }

// Cooldown 当前生成冷却（秒）
func (d *Difficulty) Cooldown() float64 { return d.cooldown }

// Cap 当前种群上限
func (d *Difficulty) Cap() int { return d.cap }

// Preset 返回使用的难度预设
func (d *Difficulty) Preset() config.DifficultyPreset { return d.preset }
