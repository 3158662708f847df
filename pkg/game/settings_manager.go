package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好设置
// 生成的世界本身从不保存，这里只记录下次开局使用的参数
type GameSettings struct {
	// Difficulty 难度预设名（easy / normal / hard）
	Difficulty string `yaml:"difficulty"`
	// Seed 固定世界种子，0 表示每局随机
	Seed int64 `yaml:"seed"`

	DebugOverlay bool    `yaml:"debugOverlay"` // 是否显示调试信息和碰撞盒
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 (0.0 ~ 1.0)，0 为静音
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Difficulty:   "normal",
		Seed:         0,
		DebugOverlay: false,
		Fullscreen:   false,
		SoundVolume:  0.6,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，只记录日志并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// OpenSettingsManager 打开应用的 gdata 存储并创建设置管理器
// 存储不可用时退回降级模式
func OpenSettingsManager(appName string) *SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(m)
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误（此时已恢复默认设置）
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()

	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (difficulty=%s, seed=%d)", loaded.Difficulty, loaded.Seed)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// Persistent 设置是否会被持久化
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetDifficulty 设置难度预设
//
// 参数：
//   - name: 预设名
//   - known: 可用的预设名列表，name 不在其中时返回错误且不修改设置
func (sm *SettingsManager) SetDifficulty(name string, known []string) error {
	for _, k := range known {
		if k == name {
			sm.settings.Difficulty = name
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q (available: %v)", name, known)
}

// SetSeed 设置固定世界种子，0 恢复随机
func (sm *SettingsManager) SetSeed(seed int64) {
	sm.settings.Seed = seed
}

// ToggleDebugOverlay 切换调试信息显示，返回切换后的状态
func (sm *SettingsManager) ToggleDebugOverlay() bool {
	sm.settings.DebugOverlay = !sm.settings.DebugOverlay
	return sm.settings.DebugOverlay
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetSoundVolume 设置音效音量，超出 [0, 1] 的值会被截断
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = max(0, min(1, volume))
}
