package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 44100

// SoundID 音效标识
type SoundID int

const (
	// SoundPlayerHit 玩家被僵尸击中
	SoundPlayerHit SoundID = iota
	// SoundGameOver 玩家死亡
	SoundGameOver
)

// tone 一段频率线性滑变、音量线性衰减的正弦音
type tone struct {
	startFreq float64
	endFreq   float64
	duration  float64 // 秒
}

var soundTones = map[SoundID]tone{
	SoundPlayerHit: {startFreq: 220, endFreq: 110, duration: 0.12},
	SoundGameOver:  {startFreq: 330, endFreq: 55, duration: 0.8},
}

// AudioManager 音效管理器
//
// 游戏没有音频资源文件，所有音效在首次播放时合成并缓存。
// 音量从 SettingsManager 读取，SoundVolume 为 0 时不播放。
type AudioManager struct {
	context         *audio.Context            // 可为 nil（无音频设备，所有播放都被忽略）
	settingsManager *SettingsManager          // 可为 nil（固定满音量）
	soundPlayers    map[SoundID]*audio.Player // 音效播放器缓存
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: 设置管理器，可为 nil
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效，返回是否实际播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil || am.context == nil {
		return false
	}

	volume := am.soundVolume()
	if volume <= 0 {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %d: %v", id, err)
	}
	player.Play()
	return true
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if p, ok := am.soundPlayers[id]; ok {
		return p
	}

	t, ok := soundTones[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %d", id)
		return nil
	}

	p := am.context.NewPlayerFromBytes(synthesizeTone(t, am.context.SampleRate()))
	am.soundPlayers[id] = p
	return p
}

// synthesizeTone 生成 16 位有符号小端、双声道 PCM 数据
func synthesizeTone(t tone, sampleRate int) []byte {
	n := int(t.duration * float64(sampleRate))
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.startFreq + (t.endFreq-t.startFreq)*progress
		envelope := 1 - progress

		v := int16(math.Sin(phase) * envelope * 0.5 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))

		phase += 2 * math.Pi * freq / float64(sampleRate)
	}
	return buf
}
