package game

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSynthesizeTone(t *testing.T) {
	tn := tone{startFreq: 220, endFreq: 110, duration: 0.1}
	buf := synthesizeTone(tn, AudioSampleRate)

	samples := int(0.1 * AudioSampleRate)
	if len(buf) != samples*4 {
		t.Fatalf("len: got %d, want %d", len(buf), samples*4)
	}

	sample := func(i int) int16 { return int16(binary.LittleEndian.Uint16(buf[i*4:])) }

	if sample(0) != 0 {
		t.Errorf("first sample: got %d, want 0", sample(0))
	}
	limit := int16(0.5 * math.MaxInt16)
	for i := 0; i < samples; i++ {
		v := sample(i)
		if v > limit || v < -limit {
			t.Fatalf("sample %d = %d exceeds %d", i, v, limit)
		}
		if right := int16(binary.LittleEndian.Uint16(buf[i*4+2:])); right != v {
			t.Fatalf("sample %d: left %d != right %d", i, v, right)
		}
	}

	// 包络线性衰减，最后 1% 的样本幅度很小
	for i := samples * 99 / 100; i < samples; i++ {
		if v := sample(i); v > limit/50 || v < -limit/50 {
			t.Errorf("tail sample %d = %d should be near silent", i, v)
		}
	}
}

func TestPlaySoundWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(nil))
	if am.PlaySound(SoundPlayerHit) {
		t.Error("PlaySound without an audio context should be a no-op")
	}

	var nilManager *AudioManager
	if nilManager.PlaySound(SoundGameOver) {
		t.Error("PlaySound on a nil manager should be a no-op")
	}
}

func TestSoundTonesDefined(t *testing.T) {
	for _, id := range []SoundID{SoundPlayerHit, SoundGameOver} {
		tn, ok := soundTones[id]
		if !ok {
			t.Errorf("sound %d has no tone", id)
			continue
		}
		if tn.duration <= 0 || tn.startFreq <= 0 || tn.endFreq <= 0 {
			t.Errorf("sound %d: invalid tone %+v", id, tn)
		}
	}
}
