package config

import (
	"errors"
	"testing"
)

func TestNewBuildingTemplate(t *testing.T) {
	t.Run("合法模板", func(t *testing.T) {
		tpl, err := NewBuildingTemplate("tiny", TierSmall, []string{
			"1111",
			"1221",
			"1201",
		})
		if err != nil {
			t.Fatalf("NewBuildingTemplate failed: %v", err)
		}
		if tpl.Width() != 4 || tpl.Height() != 3 || tpl.Size() != 4 {
			t.Errorf("unexpected dimensions %dx%d size %d", tpl.Width(), tpl.Height(), tpl.Size())
		}
		if tpl.At(1, 1) != MarkerFloor || tpl.At(0, 0) != MarkerWall || tpl.At(2, 2) != MarkerKeep {
			t.Error("markers were not decoded correctly")
		}
		if tpl.At(-1, 0) != MarkerKeep || tpl.At(4, 0) != MarkerKeep {
			t.Error("out-of-range cells should read as MarkerKeep")
		}
	})

	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"空模板", nil, ErrEmptyTemplate},
		{"空行", []string{""}, ErrEmptyTemplate},
		{"行长度不一致", []string{"111", "12"}, ErrRaggedTemplate},
		{"未知标记", []string{"111", "131", "121"}, ErrBadMarker},
		{"没有门", []string{"111", "121", "111"}, ErrNoDoor},
		{"门只开在角上，地板被封死", []string{"01111", "12221", "11111"}, ErrNoDoor},
		{"内部有一间封闭小室", []string{"1121111", "1222121", "1111111"}, ErrNoDoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuildingTemplate("bad", TierSmall, tt.rows)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaultBuildingTemplates(t *testing.T) {
	bt := DefaultBuildingTemplates()

	want := map[Tier]int{TierSmall: 3, TierMedium: 3, TierLarge: 2}
	for tier, n := range want {
		if got := len(bt.ForTier(tier)); got != n {
			t.Errorf("tier %v has %d templates, want %d", tier, got, n)
		}
	}
	if bt.Count() != 8 || len(bt.All()) != 8 {
		t.Errorf("expected 8 templates in total, got %d", bt.Count())
	}

	// 档位内的尺寸：小 7、中 9、大 12（带门廊的小屋宽 10）
	for _, tpl := range bt.ForTier(TierLarge) {
		if tpl.Size() != 12 {
			t.Errorf("large template %s has size %d", tpl.Name, tpl.Size())
		}
	}
	for _, tpl := range bt.ForTier(TierMedium) {
		if tpl.Size() != 9 {
			t.Errorf("medium template %s has size %d", tpl.Name, tpl.Size())
		}
	}
}

func TestParseBuildingTemplates(t *testing.T) {
	t.Run("未知档位", func(t *testing.T) {
		_, err := ParseBuildingTemplates([]byte("tiers:\n  huge:\n    - rows: [\"121\"]\n"))
		if err == nil {
			t.Error("expected error for unknown tier")
		}
	})

	t.Run("没有任何模板", func(t *testing.T) {
		if _, err := ParseBuildingTemplates([]byte("tiers: {}\n")); err == nil {
			t.Error("expected error for empty template set")
		}
	})

	t.Run("封闭地板", func(t *testing.T) {
		data := []byte("tiers:\n  small:\n    - name: sealed\n      rows: [\"01111\", \"12221\", \"11111\"]\n")
		bt, err := ParseBuildingTemplates(data)
		if !errors.Is(err, ErrNoDoor) {
			t.Errorf("error = %v, want %v", err, ErrNoDoor)
		}
		if bt.Count() != 0 {
			t.Errorf("sealed template should not be loaded, got %d templates", bt.Count())
		}
	})

	t.Run("缺省名称", func(t *testing.T) {
		bt, err := ParseBuildingTemplates([]byte("tiers:\n  small:\n    - rows: [\"121\", \"111\"]\n"))
		if err != nil {
			t.Fatalf("ParseBuildingTemplates failed: %v", err)
		}
		if name := bt.ForTier(TierSmall)[0].Name; name != "small_0" {
			t.Errorf("generated name = %q, want small_0", name)
		}
	})

	t.Run("nil 集合", func(t *testing.T) {
		var bt *BuildingTemplates
		if bt.Count() != 0 || bt.ForTier(TierSmall) != nil {
			t.Error("nil template set should be empty")
		}
	})
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(tier.String())
		if err != nil || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.String(), got, err)
		}
	}
	if _, err := ParseTier("tiny"); err == nil {
		t.Error("expected error for unknown tier")
	}
}
