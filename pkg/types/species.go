// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// Species 定义僵尸的种类
// 各种类之间只有数值不同（速度、体型、血量、伤害、攻击冷却、分值），
// 具体数值来自 config.SpeciesTable，不使用继承或虚函数区分行为。
type Species int

const (
	// SpeciesWeak 普通僵尸
	SpeciesWeak Species = iota
	// SpeciesFast 快速僵尸（体型小、速度快、血量低）
	SpeciesFast
	// SpeciesTough 强壮僵尸（体型大、速度慢、血量高）
	SpeciesTough
)

// AllSpecies 所有僵尸种类，顺序固定（加权随机选择依赖这个顺序）
var AllSpecies = []Species{SpeciesWeak, SpeciesFast, SpeciesTough}

// String 返回种类的配置键名
func (s Species) String() string {
	switch s {
	case SpeciesWeak:
		return "weak"
	case SpeciesFast:
		return "fast"
	case SpeciesTough:
		return "tough"
	}
	return fmt.Sprintf("species(%d)", int(s))
}

// ParseSpecies 将配置键名解析为种类
func ParseSpecies(name string) (Species, error) {
	for _, s := range AllSpecies {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown species %q", name)
}
