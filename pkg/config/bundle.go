package config

import (
	"fmt"
	"path"
)

// Bundle 一局游戏需要的全部配置
type Bundle struct {
	World     *WorldConfig
	Buildings *BuildingTemplates
	Species   *SpeciesTable
	Spawner   *SpawnerConfig
}

// DefaultBundle 返回与 data/ 下文件一致的默认配置
func DefaultBundle() *Bundle {
	return &Bundle{
		World:     DefaultWorldConfig(),
		Buildings: DefaultBuildingTemplates(),
		Species:   DefaultSpeciesTable(),
		Spawner:   DefaultSpawnerConfig(),
	}
}

// LoadBundle 从目录加载全部配置
//
// dir 为 "data" 时优先读取嵌入的文件；任何一个文件出错都返回错误，不做部分回退。
func LoadBundle(dir string) (*Bundle, error) {
	file := func(p string) string { return path.Join(dir, path.Base(p)) }

	world, err := LoadWorldConfig(file(WorldConfigPath))
	if err != nil {
		return nil, err
	}
	buildings, err := LoadBuildingTemplates(file(BuildingTemplatesPath))
	if err != nil {
		return nil, err
	}
	species, err := LoadSpeciesTable(file(SpeciesStatsPath))
	if err != nil {
		return nil, err
	}
	spawner, err := LoadSpawnerConfig(file(SpawnerConfigPath))
	if err != nil {
		return nil, err
	}

	b := &Bundle{World: world, Buildings: buildings, Species: species, Spawner: spawner}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("config bundle in %s: %w", dir, err)
	}
	return b, nil
}

// Validate 检查配置之间的一致性
// 单个文件的合法性在各自加载时已经检查
func (b *Bundle) Validate() error {
	if b.World.MaxBuildings > 0 && b.Buildings.Count() == 0 {
		return fmt.Errorf("buildings are enabled but no templates are defined")
	}
	for _, tpl := range b.Buildings.All() {
		if tpl.Width() > b.World.Width || tpl.Height() > b.World.Height {
			return fmt.Errorf("template %s (%dx%d) does not fit a %dx%d map",
				tpl.Name, tpl.Width(), tpl.Height(), b.World.Width, b.World.Height)
		}
	}
	return nil
}
