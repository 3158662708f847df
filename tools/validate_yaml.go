//go:build ignore

// validate_yaml 检查 data/ 下的配置文件
//
// 用法: go run tools/validate_yaml.go [dir]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonewx/deadlands/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil || len(files) == 0 {
		fmt.Printf("❌ %s 下没有 YAML 文件\n", dir)
		os.Exit(1)
	}

	broken := 0
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Printf("❌ 读取文件失败: %v\n", err)
			broken++
			continue
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			fmt.Printf("❌ %s: YAML 解析失败: %v\n", f, err)
			broken++
			continue
		}
		fmt.Printf("✅ %s: %d 个顶层字段\n", f, len(doc))
	}
	if broken > 0 {
		fmt.Printf("❌ 有 %d 个文件格式错误\n", broken)
		os.Exit(1)
	}

	b, err := config.LoadBundle(dir)
	if err != nil {
		fmt.Printf("❌ 配置校验失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ 地图 %dx%d，建筑模板 %d 个，难度预设 %v\n",
		b.World.Width, b.World.Height, b.Buildings.Count(), b.Spawner.PresetNames())
}
