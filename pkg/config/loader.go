package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/gonewx/deadlands/pkg/embedded"
)

// readConfigFile 读取配置文件
//
// 优先从嵌入文件系统读取（路径以 "data/" 开头且已嵌入），
// 否则回退到本地文件系统，便于开发时直接修改 data/ 下的文件或在测试中使用临时文件。
func readConfigFile(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.RGBA{A: 0xff}

	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
