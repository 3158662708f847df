package config

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// BuildingTemplatesPath 建筑模板配置的默认路径
const BuildingTemplatesPath = "data/buildings.yaml"

// Tier 建筑尺寸档位
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge
)

// Tiers 所有档位（按权重从高到低的默认顺序）
var Tiers = []Tier{TierSmall, TierMedium, TierLarge}

// String 返回档位名
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier 解析档位名
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown building tier %q", s)
}

// Marker 模板单元标记
type Marker uint8

const (
	// MarkerKeep 保持网格原样
	MarkerKeep Marker = 0
	// MarkerWall 写入 Wall
	MarkerWall Marker = 1
	// MarkerFloor 写入 Floor
	MarkerFloor Marker = 2
)

// 模板编写错误
var (
	ErrEmptyTemplate  = errors.New("building template is empty")
	ErrRaggedTemplate = errors.New("building template rows have different lengths")
	ErrBadMarker      = errors.New("building template contains an unknown marker")
	ErrNoDoor         = errors.New("building template has no door reaching its interior")
)

// BuildingTemplate 建筑模板（不可变）
type BuildingTemplate struct {
	Name   string
	Tier   Tier
	width  int
	height int
	cells  []Marker
}

// NewBuildingTemplate 从标记字符串构建模板并校验
//
// 每行一个字符串，字符 '0' 保持、'1' 墙、'2' 地板。
// 模板必须是矩形，外圈至少有一个非墙单元（门），并且每个地板单元都能从模板外部经非墙单元到达。
func NewBuildingTemplate(name string, tier Tier, rows []string) (*BuildingTemplate, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("template %s: %w", name, ErrEmptyTemplate)
	}

	width := len(rows[0])
	tpl := &BuildingTemplate{
		Name:   name,
		Tier:   tier,
		width:  width,
		height: len(rows),
		cells:  make([]Marker, 0, width*len(rows)),
	}

	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("template %s row %d: %w", name, r, ErrRaggedTemplate)
		}
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case '0':
				tpl.cells = append(tpl.cells, MarkerKeep)
			case '1':
				tpl.cells = append(tpl.cells, MarkerWall)
			case '2':
				tpl.cells = append(tpl.cells, MarkerFloor)
			default:
				return nil, fmt.Errorf("template %s row %d col %d (%q): %w", name, r, c, row[c], ErrBadMarker)
			}
		}
	}

	if !tpl.hasDoor() {
		return nil, fmt.Errorf("template %s: %w", name, ErrNoDoor)
	}
	if col, row, ok := tpl.sealedFloor(); ok {
		return nil, fmt.Errorf("template %s: floor (%d,%d) is sealed: %w", name, col, row, ErrNoDoor)
	}
	return tpl, nil
}

// hasDoor 检查外圈是否存在非墙单元
func (t *BuildingTemplate) hasDoor() bool {
	for r := 0; r < t.height; r++ {
		for c := 0; c < t.width; c++ {
			onRing := r == 0 || c == 0 || r == t.height-1 || c == t.width-1
			if onRing && t.At(c, r) != MarkerWall {
				return true
			}
		}
	}
	return false
}

// sealedFloor 返回第一个从模板外部无法到达的地板单元
//
// 模板四周补一圈 MarkerKeep 后从补边四邻域泛洪，Wall 阻断，Keep 和 Floor 可通行。
func (t *BuildingTemplate) sealedFloor() (col, row int, found bool) {
	w, h := t.width+2, t.height+2
	passable := func(c, r int) bool { return t.At(c-1, r-1) != MarkerWall }

	seen := make([]bool, w*h)
	seen[0] = true
	stack := [][2]int{{0, 0}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nc, nr := p[0]+d[0], p[1]+d[1]
			if nc < 0 || nr < 0 || nc >= w || nr >= h {
				continue
			}
			idx := nr*w + nc
			if seen[idx] || !passable(nc, nr) {
				continue
			}
			seen[idx] = true
			stack = append(stack, [2]int{nc, nr})
		}
	}

	for r := 0; r < t.height; r++ {
		for c := 0; c < t.width; c++ {
			if t.At(c, r) == MarkerFloor && !seen[(r+1)*w+c+1] {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

// Width 模板宽度（格）
func (t *BuildingTemplate) Width() int { return t.width }

// Height 模板高度（格）
func (t *BuildingTemplate) Height() int { return t.height }

// Size 模板的外接正方形边长，用于放置时的邻近判定
func (t *BuildingTemplate) Size() int {
	if t.width > t.height {
		return t.width
	}
	return t.height
}

// At 返回模板单元标记，越界返回 MarkerKeep
func (t *BuildingTemplate) At(col, row int) Marker {
	if col < 0 || row < 0 || col >= t.width || row >= t.height {
		return MarkerKeep
	}
	return t.cells[row*t.width+col]
}

// templateEntry YAML 中的单个模板
type templateEntry struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// buildingTemplatesFile YAML 文件结构
type buildingTemplatesFile struct {
	Tiers map[string][]templateEntry `yaml:"tiers"`
}

// BuildingTemplates 按档位分组的建筑模板（加载一次，只读）
type BuildingTemplates struct {
	byTier map[Tier][]*BuildingTemplate
}

// NewBuildingTemplates 直接由模板列表构建集合
func NewBuildingTemplates(templates ...*BuildingTemplate) *BuildingTemplates {
	bt := &BuildingTemplates{byTier: make(map[Tier][]*BuildingTemplate)}
	for _, t := range templates {
		bt.byTier[t.Tier] = append(bt.byTier[t.Tier], t)
	}
	return bt
}

// ForTier 返回指定档位的模板列表
func (bt *BuildingTemplates) ForTier(t Tier) []*BuildingTemplate {
	if bt == nil {
		return nil
	}
	return bt.byTier[t]
}

// Count 返回模板总数
func (bt *BuildingTemplates) Count() int {
	if bt == nil {
		return 0
	}
	n := 0
	for _, list := range bt.byTier {
		n += len(list)
	}
	return n
}

// All 按档位顺序返回全部模板
func (bt *BuildingTemplates) All() []*BuildingTemplate {
	var all []*BuildingTemplate
	for _, t := range Tiers {
		all = append(all, bt.ForTier(t)...)
	}
	return all
}

// LoadBuildingTemplates 从 YAML 文件加载建筑模板
func LoadBuildingTemplates(path string) (*BuildingTemplates, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read building templates %s: %w", path, err)
	}

	bt, err := ParseBuildingTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("invalid building templates %s: %w", path, err)
	}
	return bt, nil
}

// ParseBuildingTemplates 解析 YAML 内容
func ParseBuildingTemplates(data []byte) (*BuildingTemplates, error) {
	var file buildingTemplatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse building templates YAML: %w", err)
	}

	// 按档位名排序，保证加载顺序稳定（同一种子生成同一布局）
	names := make([]string, 0, len(file.Tiers))
	for name := range file.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)

	bt := NewBuildingTemplates()
	for _, name := range names {
		tier, err := ParseTier(name)
		if err != nil {
			return nil, err
		}
		for i, entry := range file.Tiers[name] {
			tplName := entry.Name
			if tplName == "" {
				tplName = fmt.Sprintf("%s_%d", name, i)
			}
			tpl, err := NewBuildingTemplate(tplName, tier, entry.Rows)
			if err != nil {
				return nil, err
			}
			bt.byTier[tier] = append(bt.byTier[tier], tpl)
		}
	}

	if bt.Count() == 0 {
		return nil, fmt.Errorf("at least one building template is required")
	}
	return bt, nil
}

// DefaultBuildingTemplates 返回与 data/buildings.yaml 一致的内置模板
func DefaultBuildingTemplates() *BuildingTemplates {
	bt, err := ParseBuildingTemplates([]byte(defaultBuildingsYAML))
	if err != nil {
		// 内置模板由开发者维护，解析失败属于编程错误
		panic(fmt.Sprintf("default building templates are invalid: %v", err))
	}
	return bt
}

const defaultBuildingsYAML = `
tiers:
  small:
    - name: door_bottom
      rows:
        - "1111111"
        - "1222221"
        - "1222221"
        - "1222221"
        - "1222221"
        - "1222221"
        - "1112211"
    - name: door_right
      rows:
        - "1111111"
        - "1222221"
        - "1222221"
        - "1222222"
        - "1222222"
        - "1222221"
        - "1111111"
    - name: door_left_with_porch
      rows:
        - "1111111221"
        - "1222221221"
        - "1222221221"
        - "2222221221"
        - "2222222221"
        - "1222221221"
        - "1111111221"
  medium:
    - name: hall
      rows:
        - "111111111"
        - "122212221"
        - "122222221"
        - "122222221"
        - "112222211"
        - "122222221"
        - "122222221"
        - "122222221"
        - "111100111"
    - name: two_rooms
      rows:
        - "111111111"
        - "122212221"
        - "122212221"
        - "122222222"
        - "122222222"
        - "111112221"
        - "000012221"
        - "000012221"
        - "000011111"
    - name: courtyard
      rows:
        - "111111111"
        - "122222221"
        - "122111221"
        - "122101221"
        - "122101111"
        - "122101221"
        - "122111221"
        - "122222221"
        - "111221111"
  large:
    - name: multi_room
      rows:
        - "111111111111"
        - "122212221221"
        - "122212221221"
        - "122212221221"
        - "122211211221"
        - "222222221221"
        - "222222222221"
        - "122222222221"
        - "111111111221"
        - "122222222221"
        - "122222222221"
        - "111111112211"
    - name: warehouse
      rows:
        - "111111111111"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "122222222221"
        - "111122221111"
`
