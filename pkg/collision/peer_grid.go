package collision

// PeerGrid 按格子分桶的同类实体索引
//
// 格子边长等于分离距离（2×radius），因此只需检查中心所在格及其 8 个相邻格，
// 结果与逐对比较的 CheckPeerCollisions 相同。每帧用当前位置快照 Rebuild 一次。
type PeerGrid struct {
	cellSize float64
	radius   float64
	cols     int
	rows     int
	cells    [][]int
	bodies   []Body
	buf      []int
}

// NewPeerGrid 按世界尺寸创建分桶网格
func NewPeerGrid(worldW, worldH, radius float64) *PeerGrid {
	cellSize := radius * 2
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(worldW/cellSize) + 1
	rows := int(worldH/cellSize) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &PeerGrid{
		cellSize: cellSize,
		radius:   radius,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

// cellOf 返回世界坐标所在的格子（超出范围的坐标落到边缘格）
func (g *PeerGrid) cellOf(x, y float64) (cx, cy int) {
	cx = clampInt(int(x/g.cellSize), 0, g.cols-1)
	cy = clampInt(int(y/g.cellSize), 0, g.rows-1)
	return cx, cy
}

// Rebuild 用一组实体的位置快照重建索引（保留已分配的容量）
func (g *PeerGrid) Rebuild(bodies []Body) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.bodies = bodies
	for i, b := range bodies {
		cx, cy := g.cellOf(b.Center())
		idx := cy*g.cols + cx
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// Len 返回索引中的实体数量
func (g *PeerGrid) Len() int {
	return len(g.bodies)
}

// Near 返回中心在 (x, y) 附近格子里的实体下标，结果追加到 buf
func (g *PeerGrid) Near(x, y float64, buf []int) []int {
	cx, cy := g.cellOf(x, y)
	for row := max(cy-1, 0); row <= min(cy+1, g.rows-1); row++ {
		for col := max(cx-1, 0); col <= min(cx+1, g.cols-1); col++ {
			buf = append(buf, g.cells[row*g.cols+col]...)
		}
	}
	return buf
}

// Separation 计算第 i 个实体的分离修正，返回修正后的左上角坐标
func (g *PeerGrid) Separation(i int) (x, y float64) {
	body := g.bodies[i]
	bx, by := body.Center()
	minDistance := g.radius * 2

	x, y = body.X, body.Y
	g.buf = g.Near(bx, by, g.buf[:0])
	for _, j := range g.buf {
		if j == i {
			continue
		}
		px, py := peerPush(bx, by, g.bodies[j], minDistance)
		x += px
		y += py
	}
	return x, y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
