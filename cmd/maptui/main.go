// maptui 在终端中浏览生成的地图
//
// 按键:
//
//	方向键 / hjkl   滚动
//	n / p          下一个 / 上一个种子
//	z              显示或隐藏初始僵尸
//	q / Esc        退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/mapgen"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/world"
)

var (
	configDir = flag.String("config", "data", "配置目录")
	seedFlag  = flag.Int64("seed", 1, "起始种子")
)

var tileStyles = map[world.Tile]tcell.Style{
	world.Grass:    tcell.StyleDefault.Foreground(tcell.ColorGreen),
	world.Obstacle: tcell.StyleDefault.Foreground(tcell.ColorOlive),
	world.Wall:     tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorGray),
	world.Floor:    tcell.StyleDefault.Foreground(tcell.ColorMaroon),
}

var (
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	zombieStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// browser 地图浏览状态
type browser struct {
	screen tcell.Screen
	cfg    *config.Bundle

	seed     int64
	result   *mapgen.Result
	start    spawn.Point
	hasStart bool
	zombies  []spawn.Point

	offsetX, offsetY int
	showZombies      bool
}

func newBrowser(screen tcell.Screen, cfg *config.Bundle, seed int64) *browser {
	b := &browser{screen: screen, cfg: cfg, showZombies: true}
	b.regenerate(seed)
	return b
}

// regenerate 用指定种子重新生成地图，并把视图移到玩家出生点
func (b *browser) regenerate(seed int64) {
	b.seed = seed
	rng := rand.New(rand.NewSource(seed))
	b.result = mapgen.NewGenerator(b.cfg.World, b.cfg.Buildings).Generate(rng)

	finder := spawn.NewFinder(b.result.Grid, rand.New(rand.NewSource(rng.Int63())))
	b.start, b.hasStart = finder.PlayerStart()

	vw, vh := float64(b.cfg.World.Viewport.Width), float64(b.cfg.World.Viewport.Height)
	spawner := spawn.NewSpawner(finder, b.cfg.Spawner, "", b.cfg.Species, vw, vh)
	b.zombies = b.zombies[:0]
	for _, req := range spawner.InitialSpawns(spawner.InitialSpawnCount(), b.start) {
		b.zombies = append(b.zombies, req.Position)
	}

	w, h := b.screen.Size()
	col, row := b.result.Grid.WorldToTile(b.start.X, b.start.Y)
	b.offsetX, b.offsetY = col-w/2, row-(h-1)/2
	b.clampOffset()
}

// clampOffset 保证视图不超出地图
func (b *browser) clampOffset() {
	w, h := b.screen.Size()
	h-- // 状态栏
	grid := b.result.Grid
	b.offsetX = max(0, min(b.offsetX, grid.Width()-w))
	b.offsetY = max(0, min(b.offsetY, grid.Height()-h))
}

func (b *browser) draw() {
	b.screen.Clear()
	w, h := b.screen.Size()
	grid := b.result.Grid

	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			col, row := x+b.offsetX, y+b.offsetY
			if !grid.InBounds(col, row) {
				continue
			}
			t := grid.At(col, row)
			b.screen.SetContent(x, y, t.Glyph(), nil, tileStyles[t])
		}
	}

	if b.showZombies {
		for _, p := range b.zombies {
			b.mark(p, 'z', zombieStyle)
		}
	}
	if b.hasStart {
		b.mark(b.start, '@', playerStyle)
	}

	status := fmt.Sprintf(" seed %d | %dx%d | buildings %d (skipped %d) | zombies %d | view (%d,%d) | n/p seed  z zombies  q quit ",
		b.seed, grid.Width(), grid.Height(), len(b.result.Buildings), b.result.Skipped(),
		len(b.zombies), b.offsetX, b.offsetY)
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(status) {
			ch = rune(status[x])
		}
		b.screen.SetContent(x, h-1, ch, nil, statusStyle)
	}
	b.screen.Show()
}

// mark 在世界坐标 p 对应的格子上画一个标记
func (b *browser) mark(p spawn.Point, ch rune, style tcell.Style) {
	col, row := b.result.Grid.WorldToTile(p.X, p.Y)
	x, y := col-b.offsetX, row-b.offsetY
	_, h := b.screen.Size()
	if x < 0 || y < 0 || y >= h-1 {
		return
	}
	b.screen.SetContent(x, y, ch, nil, style)
}

// handleKey 处理按键，返回 false 表示退出
func (b *browser) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		b.offsetX--
	case tcell.KeyRight:
		b.offsetX++
	case tcell.KeyUp:
		b.offsetY--
	case tcell.KeyDown:
		b.offsetY++
	case tcell.KeyPgUp:
		_, h := b.screen.Size()
		b.offsetY -= h / 2
	case tcell.KeyPgDn:
		_, h := b.screen.Size()
		b.offsetY += h / 2
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			b.offsetX--
		case 'l':
			b.offsetX++
		case 'k':
			b.offsetY--
		case 'j':
			b.offsetY++
		case 'n':
			b.regenerate(b.seed + 1)
		case 'p':
			b.regenerate(b.seed - 1)
		case 'z':
			b.showZombies = !b.showZombies
		}
	}
	b.clampOffset()
	return true
}

func main() {
	flag.Parse()
	log.SetOutput(io.Discard)

	cfg, err := config.LoadBundle(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "maptui: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "maptui: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "maptui: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	b := newBrowser(screen, cfg, *seedFlag)
	for {
		b.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			b.clampOffset()
		case *tcell.EventKey:
			if !b.handleKey(ev) {
				return
			}
		}
	}
}
