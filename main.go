package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/embedded"
	"github.com/gonewx/deadlands/pkg/game"
	"github.com/gonewx/deadlands/pkg/mapgen"
	"github.com/gonewx/deadlands/pkg/systems"
	"github.com/gonewx/deadlands/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	configDir  = flag.String("config", "data", "配置目录（data 时使用嵌入的配置）")
	seedFlag   = flag.Int64("seed", 0, "固定世界种子，0 使用设置中的种子或随机")
	difficulty = flag.String("difficulty", "", "难度预设，留空使用设置中的难度")
	verbose    = flag.Bool("verbose", false, "每秒输出一次会话统计")
)

var (
	backgroundColor = color.RGBA{R: 20, G: 28, B: 18, A: 255}
	errQuit         = errors.New("quit")
)

// Game 实现 ebiten.Game
type Game struct {
	cfg      *config.Bundle
	settings *game.SettingsManager
	audio    *game.AudioManager
	input    *utils.MoveInput

	session    *game.Session
	worldImage *mapgen.WorldImage
	render     *systems.RenderSystem

	verbose  bool
	ticks    int
	lastHits int
}

// newGame 创建游戏并开始第一局
func newGame(cfg *config.Bundle, settings *game.SettingsManager, am *game.AudioManager) (*Game, error) {
	g := &Game{cfg: cfg, settings: settings, audio: am}
	g.input = &utils.MoveInput{Anchor: func() (float64, float64) {
		return g.session.PlayerScreenPosition()
	}}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart 丢弃当前会话并按当前设置重新生成世界
func (g *Game) restart() error {
	session, err := game.NewSession(g.cfg, g.settings.GetSettings(), g.input)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	img, err := session.NewWorldImage()
	if err != nil {
		return err
	}

	g.worldImage.Dispose()
	g.session = session
	g.worldImage = img
	g.render = systems.NewRenderSystem(session.EntityManager(), img)
	g.render.Debug = g.settings.GetSettings().DebugOverlay
	g.lastHits = 0
	return nil
}

// Update 每个 tick 调用一次
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.Debug = g.settings.ToggleDebugOverlay()
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		g.settings.SetFullscreen(fullscreen)
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if g.settings.GetSettings().SoundVolume > 0 {
			g.settings.SetSoundVolume(0)
		} else {
			g.settings.SetSoundVolume(game.DefaultSettings().SoundVolume)
		}
		g.saveSettings()
	}

	presets := g.cfg.Spawner.PresetNames()
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if i >= len(presets) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if err := g.settings.SetDifficulty(presets[i], presets); err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		g.saveSettings()
		return g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}

	wasOver := g.session.Over()
	g.session.Update(1.0 / float64(ebiten.TPS()))
	g.playSounds(wasOver)

	g.ticks++
	if g.verbose && g.ticks%ebiten.TPS() == 0 {
		st := g.session.Stats()
		log.Printf("[Game] t=%.0fs hp=%d zombies=%d/%d spawned=%d relocated=%d cooldown=%.2fs",
			st.Elapsed, st.PlayerHealth, st.Population, st.Cap, st.Spawned, st.Relocated, st.Cooldown)
	}
	return nil
}

// playSounds 根据本帧的命中次数和死亡状态播放音效
func (g *Game) playSounds(wasOver bool) {
	if g.session.Over() && !wasOver {
		g.audio.PlaySound(game.SoundGameOver)
		return
	}
	if hits := g.session.Stats().Hits; hits > g.lastHits {
		g.lastHits = hits
		g.audio.PlaySound(game.SoundPlayerHit)
	}
}

func (g *Game) saveSettings() {
	if err := g.settings.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// Draw 绘制一帧
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	camX, camY := g.session.Camera()
	g.render.Draw(screen, camX, camY)

	st := g.session.Stats()
	hud := fmt.Sprintf("HP %d  Zombies %d/%d  Time %.0fs", st.PlayerHealth, st.Population, st.Cap, st.Elapsed)
	if g.settings.GetSettings().DebugOverlay {
		hud += fmt.Sprintf("\nFPS %.0f  TPS %.0f\nseed %d  difficulty %s\ncooldown %.2fs  spawned %d  relocated %d\nbuildings %d (skipped %d)  bucketed %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			st.Seed, g.settings.GetSettings().Difficulty,
			st.Cooldown, st.Spawned, st.Relocated,
			st.Buildings, st.Skipped, st.Bucketed)
		if id, ok := g.session.PlayerContact(); ok {
			hud += fmt.Sprintf("\ncontact zombie #%d", id)
		}
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.session.Over() {
		w, h := g.Layout(0, 0)
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R to restart", w/2-90, h/2)
	}
}

// Layout 返回逻辑屏幕尺寸（与配置的视口一致）
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.World.Viewport.Width, g.cfg.World.Viewport.Height
}

func main() {
	flag.Parse()
	embedded.Init(dataFS)

	cfg, err := config.LoadBundle(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	settings := game.OpenSettingsManager("deadlands")
	if *seedFlag != 0 {
		settings.SetSeed(*seedFlag)
	}
	if *difficulty != "" {
		if err := settings.SetDifficulty(*difficulty, cfg.Spawner.PresetNames()); err != nil {
			log.Fatal(err)
		}
	}

	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settings)
	g, err := newGame(cfg, settings, audioManager)
	if err != nil {
		log.Fatal(err)
	}
	g.verbose = *verbose

	ebiten.SetWindowSize(cfg.World.Viewport.Width, cfg.World.Viewport.Height)
	ebiten.SetWindowTitle("Deadlands")
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
	g.worldImage.Dispose()
}
