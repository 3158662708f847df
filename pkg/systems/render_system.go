package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/mapgen"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// attackScale 攻击动作期间僵尸放大的比例
	attackScale = 1.15
	// attackLineLength 调试模式下攻击朝向线的长度
	attackLineLength = 24
)

var (
	hitFlashColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	debugBoxColor = color.RGBA{R: 255, G: 230, B: 0, A: 255}
)

// RenderSystem 绘制世界和实体
//
// 世界只有一次预渲染图像的视口裁剪绘制；实体以填充圆绘制，直径等于碰撞体宽度，
// 按中心 Y 排序，下方的实体盖住上方的实体。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	world         *mapgen.WorldImage

	// Debug 为 true 时额外绘制碰撞盒和攻击朝向
	Debug bool

	order []ecs.EntityID
}

// NewRenderSystem 创建渲染系统
// world 为 nil 时只绘制实体
func NewRenderSystem(em *ecs.EntityManager, world *mapgen.WorldImage) *RenderSystem {
	return &RenderSystem{entityManager: em, world: world}
}

// Draw 以 (cameraX, cameraY) 为视口左上角绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image, cameraX, cameraY float64) {
	s.world.Render(screen, cameraX, cameraY)

	s.order = append(s.order[:0], ecs.GetEntitiesWith2[*components.BodyComponent, *components.SpriteComponent](s.entityManager)...)
	sort.SliceStable(s.order, func(i, j int) bool {
		bi, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, s.order[i])
		bj, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, s.order[j])
		return bi.Y+bi.Height < bj.Y+bj.Height
	})

	for _, id := range s.order {
		s.drawEntity(screen, id, cameraX, cameraY)
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID, cameraX, cameraY float64) {
	body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

	cx, cy := body.Center()
	sx, sy := float32(cx-cameraX), float32(cy-cameraY)
	radius := float32(body.Radius())
	clr := sprite.Color

	zombie, isZombie := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
	if isZombie && zombie.IsAttacking() {
		radius *= attackScale
	}
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id); ok && player.HitTimer > 0 {
		clr = hitFlashColor
	}

	vector.FillCircle(screen, sx, sy, radius, clr, true)

	if !s.Debug {
		return
	}
	vector.StrokeRect(screen, float32(body.X-cameraX), float32(body.Y-cameraY),
		float32(body.Width), float32(body.Height), 1, debugBoxColor, false)
	if isZombie && zombie.IsAttacking() {
		ex, ey := polar(zombie.AttackAngle, attackLineLength)
		vector.StrokeLine(screen, sx, sy, sx+ex, sy+ey, 2, debugBoxColor, true)
	}
}

// polar 把角度和长度转换为屏幕位移
func polar(angle, length float64) (float32, float32) {
	return float32(math.Cos(angle) * length), float32(math.Sin(angle) * length)
}
