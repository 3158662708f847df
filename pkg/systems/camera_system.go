package systems

import (
	"math"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
)

// CameraSystem 让镜头跟随目标实体，并限制在世界矩形之内
type CameraSystem struct {
	entityManager *ecs.EntityManager
	worldWidth    float64
	worldHeight   float64
}

// NewCameraSystem 创建镜头系统
func NewCameraSystem(em *ecs.EntityManager, worldW, worldH float64) *CameraSystem {
	return &CameraSystem{entityManager: em, worldWidth: worldW, worldHeight: worldH}
}

// Update 把所有镜头移向各自目标的中心
func (cs *CameraSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CameraComponent](cs.entityManager) {
		cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, id)
		body, ok := ecs.GetComponent[*components.BodyComponent](cs.entityManager, cam.Target)
		if !ok {
			continue
		}

		cx, cy := body.Center()
		wantX := cx - cam.ViewportWidth/2
		wantY := cy - cam.ViewportHeight/2

		if cam.FollowSpeed > 0 {
			t := math.Min(1, cam.FollowSpeed*dt)
			wantX = cam.X + (wantX-cam.X)*t
			wantY = cam.Y + (wantY-cam.Y)*t
		}

		cam.X = ClampCamera(wantX, cam.ViewportWidth, cs.worldWidth)
		cam.Y = ClampCamera(wantY, cam.ViewportHeight, cs.worldHeight)
	}
}

// Position 返回第一个镜头的位置
func (cs *CameraSystem) Position() (x, y float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CameraComponent](cs.entityManager) {
		cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, id)
		return cam.X, cam.Y
	}
	return 0, 0
}

// ClampCamera 把镜头一个轴上的位置限制在 [0, world-viewport]
// 世界比视口小时返回居中位置（负值）
func ClampCamera(pos, viewport, world float64) float64 {
	if world <= viewport {
		return (world - viewport) / 2
	}
	return math.Max(0, math.Min(world-viewport, pos))
}
