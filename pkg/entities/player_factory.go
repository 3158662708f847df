package entities

import (
	"fmt"
	"image/color"

	"github.com/gonewx/deadlands/pkg/collision"
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/spawn"
)

// PlayerColor 玩家的绘制颜色
var PlayerColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}

// NewPlayerEntity 在指定中心位置创建玩家实体
func NewPlayerEntity(em *ecs.EntityManager, center spawn.Point, cfg config.PlayerConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.Size <= 0 || cfg.Speed <= 0 || cfg.Health <= 0 {
		return 0, fmt.Errorf("invalid player config: %+v", cfg)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.BodyComponent{Body: collision.Body{
		X:      center.X - cfg.Size/2,
		Y:      center.Y - cfg.Size/2,
		Width:  cfg.Size,
		Height: cfg.Size,
	}})
	ecs.AddComponent(em, entityID, &components.MovementComponent{Speed: cfg.Speed})
	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: cfg.Health,
		MaxHealth:     cfg.Health,
	})
	ecs.AddComponent(em, entityID, &components.SpriteComponent{Color: PlayerColor})
	ecs.AddComponent(em, entityID, &components.PlayerComponent{})

	return entityID, nil
}

// NewCameraEntity 创建跟随 target 的镜头实体
func NewCameraEntity(em *ecs.EntityManager, target ecs.EntityID, viewportW, viewportH float64) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.CameraComponent{
		ViewportWidth:  viewportW,
		ViewportHeight: viewportH,
		Target:         target,
	})
	return entityID
}
