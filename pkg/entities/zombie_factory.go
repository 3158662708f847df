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

// defaultZombieTint 种类未配置颜色时使用
var defaultZombieTint = color.RGBA{R: 60, G: 60, B: 60, A: 255}

// NewZombieEntity 根据生成请求创建僵尸实体
//
// 参数:
//   - em: 实体管理器
//   - req: 生成请求，Position 为僵尸中心
//
// 返回:
//   - ecs.EntityID: 创建的僵尸实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewZombieEntity(em *ecs.EntityManager, req spawn.Request) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if req.Stats.Size <= 0 {
		return 0, fmt.Errorf("zombie %s has no size", req.Species)
	}

	tint := defaultZombieTint
	if req.Stats.Tint != "" {
		c, err := config.ParseHexColor(req.Stats.Tint)
		if err != nil {
			return 0, fmt.Errorf("zombie %s tint: %w", req.Species, err)
		}
		tint = c
	}

	size := req.Stats.Size
	body := collision.Body{
		X:      req.Position.X - size/2,
		Y:      req.Position.Y - size/2,
		Width:  size,
		Height: size,
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.BodyComponent{Body: body})
	ecs.AddComponent(em, entityID, &components.MovementComponent{Speed: req.Speed})
	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: req.Stats.Health,
		MaxHealth:     req.Stats.Health,
	})
	ecs.AddComponent(em, entityID, &components.SpriteComponent{Color: tint})

	zombie := &components.ZombieComponent{
		Species: req.Species,
		Stats:   req.Stats,
	}
	zombie.Stuck.Reset(req.Position)
	ecs.AddComponent(em, entityID, zombie)

	return entityID, nil
}
