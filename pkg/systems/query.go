package systems

import (
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/spawn"
)

// findPlayer 返回第一个玩家实体及其中心
func findPlayer(em *ecs.EntityManager) (ecs.EntityID, spawn.Point, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.BodyComponent](em) {
		body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
		return id, centerOf(body), true
	}
	return 0, spawn.Point{}, false
}

// zombieBodies 返回所有僵尸实体（按 ID 升序）及其碰撞体
func zombieBodies(em *ecs.EntityManager) ([]ecs.EntityID, []*components.BodyComponent) {
	ids := ecs.GetEntitiesWith2[*components.ZombieComponent, *components.BodyComponent](em)
	bodies := make([]*components.BodyComponent, len(ids))
	for i, id := range ids {
		bodies[i], _ = ecs.GetComponent[*components.BodyComponent](em, id)
	}
	return ids, bodies
}

func centerOf(b *components.BodyComponent) spawn.Point {
	x, y := b.Center()
	return spawn.Point{X: x, Y: y}
}

// moveCenterTo 平移碰撞体使其中心落在 p
func moveCenterTo(b *components.BodyComponent, p spawn.Point) {
	b.X = p.X - b.Width/2
	b.Y = p.Y - b.Height/2
}
