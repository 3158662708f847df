package systems

import (
	"testing"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/entities"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/types"
	"github.com/gonewx/deadlands/pkg/world"
)

// openGrid 创建全是草地的网格
func openGrid(w, h int, tileSize float64) *world.Grid {
	return world.NewGrid(w, h, tileSize)
}

func mustParseGrid(t testing.TB, tileSize float64, rows ...string) *world.Grid {
	t.Helper()
	g, err := world.ParseGrid(rows, tileSize)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	return g
}

func addPlayer(t testing.TB, em *ecs.EntityManager, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlayerEntity(em, spawn.Point{X: x, Y: y}, config.DefaultWorldConfig().Player)
	if err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}
	return id
}

// addZombie 在中心 (x, y) 创建指定种类的僵尸，速度取种类下限
func addZombie(t testing.TB, em *ecs.EntityManager, sp types.Species, x, y float64) ecs.EntityID {
	t.Helper()
	stats, ok := config.DefaultSpeciesTable().Stats(sp)
	if !ok {
		t.Fatalf("unknown species %v", sp)
	}
	id, err := entities.NewZombieEntity(em, spawn.Request{
		Position: spawn.Point{X: x, Y: y},
		Species:  sp,
		Speed:    stats.SpeedMin,
		Stats:    *stats,
	})
	if err != nil {
		t.Fatalf("NewZombieEntity failed: %v", err)
	}
	return id
}

func bodyOf(t testing.TB, em *ecs.EntityManager, id ecs.EntityID) *components.BodyComponent {
	t.Helper()
	body, ok := ecs.GetComponent[*components.BodyComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no body", id)
	}
	return body
}

func centerPoint(t testing.TB, em *ecs.EntityManager, id ecs.EntityID) spawn.Point {
	t.Helper()
	return centerOf(bodyOf(t, em, id))
}
