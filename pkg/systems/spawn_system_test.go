package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/types"
)

func newTestSpawner(seed int64) (*spawn.Spawner, *config.SpawnerConfig) {
	grid := openGrid(100, 100, 32)
	cfg := config.DefaultSpawnerConfig()
	finder := spawn.NewFinder(grid, rand.New(rand.NewSource(seed)))
	return spawn.NewSpawner(finder, cfg, "normal", nil, 800, 600), cfg
}

func TestSpawnSystem(t *testing.T) {
	spawner, _ := newTestSpawner(5)
	em := ecs.NewEntityManager()
	player := addPlayer(t, em, 1600, 1600)
	sys := NewSpawnSystem(em, spawner)

	t.Run("初始散布", func(t *testing.T) {
		n := sys.SpawnInitial()
		if n != spawner.InitialSpawnCount() {
			t.Errorf("SpawnInitial() = %d, want %d on an open map", n, spawner.InitialSpawnCount())
		}
		if sys.Population() != n {
			t.Errorf("Population() = %d, want %d", sys.Population(), n)
		}
		lo, _ := spawner.SpawnDistance()
		for _, id := range ecs.GetEntitiesWith1[*components.ZombieComponent](em) {
			if d := centerPoint(t, em, id).Dist(centerPoint(t, em, player)); d < lo-1e-6 {
				t.Errorf("initial zombie %d is %.1f from the player, want >= %.1f", id, d, lo)
			}
		}
	})

	t.Run("没有玩家时不散布", func(t *testing.T) {
		empty := NewSpawnSystem(ecs.NewEntityManager(), spawner)
		if n := empty.SpawnInitial(); n != 0 {
			t.Errorf("SpawnInitial() = %d without a player, want 0", n)
		}
	})

	t.Run("冷却结束后在视口外生成", func(t *testing.T) {
		before := sys.Population()
		cooldown := spawner.Difficulty().Cooldown()
		sys.Update(cooldown)
		if sys.Population() != before+1 {
			t.Fatalf("Population() = %d, want %d", sys.Population(), before+1)
		}

		ids := ecs.GetEntitiesWith1[*components.ZombieComponent](em)
		newest := ids[len(ids)-1]
		lo, hi := spawner.SpawnDistance()
		d := centerPoint(t, em, newest).Dist(centerPoint(t, em, player))
		if d < lo-1e-6 || d > hi+1e-6 {
			t.Errorf("spawn distance %.1f outside [%.1f, %.1f]", d, lo, hi)
		}
	})

	t.Run("冷却未结束不生成", func(t *testing.T) {
		before := sys.Population()
		sys.Update(0.01)
		if sys.Population() != before {
			t.Errorf("spawned during cooldown: %d -> %d", before, sys.Population())
		}
	})

	if sys.Spawned() != sys.Population() {
		t.Errorf("Spawned() = %d, Population() = %d", sys.Spawned(), sys.Population())
	}
}

func TestSpawnSystemWithoutPlayer(t *testing.T) {
	spawner, _ := newTestSpawner(1)
	em := ecs.NewEntityManager()
	sys := NewSpawnSystem(em, spawner)
	sys.Update(100)
	if sys.Population() != 0 {
		t.Errorf("nothing should spawn without a player, got %d", sys.Population())
	}
}

func TestStuckSystemRelocates(t *testing.T) {
	spawner, cfg := newTestSpawner(9)
	em := ecs.NewEntityManager()
	player := addPlayer(t, em, 1600, 1600)
	zombie := addZombie(t, em, types.SpeciesWeak, 300, 300)
	sys := NewStuckSystem(em, spawner, cfg.Stuck)

	// 第一次检测只累计 0.5 秒，不足 Timeout
	sys.Update(cfg.Stuck.CheckInterval)
	if sys.Relocated() != 0 {
		t.Fatal("relocated before the timeout")
	}

	sys.Update(cfg.Stuck.CheckInterval)
	if sys.Relocated() != 1 {
		t.Fatalf("Relocated() = %d, want 1", sys.Relocated())
	}

	d := centerPoint(t, em, zombie).Dist(centerPoint(t, em, player))
	// 屏幕外距离 = max(800, 600)/2 + 100 = 500，目标距离被 MaxDistance 限制在 500
	if d < 500-1e-6 || d > 500+1e-6 {
		t.Errorf("relocated distance = %.3f, want 500", d)
	}
}

func TestStuckSystemIgnoresNearbyZombies(t *testing.T) {
	spawner, cfg := newTestSpawner(9)
	em := ecs.NewEntityManager()
	addPlayer(t, em, 1600, 1600)
	addZombie(t, em, types.SpeciesWeak, 1700, 1600)
	sys := NewStuckSystem(em, spawner, cfg.Stuck)

	for i := 0; i < 10; i++ {
		sys.Update(cfg.Stuck.CheckInterval)
	}
	if sys.Relocated() != 0 {
		t.Errorf("zombie 100px from the player should never be relocated, got %d", sys.Relocated())
	}
}
