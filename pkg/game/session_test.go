package game

import (
	"reflect"
	"testing"

	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/config"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/entities"
	"github.com/gonewx/deadlands/pkg/spawn"
	"github.com/gonewx/deadlands/pkg/types"
)

type constantInput struct{ dx, dy float64 }

func (c constantInput) MoveDirection() (float64, float64) { return c.dx, c.dy }

func newTestSession(t *testing.T, seed int64, input constantInput) *Session {
	t.Helper()
	settings := DefaultSettings()
	settings.Seed = seed
	s, err := NewSession(nil, settings, input)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	return s
}

func TestSessionDeterministic(t *testing.T) {
	a := newTestSession(t, 77, constantInput{})
	b := newTestSession(t, 77, constantInput{})

	if !reflect.DeepEqual(a.Grid().Rows(), b.Grid().Rows()) {
		t.Fatal("same seed produced different maps")
	}

	pa, _ := ecs.GetComponent[*components.BodyComponent](a.EntityManager(), a.Player())
	pb, _ := ecs.GetComponent[*components.BodyComponent](b.EntityManager(), b.Player())
	if pa.Body != pb.Body {
		t.Errorf("player start differs: %+v vs %+v", pa.Body, pb.Body)
	}
	if a.Stats().Population != b.Stats().Population {
		t.Errorf("initial population differs: %d vs %d", a.Stats().Population, b.Stats().Population)
	}
	if a.Seed() != 77 {
		t.Errorf("Seed() = %d, want 77", a.Seed())
	}
}

func TestSessionEntitiesStayOnWalkableTiles(t *testing.T) {
	s := newTestSession(t, 5, constantInput{dx: 1, dy: 0.3})
	grid := s.Grid()
	em := s.EntityManager()

	const dt = 1.0 / 60
	for frame := 0; frame < 1200 && !s.Over(); frame++ {
		s.Update(dt)

		for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](em) {
			body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
			cx, cy := body.Center()
			if !grid.IsWalkable(cx, cy) {
				t.Fatalf("frame %d: entity %d center (%.1f, %.1f) is not walkable", frame, id, cx, cy)
			}
		}

		camX, camY := s.Camera()
		w, h := grid.WorldSize()
		if camX < 0 || camY < 0 || camX+800 > w || camY+600 > h {
			t.Fatalf("frame %d: camera (%.1f, %.1f) outside the world", frame, camX, camY)
		}
	}

	st := s.Stats()
	if st.Spawned <= 0 {
		t.Error("expected zombies to spawn over 20 seconds")
	}
	if st.Elapsed <= 0 || st.Cap < config.DefaultSpawnerConfig().Presets["normal"].InitialPopulationCap {
		t.Errorf("unexpected difficulty stats: %+v", st)
	}
}

func TestSessionPlayerContactAndGameOver(t *testing.T) {
	s := newTestSession(t, 9, constantInput{})
	em := s.EntityManager()

	if id, ok := s.PlayerContact(); ok {
		t.Fatalf("no zombie should touch the player at start, got %d", id)
	}

	body, _ := ecs.GetComponent[*components.BodyComponent](em, s.Player())
	cx, cy := body.Center()
	stats, _ := config.DefaultSpeciesTable().Stats(types.SpeciesTough)
	zombie, err := entities.NewZombieEntity(em, spawn.Request{
		Position: spawn.Point{X: cx + 4, Y: cy},
		Species:  types.SpeciesTough,
		Speed:    stats.SpeedMin,
		Stats:    *stats,
	})
	if err != nil {
		t.Fatalf("NewZombieEntity() error: %v", err)
	}

	if id, ok := s.PlayerContact(); !ok || id != zombie {
		t.Errorf("PlayerContact() = %d, %v, want %d", id, ok, zombie)
	}

	hp, _ := ecs.GetComponent[*components.HealthComponent](em, s.Player())
	hp.CurrentHealth = 1
	s.Update(1.0 / 60)
	if !s.Over() {
		t.Fatal("expected the session to end after a lethal hit")
	}

	before := s.Stats().Elapsed
	s.Update(1)
	if s.Stats().Elapsed != before {
		t.Error("a finished session must not advance")
	}
}

func TestSessionPlayerScreenPosition(t *testing.T) {
	s := newTestSession(t, 12, constantInput{})

	x, y := s.PlayerScreenPosition()
	if x < 0 || x > 800 || y < 0 || y > 600 {
		t.Fatalf("player at (%.1f, %.1f) is outside the 800x600 viewport", x, y)
	}

	body, _ := ecs.GetComponent[*components.BodyComponent](s.EntityManager(), s.Player())
	cx, cy := body.Center()
	camX, camY := s.Camera()
	if x != cx-camX || y != cy-camY {
		t.Errorf("screen position (%v, %v), want (%v, %v)", x, y, cx-camX, cy-camY)
	}
}
