package systems

import (
	"math"
	"testing"

	"github.com/gonewx/deadlands/pkg/collision"
	"github.com/gonewx/deadlands/pkg/components"
	"github.com/gonewx/deadlands/pkg/ecs"
	"github.com/gonewx/deadlands/pkg/types"
)

type fixedInput struct{ dx, dy float64 }

func (f fixedInput) MoveDirection() (float64, float64) { return f.dx, f.dy }

func TestPlayerMovesThroughResolver(t *testing.T) {
	grid := mustParseGrid(t, 32,
		"........",
		"........",
		".....#..",
		"........",
	)
	em := ecs.NewEntityManager()
	player := addPlayer(t, em, 48, 80)

	control := NewPlayerControlSystem(em, fixedInput{dx: 1})
	movement := NewMovementSystem(em, collision.NewResolver(grid))

	t.Run("空地上移动", func(t *testing.T) {
		control.Update()
		movement.Update(0.1)
		c := centerPoint(t, em, player)
		if math.Abs(c.X-68) > 1e-9 || c.Y != 80 {
			t.Errorf("center = %v, want (68, 80)", c)
		}
		mv, _ := ecs.GetComponent[*components.MovementComponent](em, player)
		if !mv.Moving || mv.Collided {
			t.Errorf("Moving=%v Collided=%v, want true/false", mv.Moving, mv.Collided)
		}
	})

	t.Run("撞墙停下", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			control.Update()
			movement.Update(0.1)
		}
		c := centerPoint(t, em, player)
		if !grid.IsWalkable(c.X, c.Y) {
			t.Fatalf("player center %v entered a wall", c)
		}
		if c.X >= 160 {
			t.Errorf("player passed the wall at column 5: %v", c)
		}
		mv, _ := ecs.GetComponent[*components.MovementComponent](em, player)
		if !mv.Collided || mv.Moving {
			t.Errorf("Moving=%v Collided=%v, want false/true", mv.Moving, mv.Collided)
		}
	})

	t.Run("无输入不移动", func(t *testing.T) {
		control.input = fixedInput{}
		before := centerPoint(t, em, player)
		control.Update()
		movement.Update(0.1)
		if after := centerPoint(t, em, player); after != before {
			t.Errorf("moved without input: %v -> %v", before, after)
		}
	})
}

func TestZombieSteering(t *testing.T) {
	grid := mustParseGrid(t, 32,
		"..........",
		"..%.......",
		"..........",
	)
	em := ecs.NewEntityManager()
	addPlayer(t, em, 300, 48)
	onGrass := addZombie(t, em, types.SpeciesWeak, 16, 16)
	onObstacle := addZombie(t, em, types.SpeciesWeak, 80, 48)
	attacking := addZombie(t, em, types.SpeciesFast, 200, 80)
	nearby := addZombie(t, em, types.SpeciesTough, 302, 48)

	z, _ := ecs.GetComponent[*components.ZombieComponent](em, attacking)
	z.AttackAnimTimer = 0.3
	z.AttackTimer = 0.5

	NewZombieSteeringSystem(em, grid, 0.6).Update(0.1)

	mv := func(id ecs.EntityID) *components.MovementComponent {
		m, _ := ecs.GetComponent[*components.MovementComponent](em, id)
		return m
	}

	if m := mv(onGrass); m.DirX != 284 || m.DirY != 32 || m.SpeedScale != 1 {
		t.Errorf("grass zombie movement = %+v, want dir (284, 32) scale 1", m)
	}
	if m := mv(onObstacle); m.SpeedScale != 0.6 {
		t.Errorf("obstacle zombie scale = %v, want 0.6", m.SpeedScale)
	}
	if m := mv(attacking); m.DirX != 0 || m.DirY != 0 {
		t.Errorf("attacking zombie should stand still, got %+v", m)
	}
	if m := mv(nearby); m.DirX != 0 || m.DirY != 0 {
		t.Errorf("zombie inside the dead zone should stand still, got %+v", m)
	}
	if math.Abs(z.AttackTimer-0.4) > 1e-9 || math.Abs(z.AttackAnimTimer-0.2) > 1e-9 {
		t.Errorf("attack timers = %v, %v, want 0.4, 0.2", z.AttackTimer, z.AttackAnimTimer)
	}
}

func TestZombieSteeringWithoutPlayer(t *testing.T) {
	em := ecs.NewEntityManager()
	id := addZombie(t, em, types.SpeciesWeak, 50, 50)
	m, _ := ecs.GetComponent[*components.MovementComponent](em, id)
	m.DirX, m.DirY = 1, 1

	NewZombieSteeringSystem(em, nil, 0.6).Update(0.1)
	if m.DirX != 0 || m.DirY != 0 {
		t.Errorf("zombie should stop without a player, got %+v", m)
	}
}
