package system

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
)

type encounterWorld struct {
	w       *ecs.World
	player  ecs.Entity
	spawner ecs.Entity
	sys     *SpawnSystem
	spawned []common.Vec3
}

func newEncounterWorld(t *testing.T, sp *component.Spawner) *encounterWorld {
	t.Helper()
	ew := &encounterWorld{w: ecs.NewWorld()}
	ew.player = addPlayer(t, ew.w, common.V3(0, 0, 0), 5)
	ew.spawner = ecs.CreateEntity(ew.w)
	if sp.Prefab == "" {
		sp.Prefab = "ghoul.yaml"
	}
	mustAdd(t, ecs.Add(ew.w, ew.spawner, component.SpawnerComponent.Kind(), sp))
	ew.sys = NewSpawnSystem(func(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
		ew.spawned = append(ew.spawned, pos)
		return addGhoul(t, w, pos, component.StateIdle, 1), nil
	}, rand.New(rand.NewSource(7)))
	return ew
}

func (ew *encounterWorld) walkTo(p common.Vec3) {
	tr, _ := ecs.Get(ew.w, ew.player, component.TransformComponent.Kind())
	tr.Position = p
	tick(ew.w, ew.sys)
}

func (ew *encounterWorld) events(kind string) int {
	n := 0
	for _, evt := range ew.w.Events().Drain() {
		if evt.Type == kind && evt.Data == ew.spawner {
			n++
		}
	}
	return n
}

func encounterTrigger() component.Box {
	return component.Box{Center: common.V3(10, 0, 0), HalfX: 2, HalfZ: 2}
}

func TestBoxContains(t *testing.T) {
	b := encounterTrigger()
	cases := []struct {
		p    common.Vec3
		want bool
	}{
		{common.V3(10, 0, 0), true},
		{common.V3(12, 5, -2), true},
		{common.V3(12.01, 0, 0), false},
		{common.V3(0, 0, 0), false},
	}
	for _, c := range cases {
		if got := b.Contains(c.p); got != c.want {
			t.Fatalf("contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
	if (component.Box{Center: common.V3(0, 0, 0)}).Contains(common.V3(0, 0, 0)) {
		t.Fatalf("an empty box contains nothing")
	}
}

func TestEncounterWaitsForPlayer(t *testing.T) {
	ew := newEncounterWorld(t, &component.Spawner{
		Points:  []common.Vec3{common.V3(10, 0, 3), common.V3(10, 0, -3)},
		Trigger: encounterTrigger(),
	})

	for i := 0; i < 50; i++ {
		tick(ew.w, ew.sys)
	}
	if len(ew.spawned) != 0 {
		t.Fatalf("encounter released before the player arrived")
	}

	ew.walkTo(common.V3(9, 0, 0))
	if len(ew.spawned) != 2 || ew.spawned[0] != common.V3(10, 0, 3) || ew.spawned[1] != common.V3(10, 0, -3) {
		t.Fatalf("spawned %v, want one ghoul per point", ew.spawned)
	}
	ew.walkTo(common.V3(10, 0, 0))
	if len(ew.spawned) != 2 {
		t.Fatalf("encounter released twice")
	}
}

func TestEncounterSpreadsQuantityWithJitter(t *testing.T) {
	points := []common.Vec3{common.V3(10, 0, 3), common.V3(10, 0, -3)}
	ew := newEncounterWorld(t, &component.Spawner{
		Points:   points,
		Quantity: 5,
		Jitter:   1,
		Trigger:  encounterTrigger(),
	})

	ew.walkTo(common.V3(10, 0, 0))
	if len(ew.spawned) != 5 {
		t.Fatalf("spawned %d, want 5", len(ew.spawned))
	}
	for i, p := range ew.spawned {
		near := false
		for _, sp := range points {
			if p.Flat().Dist(sp) <= 1 {
				near = true
			}
		}
		if !near {
			t.Fatalf("ghoul %d at %v is not within jitter of a spawn point", i, p)
		}
		if i < len(points) && p.Flat().Dist(points[i]) > 1 {
			t.Fatalf("ghoul %d at %v, want near point %v", i, p, points[i])
		}
	}
}

func TestEncounterClearsWhenWaveDies(t *testing.T) {
	ew := newEncounterWorld(t, &component.Spawner{
		Points:  []common.Vec3{common.V3(10, 0, 3), common.V3(10, 0, -3)},
		Trigger: encounterTrigger(),
	})
	ew.walkTo(common.V3(10, 0, 0))
	sp, _ := ecs.Get(ew.w, ew.spawner, component.SpawnerComponent.Kind())
	wave := append([]uint64(nil), sp.Spawned...)
	ew.w.Events().Drain()

	ecs.DestroyEntity(ew.w, ecs.Entity(wave[0]))
	tick(ew.w, ew.sys)
	if !ecs.IsAlive(ew.w, ew.spawner) {
		t.Fatalf("encounter cleared with a ghoul still standing")
	}

	ecs.DestroyEntity(ew.w, ecs.Entity(wave[1]))
	tick(ew.w, ew.sys)
	if ecs.IsAlive(ew.w, ew.spawner) {
		t.Fatalf("encounter should be removed once cleared")
	}
	if n := ew.events(ecs.EventEncounterCleared); n != 1 {
		t.Fatalf("cleared events = %d, want 1", n)
	}
}

func TestEncounterLimitCancels(t *testing.T) {
	limit := component.Box{Center: common.V3(-10, 0, 0), HalfX: 1, HalfZ: 1}

	t.Run("before_start", func(t *testing.T) {
		ew := newEncounterWorld(t, &component.Spawner{
			Points:  []common.Vec3{common.V3(10, 0, 3)},
			Trigger: encounterTrigger(),
			Limit:   limit,
		})
		ew.walkTo(common.V3(-10, 0, 0))
		ew.walkTo(common.V3(10, 0, 0))
		if len(ew.spawned) != 0 || ecs.IsAlive(ew.w, ew.spawner) {
			t.Fatalf("cancelled encounter still released %v", ew.spawned)
		}
		if n := ew.events(ecs.EventEncounterCancelled); n != 1 {
			t.Fatalf("cancelled events = %d, want 1", n)
		}
	})

	t.Run("takes_its_ghouls", func(t *testing.T) {
		ew := newEncounterWorld(t, &component.Spawner{
			Points:  []common.Vec3{common.V3(10, 0, 3), common.V3(10, 0, -3)},
			Trigger: encounterTrigger(),
			Limit:   limit,
		})
		ew.walkTo(common.V3(10, 0, 0))
		ghouls := ew.w.Query(component.GhoulTagComponent.Kind())
		if len(ghouls) != 2 {
			t.Fatalf("ghouls = %d, want 2", len(ghouls))
		}
		ew.walkTo(common.V3(-10, 0, 0))
		if n := len(ew.w.Query(component.GhoulTagComponent.Kind())); n != 0 {
			t.Fatalf("ghouls = %d after the limit, want none", n)
		}
		if ecs.IsAlive(ew.w, ew.spawner) {
			t.Fatalf("cancelled encounter should be removed")
		}
	})
}

func TestEncounterWithoutTriggerStartsAtOnce(t *testing.T) {
	ew := newEncounterWorld(t, &component.Spawner{
		Points: []common.Vec3{common.V3(1, 0, 1), common.V3(-1, 0, -1)},
	})
	ew.sys.Spawn = func(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
		ew.spawned = append(ew.spawned, pos)
		if len(ew.spawned) == 2 {
			return ecs.NoEntity, errors.New("no room")
		}
		return ecs.CreateEntity(w), nil
	}

	tick(ew.w, ew.sys)
	tick(ew.w, ew.sys)
	if len(ew.spawned) != 2 {
		t.Fatalf("spawned %d, want the wave of 2 exactly once", len(ew.spawned))
	}
	sp, ok := ecs.Get(ew.w, ew.spawner, component.SpawnerComponent.Kind())
	if !ok || len(sp.Spawned) != 1 {
		t.Fatalf("spawner should track only the ghoul that was built")
	}
}
