package system

import (
	"math"
	"testing"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
)

func addWall(t *testing.T, w *ecs.World, pos common.Vec3, halfX, halfZ float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	mustAdd(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Static: true, HalfX: halfX, HalfZ: halfZ}))
	return e
}

func addBody(t *testing.T, w *ecs.World, e ecs.Entity, radius float64, tag string) {
	t.Helper()
	mustAdd(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius, Tag: tag}))
}

func TestPhysicsRaycast(t *testing.T) {
	w := ecs.NewWorld()
	wall := addWall(t, w, common.V3(5, 0, 0), 1, 1)
	g := addGhoul(t, w, common.V3(0, 0, 3), component.StateIdle, 3)
	addBody(t, w, g, 0.5, TagGhoul)

	ps := NewPhysicsSystem()
	ps.Update(w)

	cases := []struct {
		name    string
		dir     common.Vec3
		maxDist float64
		hit     bool
		entity  ecs.Entity
		tag     string
		at      float64
	}{
		{"wall_ahead", common.V3(1, 0, 0), 10, true, wall, TagWall, 4},
		{"ghoul_ahead", common.V3(0, 0, 1), 10, true, g, TagGhoul, 2.5},
		{"nothing_behind", common.V3(-1, 0, 0), 10, false, ecs.NoEntity, "", 0},
		{"wall_out_of_range", common.V3(1, 0, 0), 3, false, ecs.NoEntity, "", 0},
		{"zero_direction", common.V3(0, 0, 0), 10, false, ecs.NoEntity, "", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := ps.Raycast(common.V3(0, 0, 0), c.dir, c.maxDist)
			if ok != c.hit {
				t.Fatalf("hit = %t, want %t", ok, c.hit)
			}
			if !ok {
				return
			}
			if hit.Entity != c.entity || hit.Tag != c.tag {
				t.Fatalf("hit %s (%s), want %s (%s)", hit.Entity, hit.Tag, c.entity, c.tag)
			}
			if d := hit.Point.Len(); math.Abs(d-c.at) > 1e-6 {
				t.Fatalf("hit distance = %v, want %v", d, c.at)
			}
		})
	}
}

func TestPhysicsTracksMovedAndDestroyedBodies(t *testing.T) {
	w := ecs.NewWorld()
	g := addGhoul(t, w, common.V3(0, 0, 3), component.StateIdle, 3)
	addBody(t, w, g, 0.5, TagGhoul)
	ps := NewPhysicsSystem()
	ps.Update(w)

	tr, _ := ecs.Get(w, g, component.TransformComponent.Kind())
	tr.Position = common.V3(0, 0, -3)
	ps.Update(w)

	if _, ok := ps.Raycast(common.V3(0, 0, 0), common.V3(0, 0, 1), 10); ok {
		t.Fatalf("ray hit the body's old position")
	}
	hit, ok := ps.Raycast(common.V3(0, 0, 0), common.V3(0, 0, -1), 10)
	if !ok || hit.Entity != g {
		t.Fatalf("ray missed the moved body")
	}

	ecs.DestroyEntity(w, g)
	ps.Update(w)
	if _, ok := ps.Raycast(common.V3(0, 0, 0), common.V3(0, 0, -1), 10); ok {
		t.Fatalf("ray hit a destroyed body")
	}
}

func TestPhysicsSampleWalkable(t *testing.T) {
	w := ecs.NewWorld()
	addWall(t, w, common.V3(5, 0, 0), 1, 1)
	ps := NewPhysicsSystem()
	ps.Update(w)

	open := common.V3(-3, 0, 2)
	if got := ps.SampleWalkable(open, 3); got != open {
		t.Fatalf("open ground moved to %v", got)
	}

	got := ps.SampleWalkable(common.V3(4.5, 0, 0), 3)
	if got.X >= 4 {
		t.Fatalf("sample %v is still inside the wall", got)
	}

	if got := ps.SampleWalkable(common.V3(4.5, 0, 0), 0.1); got != common.V3(4.5, 0, 0) {
		t.Fatalf("sample beyond radius should return the query point, got %v", got)
	}
}

func TestNavigationStopsAtWalls(t *testing.T) {
	w := ecs.NewWorld()
	addWall(t, w, common.V3(2, 0, 0), 0.45, 2)
	g := addGhoul(t, w, common.V3(0, 0, 0), component.StateWandering, 3)
	nav, _ := ecs.Get(w, g, component.NavAgentComponent.Kind())
	nav.Destination = common.V3(5, 0, 0)
	nav.HasDestination = true
	nav.Speed = 1

	ps := NewPhysicsSystem()
	navSys := NewNavigationSystem(ps)
	for i := 0; i < 30; i++ {
		tick(w, navSys, ps)
	}

	tr, _ := ecs.Get(w, g, component.TransformComponent.Kind())
	if tr.Position.X >= 1.55 {
		t.Fatalf("agent walked through the wall to %v", tr.Position)
	}
	if tr.Position.X < 1.4 {
		t.Fatalf("agent stopped early at %v", tr.Position)
	}
	if !nav.OnLink {
		t.Fatalf("blocked agent should report it is on a link")
	}
	if !(Navigator{World: w}).OnTransitionLink(g) {
		t.Fatalf("navigator should expose the blocked link")
	}
}

func TestNavigationArrives(t *testing.T) {
	w := ecs.NewWorld()
	g := addGhoul(t, w, common.V3(0, 0, 0), component.StateWandering, 3)
	Navigator{World: w}.SetDestination(g, common.V3(0, 0, 1))
	nav, _ := ecs.Get(w, g, component.NavAgentComponent.Kind())
	nav.Speed = 2

	for i := 0; i < 10; i++ {
		tick(w, NewNavigationSystem(nil))
	}
	tr, _ := ecs.Get(w, g, component.TransformComponent.Kind())
	if tr.Position.Dist(common.V3(0, 0, 1)) > arriveDistance {
		t.Fatalf("agent at %v, want at destination", tr.Position)
	}
	if nav.HasDestination {
		t.Fatalf("arrived agent should clear its destination")
	}
}
