package entity

import (
	"testing"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/ecs/system"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/prefabs"
	"github.com/milk9111/spiritfox/realm"
)

func loadTestWorld(t *testing.T) (*ecs.World, *Level, *realm.Coordinator, Deps) {
	t.Helper()
	spec, err := prefabs.LoadWorldSpec("world.yaml")
	if err != nil {
		t.Fatalf("load world spec: %v", err)
	}
	w := ecs.NewWorld()
	c := realm.NewCoordinator(system.RealmRegistry{World: w}, 1)
	rec := port.NewRecorder()
	deps := Deps{Clock: c, Presenter: rec, UI: rec}
	lvl, err := LoadWorld(w, spec, deps)
	if err != nil {
		t.Fatalf("load world: %v", err)
	}
	return w, lvl, c, deps
}

func TestLoadWorldBuildsEncounter(t *testing.T) {
	w, lvl, c, _ := loadTestWorld(t)

	if !ecs.Has(w, lvl.Player, component.RealmAuthorityComponent.Kind()) {
		t.Fatalf("player should hold the realm authority")
	}
	pl, _ := ecs.Get(w, lvl.Player, component.PlayerComponent.Kind())
	if pl.SpiritBalls != 3 || pl.Balls != 0 || pl.ShotSpeed <= 0 {
		t.Fatalf("player = %+v, want 3 spirit balls held back until the spirit realm", *pl)
	}
	cam, ok := ecs.Get(w, lvl.Camera, component.CameraComponent.Kind())
	if !ok || ecs.Entity(cam.Target) != lvl.Player {
		t.Fatalf("camera should follow the player")
	}

	ghouls := w.Query(component.GhoulTagComponent.Kind(), component.RealmParticipantComponent.Kind())
	if len(ghouls) != 2 {
		t.Fatalf("ghouls = %d, want 2 realm participants", len(ghouls))
	}
	for _, g := range ghouls {
		vis, _ := ecs.Get(w, g, component.VisibilityComponent.Kind())
		if vis.Opacity != 0 {
			t.Fatalf("ghoul %s opacity = %v, want hidden in the normal realm", g, vis.Opacity)
		}
	}

	ecs.ForEach(w, component.SeedPlotComponent.Kind(), func(_ ecs.Entity, plot *component.SeedPlot) {
		if !ecs.Has(w, ecs.Entity(plot.Bindweed), component.BindweedComponent.Kind()) {
			t.Fatalf("seed plot not linked to a bindweed")
		}
	})

	se, ok := ecs.First(w, component.SpawnerComponent.Kind())
	if !ok {
		t.Fatalf("world should carry its encounter")
	}
	sp, _ := ecs.Get(w, se, component.SpawnerComponent.Kind())
	if sp.Prefab != GhoulPrefab || sp.Quantity != 3 || len(sp.Points) != 2 {
		t.Fatalf("encounter = %+v, want 3 ghouls over 2 points", *sp)
	}
	if !sp.Trigger.Contains(common.V3(7, 0, -7)) || sp.Limit.Empty() {
		t.Fatalf("encounter trigger %+v limit %+v not loaded", sp.Trigger, sp.Limit)
	}

	// player, camera, two ghouls and the bindweed
	n, err := c.Broadcast(realm.Begin)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if n != 5 {
		t.Fatalf("notified %d participants, want 5", n)
	}
}

func TestLoadWorldSizesWalls(t *testing.T) {
	w, _, _, _ := loadTestWorld(t)
	walls := 0
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(_ ecs.Entity, col *component.Collider) {
		if !col.Static {
			return
		}
		walls++
		if col.HalfX <= 0 || col.HalfZ <= 0 {
			t.Fatalf("wall collider %+v has no extent", *col)
		}
	})
	if walls != 5 {
		t.Fatalf("walls = %d, want 5", walls)
	}
}

func TestSpawnJoinsCurrentRealm(t *testing.T) {
	w, lvl, _, deps := loadTestWorld(t)
	tg, _ := ecs.Get(w, lvl.Player, component.RealmComponent.Kind())
	tg.Spirit = true

	g, err := Spawn(w, GhoulPrefab, common.V3(1, 0, 1), deps)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	gt, _ := ecs.Get(w, g, component.RealmComponent.Kind())
	if !gt.Spirit {
		t.Fatalf("late spawn should start in the authority's realm")
	}
	vis, _ := ecs.Get(w, g, component.VisibilityComponent.Kind())
	if vis.Opacity != 1 {
		t.Fatalf("late spawn opacity = %v, want visible in the spirit realm", vis.Opacity)
	}
	tr, _ := ecs.Get(w, g, component.TransformComponent.Kind())
	if tr.Position != common.V3(1, 0, 1) {
		t.Fatalf("spawn position = %v", tr.Position)
	}
}

func TestSpawnMidSwapLandsWithAuthority(t *testing.T) {
	w, lvl, c, deps := loadTestWorld(t)
	s := ecs.NewScheduler(system.NewRealmSystem(c))

	if _, err := c.Broadcast(realm.Begin); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s.Update(w, 0.1)
	g, err := Spawn(w, GhoulPrefab, common.V3(1, 0, 1), deps)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if gt, _ := ecs.Get(w, g, component.RealmComponent.Kind()); !gt.OnTransition {
		t.Fatalf("ghoul spawned mid-swap should join it")
	}

	for i := 0; i < 20; i++ {
		s.Update(w, 0.1)
	}
	pt, _ := ecs.Get(w, lvl.Player, component.RealmComponent.Kind())
	gt, _ := ecs.Get(w, g, component.RealmComponent.Kind())
	if !pt.Spirit || gt.Spirit != pt.Spirit || gt.OnTransition {
		t.Fatalf("authority spirit=%v, late ghoul %+v", pt.Spirit, *gt)
	}
	if vis, _ := ecs.Get(w, g, component.VisibilityComponent.Kind()); vis.Opacity != 1 {
		t.Fatalf("late ghoul opacity = %v, want visible in the spirit realm", vis.Opacity)
	}
}

func TestBuildEntityRejectsBadPrefabs(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.EntityBuildSpec
	}{
		{"no_components", prefabs.EntityBuildSpec{Name: "empty"}},
		{"unknown_component", prefabs.EntityBuildSpec{Components: map[string]any{
			"transform": map[string]any{},
			"jetpack":   map[string]any{},
		}}},
		{"unknown_participant", prefabs.EntityBuildSpec{Components: map[string]any{
			"realm":             map[string]any{},
			"realm_participant": "lantern",
		}}},
		{"bad_health", prefabs.EntityBuildSpec{Components: map[string]any{
			"health": map[string]any{"max": 0},
		}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if _, err := BuildEntityFromSpec(w, c.name, c.spec, Deps{}); err == nil {
				t.Fatalf("build should fail")
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("%d entities left behind by a failed build", n)
			}
		})
	}
}

func TestSecondRealmAuthorityRejected(t *testing.T) {
	w, _, _, deps := loadTestWorld(t)
	if _, err := Spawn(w, PlayerPrefab, common.V3(0, 0, 0), deps); err == nil {
		t.Fatalf("a second realm authority should be rejected")
	}
}
