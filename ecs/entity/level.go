package entity

import (
	"fmt"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/prefabs"
)

// Prefab file names used by the world loader.
const (
	PlayerPrefab   = "player.yaml"
	CameraPrefab   = "camera.yaml"
	GhoulPrefab    = "ghoul.yaml"
	WallPrefab     = "wall.yaml"
	BindweedPrefab = "bindweed.yaml"
	SeedPlotPrefab = "seed_plot.yaml"
	SeedPrefab     = "seed.yaml"
)

// Level holds the handles the front-end needs after loading.
type Level struct {
	Player ecs.Entity
	Camera ecs.Entity
}

// LoadWorld populates w from a world spec. The player is built first so it
// owns the realm before anything else reads it.
func LoadWorld(w *ecs.World, spec *prefabs.WorldSpec, deps Deps) (*Level, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("load world: nil world or spec")
	}
	lvl := &Level{}

	var err error
	if lvl.Player, err = Spawn(w, PlayerPrefab, point(spec.Player), deps); err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	if lvl.Camera, err = Spawn(w, CameraPrefab, point(spec.Player), deps); err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	for _, wall := range spec.Walls {
		e, err := Spawn(w, WallPrefab, common.V3(wall.X, 0, wall.Z), deps)
		if err != nil {
			return nil, fmt.Errorf("load world: %w", err)
		}
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			col.HalfX = wall.HalfX
			col.HalfZ = wall.HalfZ
		}
	}

	for _, g := range spec.Ghouls {
		if _, err := Spawn(w, GhoulPrefab, point(g), deps); err != nil {
			return nil, fmt.Errorf("load world: %w", err)
		}
	}

	for _, b := range spec.Bindweeds {
		if err := loadBindweed(w, b, deps); err != nil {
			return nil, fmt.Errorf("load world: %w", err)
		}
	}

	for i, enc := range spec.Encounters {
		if err := loadEncounter(w, enc); err != nil {
			return nil, fmt.Errorf("load world: encounter %d: %w", i, err)
		}
	}

	return lvl, nil
}

func loadEncounter(w *ecs.World, enc prefabs.EncounterSpec) error {
	sp := &component.Spawner{Prefab: enc.Prefab, Quantity: enc.Quantity, Jitter: enc.Jitter}
	if sp.Prefab == "" {
		sp.Prefab = GhoulPrefab
	}
	for _, p := range enc.Points {
		sp.Points = append(sp.Points, point(p))
	}
	if enc.Trigger != nil {
		sp.Trigger = box(*enc.Trigger)
	}
	if enc.Limit != nil {
		sp.Limit = box(*enc.Limit)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SpawnerComponent.Kind(), sp); err != nil {
		ecs.DestroyEntity(w, e)
		return fmt.Errorf("add spawner: %w", err)
	}
	return nil
}

func loadBindweed(w *ecs.World, b prefabs.BindweedSpec, deps Deps) error {
	weed, err := Spawn(w, BindweedPrefab, common.V3(b.X, 0, b.Z), deps)
	if err != nil {
		return err
	}
	if bw, ok := ecs.Get(w, weed, component.BindweedComponent.Kind()); ok {
		bw.ClimbTo = point(b.ClimbTo)
	}
	if b.Plot != nil {
		plot, err := Spawn(w, SeedPlotPrefab, point(*b.Plot), deps)
		if err != nil {
			return err
		}
		if sp, ok := ecs.Get(w, plot, component.SeedPlotComponent.Kind()); ok {
			sp.Bindweed = uint64(weed)
		}
	}
	if b.Seed != nil {
		if _, err := Spawn(w, SeedPrefab, point(*b.Seed), deps); err != nil {
			return err
		}
	}
	return nil
}

// Spawn builds a prefab and places it at pos.
func Spawn(w *ecs.World, prefab string, pos common.Vec3, deps Deps) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, deps)
	if err != nil {
		return 0, err
	}
	if err := SetPosition(w, e, pos); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("spawn %s: %w", prefab, err)
	}
	return e, nil
}

func point(p prefabs.PointSpec) common.Vec3 {
	return common.V3(p.X, 0, p.Z)
}

func box(b prefabs.BoxSpec) component.Box {
	return component.Box{Center: common.V3(b.X, 0, b.Z), HalfX: b.HalfX, HalfZ: b.HalfZ}
}
