package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/ecs/system"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/prefabs"
	"github.com/milk9111/spiritfox/realm"
)

// Deps are the services participants are wired to when a prefab asks for a
// realm_participant.
type Deps struct {
	Clock     realm.Clock
	Presenter port.Presenter
	UI        port.UI
}

type buildContext struct {
	PrefabPath string
	Deps       Deps
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"camera_tag":        addCameraTag,
	"ghoul_tag":         addGhoulTag,
	"realm_authority":   addRealmAuthority,
	"realm":             addRealm,
	"realm_participant": addRealmParticipant,
	"player":            addPlayer,
	"input":             addInput,
	"transform":         addTransform,
	"camera":            addCamera,
	"ai":                addAI,
	"ai_state":          addAIState,
	"ai_context":        addAIContext,
	"perception":        addPerception,
	"health":            addHealth,
	"hitbox":            addHitbox,
	"hurtbox":           addHurtbox,
	"collider":          addCollider,
	"nav_agent":         addNavAgent,
	"visibility":        addVisibility,
	"bindweed":          addBindweed,
	"seed_plot":         addSeedPlot,
	"pickup":            addPickup,
}

// componentBuildOrder puts the realm toggle before its participant and the
// transform before anything that reads it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"ghoul_tag",
	"realm_authority",
	"transform",
	"realm",
	"player",
	"input",
	"camera",
	"ai",
	"ai_state",
	"ai_context",
	"perception",
	"health",
	"hitbox",
	"hurtbox",
	"collider",
	"nav_agent",
	"visibility",
	"bindweed",
	"seed_plot",
	"pickup",
	"realm_participant",
}

func BuildEntity(w *ecs.World, prefabPath string, deps Deps) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec, deps)
}

// BuildEntityFromSpec builds an already decoded prefab. On error the
// partially built entity is destroyed.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec, deps Deps) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Deps: deps}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetPosition moves an entity and, for players, records it as the respawn
// point.
func SetPosition(w *ecs.World, e ecs.Entity, pos common.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{Forward: common.V3(0, 0, 1)}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	t.Position = pos
	if pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		pl.Spawn = pos
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
		cam.Position = pos
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addGhoulTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GhoulTagComponent.Kind(), &component.GhoulTag{})
}

func addRealmAuthority(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	if other, ok := ecs.First(w, component.RealmAuthorityComponent.Kind()); ok && other != e {
		return fmt.Errorf("realm authority already held by entity %s", other)
	}
	return ecs.Add(w, e, component.RealmAuthorityComponent.Kind(), &component.RealmAuthority{})
}

func addRealm(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RealmComponentSpec](raw)
	if err != nil {
		return err
	}
	// views start in the authority's realm so late spawns agree with it
	return ecs.Add(w, e, component.RealmComponent.Kind(), &realm.Toggle{Spirit: spec.Spirit || system.SpiritRealm(w)})
}

func addRealmParticipant(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	kind, ok := raw.(string)
	if !ok {
		return fmt.Errorf("realm_participant must be a string, got %T", raw)
	}
	d := ctx.Deps
	var p realm.Participant
	switch kind {
	case "player":
		p = system.NewPlayerParticipant(w, e, d.Clock, d.Presenter, d.UI)
	case "camera":
		p = system.NewCameraParticipant(w, e, d.Clock, d.Presenter)
	case "ghoul":
		p = system.NewGhoulParticipant(w, e, d.Clock, d.Presenter)
	case "bindweed":
		p = system.NewBindweedParticipant(w, e, d.Clock, d.Presenter)
	default:
		return fmt.Errorf("unknown realm participant %q", kind)
	}
	if err := system.Attach(w, e, p); err != nil {
		return err
	}
	// built mid-swap: join it instead of waiting for the next one
	if a, ok := d.Clock.(realm.Admitter); ok {
		a.Admit(p)
	}
	return nil
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return err
	}
	pl := &component.Player{
		Form:              component.FormHuman,
		MoveSpeed:         spec.MoveSpeed,
		FoxSpeed:          spec.FoxSpeed,
		Radius:            spec.Radius,
		AttackReach:       spec.AttackReach,
		AttackAngle:       spec.AttackAngle,
		AttackDamage:      spec.AttackDamage,
		AttackCooldown:    spec.AttackCooldown,
		InteractRadius:    spec.InteractRadius,
		FlashTime:         spec.FlashTime,
		SpiritBalls:       spec.SpiritBalls,
		SpiritRespawnTime: spec.SpiritRespawnTime,
		ShotSpeed:         spec.ShotSpeed,
		ShotRange:         spec.ShotRange,
		ShotRadius:        spec.ShotRadius,
		ShotDamage:        spec.ShotDamage,
	}
	if system.SpiritRealm(w) {
		pl.Form = component.FormFox
		pl.Balls = pl.SpiritBalls
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), pl)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	forward := common.V3(spec.ForwardX, 0, spec.ForwardZ).Normalize()
	if forward.Len() == 0 {
		forward = common.V3(0, 0, 1)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: common.V3(spec.X, spec.Y, spec.Z),
		Forward:  forward,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	cam := &component.Camera{Smoothness: spec.Smoothness}
	if target, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		cam.Target = uint64(target)
	}
	if system.SpiritRealm(w) {
		cam.SpiritWeight = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

func addAI(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AIComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{
		IdleTime:       spec.IdleTime,
		WanderDistance: spec.WanderDistance,
		WanderTimeout:  spec.WanderTimeout,
		SearchTime:     spec.SearchTime,
		AttackDistance: spec.AttackDistance,
		AttackDelay:    spec.AttackDelay,
		AttackCooldown: spec.AttackCooldown,
		AttackDamage:   spec.AttackDamage,
		WalkSpeed:      spec.WalkSpeed,
		ChaseSpeed:     spec.ChaseSpeed,
		FlashTime:      spec.FlashTime,
	})
}

func addAIState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AIStateComponent.Kind(), &component.AIState{})
}

func addAIContext(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AIContextComponent.Kind(), &component.AIContext{})
}

func addPerception(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PerceptionComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PerceptionComponent.Kind(), &component.Perception{HalfAngle: spec.HalfAngle, Radius: spec.Radius})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Max <= 0 {
		return fmt.Errorf("health max must be positive, got %v", spec.Max)
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: spec.Max, Current: spec.Max})
}

func addHitbox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HitboxComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Radius: spec.Radius, Reach: spec.Reach})
}

func addHurtbox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HurtboxComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: spec.Radius})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Radius,
		HalfX:  spec.HalfX,
		HalfZ:  spec.HalfZ,
		Static: spec.Static,
		Tag:    spec.Tag,
	})
}

func addNavAgent(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.NavAgentComponent.Kind(), &component.NavAgent{})
}

// addVisibility starts ghouls visible only if the world is already in the
// spirit realm.
func addVisibility(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Opacity: realm.Weight(system.SpiritRealm(w))})
}

func addBindweed(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BindweedComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.BindweedComponent.Kind(), &component.Bindweed{
		GrowTime:       spec.GrowTime,
		ClimbCooldown:  spec.ClimbCooldown,
		InteractRadius: spec.InteractRadius,
	})
}

func addSeedPlot(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SeedPlotComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SeedPlotComponent.Kind(), &component.SeedPlot{
		Condition:      spec.Condition,
		InteractRadius: spec.InteractRadius,
	})
}

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PickupComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Item: spec.Item, Radius: spec.Radius})
}
