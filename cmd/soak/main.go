// Command soak runs the encounter headless with a wandering input bot and
// prints what happened. It is used to shake out realm swap and AI bugs over
// long runs without opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/ecs/entity"
	"github.com/milk9111/spiritfox/ecs/system"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/prefabs"
	"github.com/milk9111/spiritfox/realm"
)

func main() {
	worldFile := flag.String("world", "world.yaml", "world spec to load")
	seconds := flag.Float64("seconds", 300, "simulated seconds to run")
	seed := flag.Int64("seed", 1, "seed for the ghouls and the input bot")
	verbose := flag.Bool("v", false, "log realm broadcasts")
	flag.Parse()

	spec, err := prefabs.LoadWorldSpec(*worldFile)
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	rec := port.NewRecorder()
	coordinator := realm.NewCoordinator(system.RealmRegistry{World: w}, spec.TransitionDuration)
	if *verbose {
		coordinator.SetLogger(log.Default())
	}
	deps := entity.Deps{Clock: coordinator, Presenter: rec, UI: rec}
	lvl, err := entity.LoadWorld(w, spec, deps)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	physics := system.NewPhysicsSystem()
	scheduler := ecs.NewScheduler(
		system.NewInputSystem(newBot(rng).next),
		system.NewPlayerControllerSystem(coordinator, physics, rec),
		system.NewProjectileSystem(physics, rec),
		system.NewAISystem(physics, system.Navigator{World: w}, rec, rng),
		system.NewNavigationSystem(physics),
		physics,
		system.NewGateSystem(rec, rec),
		system.NewPickupCollectSystem(rec, rec),
		system.NewRealmSystem(coordinator),
		system.NewHitFlashSystem(rec),
		system.NewFadeSystem(rec),
		system.NewCameraSystem(),
		system.NewSpawnSystem(func(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
			return entity.Spawn(w, prefab, pos, deps)
		}, rng),
		system.NewRespawnSystem(rec),
	)

	dt := 1.0 / common.TPS
	ticks := int(*seconds * common.TPS)
	counts := make(map[string]int)
	swaps := 0
	wasActive := false
	for i := 0; i < ticks; i++ {
		scheduler.Update(w, dt)
		for _, evt := range w.Events().Drain() {
			counts[evt.Type]++
		}
		if active := coordinator.Active(); active != wasActive {
			if active {
				swaps++
			}
			wasActive = active
		}
	}

	fmt.Printf("ran %d ticks (%.0fs) of %q\n", ticks, *seconds, spec.Name)
	fmt.Printf("swaps started: %d, ending realm: %s\n", swaps, realm.Name(system.SpiritRealm(w)))
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-16s %d\n", t, counts[t])
	}
	if h, ok := ecs.Get(w, lvl.Player, component.HealthComponent.Kind()); ok {
		fmt.Printf("player health: %.0f/%.0f\n", h.Current, h.Max)
	}
	fmt.Printf("ghouls alive: %d, encounters left: %d\n",
		len(w.Query(component.GhoulTagComponent.Kind())),
		len(w.Query(component.SpawnerComponent.Kind())))
}

// bot holds a heading for a while, swings at whatever is ahead and now and
// then asks for a realm swap.
type bot struct {
	rng     *rand.Rand
	heading common.Vec3
	hold    int
}

func newBot(rng *rand.Rand) *bot {
	return &bot{rng: rng}
}

func (b *bot) next() port.Input {
	if b.hold <= 0 {
		b.hold = 30 + b.rng.Intn(90)
		b.heading = common.V3(b.rng.Float64()*2-1, 0, b.rng.Float64()*2-1)
	}
	b.hold--
	return port.Input{
		Horizontal:   b.heading.X,
		Vertical:     b.heading.Z,
		Attack:       b.rng.Intn(20) == 0,
		Interact:     b.rng.Intn(30) == 0,
		ToggleWorlds: b.rng.Intn(240) == 0,
	}
}
