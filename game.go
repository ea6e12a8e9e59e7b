package main

import (
	"fmt"
	"log"
	"math/rand"
	"path"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/ecs/entity"
	"github.com/milk9111/spiritfox/ecs/system"
	"github.com/milk9111/spiritfox/prefabs"
	"github.com/milk9111/spiritfox/realm"
)

const worldFile = "world.yaml"

type Game struct {
	world       *ecs.World
	scheduler   *ecs.Scheduler
	coordinator *realm.Coordinator
	level       *entity.Level

	presenter *Presenter
	renderer  *Renderer
	hud       *HUD
	jukebox   *Jukebox
	gates     *system.GateSystem
	watcher   *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	debug   bool
}

type Options struct {
	Debug bool
	Seed  int64
	Watch bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadWorldSpec(worldFile)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:     ecs.NewWorld(),
		presenter: NewPresenter(),
		hud:       NewHUD(),
		debug:     opts.Debug,
	}
	g.renderer = &Renderer{Presenter: g.presenter, Debug: opts.Debug}
	g.pauseUI = NewPauseUI(g)

	// The coordinator is the participants' clock, so it exists before the
	// world is populated. The registry is attached once the music exists.
	g.coordinator = realm.NewCoordinator(nil, spec.TransitionDuration)
	if opts.Debug {
		g.coordinator.SetLogger(log.Default())
	}

	deps := entity.Deps{Clock: g.coordinator, Presenter: g.presenter, UI: g.hud}
	g.level, err = entity.LoadWorld(g.world, spec, deps)
	if err != nil {
		return nil, err
	}

	normal, spirit := system.MusicTracks(spec.Music.Normal, spec.Music.Spirit)
	ambient := realm.NewList()
	ambient.Register(system.NewMusic(g.world, g.coordinator, g.presenter, normal, spirit))
	g.jukebox = NewJukebox(normal, spirit)
	g.coordinator.SetRegistry(realm.Registries{system.RealmRegistry{World: g.world}, ambient})

	physics := system.NewPhysicsSystem()
	rng := rand.New(rand.NewSource(opts.Seed))
	ai := system.NewAISystem(physics, system.Navigator{World: g.world}, g.presenter, rng)
	ai.Debug = opts.Debug
	g.gates = system.NewGateSystem(g.hud, g.presenter)

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(readInput),
		system.NewPlayerControllerSystem(g.coordinator, physics, g.presenter),
		system.NewProjectileSystem(physics, g.presenter),
		ai,
		system.NewNavigationSystem(physics),
		physics,
		g.gates,
		system.NewPickupCollectSystem(g.hud, g.presenter),
		system.NewRealmSystem(g.coordinator),
		system.NewHitFlashSystem(g.presenter),
		system.NewFadeSystem(g.presenter),
		system.NewCameraSystem(),
		system.NewSpawnSystem(func(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
			return entity.Spawn(w, prefab, pos, deps)
		}, rng),
		system.NewRespawnSystem(g.presenter),
	)

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher("prefabs", path.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("watch: disabled: %v", err)
			g.watcher = nil
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()

	dt := 1.0 / common.TPS
	g.scheduler.Update(g.world, dt)
	g.logEvents()

	g.presenter.Update(g.world, dt)
	g.jukebox.Update(g.presenter)
	g.hud.SetStatus(g.status())
	g.hud.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.level.Camera)
	g.hud.UI().Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	g.jukebox.Close()
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) status() string {
	spirit := system.SpiritRealm(g.world)
	s := realm.Name(spirit)
	if g.coordinator.Active() {
		s = fmt.Sprintf("%s -> %s", s, realm.Name(!spirit))
	}
	if p, ok := ecs.Get(g.world, g.level.Player, component.PlayerComponent.Kind()); ok {
		if spirit {
			s += fmt.Sprintf("  spirit balls: %d/%d", p.Balls, p.SpiritBalls)
		}
	}
	if h, ok := ecs.Get(g.world, g.level.Player, component.HealthComponent.Kind()); ok {
		s += fmt.Sprintf("  health: %.0f/%.0f", h.Current, h.Max)
	}
	return s
}

func (g *Game) logEvents() {
	for _, evt := range g.world.Events().Drain() {
		if !g.debug {
			continue
		}
		switch data := evt.Data.(type) {
		case ecs.DamageEvent:
			log.Printf("event: %s %s -> %s (%.1f)", evt.Type, data.Source, data.Target, data.Amount)
		default:
			log.Printf("event: %s %v", evt.Type, evt.Data)
		}
	}
}

// pollWatcher applies hot reloads without blocking the tick.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case name == worldFile:
		spec, err := prefabs.LoadWorldSpec(worldFile)
		if err != nil {
			log.Printf("watch: reload %s: %v", name, err)
			return
		}
		g.coordinator.SetDuration(spec.TransitionDuration)
		log.Printf("watch: transition duration now %.2fs", g.coordinator.Duration())
	case path.Ext(name) == ".tengo":
		g.gates.ReloadScripts()
		log.Printf("watch: reloaded %s", name)
	}
}
