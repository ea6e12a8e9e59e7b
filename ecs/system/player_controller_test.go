package system

import (
	"math"
	"testing"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/realm"
)

type playerWorld struct {
	w      *ecs.World
	c      *realm.Coordinator
	rec    *port.Recorder
	pc     *PlayerControllerSystem
	player ecs.Entity
}

func newPlayerWorld(t *testing.T) *playerWorld {
	t.Helper()
	pw := &playerWorld{w: ecs.NewWorld(), rec: port.NewRecorder()}
	pw.c = realm.NewCoordinator(RealmRegistry{World: pw.w}, 1)
	pw.pc = NewPlayerControllerSystem(pw.c, nil, pw.rec)
	w := pw.w

	pw.player = addPlayer(t, w, common.V3(0, 0, 0), 5)
	pl, _ := ecs.Get(w, pw.player, component.PlayerComponent.Kind())
	pl.MoveSpeed = 2
	pl.FoxSpeed = 4
	pl.AttackReach = 1.5
	pl.AttackAngle = 60
	pl.AttackDamage = 1
	pl.AttackCooldown = 0.5
	pl.SpiritBalls = 2
	pl.SpiritRespawnTime = 0.5
	pl.ShotSpeed = 10
	pl.ShotRange = 4
	pl.ShotRadius = 0.2
	pl.ShotDamage = 1
	mustAdd(t, ecs.Add(w, pw.player, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(t, ecs.Add(w, pw.player, component.RealmAuthorityComponent.Kind(), &component.RealmAuthority{}))
	mustAdd(t, ecs.Add(w, pw.player, component.RealmComponent.Kind(), &realm.Toggle{}))
	mustAdd(t, Attach(w, pw.player, NewPlayerParticipant(w, pw.player, pw.c, pw.rec, pw.rec)))
	return pw
}

func (pw *playerWorld) input() *component.Input {
	in, _ := ecs.Get(pw.w, pw.player, component.InputComponent.Kind())
	return in
}

func (pw *playerWorld) pl() *component.Player {
	pl, _ := ecs.Get(pw.w, pw.player, component.PlayerComponent.Kind())
	return pl
}

// press runs one tick with the toggle held, then releases it.
func (pw *playerWorld) press() {
	pw.input().Toggle = true
	tick(pw.w, pw.pc)
	pw.input().Toggle = false
}

func TestToggleSwapsBothWays(t *testing.T) {
	pw := newPlayerWorld(t)

	pw.press()
	if !pw.c.Active() {
		t.Fatalf("toggle should start a swap")
	}
	for i := 0; i < 11; i++ {
		tick(pw.w, NewRealmSystem(pw.c), pw.pc)
	}
	if !SpiritRealm(pw.w) {
		t.Fatalf("swap should have landed in the spirit realm")
	}

	pw.press()
	if !pw.c.Active() {
		t.Fatalf("toggle should start the swap back")
	}
}

func TestAbortedSwapsCanBeRetried(t *testing.T) {
	pw := newPlayerWorld(t)
	realmSys := NewRealmSystem(pw.c)

	for i := 0; i < 5; i++ {
		pw.press()
		tick(pw.w, realmSys)
		tick(pw.w, realmSys)
		TakeDamage(pw.w, pw.player, 0.5, common.V3(1, 0, 0))
		tick(pw.w, pw.pc)
		if pw.c.Active() {
			t.Fatalf("attempt %d: damage should cancel the swap", i)
		}
	}

	pw.press()
	for i := 0; i < 11; i++ {
		tick(pw.w, realmSys, pw.pc)
	}
	if !SpiritRealm(pw.w) {
		t.Fatalf("cancelled swaps should never lock the player out of the spirit realm")
	}
}

func TestToggleMidSwapAborts(t *testing.T) {
	pw := newPlayerWorld(t)
	pw.press()
	tick(pw.w, NewRealmSystem(pw.c))
	pw.press()

	if pw.c.Active() {
		t.Fatalf("second toggle should cancel the swap")
	}
	tg, _ := ecs.Get(pw.w, pw.player, component.RealmComponent.Kind())
	if tg.OnTransition || tg.Spirit {
		t.Fatalf("toggle = %+v, want back in the normal realm", *tg)
	}
}

func TestHurtAbortsSwap(t *testing.T) {
	pw := newPlayerWorld(t)
	pw.press()

	TakeDamage(pw.w, pw.player, 1, common.V3(1, 0, 0))
	tick(pw.w, pw.pc)

	if pw.c.Active() {
		t.Fatalf("taking damage should cancel the swap")
	}
	if pw.pl().Hurt {
		t.Fatalf("hurt flag should be consumed")
	}
}

func TestDownedPlayerRespawns(t *testing.T) {
	pw := newPlayerWorld(t)
	tr, _ := ecs.Get(pw.w, pw.player, component.TransformComponent.Kind())
	tr.Position = common.V3(3, 0, 2)
	h, _ := ecs.Get(pw.w, pw.player, component.HealthComponent.Kind())
	h.Current = 1

	TakeDamage(pw.w, pw.player, 1, common.Vec3{})
	tick(pw.w, pw.pc, NewRespawnSystem(pw.rec))

	if tr.Position != pw.pl().Spawn {
		t.Fatalf("player at %v, want spawn %v", tr.Position, pw.pl().Spawn)
	}
	if h.Current != h.Max {
		t.Fatalf("health = %v, want %v", h.Current, h.Max)
	}
	if ecs.Has(pw.w, pw.player, component.RespawnRequestComponent.Kind()) {
		t.Fatalf("respawn request should be consumed")
	}
	if pw.rec.Clips[len(pw.rec.Clips)-1] != "respawn" {
		t.Fatalf("clips = %v, want respawn last", pw.rec.Clips)
	}
}

func TestMoveUsesFormSpeed(t *testing.T) {
	pw := newPlayerWorld(t)
	tr, _ := ecs.Get(pw.w, pw.player, component.TransformComponent.Kind())
	pw.input().Horizontal = 1

	tick(pw.w, pw.pc)
	if math.Abs(tr.Position.X-0.2) > 1e-9 {
		t.Fatalf("human moved to %v, want x=0.2", tr.Position)
	}
	if tr.Forward != common.V3(1, 0, 0) {
		t.Fatalf("forward = %v, want +x", tr.Forward)
	}

	pw.pl().Form = component.FormFox
	tick(pw.w, pw.pc)
	if math.Abs(tr.Position.X-0.6) > 1e-9 {
		t.Fatalf("fox moved to %v, want x=0.6", tr.Position)
	}
}

func TestMoveBlockedByWall(t *testing.T) {
	pw := newPlayerWorld(t)
	addWall(t, pw.w, common.V3(1, 0, 0), 0.55, 1)
	ps := NewPhysicsSystem()
	pw.pc.Spatial = ps
	pw.input().Horizontal = 1

	for i := 0; i < 3; i++ {
		tick(pw.w, ps, pw.pc)
	}
	tr, _ := ecs.Get(pw.w, pw.player, component.TransformComponent.Kind())
	if tr.Position.X != 0 {
		t.Fatalf("player walked into the wall to %v", tr.Position)
	}
}

func TestAttackOnlyLandsInSpirit(t *testing.T) {
	pw := newPlayerWorld(t)
	g := addGhoul(t, pw.w, common.V3(0, 0, 1), component.StateChasing, 3)
	h, _ := ecs.Get(pw.w, g, component.HealthComponent.Kind())
	pw.input().Attack = true

	tick(pw.w, pw.pc)
	if h.Current != 3 {
		t.Fatalf("ghoul hit from the normal realm, health %v", h.Current)
	}
	if pw.rec.Clips[len(pw.rec.Clips)-1] != "attack" {
		t.Fatalf("clips = %v, want the swing played", pw.rec.Clips)
	}

	tg, _ := ecs.Get(pw.w, pw.player, component.RealmComponent.Kind())
	tg.Spirit = true
	pw.pl().Cooldown = 0
	pw.w.Events().Drain()

	tick(pw.w, pw.pc)
	if h.Current != 2 {
		t.Fatalf("ghoul health = %v, want 2", h.Current)
	}
	events := pw.w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventAttackLanded {
		t.Fatalf("events = %+v, want one attack landed", events)
	}

	tick(pw.w, pw.pc)
	if h.Current != 2 {
		t.Fatalf("attack ignored its cooldown, health %v", h.Current)
	}
}

func TestInputSystemCopiesSnapshot(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))

	src := port.Input{Horizontal: 3, Vertical: -0.5, ToggleWorlds: true, Interact: true}
	tick(w, NewInputSystem(func() port.Input { return src }))

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if in.Horizontal != 1 || in.Vertical != -0.5 {
		t.Fatalf("axes = %v,%v; want 1,-0.5", in.Horizontal, in.Vertical)
	}
	if !in.Toggle || !in.Interact || in.Attack {
		t.Fatalf("buttons = %+v", *in)
	}
}

// enterSpirit settles the player in the spirit realm with a full set of
// spirit balls.
func (pw *playerWorld) enterSpirit() {
	tg, _ := ecs.Get(pw.w, pw.player, component.RealmComponent.Kind())
	tg.Spirit = true
	pw.pl().Form = component.FormFox
	pw.pl().Balls = pw.pl().SpiritBalls
}

func TestSpiritBallStrikesGhoul(t *testing.T) {
	pw := newPlayerWorld(t)
	pw.enterSpirit()
	g := addGhoul(t, pw.w, common.V3(0, 0, 2), component.StateChasing, 3)
	mustAdd(t, ecs.Add(pw.w, g, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: 0.4}))
	shots := NewProjectileSystem(nil, pw.rec)

	pw.input().Attack = true
	tick(pw.w, pw.pc, shots)
	pw.input().Attack = false
	if pw.pl().Balls != 1 || len(pw.pl().Respawns) != 1 {
		t.Fatalf("balls = %d pending %v, want one fired", pw.pl().Balls, pw.pl().Respawns)
	}
	if len(pw.w.Query(component.ProjectileComponent.Kind())) != 1 {
		t.Fatalf("no spirit ball in flight")
	}

	for i := 0; i < 3; i++ {
		tick(pw.w, pw.pc, shots)
	}
	h, _ := ecs.Get(pw.w, g, component.HealthComponent.Kind())
	if h.Current != 2 {
		t.Fatalf("ghoul health = %v, want 2", h.Current)
	}
	if len(pw.w.Query(component.ProjectileComponent.Kind())) != 0 {
		t.Fatalf("spirit ball should be spent on the hit")
	}
	landed := 0
	for _, evt := range pw.w.Events().Drain() {
		if evt.Type == ecs.EventAttackLanded {
			landed++
		}
	}
	if landed != 1 {
		t.Fatalf("attack landed %d times, want 1", landed)
	}
}

func TestSpiritBallsRespawn(t *testing.T) {
	pw := newPlayerWorld(t)
	pw.enterSpirit()
	pw.pl().AttackCooldown = 0

	pw.input().Attack = true
	tick(pw.w, pw.pc)
	tick(pw.w, pw.pc)
	tick(pw.w, pw.pc)
	pw.input().Attack = false
	if pw.pl().Balls != 0 {
		t.Fatalf("balls = %d, want both fired", pw.pl().Balls)
	}
	if pw.rec.Clips[len(pw.rec.Clips)-1] != "attack" {
		t.Fatalf("clips = %v, want a melee swing once out of balls", pw.rec.Clips)
	}

	for i := 0; i < 6; i++ {
		tick(pw.w, pw.pc)
	}
	if pw.pl().Balls != 2 || len(pw.pl().Respawns) != 0 {
		t.Fatalf("balls = %d pending %v, want both back after the respawn time", pw.pl().Balls, pw.pl().Respawns)
	}
}

func TestSpiritBallsOnlyFlyInSpirit(t *testing.T) {
	pw := newPlayerWorld(t)
	pw.pl().Balls = 2
	pw.input().Attack = true
	tick(pw.w, pw.pc)
	if pw.pl().Balls != 2 || len(pw.w.Query(component.ProjectileComponent.Kind())) != 0 {
		t.Fatalf("spirit ball fired from the normal realm")
	}

	pw.enterSpirit()
	pw.pl().Cooldown = 0
	tick(pw.w, pw.pc)
	if len(pw.w.Query(component.ProjectileComponent.Kind())) != 1 {
		t.Fatalf("spirit ball should fire in the spirit realm")
	}

	tg, _ := ecs.Get(pw.w, pw.player, component.RealmComponent.Kind())
	tg.Spirit = false
	tick(pw.w, NewProjectileSystem(nil, nil))
	if len(pw.w.Query(component.ProjectileComponent.Kind())) != 0 {
		t.Fatalf("spirit ball outlived the spirit realm")
	}
}

func TestSpiritBallStopsAtWall(t *testing.T) {
	pw := newPlayerWorld(t)
	pw.enterSpirit()
	addWall(t, pw.w, common.V3(0, 0, 1.5), 1, 0.25)
	g := addGhoul(t, pw.w, common.V3(0, 0, 3), component.StateChasing, 3)
	mustAdd(t, ecs.Add(pw.w, g, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: 0.4}))
	ps := NewPhysicsSystem()
	shots := NewProjectileSystem(ps, pw.rec)

	pw.input().Attack = true
	tick(pw.w, ps, pw.pc, shots)
	pw.input().Attack = false
	for i := 0; i < 10; i++ {
		tick(pw.w, ps, pw.pc, shots)
	}

	if h, _ := ecs.Get(pw.w, g, component.HealthComponent.Kind()); h.Current != 3 {
		t.Fatalf("spirit ball passed through the wall, ghoul health %v", h.Current)
	}
	if len(pw.w.Query(component.ProjectileComponent.Kind())) != 0 {
		t.Fatalf("spirit ball should be spent on the wall")
	}
}
