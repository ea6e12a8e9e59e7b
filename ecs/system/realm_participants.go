package system

import (
	"log"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/realm"
)

// PlayerParticipant owns the authoritative realm token. Its completion is
// what actually moves the world into the other realm.
type PlayerParticipant struct {
	entityParticipant
	presenter port.Presenter
	ui        port.UI
}

func NewPlayerParticipant(w *ecs.World, e ecs.Entity, clock realm.Clock, presenter port.Presenter, ui port.UI) *PlayerParticipant {
	if presenter == nil {
		presenter = port.Nop{}
	}
	if ui == nil {
		ui = port.Nop{}
	}
	return &PlayerParticipant{
		entityParticipant: entityParticipant{w: w, e: e, clock: clock},
		presenter:         presenter,
		ui:                ui,
	}
}

func (p *PlayerParticipant) BeginTransition() {
	t := p.toggle()
	if t == nil || !t.Begin() {
		return
	}
	t.Duration = p.duration()
	p.ui.ProgressBar("Shifting", t.Duration)
	p.presenter.Play(p.e, "shift_begin")
}

func (p *PlayerParticipant) TickTransition(dt float64) {
	t, done := p.advance(dt)
	if t == nil || !t.OnTransition {
		return
	}
	if done {
		p.CompleteTransition()
		return
	}
	p.presenter.SetParam(p.e, "form_blend", t.Blend())
}

func (p *PlayerParticipant) AbortTransition() {
	t := p.toggle()
	if t == nil || !t.Abort() {
		return
	}
	p.ui.ClearProgressBar()
	p.presenter.SetParam(p.e, "form_blend", realm.Weight(t.Spirit))
	p.presenter.Play(p.e, "shift_abort")
}

func (p *PlayerParticipant) CompleteTransition() {
	t := p.toggle()
	if t == nil || !t.Complete() {
		return
	}
	if pl, ok := ecs.Get(p.w, p.e, component.PlayerComponent.Kind()); ok {
		pl.Respawns = nil
		if t.Spirit {
			pl.Form = component.FormFox
			pl.Balls = pl.SpiritBalls
		} else {
			pl.Form = component.FormHuman
			pl.Balls = 0
		}
		p.presenter.SetParam(p.e, "spirit_balls", float64(pl.Balls))
		p.dropHeld(pl)
	}
	p.ui.ClearProgressBar()
	p.presenter.SetParam(p.e, "form_blend", realm.Weight(t.Spirit))
	p.presenter.Play(p.e, "shift_complete")
}

// dropHeld loses the carried item on a swap. It goes back to where it was
// picked up.
func (p *PlayerParticipant) dropHeld(pl *component.Player) {
	if pl.Held == "" {
		return
	}
	item := pl.Held
	pl.Held = ""
	p.ui.ItemHold(item, false)

	e := ecs.CreateEntity(p.w)
	if err := ecs.Add(p.w, e, component.TransformComponent.Kind(), &component.Transform{Position: pl.HeldOrigin, Forward: common.V3(0, 0, 1)}); err != nil {
		log.Printf("player: drop %s: %v", item, err)
		ecs.DestroyEntity(p.w, e)
		return
	}
	if err := ecs.Add(p.w, e, component.PickupComponent.Kind(), &component.Pickup{Item: item, Radius: pl.HeldRadius}); err != nil {
		log.Printf("player: drop %s: %v", item, err)
		ecs.DestroyEntity(p.w, e)
	}
}

// CameraParticipant blends the post-processing weight with the swap and
// relocates the camera onto its target once the swap lands.
type CameraParticipant struct {
	entityParticipant
	presenter port.Presenter
}

func NewCameraParticipant(w *ecs.World, e ecs.Entity, clock realm.Clock, presenter port.Presenter) *CameraParticipant {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &CameraParticipant{
		entityParticipant: entityParticipant{w: w, e: e, clock: clock},
		presenter:         presenter,
	}
}

func (p *CameraParticipant) BeginTransition() {
	if _, ok := p.beginView(); ok {
		p.presenter.Play(p.e, "shift_begin")
	}
}

func (p *CameraParticipant) JoinTransition(elapsed, duration float64) {
	if t, ok := p.joinView(elapsed, duration); ok {
		p.setWeight(t.Blend())
	}
}

func (p *CameraParticipant) TickTransition(dt float64) {
	t, done := p.advance(dt)
	if t == nil || !t.OnTransition {
		return
	}
	if done {
		p.CompleteTransition()
		return
	}
	p.setWeight(t.Blend())
}

func (p *CameraParticipant) AbortTransition() {
	t := p.toggle()
	if t == nil || !t.Abort() {
		return
	}
	p.setWeight(realm.Weight(t.Spirit))
}

func (p *CameraParticipant) CompleteTransition() {
	t := p.toggle()
	if t == nil || !t.Complete() {
		return
	}
	p.setWeight(realm.Weight(t.Spirit))
	cam, ok := ecs.Get(p.w, p.e, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if tr, ok := ecs.Get(p.w, ecs.Entity(cam.Target), component.TransformComponent.Kind()); ok {
		cam.Position = tr.Position
	}
}

func (p *CameraParticipant) setWeight(v float64) {
	if cam, ok := ecs.Get(p.w, p.e, component.CameraComponent.Kind()); ok {
		cam.SpiritWeight = v
	}
	p.presenter.SetParam(p.e, "spirit_weight", v)
}

// GhoulParticipant fades a ghoul in and out of existence with the realm.
// Ghouls only perceive while their view is the spirit realm.
type GhoulParticipant struct {
	entityParticipant
	presenter port.Presenter
}

func NewGhoulParticipant(w *ecs.World, e ecs.Entity, clock realm.Clock, presenter port.Presenter) *GhoulParticipant {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &GhoulParticipant{
		entityParticipant: entityParticipant{w: w, e: e, clock: clock},
		presenter:         presenter,
	}
}

func (p *GhoulParticipant) BeginTransition() {
	if p.dying() {
		return
	}
	p.beginView()
}

func (p *GhoulParticipant) JoinTransition(elapsed, duration float64) {
	if p.dying() {
		return
	}
	if t, ok := p.joinView(elapsed, duration); ok {
		p.setOpacity(t.Blend())
	}
}

func (p *GhoulParticipant) TickTransition(dt float64) {
	t, done := p.advance(dt)
	if t == nil || !t.OnTransition {
		return
	}
	if done {
		p.CompleteTransition()
		return
	}
	p.setOpacity(t.Blend())
}

func (p *GhoulParticipant) AbortTransition() {
	t := p.toggle()
	if t == nil || !t.Abort() {
		return
	}
	p.setOpacity(realm.Weight(t.Spirit))
}

func (p *GhoulParticipant) CompleteTransition() {
	t := p.toggle()
	if t == nil || !t.Complete() {
		return
	}
	p.setOpacity(realm.Weight(t.Spirit))
	if t.Spirit || p.dying() {
		return
	}
	st, ok := ecs.Get(p.w, p.e, component.AIStateComponent.Kind())
	if !ok {
		return
	}
	if st.Current == component.StateChasing || st.Current == component.StateAttacking {
		ctx, _ := ecs.Get(p.w, p.e, component.AIContextComponent.Kind())
		enterState(p.w, p.e, component.StateSearching, lastKnown(p.w, p.e, ctx))
	}
}

func (p *GhoulParticipant) dying() bool {
	st, ok := ecs.Get(p.w, p.e, component.AIStateComponent.Kind())
	return ok && st.Current == component.StateDying
}

func (p *GhoulParticipant) setOpacity(v float64) {
	if p.dying() {
		return
	}
	if vis, ok := ecs.Get(p.w, p.e, component.VisibilityComponent.Kind()); ok {
		vis.Opacity = v
	}
	p.presenter.SetParam(p.e, "opacity", v)
}

// BindweedParticipant starts growth when a swap lands on a growable plant.
type BindweedParticipant struct {
	entityParticipant
	presenter port.Presenter
}

func NewBindweedParticipant(w *ecs.World, e ecs.Entity, clock realm.Clock, presenter port.Presenter) *BindweedParticipant {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &BindweedParticipant{
		entityParticipant: entityParticipant{w: w, e: e, clock: clock},
		presenter:         presenter,
	}
}

func (p *BindweedParticipant) BeginTransition() {
	p.beginView()
}

func (p *BindweedParticipant) JoinTransition(elapsed, duration float64) {
	p.joinView(elapsed, duration)
}

func (p *BindweedParticipant) TickTransition(dt float64) {
	if _, done := p.advance(dt); done {
		p.CompleteTransition()
	}
}

func (p *BindweedParticipant) AbortTransition() {
	if t := p.toggle(); t != nil {
		t.Abort()
	}
}

func (p *BindweedParticipant) CompleteTransition() {
	t := p.toggle()
	if t == nil || !t.Complete() {
		return
	}
	bw, ok := ecs.Get(p.w, p.e, component.BindweedComponent.Kind())
	if !ok || !bw.Growable || bw.Grown || bw.Growing {
		return
	}
	bw.Growing = true
	bw.GrowElapsed = 0
	p.presenter.Play(p.e, "grow")
}
