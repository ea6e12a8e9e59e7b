package system

import (
	"log"

	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

const (
	itemBindweed = "bindweed"
)

// GateSystem runs bindweed growth and climb cooldowns, shows the climb
// prompt, and resolves the player's interact presses against bindweeds and
// seed plots.
type GateSystem struct {
	UI         port.UI
	Presenter  port.Presenter
	conditions *conditionCache
}

func NewGateSystem(ui port.UI, presenter port.Presenter) *GateSystem {
	if ui == nil {
		ui = port.Nop{}
	}
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &GateSystem{UI: ui, Presenter: presenter, conditions: newConditionCache()}
}

// ReloadScripts drops compiled condition scripts so the next interaction
// reads them again.
func (s *GateSystem) ReloadScripts() {
	s.conditions.invalidate()
}

func (s *GateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())
	ptr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())

	ecs.ForEach2(w, component.BindweedComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bw *component.Bindweed, tr *component.Transform) {
		s.grow(w, e, bw, dt)
		if bw.CooldownLeft > 0 {
			bw.CooldownLeft -= dt
			if bw.CooldownLeft <= 0 {
				bw.CooldownLeft = 0
				bw.Climbable = true
			}
		}

		near := hasPlayer && ptr != nil && pl != nil &&
			ptr.Position.Flat().Dist(tr.Position.Flat()) < bw.InteractRadius+pl.Radius
		available := near && bw.Grown && bw.Climbable
		if available != bw.Prompted {
			bw.Prompted = available
			s.UI.ItemHold(itemBindweed, available)
		}
	})

	if !hasPlayer {
		return
	}
	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !in.Interact {
		return
	}
	s.Interact(w, player)
}

func (s *GateSystem) grow(w *ecs.World, e ecs.Entity, bw *component.Bindweed, dt float64) {
	if !bw.Growing {
		return
	}
	bw.GrowElapsed += dt
	s.Presenter.SetParam(e, "growth", growth(bw))
	if bw.GrowElapsed < bw.GrowTime {
		return
	}
	bw.Growing = false
	bw.Grown = true
	bw.Climbable = true
	s.Presenter.Play(e, "grown")
	w.Events().Push(ecs.Event{Type: ecs.EventBindweedGrown, Data: e})
}

func growth(bw *component.Bindweed) float64 {
	if bw.Grown || bw.GrowTime <= 0 {
		return 1
	}
	v := bw.GrowElapsed / bw.GrowTime
	if v > 1 {
		return 1
	}
	return v
}

// Interact climbs the closest available bindweed in reach, or failing that
// plants at the closest seed plot. It reports whether anything happened.
func (s *GateSystem) Interact(w *ecs.World, player ecs.Entity) bool {
	ptr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	pl, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return false
	}

	best, bestDist := ecs.NoEntity, 0.0
	ecs.ForEach2(w, component.BindweedComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bw *component.Bindweed, tr *component.Transform) {
		d := ptr.Position.Flat().Dist(tr.Position.Flat())
		if d >= bw.InteractRadius+pl.Radius {
			return
		}
		if !best.Valid() || d < bestDist {
			best, bestDist = e, d
		}
	})
	if best.Valid() && s.Climb(w, best, player) {
		return true
	}

	best, bestDist = ecs.NoEntity, 0
	ecs.ForEach2(w, component.SeedPlotComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, plot *component.SeedPlot, tr *component.Transform) {
		d := ptr.Position.Flat().Dist(tr.Position.Flat())
		if d >= plot.InteractRadius+pl.Radius {
			return
		}
		if !best.Valid() || d < bestDist {
			best, bestDist = e, d
		}
	})
	if !best.Valid() {
		return false
	}
	planted, err := s.Plant(w, best, player)
	if err != nil {
		log.Printf("gate: plot=%s plant: %v", best, err)
	}
	return planted
}

// Climb moves the player up a grown, climbable bindweed and starts its
// cooldown.
func (s *GateSystem) Climb(w *ecs.World, bindweed, player ecs.Entity) bool {
	bw, ok := ecs.Get(w, bindweed, component.BindweedComponent.Kind())
	if !ok || !bw.Grown || !bw.Climbable {
		return false
	}
	ptr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	ptr.Position = bw.ClimbTo
	bw.Climbable = false
	bw.CooldownLeft = bw.ClimbCooldown
	if bw.CooldownLeft <= 0 {
		bw.Climbable = true
	}
	if bw.Prompted && !bw.Climbable {
		bw.Prompted = false
		s.UI.ItemHold(itemBindweed, false)
	}
	s.Presenter.Play(player, "climb")
	return true
}

// Plant runs the plot's condition and, when it passes, consumes the held
// item and makes the linked bindweed growable. The growable latch is never
// cleared.
func (s *GateSystem) Plant(w *ecs.World, plotEntity, player ecs.Entity) (bool, error) {
	plot, ok := ecs.Get(w, plotEntity, component.SeedPlotComponent.Kind())
	if !ok {
		return false, nil
	}
	pl, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return false, nil
	}

	cond, err := s.conditions.get(plot.Condition)
	if err != nil {
		return false, err
	}
	pass, err := cond.eval(pl.Held, SpiritRealm(w), plot.Planted)
	if err != nil {
		return false, err
	}
	if !pass {
		return false, nil
	}

	held := pl.Held
	pl.Held = ""
	if held != "" {
		s.UI.ItemHold(held, false)
	}
	plot.Planted = true
	if bw, ok := ecs.Get(w, ecs.Entity(plot.Bindweed), component.BindweedComponent.Kind()); ok {
		bw.Growable = true
	}
	s.Presenter.Play(plotEntity, "plant")
	return true, nil
}
