package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// PickupCollectSystem hands items to an empty-handed player who walks over
// them.
type PickupCollectSystem struct {
	UI        port.UI
	Presenter port.Presenter
}

func NewPickupCollectSystem(ui port.UI, presenter port.Presenter) *PickupCollectSystem {
	if ui == nil {
		ui = port.Nop{}
	}
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &PickupCollectSystem{UI: ui, Presenter: presenter}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pl, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		if pl.Held != "" || pickup.Item == "" {
			return
		}
		if ptr.Position.Flat().Dist(t.Position.Flat()) >= pickup.Radius+pl.Radius {
			return
		}
		pl.Held = pickup.Item
		pl.HeldOrigin = t.Position
		pl.HeldRadius = pickup.Radius
		s.UI.ItemHold(pickup.Item, true)
		s.Presenter.Play(player, "pickup")
		ecs.DestroyEntity(w, e)
	})
}
