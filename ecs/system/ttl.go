package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// FadeSystem lowers the opacity of fading entities and destroys them once
// they are fully transparent.
type FadeSystem struct {
	Presenter port.Presenter
}

func NewFadeSystem(presenter port.Presenter) *FadeSystem {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &FadeSystem{Presenter: presenter}
}

func (s *FadeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.FadeComponent.Kind(), component.VisibilityComponent.Kind(), func(e ecs.Entity, f *component.Fade, vis *component.Visibility) {
		vis.Opacity -= f.Rate * dt
		if vis.Opacity > 0 {
			s.Presenter.SetParam(e, "opacity", vis.Opacity)
			return
		}
		vis.Opacity = 0
		s.Presenter.SetParam(e, "opacity", 0)
		if ecs.Has(w, e, component.GhoulTagComponent.Kind()) {
			w.Events().Push(ecs.Event{Type: ecs.EventGhoulDied, Data: e})
		}
		ecs.DestroyEntity(w, e)
	})
}
