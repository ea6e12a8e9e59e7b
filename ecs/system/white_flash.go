package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// HitFlashSystem counts down hit flashes and clears the tint when they end.
type HitFlashSystem struct {
	Presenter port.Presenter
}

func NewHitFlashSystem(presenter port.Presenter) *HitFlashSystem {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &HitFlashSystem{Presenter: presenter}
}

func (s *HitFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.HitFlashComponent.Kind(), func(e ecs.Entity, f *component.HitFlash) {
		f.Remaining -= dt
		if f.Remaining > 0 {
			s.Presenter.SetParam(e, "flash", 1)
			return
		}
		s.Presenter.SetParam(e, "flash", 0)
		ecs.Remove(w, e, component.HitFlashComponent.Kind())
	})
}
