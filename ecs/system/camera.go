package system

import (
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
)

// CameraSystem eases every camera toward its target.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		tr, ok := ecs.Get(w, ecs.Entity(cam.Target), component.TransformComponent.Kind())
		if !ok {
			return
		}
		if cam.Smoothness <= 0 {
			cam.Position = tr.Position
			return
		}
		cam.Position = common.LerpVec3(cam.Position, tr.Position, common.Clamp01(cam.Smoothness))
	})
}
