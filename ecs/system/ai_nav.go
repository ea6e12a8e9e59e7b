package system

import (
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// Navigator is the ECS side of port.Navigator: it records destinations on
// NavAgent components for NavigationSystem to follow.
type Navigator struct {
	World *ecs.World
}

func (n Navigator) SetDestination(e ecs.Entity, target common.Vec3) {
	nav, ok := ecs.Get(n.World, e, component.NavAgentComponent.Kind())
	if !ok {
		return
	}
	nav.Destination = target
	nav.HasDestination = true
}

func (n Navigator) OnTransitionLink(e ecs.Entity) bool {
	nav, ok := ecs.Get(n.World, e, component.NavAgentComponent.Kind())
	return ok && nav.OnLink
}

// NavigationSystem walks agents in a straight line toward their destination.
// A wall between the agent and its next position stops it for the tick.
type NavigationSystem struct {
	Spatial port.Spatial
}

func NewNavigationSystem(spatial port.Spatial) *NavigationSystem {
	return &NavigationSystem{Spatial: spatial}
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, nav *component.NavAgent, tr *component.Transform) {
		nav.OnLink = false
		if !nav.HasDestination || nav.Speed <= 0 {
			return
		}
		to := nav.Destination.Sub(tr.Position).Flat()
		dist := to.Len()
		if dist < arriveDistance {
			nav.HasDestination = false
			return
		}
		stepLen := nav.Speed * dt
		if stepLen > dist {
			stepLen = dist
		}
		dir := to.Normalize()
		if blocked(s.Spatial, e, tr.Position, dir, stepLen) {
			nav.OnLink = true
			return
		}
		tr.Position = tr.Position.Add(dir.Scale(stepLen))
		tr.Forward = dir
	})
}

// blocked reports whether a static collider sits within dist of origin along
// dir.
func blocked(spatial port.Spatial, self ecs.Entity, origin, dir common.Vec3, dist float64) bool {
	if spatial == nil || dist <= 0 {
		return false
	}
	hit, ok := spatial.Raycast(origin, dir, dist)
	if !ok || hit.Entity == self {
		return false
	}
	return hit.Tag == TagWall
}
