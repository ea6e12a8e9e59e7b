package system

import (
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// InputSystem copies the current input snapshot onto every controllable
// entity.
type InputSystem struct {
	Source func() port.Input
}

func NewInputSystem(source func() port.Input) *InputSystem {
	return &InputSystem{Source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var in port.Input
	if i.Source != nil {
		in = i.Source()
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, c *component.Input) {
		c.Horizontal = clampAxis(in.Horizontal)
		c.Vertical = clampAxis(in.Vertical)
		c.Toggle = in.ToggleWorlds
		c.Attack = in.Attack
		c.Interact = in.Interact
		c.Jump = in.Jump
	})
}

func clampAxis(v float64) float64 {
	return common.Clamp01((v+1)/2)*2 - 1
}
