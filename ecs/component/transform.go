package component

import "github.com/milk9111/spiritfox/common"

// Transform places an entity in the world. Forward is the facing direction on
// the ground plane and is kept normalized by the systems that write it.
type Transform struct {
	Position common.Vec3
	Forward  common.Vec3
}

var TransformComponent = NewComponent[Transform]()
