package component

import "github.com/milk9111/spiritfox/common"

type Camera struct {
	Target       uint64
	Position     common.Vec3
	Smoothness   float64
	SpiritWeight float64
}

var CameraComponent = NewComponent[Camera]()
