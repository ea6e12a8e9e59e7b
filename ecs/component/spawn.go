package component

import "github.com/milk9111/spiritfox/common"

// Box is an axis-aligned trigger volume on the ground plane.
type Box struct {
	Center common.Vec3
	HalfX  float64
	HalfZ  float64
}

// Empty reports whether the box has no extent.
func (b Box) Empty() bool {
	return b.HalfX <= 0 || b.HalfZ <= 0
}

func (b Box) Contains(p common.Vec3) bool {
	if b.Empty() {
		return false
	}
	dx, dz := p.X-b.Center.X, p.Z-b.Center.Z
	return dx >= -b.HalfX && dx <= b.HalfX && dz >= -b.HalfZ && dz <= b.HalfZ
}

// Spawner is an encounter. When the player steps into Trigger it releases
// Quantity ghouls spread over Points, each nudged by up to Jitter. An
// encounter without a trigger starts at once. It clears once every ghoul it
// released is gone. Stepping into Limit cancels it and takes its ghouls away.
type Spawner struct {
	Prefab   string
	Points   []common.Vec3
	Quantity int
	Jitter   float64
	Trigger  Box
	Limit    Box

	Started bool
	Spawned []uint64
}

var SpawnerComponent = NewComponent[Spawner]()
