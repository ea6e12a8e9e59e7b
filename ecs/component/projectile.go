package component

import "github.com/milk9111/spiritfox/common"

// Projectile is a fired spirit ball. It flies along Velocity until it strikes
// a ghoul, meets a wall or has covered Range.
type Projectile struct {
	Source   uint64
	Velocity common.Vec3
	Radius   float64
	Damage   float64
	Range    float64
}

var ProjectileComponent = NewComponent[Projectile]()
