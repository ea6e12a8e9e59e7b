// Package perception answers whether an observer can currently see a target.
// It keeps no state; every call recomputes the answer from spatial data.
package perception

import (
	"math"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/port"
)

// Cone is a field of view: a half angle in degrees around the forward vector
// and a maximum distance.
type Cone struct {
	HalfAngle float64
	Radius    float64
}

type Observer struct {
	Position common.Vec3
	Forward  common.Vec3
}

type Target struct {
	Entity   ecs.Entity
	Position common.Vec3
}

// InCone reports whether p lies strictly inside the cone: angle below the half
// angle and distance below the radius. Points on either boundary are outside.
func InCone(obs Observer, cone Cone, p common.Vec3) bool {
	to := p.Sub(obs.Position)
	dist := to.Len()
	if dist == 0 || !(dist < cone.Radius) {
		return false
	}
	angle := common.AngleBetween(obs.Forward, to)
	if math.IsNaN(angle) {
		return false
	}
	return angle < cone.HalfAngle
}

// CanSee reports whether target is inside the cone and the first collider hit
// along the ray from the observer is the target itself. A nil spatial service
// is treated as an empty world with no blockers.
func CanSee(obs Observer, cone Cone, target Target, spatial port.Spatial) bool {
	if !target.Entity.Valid() {
		return false
	}
	if !InCone(obs, cone, target.Position) {
		return false
	}
	if spatial == nil {
		return true
	}
	to := target.Position.Sub(obs.Position)
	hit, ok := spatial.Raycast(obs.Position, to.Normalize(), cone.Radius)
	if !ok {
		return false
	}
	return hit.Entity == target.Entity
}
