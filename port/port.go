// Package port declares the narrow call-level contracts between the simulation
// core and the engine services it does not own: input, spatial queries,
// navigation, presentation and the HUD.
package port

import (
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
)

// Input is the per-tick snapshot of player input. Buttons are already
// debounced edges; axes are in [-1, 1].
type Input struct {
	ToggleWorlds bool
	Attack       bool
	Jump         bool
	Interact     bool
	Horizontal   float64
	Vertical     float64
}

// Hit describes the first collider struck by a ray.
type Hit struct {
	Point  common.Vec3
	Normal common.Vec3
	Tag    string
	Entity ecs.Entity
}

// Sphere is a bounding volume used by hitbox overlap tests.
type Sphere struct {
	Center common.Vec3
	Radius float64
}

type Spatial interface {
	Raycast(origin, dir common.Vec3, maxDist float64) (Hit, bool)
	SphereOverlap(a, b Sphere) bool
	SampleWalkable(near common.Vec3, radius float64) common.Vec3
}

// Navigator issues destinations; path planning stays on the engine side.
type Navigator interface {
	SetDestination(e ecs.Entity, target common.Vec3)
	OnTransitionLink(e ecs.Entity) bool
}

// Presenter receives write-only visual and audio parameter updates.
type Presenter interface {
	SetParam(e ecs.Entity, name string, value float64)
	Play(e ecs.Entity, clip string)
}

// UI receives HUD events.
type UI interface {
	ProgressBar(text string, duration float64)
	ClearProgressBar()
	ItemHold(name string, held bool)
}

// SpheresOverlap is the plain geometric overlap test most Spatial
// implementations delegate to.
func SpheresOverlap(a, b Sphere) bool {
	return a.Center.Dist(b.Center) < a.Radius+b.Radius
}
