package port

import (
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
)

// Nop implements every port by doing nothing. Raycasts never hit and walkable
// sampling returns the query point.
type Nop struct{}

func (Nop) Raycast(common.Vec3, common.Vec3, float64) (Hit, bool) { return Hit{}, false }
func (Nop) SphereOverlap(a, b Sphere) bool                         { return SpheresOverlap(a, b) }
func (Nop) SampleWalkable(near common.Vec3, _ float64) common.Vec3 { return near }
func (Nop) SetDestination(ecs.Entity, common.Vec3)                 {}
func (Nop) OnTransitionLink(ecs.Entity) bool                       { return false }
func (Nop) SetParam(ecs.Entity, string, float64)                   {}
func (Nop) Play(ecs.Entity, string)                                {}
func (Nop) ProgressBar(string, float64)                            {}
func (Nop) ClearProgressBar()                                      {}
func (Nop) ItemHold(string, bool)                                  {}
