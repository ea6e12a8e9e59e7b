package component

import "github.com/milk9111/spiritfox/common"

// NavAgent is the engine-side navigation request for one entity. The AI only
// writes destinations; the navigation system moves the transform.
type NavAgent struct {
	Destination    common.Vec3
	HasDestination bool
	Speed          float64
	OnLink         bool
}

var NavAgentComponent = NewComponent[NavAgent]()
