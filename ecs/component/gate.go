package component

import "github.com/milk9111/spiritfox/common"

// Bindweed is a climbable plant that only grows after a realm swap once it
// has been made growable.
type Bindweed struct {
	// Growable is a one-way latch set by a seed plot.
	Growable bool
	Growing  bool
	// Grown is terminal; growth never runs twice.
	Grown       bool
	GrowTime    float64
	GrowElapsed float64

	Climbable     bool
	ClimbCooldown float64
	CooldownLeft  float64
	ClimbTo       common.Vec3

	InteractRadius float64
	Prompted       bool
}

var BindweedComponent = NewComponent[Bindweed]()

// SeedPlot latches its bindweed growable when its condition script passes.
type SeedPlot struct {
	Bindweed       uint64
	Condition      string
	InteractRadius float64
	Planted        bool
}

var SeedPlotComponent = NewComponent[SeedPlot]()
