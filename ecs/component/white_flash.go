package component

// HitFlash is the transient tint shown after taking damage. It runs beside
// the AI state rather than as part of it; a new hit restarts it.
type HitFlash struct {
	Remaining float64
	Duration  float64
}

var HitFlashComponent = NewComponent[HitFlash]()
