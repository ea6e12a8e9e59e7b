package component

// Pickup is an item lying in the world. The player picks it up by walking
// within Radius while empty-handed.
type Pickup struct {
	Item   string
	Radius float64
}

var PickupComponent = NewComponent[Pickup]()
