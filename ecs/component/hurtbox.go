package component

// Hurtbox is the defensive sphere centered on the entity.
type Hurtbox struct {
	Radius float64
}

var HurtboxComponent = NewComponent[Hurtbox]()

// Collider registers the entity in the spatial query space. Static colliders
// are axis-aligned boxes of size HalfX/HalfZ; dynamic ones are circles.
type Collider struct {
	Radius float64
	HalfX  float64
	HalfZ  float64
	Static bool
	Tag    string
}

var ColliderComponent = NewComponent[Collider]()
