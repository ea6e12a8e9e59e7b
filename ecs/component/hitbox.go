package component

// Hitbox is an offensive sphere placed Reach units in front of the entity.
type Hitbox struct {
	Radius float64
	Reach  float64
}

var HitboxComponent = NewComponent[Hitbox]()
