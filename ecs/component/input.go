package component

// Input stores the per-tick intent of the entity's controller. Buttons are
// edges: true only on the tick they were pressed.
type Input struct {
	Horizontal float64
	Vertical   float64
	Toggle     bool
	Attack     bool
	Interact   bool
	Jump       bool
}

var InputComponent = NewComponent[Input]()
