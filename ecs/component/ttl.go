package component

// Fade lowers an entity's opacity at Rate per second of real time and
// destroys the entity when it reaches zero.
type Fade struct {
	Rate float64
}

var FadeComponent = NewComponent[Fade]()

// Visibility is the opacity the presentation layer should draw with.
type Visibility struct {
	Opacity float64
}

var VisibilityComponent = NewComponent[Visibility]()
