package component

type Health struct {
	Max     float64
	Current float64
}

var HealthComponent = NewComponent[Health]()
