package component

// AI holds the static tuning of a ghoul. All durations are seconds and all
// distances world units.
type AI struct {
	IdleTime       float64
	WanderDistance float64
	WanderTimeout  float64
	SearchTime     float64
	AttackDistance float64
	AttackDelay    float64
	AttackCooldown float64
	AttackDamage   float64
	WalkSpeed      float64
	ChaseSpeed     float64
	FlashTime      float64
}

var AIComponent = NewComponent[AI]()
