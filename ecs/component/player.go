package component

import "github.com/milk9111/spiritfox/common"

// Form is the player's body. The fox form belongs to the spirit realm.
type Form string

const (
	FormHuman Form = "human"
	FormFox   Form = "fox"
)

type Player struct {
	Form           Form
	MoveSpeed      float64
	FoxSpeed       float64
	Radius         float64
	AttackReach    float64
	AttackAngle    float64
	AttackDamage   float64
	AttackCooldown float64
	Cooldown       float64
	InteractRadius float64

	// SpiritBalls orbs are granted on every arrival in the spirit realm and
	// taken away on leaving it. A fired orb comes back after
	// SpiritRespawnTime seconds.
	SpiritBalls       int
	SpiritRespawnTime float64
	ShotSpeed         float64
	ShotRange         float64
	ShotRadius        float64
	ShotDamage        float64
	Balls             int
	Respawns          []float64

	// Held is the carried item. HeldOrigin and HeldRadius put it back where
	// it was found when the player loses it.
	Held       string
	HeldOrigin common.Vec3
	HeldRadius float64

	Spawn     common.Vec3
	Hurt      bool
	FlashTime float64
}

var PlayerComponent = NewComponent[Player]()
