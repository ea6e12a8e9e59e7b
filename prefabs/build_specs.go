package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name plus raw per-component YAML decoded by
// the entity builders.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ForwardX float64 `yaml:"forward_x"`
	ForwardZ float64 `yaml:"forward_z"`
}

type RealmComponentSpec struct {
	Spirit bool `yaml:"spirit"`
}

type PlayerComponentSpec struct {
	MoveSpeed      float64 `yaml:"move_speed"`
	FoxSpeed       float64 `yaml:"fox_speed"`
	Radius         float64 `yaml:"radius"`
	AttackReach    float64 `yaml:"attack_reach"`
	AttackAngle    float64 `yaml:"attack_angle"`
	AttackDamage   float64 `yaml:"attack_damage"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	InteractRadius float64 `yaml:"interact_radius"`
	FlashTime      float64 `yaml:"flash_time"`

	SpiritBalls       int     `yaml:"spirit_balls"`
	SpiritRespawnTime float64 `yaml:"spirit_respawn_time"`
	ShotSpeed         float64 `yaml:"shot_speed"`
	ShotRange         float64 `yaml:"shot_range"`
	ShotRadius        float64 `yaml:"shot_radius"`
	ShotDamage        float64 `yaml:"shot_damage"`
}

type AIComponentSpec struct {
	IdleTime       float64 `yaml:"idle_time"`
	WanderDistance float64 `yaml:"wander_distance"`
	WanderTimeout  float64 `yaml:"wander_timeout"`
	SearchTime     float64 `yaml:"search_time"`
	AttackDistance float64 `yaml:"attack_distance"`
	AttackDelay    float64 `yaml:"attack_delay"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	AttackDamage   float64 `yaml:"attack_damage"`
	WalkSpeed      float64 `yaml:"walk_speed"`
	ChaseSpeed     float64 `yaml:"chase_speed"`
	FlashTime      float64 `yaml:"flash_time"`
}

type PerceptionComponentSpec struct {
	HalfAngle float64 `yaml:"half_angle"`
	Radius    float64 `yaml:"radius"`
}

type HealthComponentSpec struct {
	Max float64 `yaml:"max"`
}

type HitboxComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Reach  float64 `yaml:"reach"`
}

type HurtboxComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type ColliderComponentSpec struct {
	Radius float64 `yaml:"radius"`
	HalfX  float64 `yaml:"half_x"`
	HalfZ  float64 `yaml:"half_z"`
	Static bool    `yaml:"static"`
	Tag    string  `yaml:"tag"`
}

type CameraComponentSpec struct {
	Smoothness float64 `yaml:"smoothness"`
}

type BindweedComponentSpec struct {
	GrowTime       float64 `yaml:"grow_time"`
	ClimbCooldown  float64 `yaml:"climb_cooldown"`
	InteractRadius float64 `yaml:"interact_radius"`
}

type SeedPlotComponentSpec struct {
	Condition      string  `yaml:"condition"`
	InteractRadius float64 `yaml:"interact_radius"`
}

type PickupComponentSpec struct {
	Item   string  `yaml:"item"`
	Radius float64 `yaml:"radius"`
}
