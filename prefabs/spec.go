package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec lays out an encounter: where everything stands and how long a
// realm swap takes.
type WorldSpec struct {
	Name               string         `yaml:"name"`
	TransitionDuration float64        `yaml:"transition_duration"`
	Player             PointSpec      `yaml:"player"`
	Ghouls             []PointSpec    `yaml:"ghouls"`
	Walls              []BoxSpec       `yaml:"walls"`
	Bindweeds          []BindweedSpec  `yaml:"bindweeds"`
	Encounters         []EncounterSpec `yaml:"encounters"`
	Music              MusicSpec       `yaml:"music"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// BoxSpec is a ground-plane rectangle: a wall or a trigger volume.
type BoxSpec struct {
	X     float64 `yaml:"x"`
	Z     float64 `yaml:"z"`
	HalfX float64 `yaml:"half_x"`
	HalfZ float64 `yaml:"half_z"`
}

// BindweedSpec places a bindweed, the ledge it climbs to and the seed plot
// that makes it growable. A bindweed without a plot is never growable.
type BindweedSpec struct {
	X       float64    `yaml:"x"`
	Z       float64    `yaml:"z"`
	ClimbTo PointSpec  `yaml:"climb_to"`
	Plot    *PointSpec `yaml:"plot"`
	Seed    *PointSpec `yaml:"seed"`
}

// EncounterSpec is a wave of ghouls released when the player enters the
// trigger. Quantity defaults to one per point. Reaching the limit cancels it.
type EncounterSpec struct {
	Prefab   string      `yaml:"prefab"`
	Quantity int         `yaml:"quantity"`
	Jitter   float64     `yaml:"jitter"`
	Points   []PointSpec `yaml:"points"`
	Trigger  *BoxSpec    `yaml:"trigger"`
	Limit    *BoxSpec    `yaml:"limit"`
}

type MusicSpec struct {
	Normal string `yaml:"normal"`
	Spirit string `yaml:"spirit"`
}

func LoadWorldSpec(filename string) (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.TransitionDuration < 0 {
		return nil, fmt.Errorf("prefabs: %s: negative transition_duration %v", filename, spec.TransitionDuration)
	}
	for i, enc := range spec.Encounters {
		if len(enc.Points) == 0 {
			return nil, fmt.Errorf("prefabs: %s: encounter %d has no spawn points", filename, i)
		}
	}
	return &spec, nil
}
