package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/realm"
)

const (
	defaultNormalTrack = "music.normal"
	defaultSpiritTrack = "music.spirit"
)

// NewMusic returns the ambient music participant. It lives outside the ECS
// and crossfades the two realm tracks with the swap. Volumes are pushed to
// the presenter on the world-level entity.
func NewMusic(w *ecs.World, clock realm.Clock, presenter port.Presenter, normalTrack, spiritTrack string) *realm.Timed {
	if presenter == nil {
		presenter = port.Nop{}
	}
	normalTrack, spiritTrack = MusicTracks(normalTrack, spiritTrack)
	m := &realm.Timed{
		Clock:     clock,
		Authority: func() bool { return SpiritRealm(w) },
	}
	m.Spirit = SpiritRealm(w)
	m.OnBlend = func(weight float64) {
		presenter.SetParam(ecs.NoEntity, normalTrack, 1-weight)
		presenter.SetParam(ecs.NoEntity, spiritTrack, weight)
	}
	m.OnBlend(realm.Weight(m.Spirit))
	return m
}

// MusicTracks fills in the default track names.
func MusicTracks(normal, spirit string) (string, string) {
	if normal == "" {
		normal = defaultNormalTrack
	}
	if spirit == "" {
		spirit = defaultSpiritTrack
	}
	return normal, spirit
}
