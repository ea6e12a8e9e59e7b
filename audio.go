package main

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/spiritfox/ecs"
)

const (
	sampleRate  = 44100
	loopSeconds = 2
	droneGain   = 0.15
)

var audioContext = audio.NewContext(sampleRate)

// Jukebox loops one synthesized drone per realm and follows the volumes the
// music participant pushes to the presenter.
type Jukebox struct {
	players map[string]*audio.Player
}

// drone partials in whole hertz so a two second buffer loops without a click
var drones = [][]float64{
	{110, 165},
	{73, 146, 219},
}

func NewJukebox(tracks ...string) *Jukebox {
	j := &Jukebox{players: make(map[string]*audio.Player)}
	for i, track := range tracks {
		if track == "" {
			continue
		}
		pcm := synthesize(drones[i%len(drones)])
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := audioContext.NewPlayer(loop)
		if err != nil {
			log.Printf("audio: track %s: %v", track, err)
			continue
		}
		p.SetVolume(0)
		p.Play()
		j.players[track] = p
	}
	return j
}

// Update copies the presenter's track volumes onto the players.
func (j *Jukebox) Update(p *Presenter) {
	for track, player := range j.players {
		player.SetVolume(p.Param(ecs.NoEntity, track, 0))
	}
}

func (j *Jukebox) Close() {
	for track, p := range j.players {
		if err := p.Close(); err != nil {
			log.Printf("audio: close %s: %v", track, err)
		}
	}
}

// synthesize renders partials as 16-bit little endian stereo PCM.
func synthesize(partials []float64) []byte {
	n := sampleRate * loopSeconds
	var buf bytes.Buffer
	buf.Grow(n * 4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		var v float64
		for _, f := range partials {
			v += math.Sin(2 * math.Pi * f * t)
		}
		v = v / float64(len(partials)) * droneGain
		s := int16(v * math.MaxInt16)
		_ = binary.Write(&buf, binary.LittleEndian, s)
		_ = binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}
