package port

import (
	"github.com/milk9111/spiritfox/ecs"
)

// ParamKey addresses one presentation parameter of one entity.
type ParamKey struct {
	Entity ecs.Entity
	Name   string
}

// UIEvent is one recorded HUD call. Text is empty and Duration zero for a
// cleared progress bar.
type UIEvent struct {
	Kind     string
	Text     string
	Duration float64
	Held     bool
}

const (
	UIProgressBar = "progress_bar"
	UIClearBar    = "progress_bar_clear"
	UIItemHold    = "item_hold"
)

// Recorder captures presentation and UI calls so they can be inspected later.
// It keeps the last value written to each parameter and the full UI history.
type Recorder struct {
	Params map[ParamKey]float64
	Clips  []string
	UI     []UIEvent
}

func NewRecorder() *Recorder {
	return &Recorder{Params: map[ParamKey]float64{}}
}

func (r *Recorder) SetParam(e ecs.Entity, name string, value float64) {
	if r.Params == nil {
		r.Params = map[ParamKey]float64{}
	}
	r.Params[ParamKey{Entity: e, Name: name}] = value
}

// Param returns the last value written to name for e.
func (r *Recorder) Param(e ecs.Entity, name string) (float64, bool) {
	v, ok := r.Params[ParamKey{Entity: e, Name: name}]
	return v, ok
}

func (r *Recorder) Play(_ ecs.Entity, clip string) {
	r.Clips = append(r.Clips, clip)
}

func (r *Recorder) ProgressBar(text string, duration float64) {
	r.UI = append(r.UI, UIEvent{Kind: UIProgressBar, Text: text, Duration: duration})
}

func (r *Recorder) ClearProgressBar() {
	r.UI = append(r.UI, UIEvent{Kind: UIClearBar})
}

func (r *Recorder) ItemHold(name string, held bool) {
	r.UI = append(r.UI, UIEvent{Kind: UIItemHold, Text: name, Held: held})
}

// LastUI returns the most recent UI event.
func (r *Recorder) LastUI() (UIEvent, bool) {
	if len(r.UI) == 0 {
		return UIEvent{}, false
	}
	return r.UI[len(r.UI)-1], true
}
