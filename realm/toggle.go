package realm

import "github.com/milk9111/spiritfox/common"

// Toggle is the per-participant world-state token: which realm the
// participant currently lives in and whether a swap is in flight.
//
// A Toggle is only mutated by the participant that owns it.
type Toggle struct {
	Spirit       bool
	OnTransition bool
	Elapsed      float64
	Duration     float64
}

// Begin starts a transition. It returns false, changing nothing, when one is
// already in flight.
func (t *Toggle) Begin() bool {
	if t == nil || t.OnTransition {
		return false
	}
	t.OnTransition = true
	t.Elapsed = 0
	return true
}

// BeginFrom resyncs the local view to the authoritative realm before
// starting. Non-owning participants use it so every view flips from the same
// starting realm.
func (t *Toggle) BeginFrom(spirit bool) bool {
	if t == nil || t.OnTransition {
		return false
	}
	t.Spirit = spirit
	return t.Begin()
}

// Abort cancels the in-flight transition and leaves Spirit untouched.
func (t *Toggle) Abort() bool {
	if t == nil || !t.OnTransition {
		return false
	}
	t.OnTransition = false
	t.Elapsed = 0
	return true
}

// Advance moves the timer forward by dt and reports whether it has expired.
func (t *Toggle) Advance(dt float64) bool {
	if t == nil || !t.OnTransition {
		return false
	}
	if dt > 0 {
		t.Elapsed += dt
	}
	return t.Elapsed >= t.Duration
}

// Complete flips the realm and ends the transition.
func (t *Toggle) Complete() bool {
	if t == nil || !t.OnTransition {
		return false
	}
	t.Spirit = !t.Spirit
	t.OnTransition = false
	t.Elapsed = 0
	return true
}

// Progress is the fraction of the transition elapsed, 0 when idle.
func (t *Toggle) Progress() float64 {
	if t == nil || !t.OnTransition {
		return 0
	}
	if t.Duration <= 0 {
		return 1
	}
	return common.Clamp01(t.Elapsed / t.Duration)
}

// Blend is the spirit weight in [0,1]. Idle toggles report exactly 0 or 1; a
// transition interpolates from the current realm toward the other one.
func (t *Toggle) Blend() float64 {
	if t == nil {
		return 0
	}
	from := Weight(t.Spirit)
	if !t.OnTransition {
		return from
	}
	return common.Lerp(from, 1-from, t.Progress())
}

// Weight maps a realm to its spirit weight.
func Weight(spirit bool) float64 {
	if spirit {
		return 1
	}
	return 0
}

// Name returns the display name of a realm.
func Name(spirit bool) string {
	if spirit {
		return "spirit"
	}
	return "normal"
}
