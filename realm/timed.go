package realm

// Clock supplies the shared transition duration. *Coordinator implements it.
type Clock interface {
	Duration() float64
}

// Timed is a ready-made participant for objects whose only realm state is a
// Toggle plus a few hooks. Hooks run after the toggle has changed, so they
// observe the new state.
type Timed struct {
	Toggle

	Clock Clock
	// Authority, when set, is read on begin to resync the local view.
	Authority func() bool

	OnBegin    func(t *Toggle)
	OnAbort    func(t *Toggle)
	OnComplete func(t *Toggle)
	// OnBlend runs every tick while transitioning and once after abort or
	// completion with the settled weight.
	OnBlend func(weight float64)
}

func (p *Timed) BeginTransition() {
	ok := false
	if p.Authority != nil {
		ok = p.Toggle.BeginFrom(p.Authority())
	} else {
		ok = p.Toggle.Begin()
	}
	if !ok {
		return
	}
	if p.Clock != nil {
		p.Duration = p.Clock.Duration()
	}
	if p.OnBegin != nil {
		p.OnBegin(&p.Toggle)
	}
}

// JoinTransition begins like BeginTransition but starts the timer part way
// through.
func (p *Timed) JoinTransition(elapsed, duration float64) {
	if p.OnTransition {
		return
	}
	p.BeginTransition()
	if !p.OnTransition {
		return
	}
	p.Duration = duration
	p.Elapsed = elapsed
	p.blend()
}

func (p *Timed) AbortTransition() {
	if !p.Toggle.Abort() {
		return
	}
	p.blend()
	if p.OnAbort != nil {
		p.OnAbort(&p.Toggle)
	}
}

func (p *Timed) CompleteTransition() {
	if !p.Toggle.Complete() {
		return
	}
	p.blend()
	if p.OnComplete != nil {
		p.OnComplete(&p.Toggle)
	}
}

func (p *Timed) TickTransition(dt float64) {
	if !p.OnTransition {
		return
	}
	if p.Advance(dt) {
		p.CompleteTransition()
		return
	}
	p.blend()
}

func (p *Timed) blend() {
	if p.OnBlend != nil {
		p.OnBlend(p.Blend())
	}
}
