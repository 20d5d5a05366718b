package posy

// MinLoadDuration is how long the loading screen stays up at minimum: long
// enough to show every message, plus padding.
func MinLoadDuration(messages int, perMessage, padding float64) float64 {
	if messages < 0 {
		messages = 0
	}
	return float64(messages)*perMessage + padding
}

// LoadGate is a two-condition barrier. It fires once both the external load
// signal and the minimum-duration timer have arrived, in either order.
// Firing stops every registered loading-phase Stopper first, then runs the
// ready callbacks in registration order.
type LoadGate struct {
	loaded     bool
	minElapsed bool
	fired      bool

	ready    []func()
	stoppers []Stopper
}

// NewLoadGate arms the minimum-duration timer on sched. The timer cannot be
// cancelled; it calls SignalMinTimeElapsed exactly once. Without a
// scheduler there is no clock to wait on, so the minimum time counts as
// already elapsed.
func NewLoadGate(sched *Scheduler, minDuration float64) *LoadGate {
	g := &LoadGate{}
	if sched == nil {
		g.minElapsed = true
		return g
	}
	sched.After(minDuration, g.SignalMinTimeElapsed)
	return g
}

// SignalLoaded records the external load signal. Repeated calls are no-ops.
func (g *LoadGate) SignalLoaded() {
	if g.loaded {
		return
	}
	g.loaded = true
	g.tryFire()
}

// SignalMinTimeElapsed records that the minimum duration has passed.
// Repeated calls are no-ops.
func (g *LoadGate) SignalMinTimeElapsed() {
	if g.minElapsed {
		return
	}
	g.minElapsed = true
	g.tryFire()
}

// OnReady registers fn to run when the gate fires. If the gate already
// fired, fn runs immediately.
func (g *LoadGate) OnReady(fn func()) {
	if fn == nil {
		return
	}
	if g.fired {
		fn()
		return
	}
	g.ready = append(g.ready, fn)
}

// StopOnReady registers a loading-phase timer or tween to stop when the
// gate fires. If the gate already fired, st is stopped immediately.
func (g *LoadGate) StopOnReady(st Stopper) {
	if st == nil {
		return
	}
	if g.fired {
		st.Stop()
		return
	}
	g.stoppers = append(g.stoppers, st)
}

// Loaded reports whether SignalLoaded was called.
func (g *LoadGate) Loaded() bool {
	return g.loaded
}

// MinTimeElapsed reports whether the minimum duration has passed.
func (g *LoadGate) MinTimeElapsed() bool {
	return g.minElapsed
}

// Ready reports whether the gate has fired.
func (g *LoadGate) Ready() bool {
	return g.fired
}

func (g *LoadGate) tryFire() {
	if g.fired || !g.loaded || !g.minElapsed {
		return
	}
	g.fired = true

	stoppers := g.stoppers
	g.stoppers = nil
	for _, st := range stoppers {
		st.Stop()
	}

	ready := g.ready
	g.ready = nil
	for _, fn := range ready {
		fn()
	}
}
