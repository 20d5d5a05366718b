package posy

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by PhaseMachine.Advance for anything but
// a step to the immediate successor phase.
var ErrInvalidTransition = errors.New("posy: invalid phase transition")

// Phase is one stage of the presentation.
type Phase uint8

const (
	PhaseLoading     Phase = iota // loading screen, waiting on the load gate
	PhaseEntrance                 // intro animation, input ignored
	PhaseInteractive              // flowers can be gathered
	PhaseShowcase                 // terminal celebration
	phaseCount
)

var phaseNames = [phaseCount]string{"Loading", "Entrance", "Interactive", "Showcase"}

// String returns the phase name.
func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Next returns the successor phase. ok is false for Showcase.
func (p Phase) Next() (next Phase, ok bool) {
	if p+1 >= phaseCount {
		return p, false
	}
	return p + 1, true
}

// PhaseResources is everything a phase introduced that must not outlive
// it: timers, tweens, input handles and scene nodes.
type PhaseResources struct {
	stoppers []Stopper
	nodes    []*Node
	released bool
}

// Track adds a timer, tween or other Stopper. Tracking on released
// resources stops st immediately.
func (r *PhaseResources) Track(st Stopper) {
	if st == nil {
		return
	}
	if r.released {
		st.Stop()
		return
	}
	r.stoppers = append(r.stoppers, st)
}

// TrackNode adds a node to dispose on release.
func (r *PhaseResources) TrackNode(n *Node) {
	if n == nil {
		return
	}
	if r.released {
		n.Dispose()
		return
	}
	r.nodes = append(r.nodes, n)
}

// Len returns the number of tracked resources.
func (r *PhaseResources) Len() int {
	return len(r.stoppers) + len(r.nodes)
}

// Released reports whether Release ran.
func (r *PhaseResources) Released() bool {
	return r.released
}

// Release stops every Stopper, then disposes every node. Cancelled tweens
// run their cancel handlers. Release is idempotent.
func (r *PhaseResources) Release() {
	if r.released {
		return
	}
	r.released = true
	for _, st := range r.stoppers {
		st.Stop()
	}
	for _, n := range r.nodes {
		n.Dispose()
	}
	r.stoppers = nil
	r.nodes = nil
}

// PhaseMachine sequences Loading, Entrance, Interactive and Showcase. It
// only moves forward one step at a time, and leaving a phase releases the
// resources that phase owns.
type PhaseMachine struct {
	current       Phase
	resources     [phaseCount]PhaseResources
	enter         [phaseCount][]func(from Phase)
	transitioning bool
	transitions   int
}

// NewPhaseMachine starts in PhaseLoading.
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseLoading}
}

// Current returns the active phase.
func (m *PhaseMachine) Current() Phase {
	return m.current
}

// Is reports whether p is the active phase.
func (m *PhaseMachine) Is(p Phase) bool {
	return m.current == p
}

// Transitions returns how many successful transitions have happened.
func (m *PhaseMachine) Transitions() int {
	return m.transitions
}

// Resources returns the resource set owned by p.
func (m *PhaseMachine) Resources(p Phase) *PhaseResources {
	if p >= phaseCount {
		return nil
	}
	return &m.resources[p]
}

// Own tracks st in the active phase.
func (m *PhaseMachine) Own(st Stopper) {
	m.resources[m.current].Track(st)
}

// OwnNode tracks n in the active phase.
func (m *PhaseMachine) OwnNode(n *Node) {
	m.resources[m.current].TrackNode(n)
}

// OnEnter registers fn to run after the machine switches to p.
func (m *PhaseMachine) OnEnter(p Phase, fn func(from Phase)) {
	if p >= phaseCount || fn == nil {
		return
	}
	m.enter[p] = append(m.enter[p], fn)
}

// Advance moves to the immediate successor of the current phase. Any other
// target, including a transition requested while one is running, returns
// an error wrapping ErrInvalidTransition and changes nothing.
func (m *PhaseMachine) Advance(to Phase) error {
	from := m.current
	next, ok := from.Next()
	if !ok || to != next || m.transitioning {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.transitioning = true
	m.resources[from].Release()
	m.current = to
	m.transitions++
	m.transitioning = false

	for _, fn := range m.enter[to] {
		fn(from)
	}
	return nil
}
