package posy

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
)

// touchInjectPointer is the pointer slot used by InjectTouch.
const touchInjectPointer = 1

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, the same space hardware input arrives in.
type syntheticPointerEvent struct {
	x, y      float64
	kind      injectKind
	pointerID int
	touch     bool
}

// InjectPress queues a mouse press at the given screen coordinates. The
// event is consumed on the next frame's input processing.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, kind: injectPress})
}

// InjectMove queues a mouse move. The button stays in whatever state the
// previous injected event left it.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, kind: injectMove})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, kind: injectRelease})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectTouch queues a tap: a touch start and end on a touch pointer at the
// given screen coordinates. Consumes two frames.
func (s *Scene) InjectTouch(x, y float64) {
	s.injectQueue = append(s.injectQueue,
		syntheticPointerEvent{x: x, y: y, kind: injectPress, pointerID: touchInjectPointer, touch: true},
		syntheticPointerEvent{x: x, y: y, kind: injectRelease, pointerID: touchInjectPointer, touch: true},
	)
}

// InjectPending returns the number of queued synthetic events.
func (s *Scene) InjectPending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (hardware
// input is skipped for that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	var pressed bool
	switch evt.kind {
	case injectPress:
		pressed = true
	case injectMove:
		pressed = s.pointers[evt.pointerID].down
	}
	s.processPointer(evt.pointerID, evt.x, evt.y, pressed, evt.touch)
	return true
}
