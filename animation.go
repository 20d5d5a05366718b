package posy

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minTweenDuration keeps gween away from zero-length divisions.
const minTweenDuration = 1e-4

// Ease selects an easing curve. Each maps to a gween ease function.
type Ease uint8

const (
	EaseLinear      Ease = iota // constant speed
	EaseSineInOut               // gentle start and end, used for yoyo sways
	EasePower2In                // accelerate
	EasePower2Out               // decelerate
	EasePower2InOut             // accelerate then decelerate
	EasePower3Out               // stronger deceleration
	EaseBackOut                 // overshoot then settle
	EaseElasticOut              // spring overshoot
	EaseBounceOut               // bounce at the end
)

// Func returns the gween easing function for e.
func (e Ease) Func() ease.TweenFunc {
	switch e {
	case EaseSineInOut:
		return ease.InOutSine
	case EasePower2In:
		return ease.InQuad
	case EasePower2Out:
		return ease.OutQuad
	case EasePower2InOut:
		return ease.InOutQuad
	case EasePower3Out:
		return ease.OutCubic
	case EaseBackOut:
		return ease.OutBack
	case EaseElasticOut:
		return ease.OutElastic
	case EaseBounceOut:
		return ease.OutBounce
	default:
		return ease.Linear
	}
}

// Prop names an animatable numeric field of a Node.
type Prop uint8

const (
	PropX Prop = iota
	PropY
	PropZ
	PropRotX
	PropRotY
	PropRotZ
	PropScale // all three scale axes together
	PropScaleX
	PropScaleY
	PropScaleZ
	PropAlpha
)

// Props maps node fields to target values.
type Props map[Prop]float64

// TweenConfig enumerates the recognized tween options.
type TweenConfig struct {
	// Duration of one cycle in seconds.
	Duration float32
	// Delay before the first cycle starts, in seconds. Start values are
	// captured when the delay elapses.
	Delay float32
	// Ease is the easing curve.
	Ease Ease
	// Repeat is the number of extra cycles; -1 repeats forever.
	Repeat int
	// Yoyo reverses direction on every repeat.
	Yoyo bool
	// OnUpdate runs after every step that wrote values.
	OnUpdate func()
	// OnComplete runs once when the last cycle finishes.
	OnComplete func()
	// OnCancel runs once if the tween is cancelled before completing,
	// including when its target node is disposed.
	OnCancel func()
}

type tweenField struct {
	ptr      *float64
	from, to float32
	tw       *gween.Tween
}

// Tween animates one or more float64 fields toward target values. Tweens are
// created by a Tweener and advanced by its Update.
type Tween struct {
	target    *Node
	fields    []tweenField
	cfg       TweenConfig
	delay     float32
	started   bool
	cycle     int
	reversed  bool
	done      bool
	cancelled bool
}

// Target returns the animated node, or nil for value tweens.
func (t *Tween) Target() *Node {
	return t.target
}

// Done reports whether the tween ran to completion.
func (t *Tween) Done() bool {
	return t.done
}

// Cancelled reports whether the tween was cancelled.
func (t *Tween) Cancelled() bool {
	return t.cancelled
}

// Active reports whether the tween is still running or waiting on its delay.
func (t *Tween) Active() bool {
	return !t.done && !t.cancelled
}

// Cycle returns the number of completed cycles.
func (t *Tween) Cycle() int {
	return t.cycle
}

// Cancel stops the tween where it is. OnCancel runs the first time only,
// and never after completion.
func (t *Tween) Cancel() {
	if !t.Active() {
		return
	}
	t.cancelled = true
	if t.cfg.OnCancel != nil {
		t.cfg.OnCancel()
	}
}

// Stop is Cancel; it lets a Tween be tracked as a Stopper.
func (t *Tween) Stop() {
	t.Cancel()
}

func (t *Tween) start() {
	t.started = true
	d := t.cfg.Duration
	fn := t.cfg.Ease.Func()
	for i := range t.fields {
		f := &t.fields[i]
		f.from = float32(*f.ptr)
		f.tw = gween.New(f.from, f.to, d, fn)
	}
}

func (t *Tween) restart() {
	d := t.cfg.Duration
	fn := t.cfg.Ease.Func()
	for i := range t.fields {
		f := &t.fields[i]
		if t.reversed {
			f.tw = gween.New(f.to, f.from, d, fn)
			*f.ptr = float64(f.to)
		} else {
			f.tw = gween.New(f.from, f.to, d, fn)
			*f.ptr = float64(f.from)
		}
	}
}

func (t *Tween) update(dt float32) {
	if !t.Active() {
		return
	}
	if t.target != nil && t.target.IsDisposed() {
		t.Cancel()
		return
	}
	if !t.started {
		if dt < t.delay {
			t.delay -= dt
			return
		}
		dt -= t.delay
		t.delay = 0
		t.start()
	}

	all := true
	for i := range t.fields {
		f := &t.fields[i]
		val, finished := f.tw.Update(dt)
		*f.ptr = float64(val)
		if !finished {
			all = false
		}
	}
	if t.cfg.OnUpdate != nil {
		t.cfg.OnUpdate()
	}
	if !all || !t.Active() {
		return
	}

	if t.cfg.Repeat < 0 || t.cycle < t.cfg.Repeat {
		t.cycle++
		if t.cfg.Yoyo {
			t.reversed = !t.reversed
		}
		t.restart()
		return
	}
	t.cycle++
	t.done = true
	if t.cfg.OnComplete != nil {
		t.cfg.OnComplete()
	}
}

// Tweener owns the running tweens of a session. There is no global
// animation manager; the session calls Update once per frame.
type Tweener struct {
	tweens []*Tween
}

// NewTweener returns an empty Tweener.
func NewTweener() *Tweener {
	return &Tweener{}
}

// Animate tweens the given node fields from their values at start time to
// the targets in to.
func (tw *Tweener) Animate(n *Node, to Props, cfg TweenConfig) *Tween {
	t := newTween(n, cfg)
	for _, p := range sortedProps(to) {
		for _, ptr := range propFields(n, p) {
			t.fields = append(t.fields, tweenField{ptr: ptr, to: float32(to[p])})
		}
	}
	tw.tweens = append(tw.tweens, t)
	return t
}

// FromTo assigns from immediately, then tweens to the targets in to.
func (tw *Tweener) FromTo(n *Node, from, to Props, cfg TweenConfig) *Tween {
	Set(n, from)
	return tw.Animate(n, to, cfg)
}

// AnimateValue tweens an arbitrary float64 that is not a node field.
func (tw *Tweener) AnimateValue(ptr *float64, to float64, cfg TweenConfig) *Tween {
	t := newTween(nil, cfg)
	t.fields = append(t.fields, tweenField{ptr: ptr, to: float32(to)})
	tw.tweens = append(tw.tweens, t)
	return t
}

// CancelAnimationsOf cancels every active tween targeting n and returns how
// many were cancelled.
func (tw *Tweener) CancelAnimationsOf(n *Node) int {
	count := 0
	for _, t := range tw.tweens {
		if t.target == n && t.Active() {
			t.Cancel()
			count++
		}
	}
	return count
}

// IsAnimating reports whether any active tween targets n.
func (tw *Tweener) IsAnimating(n *Node) bool {
	for _, t := range tw.tweens {
		if t.target == n && t.Active() {
			return true
		}
	}
	return false
}

// CancelAll cancels every active tween.
func (tw *Tweener) CancelAll() int {
	count := 0
	for _, t := range tw.tweens {
		if t.Active() {
			t.Cancel()
			count++
		}
	}
	return count
}

// Len returns the number of active tweens.
func (tw *Tweener) Len() int {
	count := 0
	for _, t := range tw.tweens {
		if t.Active() {
			count++
		}
	}
	return count
}

// Update advances every tween by dt seconds. Tweens created from callbacks
// during Update start on the next call.
func (tw *Tweener) Update(dt float32) {
	n := len(tw.tweens)
	for i := 0; i < n; i++ {
		tw.tweens[i].update(dt)
	}
	kept := tw.tweens[:0]
	for _, t := range tw.tweens {
		if t.Active() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(tw.tweens); i++ {
		tw.tweens[i] = nil
	}
	tw.tweens = kept
}

// Set assigns props to n immediately.
func Set(n *Node, props Props) {
	for _, p := range sortedProps(props) {
		for _, ptr := range propFields(n, p) {
			*ptr = props[p]
		}
	}
}

func newTween(n *Node, cfg TweenConfig) *Tween {
	if cfg.Duration < minTweenDuration {
		cfg.Duration = minTweenDuration
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Tween{target: n, cfg: cfg, delay: cfg.Delay}
}

func sortedProps(props Props) []Prop {
	keys := make([]Prop, 0, len(props))
	for p := range props {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func propFields(n *Node, p Prop) []*float64 {
	switch p {
	case PropX:
		return []*float64{&n.X}
	case PropY:
		return []*float64{&n.Y}
	case PropZ:
		return []*float64{&n.Z}
	case PropRotX:
		return []*float64{&n.RotX}
	case PropRotY:
		return []*float64{&n.RotY}
	case PropRotZ:
		return []*float64{&n.RotZ}
	case PropScale:
		return []*float64{&n.ScaleX, &n.ScaleY, &n.ScaleZ}
	case PropScaleX:
		return []*float64{&n.ScaleX}
	case PropScaleY:
		return []*float64{&n.ScaleY}
	case PropScaleZ:
		return []*float64{&n.ScaleZ}
	case PropAlpha:
		return []*float64{&n.Alpha}
	}
	return nil
}
