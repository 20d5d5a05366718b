package posy

// minInterval bounds Every so a zero or negative interval cannot spin Advance.
const minInterval = 1.0 / 1000

// Stopper is anything with an idempotent Stop, such as a Timer or a Tween.
type Stopper interface {
	Stop()
}

// StopFunc adapts a plain function to Stopper.
type StopFunc func()

// Stop calls f.
func (f StopFunc) Stop() {
	f()
}

// TickFunc is a per-frame callback. now is the scheduler time in seconds and
// dt the frame step. Returning false unregisters the callback.
type TickFunc func(now, dt float64) bool

// Timer is a one-shot or repeating callback owned by a Scheduler.
type Timer struct {
	at       float64
	interval float64
	seq      uint64
	fn       func()
	stopped  bool
}

// Stop cancels the timer. Calling Stop more than once, or after a one-shot
// timer fired, is a no-op.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.stopped = true
}

// Active reports whether the timer will fire again.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Scheduler is the single-threaded time source for a session: timeouts,
// intervals and per-frame ticks all run from Advance, which the game loop
// calls once per Update with the frame step. Tests drive it by hand.
type Scheduler struct {
	now    float64
	seq    uint64
	timers []*Timer
	ticks  []TickFunc
}

// NewScheduler returns a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed scheduler time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After runs fn once, delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	return s.add(&Timer{at: s.now + delay, fn: fn})
}

// Every runs fn every interval seconds until the returned timer is stopped.
func (s *Scheduler) Every(interval float64, fn func()) *Timer {
	if interval < minInterval {
		interval = minInterval
	}
	return s.add(&Timer{at: s.now + interval, interval: interval, fn: fn})
}

func (s *Scheduler) add(t *Timer) *Timer {
	s.seq++
	t.seq = s.seq
	s.timers = append(s.timers, t)
	return t
}

// RequestTick registers fn to run at the end of every Advance until it
// returns false. Callbacks registered during a tick first run on the next
// Advance.
func (s *Scheduler) RequestTick(fn TickFunc) {
	s.ticks = append(s.ticks, fn)
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves time forward by dt seconds. Due timers fire in due-time
// order (registration order on ties) with Now reporting their due time, so
// a large step behaves like many small ones. Ticks run afterwards.
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.at
		if t.interval > 0 {
			t.at += t.interval
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
	s.compact()

	ticks := s.ticks
	s.ticks = nil
	kept := make([]TickFunc, 0, len(ticks))
	for _, fn := range ticks {
		if fn(s.now, dt) {
			kept = append(kept, fn)
		}
	}
	s.ticks = append(kept, s.ticks...)
}

func (s *Scheduler) nextDue(target float64) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.stopped || t.at > target {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}
