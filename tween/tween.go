// Package tween provides time-based interpolation for UI animation.
package tween

// EaseFunc maps elapsed time to a value. Arguments are elapsed time,
// start value, total change and total duration.
type EaseFunc func(t, b, c, d float32) float32

func Linear(t, b, c, d float32) float32 {
	return c*t/d + b
}

func InQuad(t, b, c, d float32) float32 {
	t /= d
	return c*t*t + b
}

func OutQuad(t, b, c, d float32) float32 {
	t /= d
	return -c*t*(t-2) + b
}

func InOutQuad(t, b, c, d float32) float32 {
	t /= d / 2
	if t < 1 {
		return c/2*t*t + b
	}
	t--
	return -c/2*(t*(t-2)-1) + b
}

// Tween interpolates between two values over a fixed duration.
type Tween struct {
	from     float32
	change   float32
	duration float32
	elapsed  float32
	ease     EaseFunc
	done     bool
}

func New(from, to, duration float32, ease EaseFunc) *Tween {
	return &Tween{
		from:     from,
		change:   to - from,
		duration: duration,
		ease:     ease,
	}
}

// Update advances the tween by dt seconds and returns the current value
// and whether the tween has finished. Once finished the end value is
// returned on every call.
func (t *Tween) Update(dt float32) (float32, bool) {
	if t.done {
		return t.from + t.change, true
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.done = true
		return t.from + t.change, true
	}
	return t.ease(t.elapsed, t.from, t.change, t.duration), false
}

// Reset rewinds the tween so it can be replayed.
func (t *Tween) Reset() {
	t.elapsed = 0
	t.done = false
}

// Sequence plays tweens one after another.
type Sequence struct {
	tweens []*Tween
	index  int
}

func NewSequence(tweens ...*Tween) *Sequence {
	return &Sequence{tweens: tweens}
}

// Update advances the active tween. It returns the current value, whether
// the active tween just completed, and whether the whole sequence is done.
func (s *Sequence) Update(dt float32) (float32, bool, bool) {
	if s.index >= len(s.tweens) {
		if len(s.tweens) == 0 {
			return 0, true, true
		}
		last := s.tweens[len(s.tweens)-1]
		v, _ := last.Update(0)
		return v, true, true
	}
	v, done := s.tweens[s.index].Update(dt)
	if done {
		s.index++
		return v, true, s.index >= len(s.tweens)
	}
	return v, false, false
}

// Reset rewinds the sequence and all of its tweens.
func (s *Sequence) Reset() {
	s.index = 0
	for _, t := range s.tweens {
		t.Reset()
	}
}
