package battle

// smokeOffset lifts smoke above the wreck it marks.
var smokeOffset = Vec2{0, -48}

// Smoke is the plume left where a unit was destroyed.
type Smoke struct {
	Pos      Vec2
	Frame    int
	Lifetime int // ticks until removal
}

// Tick advances the animation by one frame.
func (s *Smoke) Tick() {
	if s.Frame < s.Lifetime {
		s.Frame++
	}
}

// Done reports whether the smoke reached its terminal frame.
func (s *Smoke) Done() bool { return s.Frame >= s.Lifetime }

// Explosion is the flash spawned on every projectile hit.
type Explosion struct {
	Pos      Vec2
	Frame    int
	Lifetime int
}

func (e *Explosion) Tick() {
	if e.Frame < e.Lifetime {
		e.Frame++
	}
}

func (e *Explosion) Done() bool { return e.Frame >= e.Lifetime }

// Progress returns how far through its animation the explosion is, in [0,1].
func (e *Explosion) Progress() float64 {
	if e.Lifetime <= 0 {
		return 1
	}
	return float64(e.Frame) / float64(e.Lifetime)
}

// Progress returns how far through its lifetime the smoke is, in [0,1].
func (s *Smoke) Progress() float64 {
	if s.Lifetime <= 0 {
		return 1
	}
	return float64(s.Frame) / float64(s.Lifetime)
}

// compactInPlace keeps the elements for which keep returns true, preserving
// order, and returns the shortened slice.
func compactInPlace[T any](s []T, keep func(*T) bool) []T {
	out := s[:0]
	for i := range s {
		if keep(&s[i]) {
			out = append(out, s[i])
		}
	}
	var zero T
	for i := len(out); i < len(s); i++ {
		s[i] = zero
	}
	return out
}
