package battle

// Zone is a static rectangular hazard (the particle beam) that damages every
// unit touching it during the active part of each period.
type Zone struct {
	Area        Rect
	Damage      int // per tick while active
	Period      int // ticks per cycle
	ActiveTicks int // leading ticks of each cycle during which the zone bites

	phase int
}

// NewZone creates a zone whose top-left corner is at pos.
func NewZone(pos, size Vec2, damage, period, activeTicks int) Zone {
	return Zone{
		Area:        Rect{Min: pos, Max: pos.Add(size)},
		Damage:      damage,
		Period:      period,
		ActiveTicks: activeTicks,
	}
}

// Tick advances the internal phase counter.
func (z *Zone) Tick() {
	if z.Period <= 0 {
		return
	}
	z.phase = (z.phase + 1) % z.Period
}

// Active reports whether the zone deals damage at the current phase.
func (z *Zone) Active() bool {
	if z.Period <= 0 {
		return true
	}
	return z.phase < z.ActiveTicks
}

// Phase returns the current position in the cycle.
func (z *Zone) Phase() int { return z.phase }
