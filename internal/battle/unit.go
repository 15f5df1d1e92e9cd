package battle

// Faction distinguishes the two opposing sides.
type Faction int

const (
	FactionBlue Faction = iota
	FactionRed
)

// factionCount sizes per-faction arrays.
const factionCount = 2

func (f Faction) String() string {
	switch f {
	case FactionBlue:
		return "blue"
	case FactionRed:
		return "red"
	default:
		return "unknown"
	}
}

// Opponent returns the hostile faction.
func (f Faction) Opponent() Faction {
	if f == FactionBlue {
		return FactionRed
	}
	return FactionBlue
}

// UnitState is the unit lifecycle. Dead is terminal: the slot stays in the
// population but every phase skips it.
type UnitState int

const (
	UnitActive UnitState = iota
	UnitDead
)

func (s UnitState) String() string {
	switch s {
	case UnitActive:
		return "active"
	case UnitDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Unit is one tank on the battlefield.
type Unit struct {
	ID       int
	Pos      Vec2
	Goal     Vec2 // point the unit drives toward
	Faction  Faction
	State    UnitState
	Health   int
	Radius   float64 // px, collision radius
	MaxSpeed float64 // px per tick
	Cooldown int     // ticks until the weapon is ready

	push Vec2 // separation accumulated in the avoidance sub-phase
}

// Active reports whether the unit still takes part in the simulation.
func (u *Unit) Active() bool { return u.State == UnitActive }

// Reloaded reports whether the weapon may fire this tick.
func (u *Unit) Reloaded() bool { return u.Cooldown <= 0 }

// Hit applies damage, clamping health at zero. It returns true when this hit
// killed the unit.
func (u *Unit) Hit(damage int) bool {
	if u.State == UnitDead {
		return false
	}
	u.Health -= damage
	if u.Health <= 0 {
		u.Health = 0
		u.State = UnitDead
		return true
	}
	return false
}

// Projectile is a rocket in flight.
type Projectile struct {
	Pos     Vec2
	Vel     Vec2 // px per tick
	Faction Faction
	Active  bool
	Radius  float64
}

// Intersects reports whether the projectile overlaps a circle at c.
func (p *Projectile) Intersects(c Vec2, radius float64) bool {
	r := p.Radius + radius
	return p.Pos.Dist2(c) <= r*r
}
