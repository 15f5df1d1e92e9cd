package battle

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TestSim is a headless harness around World used by tests and the report
// CLI. Scenarios are built from options and every tick's events are written
// to SimLog.
type TestSim struct {
	World  *World
	SimLog *SimLog

	cfg      Config
	spawn    bool
	log      zerolog.Logger
	prevFire [factionCount]int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, workers, verbose; applied before the World exists
	simOptUnit                       // units, rockets, zones; applied to the built World
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig edits the battle config before the World is built.
func WithConfig(edit func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { edit(&ts.cfg) }}
}

// WithWorkers sets the executor size.
func WithWorkers(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.Workers = n }}
}

// WithDefaultSpawn populates the stock two-faction layout.
func WithDefaultSpawn() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.spawn = true }}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithSimLogger routes World diagnostics to log.
func WithSimLogger(log zerolog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.log = log }}
}

// WithUnit adds a unit of faction f at (x,y) driving toward (gx,gy).
func WithUnit(f Faction, x, y, gx, gy float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.World.AddUnit(f, V(x, y), V(gx, gy))
	}}
}

// WithProjectile launches a rocket of faction f.
func WithProjectile(f Faction, x, y, vx, vy float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.World.AddProjectile(f, V(x, y), V(vx, vy))
	}}
}

// WithZone installs an extra area-damage zone.
func WithZone(z Zone) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) { ts.World.AddZone(z) }}
}

// NewTestSim builds a TestSim in two ordered passes: infrastructure options,
// then World construction, then unit options. Unless WithConfig says
// otherwise the stock zones are disabled so scenarios start from a clean
// field.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		cfg:    DefaultConfig(),
		SimLog: NewSimLog(false),
		log:    zerolog.Nop(),
	}
	ts.cfg.Zones = nil
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	wopts := []Option{WithLogger(ts.log)}
	if !ts.spawn {
		wopts = append(wopts, WithoutSpawn())
	}
	w, err := NewWorld(ts.cfg, wopts...)
	if err != nil {
		return nil, fmt.Errorf("building test world: %w", err)
	}
	ts.World = w
	for _, o := range opts {
		if o.kind == simOptUnit {
			o.fn(ts)
		}
	}
	return ts, nil
}

// Close releases the World's worker pool.
func (ts *TestSim) Close() { ts.World.Close() }

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate holds.
// It returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.World.TickCount()
		}
	}
	return -1
}

func (ts *TestSim) runOneTick() {
	w := ts.World
	w.Tick(1)
	tick := w.TickCount()

	units := w.Units()
	for _, ev := range w.Events() {
		u := &units[ev.Unit]
		ts.SimLog.Add(tick, UnitLabel(u), ev.Faction.String(), "combat", ev.Kind.String(),
			fmt.Sprintf("at (%.0f,%.0f) health=%d", ev.Pos.X, ev.Pos.Y, u.Health), float64(u.Health))
	}

	st := w.Stats()
	for f := 0; f < factionCount; f++ {
		if d := st.Fired[f] - ts.prevFire[f]; d > 0 {
			ts.SimLog.Add(tick, "--", Faction(f).String(), "fire", "volley",
				fmt.Sprintf("%d rockets", d), float64(d))
		}
	}
	ts.prevFire = st.Fired

	for i := range units {
		u := &units[i]
		if u.Active() {
			ts.SimLog.AddVerbose(tick, UnitLabel(u), u.Faction.String(), "move", "position",
				fmt.Sprintf("(%.1f,%.1f)", u.Pos.X, u.Pos.Y), 0)
		}
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int { return ts.World.TickCount() }

// SimSnapshot is a lightweight copy of the battle at one tick.
type SimSnapshot struct {
	Tick  int
	Units []UnitSnapshot
}

// UnitSnapshot is one unit's state at a tick.
type UnitSnapshot struct {
	ID      int
	Label   string
	Faction Faction
	Pos     Vec2
	State   UnitState
	Health  int
}

// Snapshot returns the current state of all units.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.World.TickCount()}
	units := ts.World.Units()
	for i := range units {
		u := &units[i]
		snap.Units = append(snap.Units, UnitSnapshot{
			ID:      u.ID,
			Label:   UnitLabel(u),
			Faction: u.Faction,
			Pos:     u.Pos,
			State:   u.State,
			Health:  u.Health,
		})
	}
	return snap
}
