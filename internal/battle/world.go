package battle

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// EventKind classifies what happened to a unit during a tick.
type EventKind int

const (
	EventHit      EventKind = iota // rocket struck, unit survived
	EventKill                      // rocket destroyed the unit
	EventZoneKill                  // particle beam destroyed the unit
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventKill:
		return "kill"
	case EventZoneKill:
		return "zone_kill"
	default:
		return "unknown"
	}
}

// Event records a hit or kill for frontends and the headless log.
type Event struct {
	Tick    int
	Kind    EventKind
	Unit    int
	Faction Faction // victim's faction
	Pos     Vec2
}

// Stats are cumulative counters since the battle began.
type Stats struct {
	Fired  [factionCount]int // rockets launched by faction
	Hits   [factionCount]int // rockets by faction that struck
	Losses [factionCount]int // units of faction destroyed
}

// World owns the population, both faction grids, projectiles, zones and
// effects, and runs the tick pipeline.
type World struct {
	cfg    Config
	bounds Rect // positions are clamped into the grid extent

	units       []Unit
	grids       [factionCount]*Grid
	projectiles []Projectile
	smokes      []Smoke
	explosions  []Explosion
	zones       []Zone

	exec *Executor

	// Per-tick scratch, indexed by unit or projectile or range.
	snapshot []Vec2         // unit positions at the start of the movement sub-phase
	hits     []int          // projectile index -> unit hit, or -1
	pending  [][]Projectile // range -> rockets fired this tick
	near     [][]int        // range -> neighbourhood query buffer

	events []Event
	stats  Stats
	tick   int
	wiped  [factionCount]bool

	log zerolog.Logger
	tel *telemetry
}

// Option customises World construction.
type Option func(*worldOptions)

type worldOptions struct {
	log     zerolog.Logger
	noSpawn bool
}

// WithLogger routes World diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(o *worldOptions) { o.log = log }
}

// WithoutSpawn starts the World with no units, for hand-built scenarios.
func WithoutSpawn() Option {
	return func(o *worldOptions) { o.noSpawn = true }
}

// NewWorld validates cfg and builds a World ready to tick.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	o := worldOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid battle config: %w", err)
	}
	tel, err := newTelemetry()
	if err != nil {
		return nil, fmt.Errorf("battle telemetry: %w", err)
	}

	w := &World{
		cfg:  cfg,
		exec: NewExecutor(cfg.Workers),
		log:  o.log,
		tel:  tel,
	}
	for f := range w.grids {
		w.grids[f] = NewGrid(cfg.GridWidth, cfg.GridHeight, cfg.GridCell, cfg.GridOriginX, cfg.GridOriginY)
	}
	w.bounds = w.grids[FactionBlue].Bounds()
	w.zones = append(w.zones, cfg.Zones...)
	w.pending = make([][]Projectile, w.exec.Workers())
	w.near = make([][]int, w.exec.Workers())

	if !o.noSpawn {
		w.units = make([]Unit, 0, cfg.UnitsPerFaction*factionCount)
		for f := Faction(0); f < factionCount; f++ {
			w.spawnFaction(f)
		}
	}
	w.publishAlive()

	w.log.Info().
		Int("units", len(w.units)).
		Int("grid_cols", w.grids[0].Cols()).
		Int("grid_rows", w.grids[0].Rows()).
		Int("cell", cfg.GridCell).
		Int("workers", w.exec.Workers()).
		Int("zones", len(w.zones)).
		Msg("battle initialised")
	return w, nil
}

func (w *World) spawnFaction(f Faction) {
	layout := w.cfg.Spawn[f]
	for i := 0; i < w.cfg.UnitsPerFaction; i++ {
		pos := layout.Start.Add(V(
			float64(i%layout.PerRow)*layout.Spacing,
			float64(i/layout.PerRow)*layout.Spacing,
		))
		w.AddUnit(f, pos, layout.Goal)
	}
}

// AddUnit places a new active unit and registers it in its faction's grid.
// It returns the unit ID. Call only between ticks.
func (w *World) AddUnit(f Faction, pos, goal Vec2) int {
	id := len(w.units)
	pos = w.bounds.Clamp(pos)
	w.units = append(w.units, Unit{
		ID:       id,
		Pos:      pos,
		Goal:     goal,
		Faction:  f,
		State:    UnitActive,
		Health:   w.cfg.MaxHealth,
		Radius:   w.cfg.UnitRadius,
		MaxSpeed: w.cfg.UnitSpeed,
		Cooldown: w.cfg.FirstReload,
	})
	w.grids[f].Add(id, pos)
	return id
}

// AddProjectile launches a rocket. Call only between ticks.
func (w *World) AddProjectile(f Faction, pos, vel Vec2) {
	w.projectiles = append(w.projectiles, Projectile{
		Pos:     pos,
		Vel:     vel,
		Faction: f,
		Active:  true,
		Radius:  w.cfg.RocketRadius,
	})
}

// AddZone installs an extra area-damage zone. Call only between ticks.
func (w *World) AddZone(z Zone) {
	w.zones = append(w.zones, z)
}

// Tick advances the battle by one fixed logical step. dt is accepted for the
// frame driver's convenience and does not scale the step.
func (w *World) Tick(_ float64) {
	w.tick++
	w.events = w.events[:0]

	start := time.Now()
	w.updateProjectiles()
	w.tel.timePhase(phaseProjectiles, start)

	w.updateUnits()

	start = time.Now()
	w.applyZones()
	w.tel.timePhase(phaseZones, start)

	start = time.Now()
	w.updateEffects()
	w.tel.timePhase(phaseEffects, start)

	w.publishAlive()
}

// updateEffects ticks smokes and explosions in parallel, then drops the
// finished ones.
func (w *World) updateEffects() {
	w.exec.ForEach(len(w.smokes), func(i int) { w.smokes[i].Tick() })
	w.exec.ForEach(len(w.explosions), func(i int) { w.explosions[i].Tick() })
	w.smokes = compactInPlace(w.smokes, func(s *Smoke) bool { return !s.Done() })
	w.explosions = compactInPlace(w.explosions, func(e *Explosion) bool { return !e.Done() })
}

// applyZones runs the sequential area-damage pass.
func (w *World) applyZones() {
	for zi := range w.zones {
		z := &w.zones[zi]
		z.Tick()
		if !z.Active() {
			continue
		}
		for i := range w.units {
			u := &w.units[i]
			if !u.Active() || !z.Area.IntersectsCircle(u.Pos, u.Radius) {
				continue
			}
			if u.Hit(z.Damage) {
				w.kill(u, EventZoneKill)
			}
		}
	}
}

// kill finalises a unit whose health just reached zero. Sequential passes only.
func (w *World) kill(u *Unit, kind EventKind) {
	w.grids[u.Faction].Remove(u.ID)
	w.smokes = append(w.smokes, Smoke{Pos: u.Pos.Add(smokeOffset), Lifetime: w.cfg.SmokeTicks})
	w.stats.Losses[u.Faction]++
	w.tel.addKill(u.Faction)
	w.events = append(w.events, Event{Tick: w.tick, Kind: kind, Unit: u.ID, Faction: u.Faction, Pos: u.Pos})
}

func (w *World) publishAlive() {
	var counts [factionCount]int
	for i := range w.units {
		if w.units[i].Active() {
			counts[w.units[i].Faction]++
		}
	}
	w.tel.publishAlive(counts)
	for f, n := range counts {
		if n == 0 && !w.wiped[f] && w.tick > 0 {
			w.wiped[f] = true
			w.log.Info().Int("tick", w.tick).Str("faction", Faction(f).String()).Msg("faction wiped out")
		}
	}
}

// Close releases the worker pool and detaches the World from the meter.
func (w *World) Close() {
	w.exec.Close()
	if err := w.tel.close(); err != nil {
		w.log.Warn().Err(err).Msg("unregistering battle metrics")
	}
}

// --- Read views. Returned slices alias World storage: read only, valid
// until the next Tick. ---

func (w *World) Config() Config { return w.cfg }
func (w *World) Units() []Unit { return w.units }
func (w *World) Projectiles() []Projectile { return w.projectiles }
func (w *World) Smokes() []Smoke { return w.smokes }
func (w *World) Explosions() []Explosion { return w.explosions }
func (w *World) Zones() []Zone { return w.zones }
func (w *World) Events() []Event { return w.events }
func (w *World) Stats() Stats { return w.stats }
func (w *World) TickCount() int { return w.tick }
func (w *World) Workers() int { return w.exec.Workers() }
func (w *World) Grid(f Faction) *Grid { return w.grids[f] }
func (w *World) Bounds() Rect { return w.bounds }

// Alive counts active units of faction f.
func (w *World) Alive(f Faction) int {
	n := 0
	for i := range w.units {
		if w.units[i].Faction == f && w.units[i].Active() {
			n++
		}
	}
	return n
}

// HealthHistogram counts faction f's units by health, index 0..MaxHealth.
// Dead units land in bucket 0. Walking the buckets in order yields the units
// sorted by health without a comparison sort.
func (w *World) HealthHistogram(f Faction) []int {
	out := make([]int, w.cfg.MaxHealth+1)
	for i := range w.units {
		u := &w.units[i]
		if u.Faction != f {
			continue
		}
		out[clampInt(u.Health, 0, w.cfg.MaxHealth)]++
	}
	return out
}
