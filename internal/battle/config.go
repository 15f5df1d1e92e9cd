package battle

import (
	"errors"
	"fmt"
	"math"
)

// --- Battle defaults ---

const (
	defaultUnitsPerFaction = 1279
	defaultMaxHealth       = 100
	defaultUnitRadius      = 8.5  // px
	defaultUnitSpeed       = 1.5  // px per tick
	defaultReloadTicks     = 200  // ticks between rockets
	defaultFirstReload     = 1    // ticks before the first rocket
	defaultRocketSpeed     = 3.0  // px per tick
	defaultRocketRadius    = 10.0 // px
	defaultRocketDamage    = 6

	defaultBeamDamage = 5
	defaultBeamPeriod = 90 // ticks
	defaultBeamActive = 30 // ticks of each period the beam bites

	defaultExplosionTicks = 17
	defaultSmokeTicks     = 240

	defaultGridSize   = 3000 // px, square extent
	defaultGridCell   = 36   // px
	defaultGridOrigin = 500  // px, grid starts at -origin

	defaultScreenW = 1280
	defaultScreenH = 720
)

// SpawnLayout places one faction's units in rows.
type SpawnLayout struct {
	Start   Vec2 // first unit
	Goal    Vec2 // where the faction drives
	PerRow  int
	Spacing float64 // px between neighbours
}

// Config holds every tunable of a battle.
type Config struct {
	UnitsPerFaction int
	MaxHealth       int
	UnitRadius      float64
	UnitSpeed       float64
	ReloadTicks     int
	FirstReload     int

	RocketSpeed  float64
	RocketRadius float64
	RocketDamage int

	ExplosionTicks int
	SmokeTicks     int

	GridWidth, GridHeight int
	GridCell              int
	GridOriginX           int
	GridOriginY           int

	// Interaction is the inset rectangle inside which projectiles are tested
	// for hits. Projectiles outside it keep flying untouched.
	Interaction Rect

	Spawn [factionCount]SpawnLayout
	Zones []Zone

	// Workers sizes the executor pool; 0 uses GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the stock 1279-vs-1279 battle.
func DefaultConfig() Config {
	beamSize := V(100, 50)
	return Config{
		UnitsPerFaction: defaultUnitsPerFaction,
		MaxHealth:       defaultMaxHealth,
		UnitRadius:      defaultUnitRadius,
		UnitSpeed:       defaultUnitSpeed,
		ReloadTicks:     defaultReloadTicks,
		FirstReload:     defaultFirstReload,
		RocketSpeed:     defaultRocketSpeed,
		RocketRadius:    defaultRocketRadius,
		RocketDamage:    defaultRocketDamage,
		ExplosionTicks:  defaultExplosionTicks,
		SmokeTicks:      defaultSmokeTicks,
		GridWidth:       defaultGridSize,
		GridHeight:      defaultGridSize,
		GridCell:        defaultGridCell,
		GridOriginX:     defaultGridOrigin,
		GridOriginY:     defaultGridOrigin,
		Interaction:     Rect{Min: V(-250, -250), Max: V(defaultScreenW+250, defaultScreenH+250)},
		Spawn: [factionCount]SpawnLayout{
			FactionBlue: {Start: V(14+10, 18+80), Goal: V(1200, 600), PerRow: 12, Spacing: 15},
			FactionRed:  {Start: V(980, 100), Goal: V(80, 80), PerRow: 12, Spacing: 15},
		},
		Zones: []Zone{
			NewZone(V(defaultScreenW/2, defaultScreenH/2), beamSize, defaultBeamDamage, defaultBeamPeriod, defaultBeamActive),
			NewZone(V(80, 80), beamSize, defaultBeamDamage, defaultBeamPeriod, defaultBeamActive),
			NewZone(V(1200, 600), beamSize, defaultBeamDamage, defaultBeamPeriod, defaultBeamActive),
		},
	}
}

// SeparationDist returns the distance below which same-faction units push
// each other apart.
func (c Config) SeparationDist() float64 { return 2 * c.UnitRadius }

// Validate checks the configuration for values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.UnitsPerFaction < 0 {
		errs = append(errs, fmt.Errorf("units per faction must be >= 0, got %d", c.UnitsPerFaction))
	}
	if c.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("max health must be > 0, got %d", c.MaxHealth))
	}
	if c.ReloadTicks <= 0 {
		errs = append(errs, fmt.Errorf("reload ticks must be > 0, got %d", c.ReloadTicks))
	}
	if c.GridCell <= 0 {
		errs = append(errs, fmt.Errorf("grid cell must be > 0, got %d", c.GridCell))
	} else {
		if c.GridWidth < c.GridCell || c.GridHeight < c.GridCell {
			errs = append(errs, fmt.Errorf("grid %dx%d smaller than one %dpx cell", c.GridWidth, c.GridHeight, c.GridCell))
		}
		// Anything within reach of a point must lie in its 3x3 block.
		reach := math.Max(c.SeparationDist(), c.RocketRadius+c.UnitRadius)
		if float64(c.GridCell) < reach {
			errs = append(errs, fmt.Errorf("grid cell %dpx below interaction reach %.1fpx", c.GridCell, reach))
		}
	}
	for i, s := range c.Spawn {
		if c.UnitsPerFaction > 0 && s.PerRow <= 0 {
			errs = append(errs, fmt.Errorf("spawn layout %s: per-row must be > 0", Faction(i)))
		}
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
