package battle

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Garsondee/Swarm-Front/internal/battle"

// Phase names used as the "phase" attribute on duration samples.
const (
	phaseProjectiles = "projectiles"
	phaseAvoidance   = "avoidance"
	phaseMovement    = "movement"
	phaseZones       = "zones"
	phaseEffects     = "effects"
)

// telemetry wraps the OTel instruments a World reports to. With no meter
// provider installed every instrument is a no-op.
type telemetry struct {
	fired    metric.Int64Counter
	hits     metric.Int64Counter
	kills    metric.Int64Counter
	phaseDur metric.Float64Histogram
	alive    metric.Int64ObservableGauge
	reg      metric.Registration

	aliveCount [factionCount]atomic.Int64
	factions   [factionCount]metric.MeasurementOption
}

func newTelemetry() (*telemetry, error) {
	m := otel.Meter(instrumentationName)
	t := &telemetry{}
	for f := range t.factions {
		t.factions[f] = metric.WithAttributes(attribute.String("faction", Faction(f).String()))
	}

	var err error
	t.fired, err = m.Int64Counter("battle.projectiles.fired",
		metric.WithDescription("Rockets launched"))
	if err != nil {
		return nil, fmt.Errorf("creating fired counter: %w", err)
	}
	t.hits, err = m.Int64Counter("battle.projectiles.hits",
		metric.WithDescription("Rockets that struck an enemy unit"))
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}
	t.kills, err = m.Int64Counter("battle.units.killed",
		metric.WithDescription("Units destroyed, by victim faction"))
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}
	t.phaseDur, err = m.Float64Histogram("battle.phase.duration",
		metric.WithDescription("Wall time spent in one tick phase"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("creating phase histogram: %w", err)
	}
	t.alive, err = m.Int64ObservableGauge("battle.units.alive",
		metric.WithDescription("Active units per faction"))
	if err != nil {
		return nil, fmt.Errorf("creating alive gauge: %w", err)
	}
	t.reg, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for f := range t.aliveCount {
			o.ObserveInt64(t.alive, t.aliveCount[f].Load(), t.factions[f])
		}
		return nil
	}, t.alive)
	if err != nil {
		return nil, fmt.Errorf("registering alive callback: %w", err)
	}
	return t, nil
}

func (t *telemetry) addFired(f Faction, n int) {
	if n > 0 {
		t.fired.Add(context.Background(), int64(n), t.factions[f])
	}
}

func (t *telemetry) addHit(f Faction) {
	t.hits.Add(context.Background(), 1, t.factions[f])
}

func (t *telemetry) addKill(victim Faction) {
	t.kills.Add(context.Background(), 1, t.factions[victim])
}

// timePhase records the time elapsed since start under the given phase name.
func (t *telemetry) timePhase(phase string, start time.Time) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	t.phaseDur.Record(context.Background(), ms, metric.WithAttributes(attribute.String("phase", phase)))
}

func (t *telemetry) publishAlive(counts [factionCount]int) {
	for f, n := range counts {
		t.aliveCount[f].Store(int64(n))
	}
}

// close unregisters the alive gauge callback.
func (t *telemetry) close() error {
	return t.reg.Unregister()
}
