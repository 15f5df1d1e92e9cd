package battle

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for reports (~10s at 60TPS).
const reportWindowTicks = 600

// SimReport is a snapshot of the battle at one tick.
type SimReport struct {
	Tick int

	Alive   [factionCount]int
	Dead    [factionCount]int
	Injured [factionCount]int // health < max but > 0

	// Cumulative counters copied from World.Stats.
	Fired  [factionCount]int
	Hits   [factionCount]int
	Losses [factionCount]int

	Projectiles int
	Smokes      int
	Explosions  int
}

// SimReporter collects periodic reports and summarises sliding windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a snapshot from w. Call it periodically (e.g. every 60 ticks).
func (r *SimReporter) Collect(w *World) {
	st := w.Stats()
	rpt := SimReport{
		Tick:        w.TickCount(),
		Fired:       st.Fired,
		Hits:        st.Hits,
		Losses:      st.Losses,
		Projectiles: len(w.Projectiles()),
		Smokes:      len(w.Smokes()),
		Explosions:  len(w.Explosions()),
	}
	maxHealth := w.Config().MaxHealth
	for _, u := range w.Units() {
		if !u.Active() {
			rpt.Dead[u.Faction]++
			continue
		}
		rpt.Alive[u.Faction]++
		if u.Health < maxHealth {
			rpt.Injured[u.Faction]++
		}
	}
	r.history = append(r.history, rpt)

	// Prune beyond 2x window to bound growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all retained reports.
func (r *SimReporter) History() []SimReport { return r.history }

// WindowReport aggregates the reports inside one window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Averages over the window.
	AvgAlive       [factionCount]float64
	AvgInjured     [factionCount]float64
	AvgProjectiles float64

	// Counter deltas between the first and last sample.
	Fired  [factionCount]int
	Hits   [factionCount]int
	Losses [factionCount]int

	// Cumulative at the end of the window.
	TotalDead [factionCount]int
}

// Accuracy returns hits per rocket fired by f inside the window.
func (wr *WindowReport) Accuracy(f Faction) float64 {
	if wr.Fired[f] == 0 {
		return 0
	}
	return float64(wr.Hits[f]) / float64(wr.Fired[f])
}

// WindowSummary aggregates the reports within the last windowTicks.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	last := r.history[len(r.history)-1]
	cutoff := last.Tick - r.windowTicks
	first := len(r.history) - 1
	for first > 0 && r.history[first-1].Tick >= cutoff {
		first--
	}
	window := r.history[first:]
	oldest := window[0]

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    oldest.Tick,
		ToTick:      last.Tick,
		SampleCount: len(window),
		TotalDead:   last.Dead,
	}
	for _, rpt := range window {
		for f := 0; f < factionCount; f++ {
			wr.AvgAlive[f] += float64(rpt.Alive[f])
			wr.AvgInjured[f] += float64(rpt.Injured[f])
		}
		wr.AvgProjectiles += float64(rpt.Projectiles)
	}
	for f := 0; f < factionCount; f++ {
		wr.AvgAlive[f] /= n
		wr.AvgInjured[f] /= n
		wr.Fired[f] = last.Fired[f] - oldest.Fired[f]
		wr.Hits[f] = last.Hits[f] - oldest.Hits[f]
		wr.Losses[f] = last.Losses[f] - oldest.Losses[f]
	}
	wr.AvgProjectiles /= n
	return wr
}

// Format returns a human-readable multi-line summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Battle Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Casualties & Health ---\n")
	for _, f := range []Faction{FactionBlue, FactionRed} {
		fmt.Fprintf(&sb, "  %-5s alive=%.0f  injured=%.1f  lost=%d  dead=%d\n",
			f.String()+":", wr.AvgAlive[f], wr.AvgInjured[f], wr.Losses[f], wr.TotalDead[f])
	}

	sb.WriteString("\n--- Fire ---\n")
	for _, f := range []Faction{FactionBlue, FactionRed} {
		fmt.Fprintf(&sb, "  %-5s fired=%d  hits=%d  accuracy=%.1f%%\n",
			f.String()+":", wr.Fired[f], wr.Hits[f], wr.Accuracy(f)*100)
	}
	fmt.Fprintf(&sb, "  in flight: avg=%.1f\n", wr.AvgProjectiles)
	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	for _, f := range []Faction{FactionBlue, FactionRed} {
		fmt.Fprintf(&sb, "%-5s alive=%d dead=%d injured=%d fired=%d hits=%d\n",
			f.String()+":", rpt.Alive[f], rpt.Dead[f], rpt.Injured[f], rpt.Fired[f], rpt.Hits[f])
	}
	fmt.Fprintf(&sb, "projectiles=%d smokes=%d explosions=%d\n", rpt.Projectiles, rpt.Smokes, rpt.Explosions)
	return sb.String()
}
