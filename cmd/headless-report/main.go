package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/config"
	"github.com/Garsondee/Swarm-Front/internal/logging"
)

// reportInterval is how often, in ticks, the reporter samples a run.
const reportInterval = 60

type runStats struct {
	workers int
	frames  int

	duration time.Duration
	speedup  float64
	outcome  battle.BattleOutcomeReason

	firstKillTick int
	lastKillTick  int
	firstHitTick  int
	zoneKills     int
	volleys       int

	firstCasualty     string // label of the first unit destroyed, "" if none
	firstCasualtyHits int    // rocket hits it absorbed before dying

	windowSummary *battle.WindowReport
	summary       string
}

type runParams struct {
	cfg       battle.Config
	workers   int
	frames    int
	reference time.Duration
	window    int
	verbose   bool
	log       zerolog.Logger
}

func main() {
	var frames int
	var workerList string
	var window int
	var verbose bool
	var level string
	var configDir string

	flag.IntVar(&frames, "frames", 0, "frames per run (0 = benchmark.frames from config)")
	flag.StringVar(&workerList, "workers", "", "comma-separated worker counts (default 1 and GOMAXPROCS)")
	flag.IntVar(&window, "window", 0, "reporter window in ticks (0 = report.window from config)")
	flag.BoolVar(&verbose, "verbose", false, "log per-unit positions every tick")
	flag.StringVar(&level, "log-level", "warn", "log level for battle diagnostics")
	flag.StringVar(&configDir, "config", ".", "directory holding battle.yaml")
	flag.Parse()

	log := logging.New(level, os.Stderr)
	if err := config.Load(configDir); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg, err := config.Battle()
	if err != nil {
		log.Fatal().Err(err).Msg("building battle")
	}
	cfgFrames, reference := config.Benchmark()
	if frames <= 0 {
		frames = cfgFrames
	}
	if window <= 0 {
		window = config.GetInt("report.window")
	}
	workers, err := parseWorkers(workerList, runtime.GOMAXPROCS(0))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Battle Benchmark ===\n")
	fmt.Printf("units=%d/faction frames=%d workers=%v reference=%s\n\n",
		cfg.UnitsPerFaction, frames, workers, battle.FormatDuration(reference))

	all := make([]runStats, 0, len(workers))
	for _, n := range workers {
		rs, err := runBattle(runParams{
			cfg:       cfg,
			workers:   n,
			frames:    frames,
			reference: reference,
			window:    window,
			verbose:   verbose,
			log:       log,
		})
		if err != nil {
			log.Fatal().Err(err).Int("workers", n).Msg("running battle")
		}
		all = append(all, rs)
		printRun(rs)
	}
	printScaling(all)
}

// parseWorkers reads a comma-separated list of positive worker counts. An
// empty list yields 1 and maxProcs.
func parseWorkers(s string, maxProcs int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		if maxProcs <= 1 {
			return []int{1}, nil
		}
		return []int{1, maxProcs}, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("-workers: %q is not a number", part)
		}
		if n <= 0 {
			return nil, fmt.Errorf("-workers: %d must be > 0", n)
		}
		out = append(out, n)
	}
	return out, nil
}

func runBattle(p runParams) (runStats, error) {
	ts, err := battle.NewTestSim(
		battle.WithConfig(func(c *battle.Config) { *c = p.cfg }),
		battle.WithWorkers(p.workers),
		battle.WithDefaultSpawn(),
		battle.WithVerbose(p.verbose),
		battle.WithSimLogger(p.log),
	)
	if err != nil {
		return runStats{}, err
	}
	defer ts.Close()

	reporter := battle.NewSimReporter(p.window)
	bench := battle.NewBenchmark(p.frames, p.reference)
	for bench.Running() {
		ts.RunTicks(1)
		if ts.CurrentTick()%reportInterval == 0 {
			reporter.Collect(ts.World)
		}
		bench.EndFrame()
	}
	reporter.Collect(ts.World)

	lastKillTick := -1
	if e, ok := ts.SimLog.LastOf("combat", battle.EventKill.String()); ok {
		lastKillTick = e.Tick
	}
	casualty, casualtyHits := firstCasualty(ts.SimLog)

	return runStats{
		workers:       ts.World.Workers(),
		frames:        bench.Frames(),
		duration:      bench.Duration(),
		speedup:       bench.Speedup(),
		outcome:       battle.DetermineBattleOutcome(ts.World),
		firstKillTick: firstTick(ts.SimLog.Entries(), "combat", battle.EventKill.String()),
		lastKillTick:  lastKillTick,
		firstHitTick:  firstTick(ts.SimLog.Entries(), "combat", battle.EventHit.String()),
		zoneKills:     ts.SimLog.CountCategory("combat", battle.EventZoneKill.String()),
		volleys:       ts.SimLog.CountCategory("fire", "volley"),
		windowSummary: reporter.WindowSummary(),
		summary:       ts.SimLog.Summary(ts.World),

		firstCasualty:     casualty,
		firstCasualtyHits: casualtyHits,
	}, nil
}

// firstCasualty returns the label of the first unit destroyed by a rocket and
// how many hits it took before the killing one.
func firstCasualty(sl *battle.SimLog) (string, int) {
	kills := sl.Filter("combat", battle.EventKill.String())
	if len(kills) == 0 {
		return "", 0
	}
	label := kills[0].Unit
	hits := 0
	for _, e := range sl.FilterUnit(label) {
		if e.Category == "combat" && e.Key == battle.EventHit.String() {
			hits++
		}
	}
	return label, hits
}

func firstTick(entries []battle.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- workers=%d ---\n", rs.workers)
	fmt.Printf("frames=%d duration=%s (%dms) %s\n",
		rs.frames, battle.FormatDuration(rs.duration), rs.duration.Milliseconds(), battle.FormatSpeedup(rs.speedup))
	fmt.Printf("phase_markers: first_hit=%d first_kill=%d last_kill=%d\n", rs.firstHitTick, rs.firstKillTick, rs.lastKillTick)
	if rs.firstCasualty != "" {
		fmt.Printf("first_casualty: %s after %d hits\n", rs.firstCasualty, rs.firstCasualtyHits)
	}
	fmt.Printf("event_totals: volleys=%d zone_kills=%d\n", rs.volleys, rs.zoneKills)
	fmt.Printf("outcome: %s\n", rs.outcome)
	fmt.Print(rs.summary)
	fmt.Print(rs.windowSummary.Format())
	fmt.Println()
}

// printScaling compares every run against the first one.
func printScaling(all []runStats) {
	if len(all) < 2 {
		return
	}
	base := all[0]
	fmt.Println("=== Scaling ===")
	for _, rs := range all {
		fmt.Printf("  workers=%-3d %s  x%.2f vs workers=%d\n",
			rs.workers, battle.FormatDuration(rs.duration), relative(base.duration, rs.duration), base.workers)
	}
}

func relative(base, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(base) / float64(d)
}
