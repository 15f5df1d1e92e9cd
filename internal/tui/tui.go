// Package tui runs a battle in the terminal with tcell, with optional speaker
// cues through beep.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/render"
)

// DefaultFrameRate is the tick rate of the terminal loop.
const DefaultFrameRate = 30 * time.Millisecond

// Options configures an App.
type Options struct {
	Bench     *battle.Benchmark
	FrameRate time.Duration
	Sound     bool
	Log       zerolog.Logger
}

// App owns the terminal screen and drives the World from a ticker.
type App struct {
	screen   tcell.Screen
	renderer *cellRenderer
	sound    *SoundManager

	world  *battle.World
	bench  *battle.Benchmark
	rate   time.Duration
	log    zerolog.Logger
	frame  int
	paused bool
}

// New opens the terminal. The App owns w and closes it in Close.
func New(w *battle.World, opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising terminal screen: %w", err)
	}
	return newApp(screen, w, opts), nil
}

func newApp(screen tcell.Screen, w *battle.World, opts Options) *App {
	if opts.Bench == nil {
		opts.Bench = battle.NewBenchmark(0, 0)
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	a := &App{
		screen:   screen,
		renderer: newCellRenderer(screen),
		sound:    NewSoundManager(),
		world:    w,
		bench:    opts.Bench,
		rate:     opts.FrameRate,
		log:      opts.Log,
	}
	if opts.Sound {
		if err := a.sound.Initialize(); err != nil {
			// Non-fatal, the battle runs silent.
			a.log.Warn().Err(err).Msg("audio initialisation failed")
		}
	}
	return a
}

// Run loops until ctx is cancelled or the user quits with q, Esc or Ctrl-C.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.rate)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go forwardEvents(ctx, a.screen.PollEvent, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.step()
			a.draw()
		}
	}
}

// forwardEvents feeds polled events to out until the screen is finalised or
// ctx ends, so a loop that stopped reading never strands the sender.
func forwardEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return // screen finalised
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			a.paused = !a.paused
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.resize()
	}
	return true
}

// step advances the battle one tick unless paused or the benchmark budget is
// spent, and turns the tick's events into sound.
func (a *App) step() {
	if a.paused || !a.bench.Running() {
		return
	}
	a.world.Tick(1)
	a.frame++

	kills, hits := 0, 0
	for _, ev := range a.world.Events() {
		if ev.Kind == battle.EventHit {
			hits++
		} else {
			kills++
		}
	}
	a.sound.PlayKills(kills)
	if hits > 0 && kills == 0 {
		a.sound.PlayHit()
	}

	if a.bench.EndFrame() {
		outcome := battle.DetermineBattleOutcome(a.world)
		a.log.Info().
			Str("duration", battle.FormatDuration(a.bench.Duration())).
			Float64("speedup", a.bench.Speedup()).
			Str("outcome", outcome.Outcome.String()).
			Msg("benchmark complete")
	}
}

func (a *App) draw() {
	var lines []string
	if a.paused {
		lines = append(lines, "PAUSED")
	}
	render.Frame(a.renderer, a.world, render.HUD{Frame: a.frame, Bench: a.bench, Lines: lines})
	a.screen.Show()
}

// Close restores the terminal and releases the World.
func (a *App) Close() {
	a.sound.Cleanup()
	a.screen.Fini()
	a.world.Close()
}
