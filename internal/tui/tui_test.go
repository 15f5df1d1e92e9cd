package tui

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/render"
)

func TestViewportCell(t *testing.T) {
	v := Viewport{Cols: 128, Rows: 36} // 10x20 px cells
	cases := []struct {
		x, y     float64
		col, row int
		ok       bool
	}{
		{0, 0, 0, 0, true},
		{9.9, 19.9, 0, 0, true},
		{10, 20, 1, 1, true},
		{1279.9, 719.9, 127, 35, true},
		{1280, 0, 0, 0, false},
		{0, 720, 0, 0, false},
		{-0.1, 5, 0, 0, false},
	}
	for _, c := range cases {
		col, row, ok := v.Cell(c.x, c.y)
		if ok != c.ok || (ok && (col != c.col || row != c.row)) {
			t.Errorf("Cell(%v,%v) = (%d,%d,%v), want (%d,%d,%v)", c.x, c.y, col, row, ok, c.col, c.row, c.ok)
		}
	}
	if _, _, ok := (Viewport{}).Cell(1, 1); ok {
		t.Error("zero-size viewport should map nothing")
	}
}

func TestViewportCellSize(t *testing.T) {
	w, h := Viewport{Cols: 128, Rows: 36}.CellSize()
	if w != 10 || h != 20 {
		t.Fatalf("CellSize = %v,%v, want 10,20", w, h)
	}
}

func TestThudGeneratorDecays(t *testing.T) {
	g := NewThudGenerator(sampleRate, thudFreq, 0.5)
	buf := make([][2]float64, sampleRate.N(thudDuration))
	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = %d,%v, want %d,true", n, ok, len(buf))
	}
	peak := func(s [][2]float64) float64 {
		m := 0.0
		for _, v := range s {
			if v[0] != v[1] {
				t.Fatalf("channels differ: %v", v)
			}
			m = math.Max(m, math.Abs(v[0]))
		}
		return m
	}
	quarter := len(buf) / 4
	head, tail := peak(buf[:quarter]), peak(buf[len(buf)-quarter:])
	if head > 0.5 {
		t.Errorf("peak %v exceeds gain", head)
	}
	if tail >= head/4 {
		t.Errorf("tail peak %v not well below head peak %v", tail, head)
	}
	if g.Err() != nil {
		t.Errorf("Err = %v", g.Err())
	}
}

func TestSoundManagerSilentWithoutInit(t *testing.T) {
	sm := NewSoundManager()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound call panicked without initialisation: %v", r)
		}
	}()
	sm.PlayKills(3)
	sm.PlayHit()
	sm.Cleanup()
	if sm.mixer.Len() != 0 {
		t.Errorf("mixer holds %d streamers, want 0", sm.mixer.Len())
	}
}

func newTestApp(t *testing.T, cols, rows, frames int) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(cols, rows)

	cfg := battle.DefaultConfig()
	cfg.Workers = 2
	cfg.Zones = nil
	w, err := battle.NewWorld(cfg, battle.WithoutSpawn())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.AddUnit(battle.FactionBlue, battle.V(100, 300), battle.V(100, 300))
	w.AddUnit(battle.FactionRed, battle.V(600, 300), battle.V(600, 300))

	a := newApp(screen, w, Options{Bench: battle.NewBenchmark(frames, 0), Log: zerolog.Nop()})
	t.Cleanup(a.Close)
	return a, screen
}

func TestAppStepsUntilBudget(t *testing.T) {
	a, _ := newTestApp(t, 128, 36, 5)
	for i := 0; i < 10; i++ {
		a.step()
	}
	if got := a.world.TickCount(); got != 5 {
		t.Fatalf("ticks = %d, want 5 (budget)", got)
	}
	if !a.bench.Done() {
		t.Fatal("benchmark should be done")
	}
}

func TestAppPauseHoldsTick(t *testing.T) {
	a, _ := newTestApp(t, 128, 36, 100)
	a.paused = true
	a.step()
	if a.world.TickCount() != 0 {
		t.Fatalf("paused app ticked to %d", a.world.TickCount())
	}
}

func TestAppDrawsUnits(t *testing.T) {
	a, screen := newTestApp(t, 128, 36, 100)
	a.draw()

	blue, _, _, _ := screen.GetContent(10, 15) // (100,300) in 10x20 cells
	red, _, _, _ := screen.GetContent(60, 15)
	if blue != '●' || red != '●' {
		t.Fatalf("unit glyphs = %q,%q, want ●", blue, red)
	}
	bar, _, st, _ := screen.GetContent(0, 0)
	if _, bg, _ := st.Decompose(); bar != ' ' || bg != rgb(render.BarBack) && bg != rgb(render.BarFill) {
		t.Errorf("top-left cell should be a health bar, got %q bg %v", bar, bg)
	}
}

func TestResizeResetsTrails(t *testing.T) {
	a, screen := newTestApp(t, 128, 36, 100)
	a.renderer.BlendTrail(100, 100)
	if a.renderer.trails[5*128+10] == groundColor {
		t.Fatal("trail did not darken the cell")
	}
	screen.SetSize(64, 18)
	if !a.handleEvent(tcell.NewEventResize(64, 18)) {
		t.Fatal("resize should not quit")
	}
	if a.renderer.view != (Viewport{Cols: 64, Rows: 18}) {
		t.Fatalf("view = %+v after resize", a.renderer.view)
	}
	if len(a.renderer.trails) != 64*18 {
		t.Fatalf("trail layer has %d cells, want %d", len(a.renderer.trails), 64*18)
	}
}

func TestForwardEventsStopsWhenNobodyReads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	poll := func() tcell.Event { return tcell.NewEventInterrupt(nil) }
	out := make(chan tcell.Event) // never read

	done := make(chan struct{})
	go func() {
		forwardEvents(ctx, poll, out)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder still blocked after cancel")
	}
}

func TestForwardEventsStopsOnFinalisedScreen(t *testing.T) {
	out := make(chan tcell.Event, 1)
	calls := 0
	poll := func() tcell.Event {
		calls++
		if calls > 1 {
			return nil
		}
		return tcell.NewEventInterrupt(nil)
	}
	forwardEvents(context.Background(), poll, out)
	if len(out) != 1 || calls != 2 {
		t.Fatalf("forwarded %d events over %d polls, want 1 over 2", len(out), calls)
	}
}
