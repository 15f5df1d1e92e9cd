package render

import (
	"image/color"
	"testing"

	"github.com/Garsondee/Swarm-Front/internal/battle"
)

// recorder logs the kind of every draw call.
type recorder struct {
	calls  []string
	bars   int
	trails int
	texts  []string
}

func (r *recorder) Clear() { r.calls = append(r.calls, "clear") }
func (r *recorder) DrawBackground() { r.calls = append(r.calls, "background") }
func (r *recorder) BlendTrail(x, y int) { r.trails++ }
func (r *recorder) DrawUnit(u *battle.Unit) { r.add("unit") }
func (r *recorder) DrawProjectile(p *battle.Projectile) { r.add("projectile") }
func (r *recorder) DrawSmoke(s *battle.Smoke) { r.add("smoke") }
func (r *recorder) DrawExplosion(e *battle.Explosion) { r.add("explosion") }
func (r *recorder) DrawZone(z *battle.Zone) { r.add("zone") }
func (r *recorder) FillBar(x0, y0, x1, y1 int, c color.RGBA) {
	r.bars++
	r.add("bar")
}
func (r *recorder) DrawText(s string, x, y int, c color.RGBA) {
	r.texts = append(r.texts, s)
	r.add("text")
}
func (r *recorder) MeasureText(s string) (int, int) { return 7 * len(s), 13 }

// add records kind once per run of identical calls.
func (r *recorder) add(kind string) {
	if n := len(r.calls); n > 0 && r.calls[n-1] == kind {
		return
	}
	r.calls = append(r.calls, kind)
}

func newWorld(t *testing.T) *battle.World {
	t.Helper()
	w, err := battle.NewWorld(battle.DefaultConfig(), battle.WithoutSpawn())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func TestFrameDrawOrder(t *testing.T) {
	w := newWorld(t)
	w.AddUnit(battle.FactionBlue, battle.V(100, 300), battle.V(100, 300))
	w.AddUnit(battle.FactionRed, battle.V(600, 300), battle.V(600, 300))
	w.AddProjectile(battle.FactionBlue, battle.V(595, 300), battle.V(0, 0))
	w.Tick(1) // hit: spawns an explosion; both fire

	r := &recorder{}
	Frame(r, w, HUD{Frame: 1})

	want := []string{"clear", "background", "unit", "projectile", "zone", "explosion", "bar", "text"}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", r.calls, want)
		}
	}
	if r.bars != 4 {
		t.Fatalf("bars = %d, want 2 per unit", r.bars)
	}
	if r.trails != 2 {
		t.Fatalf("trails = %d, want 2", r.trails)
	}
	if r.texts[0] != "FRAME: 1" {
		t.Fatalf("first text = %q", r.texts[0])
	}
}

func TestFrameBenchmarkOverlay(t *testing.T) {
	w := newWorld(t)
	b := battle.NewBenchmark(1, 0)
	b.Running()
	b.EndFrame()

	r := &recorder{}
	Frame(r, w, HUD{Bench: b})

	if r.bars != 1 {
		t.Fatalf("bars = %d, want only the overlay box", r.bars)
	}
	last := r.texts[len(r.texts)-1]
	if last[:8] != "SPEEDUP:" {
		t.Fatalf("last text = %q", last)
	}
}

func TestHealthBarsSortedAscending(t *testing.T) {
	hist := make([]int, 101)
	hist[0] = 1
	hist[50] = 2
	hist[100] = 1

	bars := HealthBars(hist, 100, battle.FactionBlue)
	if len(bars) != 4 {
		t.Fatalf("bars = %d, want 4", len(bars))
	}
	wantFill := []int{70, 35, 35, 0}
	for i, b := range bars {
		if b.X0 != i || b.X1 != i+1 {
			t.Errorf("bar %d at x %d..%d", i, b.X0, b.X1)
		}
		if b.FillY != wantFill[i] {
			t.Errorf("bar %d fill %d, want %d", i, b.FillY, wantFill[i])
		}
	}

	red := HealthBars(hist, 100, battle.FactionRed)
	if red[0].Y0 != ScreenH-71 || red[0].Y1 != ScreenH-1 {
		t.Fatalf("red bar spans %d..%d", red[0].Y0, red[0].Y1)
	}
}

func TestSubBlendSaturates(t *testing.T) {
	got := SubBlend(color.RGBA{0xa0, 0x40, 0x80, 0xff}, TrailShade)
	want := color.RGBA{0x20, 0x00, 0x00, 0xff}
	if got != want {
		t.Fatalf("SubBlend = %v, want %v", got, want)
	}
}
