package game

import (
	"image/color"
	"testing"
	"time"

	"github.com/Garsondee/Swarm-Front/internal/battle"
)

func TestEventPanelRingBuffer(t *testing.T) {
	p := NewEventPanel()
	for i := 0; i < logMaxEntries+5; i++ {
		p.Add(battle.Event{Tick: i, Kind: battle.EventKill, Faction: battle.FactionRed}, "R1")
	}
	got := p.Recent()
	if len(got) != logMaxEntries {
		t.Fatalf("Recent len = %d, want %d", len(got), logMaxEntries)
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("oldest %d newest %d", got[0].Tick, got[len(got)-1].Tick)
	}
}

func TestEventPanelZoneKillMessage(t *testing.T) {
	p := NewEventPanel()
	p.Add(battle.Event{Tick: 3, Kind: battle.EventZoneKill, Pos: battle.V(80, 90)}, "B7")
	e := p.Recent()[0]
	if e.Label != "B7" || e.Message != "burned by beam at (80,90)" {
		t.Fatalf("entry = %+v", e)
	}
}

func TestTrailBlendDarkensAndSaturates(t *testing.T) {
	base := color.RGBA{R: 0xa0, G: 0x90, B: 0x70, A: 0xff}
	pix := newTrailPixels(4, 4, base)

	if !blendPixel(pix, 1, 2) {
		t.Fatal("in-bounds blend reported miss")
	}
	if got := pix.RGBAAt(1, 2); got != (color.RGBA{R: 0x20, G: 0x10, B: 0x00, A: 0xff}) {
		t.Fatalf("after one mark = %v", got)
	}
	blendPixel(pix, 1, 2)
	if got := pix.RGBAAt(1, 2); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("after two marks = %v", got)
	}
	if got := pix.RGBAAt(0, 0); got != base {
		t.Fatalf("neighbour changed to %v", got)
	}
	if blendPixel(pix, -1, 0) || blendPixel(pix, 4, 0) {
		t.Fatal("out-of-bounds blend reported hit")
	}
}

func TestSimSpeedSteps(t *testing.T) {
	if got := faster(1); got != 2 {
		t.Fatalf("faster(1) = %v", got)
	}
	if got := faster(4); got != 4 {
		t.Fatalf("faster(4) = %v", got)
	}
	if got := slower(1); got != 0.5 {
		t.Fatalf("slower(1) = %v", got)
	}
	if got := slower(0); got != 0 {
		t.Fatalf("slower(0) = %v", got)
	}
	if togglePause(2) != 0 || togglePause(0) != 1 {
		t.Fatal("togglePause")
	}
}

func TestZoneChargeFillsDuringCooldown(t *testing.T) {
	z := battle.NewZone(battle.V(0, 0), battle.V(10, 10), 1, 10, 4)
	if got := zoneCharge(&z); got != 0 {
		t.Fatalf("charge while active = %v", got)
	}
	for i := 0; i < 4; i++ {
		z.Tick()
	}
	if got, want := zoneCharge(&z), 1.0/6; got != want {
		t.Fatalf("charge on first idle tick = %v, want %v", got, want)
	}
	for i := 0; i < 5; i++ {
		z.Tick()
	}
	if got := zoneCharge(&z); got != 1 {
		t.Fatalf("charge on last idle tick = %v, want 1", got)
	}

	always := battle.NewZone(battle.V(0, 0), battle.V(10, 10), 1, 0, 0)
	if got := zoneCharge(&always); got != 0 {
		t.Fatalf("always-on zone charge = %v", got)
	}
}

func TestBenchLine(t *testing.T) {
	b := battle.NewBenchmark(300, 2*time.Second)
	if got, want := benchLine(b), "BENCH: 0/300  ref 00:02:000"; got != want {
		t.Fatalf("benchLine = %q, want %q", got, want)
	}
}
