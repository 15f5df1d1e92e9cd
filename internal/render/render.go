// Package render draws a battle.World through a backend-neutral Renderer in
// a fixed layer order. The ebiten and terminal frontends implement Renderer.
package render

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Swarm-Front/internal/battle"
)

// Layout constants, in screen pixels.
const (
	ScreenW = 1280
	ScreenH = 720

	healthBarHeight  = 70
	healthBarWidth   = 1
	healthBarSpacing = 0
	healthBarOffsetX = 0

	frameCounterX = 350
	frameCounterY = 580
)

// Palette shared by the frontends.
var (
	Blue       = color.RGBA{0x40, 0x80, 0xff, 0xff}
	Red        = color.RGBA{0xff, 0x40, 0x40, 0xff}
	BarBack    = color.RGBA{0xff, 0x00, 0x00, 0xff}
	BarFill    = color.RGBA{0x00, 0xff, 0x00, 0xff}
	TrailShade = color.RGBA{0x80, 0x80, 0x80, 0xff}
	Overlay    = color.RGBA{0x03, 0x00, 0x00, 0xff}
	TextColor  = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// FactionColor returns the display colour of f.
func FactionColor(f battle.Faction) color.RGBA {
	if f == battle.FactionRed {
		return Red
	}
	return Blue
}

// Renderer is the drawing surface a frontend provides. Coordinates are world
// pixels, which map 1:1 to the 1280x720 screen.
type Renderer interface {
	Clear()
	// DrawBackground paints the persistent background layer, trails included.
	DrawBackground()
	// BlendTrail darkens one background pixel under a moving unit.
	BlendTrail(x, y int)
	DrawUnit(u *battle.Unit)
	DrawProjectile(p *battle.Projectile)
	DrawSmoke(s *battle.Smoke)
	DrawExplosion(e *battle.Explosion)
	DrawZone(z *battle.Zone)
	FillBar(x0, y0, x1, y1 int, c color.RGBA)
	DrawText(s string, x, y int, c color.RGBA)
	MeasureText(s string) (w, h int)
}

// HUD carries the per-frame overlay state that does not live in the World.
type HUD struct {
	Frame int
	Bench *battle.Benchmark // nil hides the benchmark overlay
	Lines []string          // extra status lines drawn top-right
}

// Frame draws one complete frame of w.
func Frame(r Renderer, w *battle.World, hud HUD) {
	r.Clear()
	r.DrawBackground()

	units := w.Units()
	for i := range units {
		u := &units[i]
		r.DrawUnit(u)
		if u.Active() && onScreen(u.Pos) {
			r.BlendTrail(int(u.Pos.X), int(u.Pos.Y))
		}
	}
	for i, ps := 0, w.Projectiles(); i < len(ps); i++ {
		r.DrawProjectile(&ps[i])
	}
	for i, ss := 0, w.Smokes(); i < len(ss); i++ {
		r.DrawSmoke(&ss[i])
	}
	for i, zs := 0, w.Zones(); i < len(zs); i++ {
		r.DrawZone(&zs[i])
	}
	for i, es := 0, w.Explosions(); i < len(es); i++ {
		r.DrawExplosion(&es[i])
	}

	maxHealth := w.Config().MaxHealth
	for _, f := range []battle.Faction{battle.FactionBlue, battle.FactionRed} {
		for _, b := range HealthBars(w.HealthHistogram(f), maxHealth, f) {
			r.FillBar(b.X0, b.Y0, b.X1, b.Y1, BarBack)
			r.FillBar(b.X0, b.FillY, b.X1, b.Y1, BarFill)
		}
	}

	drawCounters(r, w, hud)
	drawBenchmark(r, hud.Bench)
}

func onScreen(p battle.Vec2) bool {
	return p.X >= 0 && p.X < ScreenW && p.Y >= 0 && p.Y < ScreenH
}

// Bar is one unit's health bar: the back spans Y0..Y1, the fill FillY..Y1.
type Bar struct {
	X0, Y0, X1, Y1 int
	FillY          int
}

// HealthBars lays out one bar per unit in ascending health order from a
// counting-sort histogram. Blue bars run along the top edge, red along the
// bottom.
func HealthBars(hist []int, maxHealth int, f battle.Faction) []Bar {
	total := 0
	for _, c := range hist {
		total += c
	}
	bars := make([]Bar, 0, total)
	y0, y1 := 0, healthBarHeight
	if f == battle.FactionRed {
		y0, y1 = ScreenH-healthBarHeight-1, ScreenH-1
	}
	n := 0
	for health, count := range hist {
		fill := y0 + int(float64(healthBarHeight)*(1-float64(health)/float64(maxHealth)))
		for j := 0; j < count; j++ {
			x := n*(healthBarWidth+healthBarSpacing) + healthBarOffsetX
			bars = append(bars, Bar{X0: x, Y0: y0, X1: x + healthBarWidth, Y1: y1, FillY: fill})
			n++
		}
	}
	return bars
}

func drawCounters(r Renderer, w *battle.World, hud HUD) {
	r.DrawText(fmt.Sprintf("FRAME: %d", hud.Frame), frameCounterX, frameCounterY, TextColor)

	st := w.Stats()
	y := healthBarHeight + 8
	for _, f := range []battle.Faction{battle.FactionBlue, battle.FactionRed} {
		line := fmt.Sprintf("%s %4d alive  %4d lost", f, w.Alive(f), st.Losses[f])
		r.DrawText(line, 8, y, FactionColor(f))
		_, h := r.MeasureText(line)
		y += h + 2
	}
	for _, line := range hud.Lines {
		tw, th := r.MeasureText(line)
		r.DrawText(line, ScreenW-tw-8, y, TextColor)
		y += th + 2
	}
}

// Benchmark overlay box, from the frozen-result screen.
const (
	overlayX0, overlayY0 = 420, 170
	overlayX1, overlayY1 = 870, 430
	overlayLine1Y        = 200
	overlayLine2Y        = 340
)

func drawBenchmark(r Renderer, b *battle.Benchmark) {
	if b == nil || !b.Done() {
		return
	}
	r.FillBar(overlayX0, overlayY0, overlayX1, overlayY1, Overlay)
	centre(r, battle.FormatDuration(b.Duration()), overlayLine1Y)
	centre(r, battle.FormatSpeedup(b.Speedup()), overlayLine2Y)
}

func centre(r Renderer, s string, y int) {
	w, _ := r.MeasureText(s)
	r.DrawText(s, (ScreenW-w)/2, y, TextColor)
}

// SubBlend subtracts b from a per channel, saturating at zero. Alpha is kept.
func SubBlend(a, b color.RGBA) color.RGBA {
	sub := func(x, y uint8) uint8 {
		if y > x {
			return 0
		}
		return x - y
	}
	return color.RGBA{R: sub(a.R, b.R), G: sub(a.G, b.G), B: sub(a.B, b.B), A: a.A}
}
