package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/render"
)

var (
	groundColor    = color.RGBA{R: 58, G: 74, B: 52, A: 255}
	wreckColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	rocketColor    = color.RGBA{R: 255, G: 200, B: 80, A: 255}
	smokeColor     = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	explosionColor = color.RGBA{R: 255, G: 140, B: 30, A: 255}
	beamOnColor    = color.RGBA{R: 120, G: 220, B: 255, A: 140}
	beamOffColor   = color.RGBA{R: 120, G: 220, B: 255, A: 90}
)

// ebitenRenderer draws onto dst with ebiten's vector and text packages.
type ebitenRenderer struct {
	dst    *ebiten.Image
	trails *trailLayer
	face   *text.GoXFace
}

func newEbitenRenderer(trails *trailLayer) *ebitenRenderer {
	return &ebitenRenderer{
		trails: trails,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *ebitenRenderer) Clear() { r.dst.Clear() }

func (r *ebitenRenderer) DrawBackground() {
	r.dst.DrawImage(r.trails.image(), nil)
}

func (r *ebitenRenderer) BlendTrail(x, y int) { r.trails.blend(x, y) }

func (r *ebitenRenderer) DrawUnit(u *battle.Unit) {
	x, y := float32(u.Pos.X), float32(u.Pos.Y)
	if !u.Active() {
		vector.FillCircle(r.dst, x, y, float32(u.Radius)*0.7, wreckColor, false)
		return
	}
	vector.FillCircle(r.dst, x, y, float32(u.Radius), render.FactionColor(u.Faction), true)
	// Turret stub pointing at the goal.
	dir := u.Goal.Sub(u.Pos).Normalized().Scale(u.Radius + 3)
	vector.StrokeLine(r.dst, x, y, x+float32(dir.X), y+float32(dir.Y), 2, color.Black, false)
}

func (r *ebitenRenderer) DrawProjectile(p *battle.Projectile) {
	vector.FillCircle(r.dst, float32(p.Pos.X), float32(p.Pos.Y), 2.5, rocketColor, true)
}

func (r *ebitenRenderer) DrawSmoke(s *battle.Smoke) {
	c := smokeColor
	c.A = uint8(200 * (1 - s.Progress()))
	rad := float32(6 + 10*s.Progress())
	vector.FillCircle(r.dst, float32(s.Pos.X), float32(s.Pos.Y), rad, c, true)
}

func (r *ebitenRenderer) DrawExplosion(e *battle.Explosion) {
	rad := float32(4 + 14*e.Progress())
	vector.StrokeCircle(r.dst, float32(e.Pos.X), float32(e.Pos.Y), rad, 2, explosionColor, true)
}

func (r *ebitenRenderer) DrawZone(z *battle.Zone) {
	a := z.Area
	x, y, w, h := float32(a.Min.X), float32(a.Min.Y), float32(a.W()), float32(a.H())
	if z.Active() {
		vector.FillRect(r.dst, x, y, w, h, beamOnColor, false)
		return
	}
	vector.StrokeRect(r.dst, x, y, w, h, 1, beamOffColor, false)
	// Charge strip along the bottom edge fills until the beam fires again.
	vector.FillRect(r.dst, x, y+h-3, w*float32(zoneCharge(z)), 3, beamOffColor, false)
}

// zoneCharge is how far an idle zone is through its cooldown, in [0,1].
func zoneCharge(z *battle.Zone) float64 {
	idle := z.Period - z.ActiveTicks
	if idle <= 0 || z.Active() {
		return 0
	}
	return float64(z.Phase()-z.ActiveTicks+1) / float64(idle)
}

func (r *ebitenRenderer) FillBar(x0, y0, x1, y1 int, c color.RGBA) {
	vector.FillRect(r.dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), c, false)
}

func (r *ebitenRenderer) DrawText(s string, x, y int, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(r.dst, s, r.face, op)
}

func (r *ebitenRenderer) MeasureText(s string) (int, int) {
	w, h := text.Measure(s, r.face, 0)
	return int(w), int(h)
}
