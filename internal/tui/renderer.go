package tui

import (
	"image/color"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/render"
)

var (
	groundColor    = color.RGBA{R: 58, G: 74, B: 52, A: 255}
	trailStep      = color.RGBA{R: 6, G: 6, B: 6, A: 255} // darkening per unit pass over a cell
	rocketColor    = color.RGBA{R: 255, G: 200, B: 80, A: 255}
	smokeColor     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	explosionColor = color.RGBA{R: 255, G: 140, B: 30, A: 255}
	beamColor      = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	wreckColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// Viewport maps the 1280x720 battlefield onto a cols x rows terminal.
type Viewport struct {
	Cols, Rows int
}

// Cell returns the terminal cell covering world point (x, y). ok is false when
// the point lies off screen.
func (v Viewport) Cell(x, y float64) (col, row int, ok bool) {
	if v.Cols <= 0 || v.Rows <= 0 || x < 0 || y < 0 || x >= render.ScreenW || y >= render.ScreenH {
		return 0, 0, false
	}
	col = int(x * float64(v.Cols) / render.ScreenW)
	row = int(y * float64(v.Rows) / render.ScreenH)
	return min(col, v.Cols-1), min(row, v.Rows-1), true
}

// CellSize is the world extent of one terminal cell.
func (v Viewport) CellSize() (w, h float64) {
	if v.Cols <= 0 || v.Rows <= 0 {
		return render.ScreenW, render.ScreenH
	}
	return float64(render.ScreenW) / float64(v.Cols), float64(render.ScreenH) / float64(v.Rows)
}

func style(fg color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(groundColor))
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellRenderer draws a World onto a tcell screen, one glyph per cell.
type cellRenderer struct {
	screen tcell.Screen
	view   Viewport
	trails []color.RGBA // background shade per cell, row major
}

func newCellRenderer(s tcell.Screen) *cellRenderer {
	r := &cellRenderer{screen: s}
	r.resize()
	return r
}

// resize picks up the screen size and resets the trail layer.
func (r *cellRenderer) resize() {
	cols, rows := r.screen.Size()
	r.view = Viewport{Cols: cols, Rows: rows}
	r.trails = make([]color.RGBA, max(cols*rows, 0))
	for i := range r.trails {
		r.trails[i] = groundColor
	}
}

func (r *cellRenderer) put(x, y float64, ch rune, st tcell.Style) {
	if col, row, ok := r.view.Cell(x, y); ok {
		r.screen.SetContent(col, row, ch, nil, st)
	}
}

func (r *cellRenderer) Clear() { r.screen.Clear() }

func (r *cellRenderer) DrawBackground() {
	for row := 0; row < r.view.Rows; row++ {
		for col := 0; col < r.view.Cols; col++ {
			bg := r.trails[row*r.view.Cols+col]
			r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(rgb(bg)))
		}
	}
}

func (r *cellRenderer) BlendTrail(x, y int) {
	col, row, ok := r.view.Cell(float64(x), float64(y))
	if !ok {
		return
	}
	i := row*r.view.Cols + col
	r.trails[i] = render.SubBlend(r.trails[i], trailStep)
}

func (r *cellRenderer) DrawUnit(u *battle.Unit) {
	if !u.Active() {
		r.put(u.Pos.X, u.Pos.Y, 'x', style(wreckColor))
		return
	}
	r.put(u.Pos.X, u.Pos.Y, '●', style(render.FactionColor(u.Faction)))
}

func (r *cellRenderer) DrawProjectile(p *battle.Projectile) {
	r.put(p.Pos.X, p.Pos.Y, '·', style(rocketColor))
}

func (r *cellRenderer) DrawSmoke(s *battle.Smoke) {
	ch := '▒'
	if s.Progress() > 0.5 {
		ch = '░'
	}
	r.put(s.Pos.X, s.Pos.Y, ch, style(smokeColor))
}

func (r *cellRenderer) DrawExplosion(e *battle.Explosion) {
	ch := '*'
	if e.Progress() > 0.5 {
		ch = '+'
	}
	r.put(e.Pos.X, e.Pos.Y, ch, style(explosionColor))
}

func (r *cellRenderer) DrawZone(z *battle.Zone) {
	glyph := '╌'
	if z.Active() {
		glyph = '█'
	}
	cw, cellH := r.view.CellSize()
	a := z.Area
	for y := a.Min.Y; y < a.Max.Y; y += cellH {
		for x := a.Min.X; x < a.Max.X; x += cw {
			r.put(x, y, glyph, style(beamColor))
		}
	}
}

// FillBar paints every cell the rectangle touches. Adjacent one-pixel bars
// collapse into the same cells, so the last bar drawn wins.
func (r *cellRenderer) FillBar(x0, y0, x1, y1 int, c color.RGBA) {
	c0, r0, ok0 := r.view.Cell(float64(x0), float64(y0))
	c1, r1, ok1 := r.view.Cell(float64(max(x1-1, x0)), float64(max(y1-1, y0)))
	if !ok0 || !ok1 {
		return
	}
	st := tcell.StyleDefault.Background(rgb(c))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.screen.SetContent(col, row, ' ', nil, st)
		}
	}
}

func (r *cellRenderer) DrawText(s string, x, y int, c color.RGBA) {
	col, row, ok := r.view.Cell(float64(x), float64(y))
	if !ok {
		return
	}
	st := tcell.StyleDefault.Foreground(rgb(c))
	for _, ch := range s {
		if col >= r.view.Cols {
			return
		}
		r.screen.SetContent(col, row, ch, nil, st)
		col++
	}
}

// MeasureText reports text extent in world pixels so the shared layout code
// places lines one row apart.
func (r *cellRenderer) MeasureText(s string) (int, int) {
	cw, ch := r.view.CellSize()
	return int(float64(utf8.RuneCountInString(s))*cw + 0.5), int(ch + 0.5)
}
