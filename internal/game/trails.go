package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Swarm-Front/internal/render"
)

// trailLayer is the persistent background that units darken as they drive
// over it. Pixels live on the CPU and are uploaded once per frame when dirty.
type trailLayer struct {
	pix   *image.RGBA
	img   *ebiten.Image
	dirty bool
}

func newTrailLayer(w, h int, base color.RGBA) *trailLayer {
	return &trailLayer{pix: newTrailPixels(w, h, base), dirty: true}
}

func newTrailPixels(w, h int, base color.RGBA) *image.RGBA {
	pix := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pix.Pix); i += 4 {
		pix.Pix[i+0] = base.R
		pix.Pix[i+1] = base.G
		pix.Pix[i+2] = base.B
		pix.Pix[i+3] = base.A
	}
	return pix
}

// blend applies a trail mark at (x, y). Off-image points are ignored.
func (t *trailLayer) blend(x, y int) {
	if blendPixel(t.pix, x, y) {
		t.dirty = true
	}
}

// blendPixel sub-blends the trail shade into pix at (x, y) and reports
// whether the point was inside the image.
func blendPixel(pix *image.RGBA, x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(pix.Rect)) {
		return false
	}
	pix.SetRGBA(x, y, render.SubBlend(pix.RGBAAt(x, y), render.TrailShade))
	return true
}

// image returns the GPU copy, uploading pending marks first.
func (t *trailLayer) image() *ebiten.Image {
	if t.img == nil {
		b := t.pix.Bounds()
		t.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if t.dirty {
		t.img.WritePixels(t.pix.Pix)
		t.dirty = false
	}
	return t.img
}
