//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	headerColor = color.RGBA{R: 170, G: 190, B: 230, A: 255}
	statusColor = color.RGBA{R: 240, G: 210, B: 140, A: 255}
)

// HUD draws the run panel to the right of the mountain view: the rider's
// layer readout, the layer and speed buttons, then the mountain constants.
type HUD struct {
	model *hudModel
	width int

	panel   *ebiten.Image
	pixel   *ebiten.Image
	offsetX int

	buttons []buttonPair
}

type buttonPair struct {
	top         int
	minus, plus image.Rectangle
}

// NewHUD builds a HUD of the given width. A width of zero disables it.
func NewHUD(p Panel, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{model: newHUDModel(p), width: width}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	h.model.refresh()
	h.layout()
	return h
}

func (h *HUD) controlsTop() int {
	return padding + (len(h.model.status())+1)*rowHeight
}

func (h *HUD) layout() {
	top := h.controlsTop()
	h.buttons = make([]buttonPair, len(h.model.controls))
	for i := range h.buttons {
		y := top + i*controlHeight + (controlHeight-buttonSize)/2
		plus := image.Rect(h.width-padding-buttonSize, y, h.width-padding, y+buttonSize)
		minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
		h.buttons[i] = buttonPair{top: top + i*controlHeight, minus: minus, plus: plus}
	}
}

// Update refreshes the panel and applies button clicks. offsetX is where the
// panel starts on screen.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	h.model.refresh()
	h.layout()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i, b := range h.buttons {
		switch {
		case pt.In(b.minus):
			h.model.adjust(i, -1)
			return
		case pt.In(b.plus):
			h.model.adjust(i, 1)
			return
		}
	}
}

// Draw paints the panel at offsetX. scale is the mountain view's pixel scale.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil {
		return
	}
	height := h.model.panel.Size().H * max(scale, 1)
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	y := padding + rowHeight
	for _, line := range h.model.status() {
		text.Draw(h.panel, line, face, padding, y, statusColor)
		y += rowHeight
	}
	for i, c := range h.model.controls {
		b := h.buttons[i]
		base := b.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, padding, base, textColor)
		col := textColor
		if !c.hasValue {
			col = dimColor
		}
		w := text.BoundString(face, c.value).Dx()
		text.Draw(h.panel, c.value, face, b.minus.Min.X-buttonGap-w, base, col)
		h.drawButton(b.minus, "-", h.model.canAdjust(i, -1))
		h.drawButton(b.plus, "+", h.model.canAdjust(i, 1))
	}

	y = h.controlsTop() + len(h.model.controls)*controlHeight + rowHeight
	limit := height - padding
	for _, line := range h.model.info() {
		if y > limit {
			break
		}
		if line.header {
			text.Draw(h.panel, line.text, face, padding, y, headerColor)
		} else {
			text.Draw(h.panel, line.text, face, padding+8, y, textColor)
		}
		y += rowHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := color.RGBA{R: 54, G: 56, B: 64, A: 255}, textColor
	if !enabled {
		bg, fg = color.RGBA{R: 32, G: 34, B: 40, A: 255}, dimColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	text.Draw(h.panel, label, face, r.Min.X+(r.Dx()-b.Dx())/2, r.Min.Y+(r.Dy()+b.Dy())/2, fg)
}

const (
	padding       = 12
	rowHeight     = 16
	controlHeight = 32
	buttonSize    = 22
	buttonGap     = 6
	labelBaseline = 20
)
