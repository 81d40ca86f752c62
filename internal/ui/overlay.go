//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sled-mountain/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	RampMask() []float32
	HazardMask() []float32
	IceMask() []float32
}

type altitudeFieldProvider interface {
	AltitudeField() []float32
}

// Overlay draws optional debugging visuals on top of the mountain view.
type Overlay struct {
	scene      core.Scene
	scale      int
	showRamps  bool
	showHazard bool
	showIce    bool
	showAlt    bool
	maskImg    *ebiten.Image
	maskBuf    []byte

	altitudeImg *ebiten.Image
	altitudeBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scene core.Scene, scale int) *Overlay {
	return &Overlay{scene: scene, scale: scale}
}

// Update toggles the overlays: 1 ramps, 2 hazards, 3 ice, 4 altitude.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showRamps = !o.showRamps
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHazard = !o.showHazard
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showIce = !o.showIce
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit4) {
		o.showAlt = !o.showAlt
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.scene.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showAlt {
		if provider, ok := o.scene.(altitudeFieldProvider); ok {
			o.drawAltitude(screen, provider.AltitudeField(), size, scale)
		}
	}

	if provider, ok := o.scene.(maskProvider); ok {
		total := size.W * size.H
		if total == 0 {
			return
		}
		if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
			o.maskImg = ebiten.NewImage(size.W, size.H)
			o.maskBuf = make([]byte, 4*total)
		} else if len(o.maskBuf) != 4*total {
			o.maskBuf = make([]byte, 4*total)
		}

		if o.showRamps {
			o.drawMask(screen, provider.RampMask(), color.RGBA{R: 255, G: 200, B: 60, A: 0})
		}
		if o.showHazard {
			o.drawMask(screen, provider.HazardMask(), color.RGBA{R: 255, G: 70, B: 50, A: 0})
		}
		if o.showIce {
			o.drawMask(screen, provider.IceMask(), color.RGBA{R: 64, G: 164, B: 223, A: 0})
		}
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	size := o.scene.Size()
	total := size.W * size.H
	if len(mask) != total {
		return
	}
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)

	for i := 0; i < total; i++ {
		base := i * 4
		intensity := float64(mask[i])
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 1 {
			intensity = 1
		}
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}

		alpha := uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
		glow := glowBase + glowRange*math.Sqrt(intensity)

		o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
		o.maskBuf[base+3] = alpha
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawAltitude(screen *ebiten.Image, field []float32, size core.Size, scale int) {
	total := size.W * size.H
	if len(field) != total || total == 0 {
		return
	}
	if o.altitudeImg == nil || o.altitudeImg.Bounds().Dx() != size.W || o.altitudeImg.Bounds().Dy() != size.H {
		o.altitudeImg = ebiten.NewImage(size.W, size.H)
		o.altitudeBuf = make([]byte, 4*total)
	} else if len(o.altitudeBuf) != 4*total {
		o.altitudeBuf = make([]byte, 4*total)
	}

	for i, v := range field {
		base := i * 4
		if v <= 0 {
			o.altitudeBuf[base+0] = 0
			o.altitudeBuf[base+1] = 0
			o.altitudeBuf[base+2] = 0
			o.altitudeBuf[base+3] = 0
			continue
		}
		col := elevationColor(clamp01(float64(v)))
		o.altitudeBuf[base+0] = col.R
		o.altitudeBuf[base+1] = col.G
		o.altitudeBuf[base+2] = col.B
		o.altitudeBuf[base+3] = col.A
	}

	o.altitudeImg.WritePixels(o.altitudeBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.altitudeImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func elevationColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

