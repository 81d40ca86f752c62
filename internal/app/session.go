package app

import (
	"image/color"
	"strconv"

	"sled-mountain/internal/core"
	"sled-mountain/internal/mountain"
	"sled-mountain/internal/sled"
	"sled-mountain/internal/ui"
)

var _ ui.Panel = (*Session)(nil)

var riderColor = color.RGBA{R: 230, G: 40, B: 60, A: 255}

// Session is one run on a mountain: the composite view plus the rider drawn
// on top of it. It is the scene the viewer paints.
type Session struct {
	view  *mountain.View
	rider *sled.Rider
	clock *core.FixedStep

	cells   []uint8
	palette []color.RGBA
	last    sled.Event
	events  map[sled.Event]int
}

// NewSession builds the view for m and drops a rider at the summit. clock may
// be nil, in which case Advance steps on every call.
func NewSession(m *mountain.Mountain, opts sled.Options, clock *core.FixedStep) *Session {
	view := mountain.NewView(m)
	palette := append([]color.RGBA(nil), view.Palette()...)
	palette = append(palette, riderColor)
	return &Session{
		view:    view,
		rider:   sled.NewRider(m, opts),
		clock:   clock,
		cells:   make([]uint8, len(view.Cells())),
		palette: palette,
		events:  map[sled.Event]int{},
	}
}

func (s *Session) Name() string { return "sled " + s.view.Mountain().Seed() }

func (s *Session) Size() core.Size { return s.view.Size() }

// Cells returns the view with the rider marked.
func (s *Session) Cells() []uint8 {
	copy(s.cells, s.view.Cells())
	if cx, cy, ok := s.RiderCell(); ok {
		s.cells[cy*s.view.Size().W+cx] = s.riderIndex()
	}
	return s.cells
}

func (s *Session) Palette() []color.RGBA { return s.palette }

// View exposes the composite view for overlays.
func (s *Session) View() *mountain.View { return s.view }

// Mountain returns the mountain the run is on.
func (s *Session) Mountain() *mountain.Mountain { return s.view.Mountain() }

// Rider exposes the rider.
func (s *Session) Rider() *sled.Rider { return s.rider }

// RampMask, HazardMask, IceMask and AltitudeField forward the view's overlay
// data.
func (s *Session) RampMask() []float32      { return s.view.RampMask() }
func (s *Session) HazardMask() []float32    { return s.view.HazardMask() }
func (s *Session) IceMask() []float32       { return s.view.IceMask() }
func (s *Session) AltitudeField() []float32 { return s.view.AltitudeField() }

// RiderCell is the view cell under the rider.
func (s *Session) RiderCell() (int, int, bool) {
	st := s.rider.State()
	return s.view.Locate(st.X, st.Y, st.Layer)
}

// Step advances the rider one tick.
func (s *Session) Step(in sled.Input) sled.Event {
	ev := s.rider.Step(in)
	if ev != sled.EventNone {
		s.last = ev
		s.events[ev]++
	}
	return ev
}

// Advance steps the rider when the fixed-step clock allows it.
func (s *Session) Advance(in sled.Input) (sled.Event, bool) {
	if s.clock != nil && !s.clock.ShouldStep() {
		return sled.EventNone, false
	}
	return s.Step(in), true
}

// Reset puts the rider back on the summit.
func (s *Session) Reset() {
	s.rider.Reset()
	s.last = sled.EventNone
	s.events = map[sled.Event]int{}
}

// EventCount reports how many times ev occurred since the last reset.
func (s *Session) EventCount(ev sled.Event) int { return s.events[ev] }

func (s *Session) riderIndex() uint8 { return uint8(len(s.palette) - 1) }

// Parameters merges the mountain snapshot with the rider's state.
func (s *Session) Parameters() core.ParameterSnapshot {
	snap := s.view.Parameters()
	st := s.rider.State()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Rider",
		Params: []core.Parameter{
			{Key: "layer", Label: "Layer", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Layer)},
			{Key: "speed", Label: "Base speed", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.rider.Options().BaseSpeed, 'f', -1, 64)},
			{Key: "altitude", Label: "Altitude", Type: core.ParamTypeInt, Value: strconv.Itoa(int(st.Y))},
			{Key: "crashes", Label: "Crashes", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Crashes)},
			{Key: "jumps", Label: "Jumps", Type: core.ParamTypeInt, Value: strconv.Itoa(st.Jumps)},
			{Key: "event", Label: "Last event", Type: core.ParamTypeString, Value: s.last.String()},
		},
	})
	return snap
}

// ParameterControls lists the HUD-adjustable values.
func (s *Session) ParameterControls() []core.ParameterControl {
	top := len(s.view.Mountain().Layers()) - 1
	return []core.ParameterControl{
		{Key: "layer", Label: "Layer", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: float64(top), HasMin: true, HasMax: true},
		{Key: "speed", Label: "Base speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 20, HasMin: true, HasMax: true},
	}
}

// SetIntParameter moves the rider to the middle of another layer.
func (s *Session) SetIntParameter(key string, value int) bool {
	if key != "layer" {
		return false
	}
	m := s.view.Mountain()
	l, ok := m.Layer(value)
	if !ok {
		return false
	}
	st := s.rider.State()
	x, _ := m.TransitionToLayer(st.X, st.Y, st.Layer, value)
	r := l.HeightRange()
	return s.rider.Place(x, float64(r.Min+r.Max)/2, value)
}

// SetFloatParameter changes the rider's base speed.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	if key != "speed" {
		return false
	}
	return s.rider.SetBaseSpeed(value)
}
