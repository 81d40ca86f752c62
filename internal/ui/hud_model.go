package ui

import (
	"fmt"
	"math"
	"strconv"

	"sled-mountain/internal/core"
	"sled-mountain/internal/mountain"
)

// Panel is the scene the HUD reads and drives. The rider's layer and base
// speed are adjusted through the setters; the mountain supplies the per-layer
// readout.
type Panel interface {
	core.Scene
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
	Parameters() core.ParameterSnapshot
	Mountain() *mountain.Mountain
}

// Keys shown in the status block rather than the info list.
var statusKeys = map[string]bool{"seed": true, "event": true, "layer": true}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// hudModel keeps the panel state that does not depend on ebiten.
type hudModel struct {
	panel    Panel
	snapshot core.ParameterSnapshot
	controls []controlState
}

func newHUDModel(p Panel) *hudModel {
	m := &hudModel{panel: p}
	for _, ctrl := range p.ParameterControls() {
		m.controls = append(m.controls, controlState{control: ctrl, value: "--"})
	}
	return m
}

// refresh reloads the snapshot and parses the current control values from it.
func (m *hudModel) refresh() {
	m.snapshot = m.panel.Parameters()
	for i := range m.controls {
		c := &m.controls[i]
		c.hasValue = false
		c.value = "--"
		param, ok := m.snapshot.Lookup(c.control.Key)
		if !ok {
			continue
		}
		switch c.control.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			c.intValue, c.floatValue = v, float64(v)
			c.value = strconv.Itoa(v)
		case core.ParamTypeFloat:
			v, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			c.floatValue = v
			c.value = formatStep(c.control.Step, v)
		default:
			continue
		}
		c.hasValue = true
	}
}

// target returns the value one step away in direction dir, clamped to the
// control's bounds. ok is false when the control cannot move that way.
func (m *hudModel) target(i, dir int) (float64, bool) {
	if i < 0 || i >= len(m.controls) || dir == 0 {
		return 0, false
	}
	c := m.controls[i]
	if !c.hasValue {
		return 0, false
	}
	step := c.control.Step
	cur := c.floatValue
	if c.control.Type == core.ParamTypeInt {
		step = math.Max(1, math.Round(step))
		cur = float64(c.intValue)
	} else if step <= 0 {
		step = 0.05
	}
	next := cur + float64(dir)*step
	if c.control.HasMin {
		next = math.Max(next, c.control.Min)
	}
	if c.control.HasMax {
		next = math.Min(next, c.control.Max)
	}
	if math.Abs(next-cur) < 1e-9 {
		return 0, false
	}
	return next, true
}

func (m *hudModel) canAdjust(i, dir int) bool {
	_, ok := m.target(i, dir)
	return ok
}

// adjust moves control i one step and refreshes on success.
func (m *hudModel) adjust(i, dir int) bool {
	next, ok := m.target(i, dir)
	if !ok {
		return false
	}
	c := m.controls[i].control
	switch c.Type {
	case core.ParamTypeInt:
		ok = m.panel.SetIntParameter(c.Key, int(math.Round(next)))
	case core.ParamTypeFloat:
		ok = m.panel.SetFloatParameter(c.Key, next)
	default:
		ok = false
	}
	if ok {
		m.refresh()
	}
	return ok
}

// status describes the rider's layer on the mountain.
func (m *hudModel) status() []string {
	mt := m.panel.Mountain()
	lines := []string{fmt.Sprintf("seed %q", mt.Seed())}
	if p, ok := m.snapshot.Lookup("layer"); ok {
		k, err := strconv.Atoi(p.Value)
		if l, found := mt.Layer(k); err == nil && found {
			r := l.HeightRange()
			lines = append(lines,
				fmt.Sprintf("layer %d/%d  y=[%d,%d)", k+1, len(mt.Layers()), r.Min, r.Max),
				fmt.Sprintf("C=%d  %dx%d tiles", l.Circumference(), l.Width(), l.Height()),
				fmt.Sprintf("ramps %d  trees %d  obstacles %d", l.RampPatches(), l.PlacedTrees(), l.PlacedObstacles()),
			)
		}
	}
	if p, ok := m.snapshot.Lookup("event"); ok && p.Value != "" {
		lines = append(lines, "last: "+p.Value)
	}
	return lines
}

type infoLine struct {
	text   string
	header bool
}

// info lists the read-only parameters not already shown by the controls or
// the status block.
func (m *hudModel) info() []infoLine {
	skip := make(map[string]bool, len(m.controls))
	for _, c := range m.controls {
		skip[c.control.Key] = true
	}
	var out []infoLine
	for _, g := range m.snapshot.Groups {
		var params []infoLine
		for _, p := range g.Params {
			if skip[p.Key] || statusKeys[p.Key] {
				continue
			}
			params = append(params, infoLine{text: p.Label + ": " + p.Value})
		}
		if len(params) == 0 {
			continue
		}
		out = append(out, infoLine{text: g.Name, header: true})
		out = append(out, params...)
	}
	return out
}

func formatStep(step, v float64) string {
	precision := 1
	switch {
	case step <= 0:
		precision = 2
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
