// Package sled moves a rider down a generated mountain. It only reads the
// mountain through its query API.
package sled

import (
	"math"

	"sled-mountain/internal/mountain"
)

// Event reports what happened during a Step.
type Event int

const (
	EventNone Event = iota
	EventCrash
	EventJump
	EventLayerChange
	EventFinished
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventCrash:
		return "crash"
	case EventJump:
		return "jump"
	case EventLayerChange:
		return "layer-change"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Surface speed multipliers.
const (
	SnowFactor = 1.0
	IceFactor  = 1.6
	RockFactor = 0.55
)

// Options tunes the rider.
type Options struct {
	BaseSpeed  float64
	SteerSpeed float64
	JumpTicks  int
	StunTicks  int
	StartX     float64
}

// DefaultOptions returns the standard rider tuning.
func DefaultOptions() Options {
	return Options{
		BaseSpeed:  6,
		SteerSpeed: 4,
		JumpTicks:  12,
		StunTicks:  20,
	}
}

// Input is one tick of player intent. Steer is clamped to [-1, 1].
type Input struct {
	Steer float64
	Climb bool
}

// State is a snapshot of the rider.
type State struct {
	X, Y     float64
	Layer    int
	Speed    float64
	Airborne int
	Stunned  int
	Crashes  int
	Jumps    int
	Finished bool
}

// Rider sleds over a mountain one tick at a time.
type Rider struct {
	m     *mountain.Mountain
	opts  Options
	state State
}

// NewRider places a rider at the summit.
func NewRider(m *mountain.Mountain, opts Options) *Rider {
	defaults := DefaultOptions()
	if opts.BaseSpeed <= 0 {
		opts.BaseSpeed = defaults.BaseSpeed
	}
	if opts.SteerSpeed < 0 {
		opts.SteerSpeed = 0
	}
	if opts.JumpTicks < 0 {
		opts.JumpTicks = 0
	}
	if opts.StunTicks < 0 {
		opts.StunTicks = 0
	}
	r := &Rider{m: m, opts: opts}
	r.Reset()
	return r
}

// Reset returns the rider to the summit and clears its counters.
func (r *Rider) Reset() {
	top := len(r.m.Layers()) - 1
	l, _ := r.m.Layer(top)
	r.state = State{
		X:     r.wrapX(r.opts.StartX, top),
		Y:     float64(l.HeightRange().Max - mountain.TransitionMargin),
		Layer: top,
	}
}

// Place moves the rider to a world position on a layer without resetting its
// counters. It reports false and leaves the rider untouched when the layer
// does not exist or y is outside it.
func (r *Rider) Place(x, y float64, layer int) bool {
	l, ok := r.m.Layer(layer)
	if !ok || !l.HeightRange().Contains(y) || math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	r.state.X = r.wrapX(x, layer)
	r.state.Y = y
	r.state.Layer = layer
	r.state.Airborne = 0
	r.state.Stunned = 0
	r.state.Finished = false
	return true
}

// SetBaseSpeed changes the rider's speed on plain snow.
func (r *Rider) SetBaseSpeed(v float64) bool {
	if !(v > 0) || math.IsInf(v, 0) {
		return false
	}
	r.opts.BaseSpeed = v
	return true
}

// Options returns the current tuning.
func (r *Rider) Options() Options { return r.opts }

// State returns a copy of the rider state.
func (r *Rider) State() State { return r.state }

// Step advances the rider one tick.
func (r *Rider) Step(in Input) Event {
	s := &r.state
	if s.Finished {
		return EventNone
	}
	if s.Stunned > 0 {
		s.Stunned--
		s.Speed = 0
		return EventNone
	}

	factor := SnowFactor
	if s.Airborne == 0 {
		if tile, ok := r.m.TileAt(s.X, s.Y, s.Layer); ok {
			factor = surfaceFactor(tile.Type)
		}
	}
	s.Speed = r.opts.BaseSpeed * factor

	steer := math.Max(-1, math.Min(1, in.Steer))
	x := s.X + steer*r.opts.SteerSpeed
	y := s.Y - s.Speed
	if in.Climb {
		y = s.Y + s.Speed
	}
	if s.Airborne > 0 {
		s.Airborne--
	}

	if ev, moved := r.moveTo(x, y); moved {
		return ev
	}

	if s.Airborne > 0 {
		return EventNone
	}
	tile, ok := r.m.TileAt(s.X, s.Y, s.Layer)
	if !ok {
		return EventNone
	}
	switch {
	case tile.Type == mountain.TileRamp:
		s.Airborne = r.opts.JumpTicks
		s.Jumps++
		return EventJump
	case tile.Type.Hazard():
		s.Crashes++
		s.Stunned = r.opts.StunTicks
		s.Speed = 0
		// Clear the hazard so the rider does not crash into it again.
		l, _ := r.m.Layer(s.Layer)
		below := float64(tile.Altitude) - 1
		if in.Climb {
			below = float64(tile.Altitude + l.TileSize())
		}
		r.moveTo(s.X, below)
		return EventCrash
	}
	return EventNone
}

// moveTo applies a new position, resolving layer changes and the finish line.
// It reports true when the move produced an event of its own.
func (r *Rider) moveTo(x, y float64) (Event, bool) {
	s := &r.state
	if y < 0 {
		s.X = r.wrapX(x, 0)
		s.Y = 0
		s.Layer = 0
		s.Finished = true
		return EventFinished, true
	}
	target := r.m.LayerIndexForY(y)
	if top, ok := r.m.Layer(target); ok && y >= float64(top.HeightRange().Max) {
		y = float64(top.HeightRange().Max - 1)
	}
	if target != s.Layer {
		nx, ny := r.m.TransitionToLayer(x, y, s.Layer, target)
		s.X = r.wrapX(nx, target)
		s.Y = ny
		s.Layer = target
		return EventLayerChange, true
	}
	s.X = r.wrapX(x, s.Layer)
	s.Y = y
	return EventNone, false
}

func (r *Rider) wrapX(x float64, layer int) float64 {
	l, ok := r.m.Layer(layer)
	if !ok {
		return x
	}
	c := float64(l.Circumference())
	wx := math.Mod(x, c)
	if wx < 0 {
		wx += c
	}
	return wx
}

func surfaceFactor(t mountain.TileType) float64 {
	switch t {
	case mountain.TileIce:
		return IceFactor
	case mountain.TileRock:
		return RockFactor
	default:
		return SnowFactor
	}
}
