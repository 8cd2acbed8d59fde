// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/heatmap"
)

// Target is the set of operations input can trigger. *heatmap.Map
// implements it.
type Target interface {
	HandleClick(x, y int) bool
	Reset()
	ToggleDim() bool
	ToggleLabels() bool
}

var _ Target = (*heatmap.Map)(nil)

// Action identifies what an input event did.
type Action int

const (
	ActionNone Action = iota
	ActionClick
	ActionReset
	ActionToggleDim
	ActionToggleLabels
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionClick:
		return "click"
	case ActionReset:
		return "reset"
	case ActionToggleDim:
		return "toggle-dim"
	case ActionToggleLabels:
		return "toggle-labels"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Event reports an applied action.
type Event struct {
	Action Action

	// X and Y are the surface pixel of a click.
	X, Y int

	// Accepted is false for clicks outside the surface.
	Accepted bool

	// On is the new toggle value for toggle actions.
	On bool
}

// KeyMap maps keys to actions.
type KeyMap map[gpucontext.Key]Action

// DefaultKeyMap returns the R, D, L bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		gpucontext.KeyR: ActionReset,
		gpucontext.KeyD: ActionToggleDim,
		gpucontext.KeyL: ActionToggleLabels,
	}
}

// Option configures a Binding.
type Option func(*Binding)

// WithKeyMap replaces the key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(b *Binding) {
		b.keys = km
	}
}

// WithScale sets the factor converting window coordinates into surface
// pixels, for surfaces drawn at a different size than the window.
func WithScale(s float64) Option {
	return func(b *Binding) {
		if s > 0 {
			b.scale = s
		}
	}
}

// OnChange registers a callback invoked after every applied action,
// including rejected clicks.
func OnChange(fn func(Event)) Option {
	return func(b *Binding) {
		b.onChange = fn
	}
}

// Binding routes window events to a Target.
type Binding struct {
	target   Target
	keys     KeyMap
	scale    float64
	onChange func(Event)
}

// New creates a binding without registering any callbacks. Use it to
// drive a Target from synthetic events.
func New(t Target, opts ...Option) *Binding {
	b := &Binding{
		target: t,
		keys:   DefaultKeyMap(),
		scale:  1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind creates a binding and registers it on src. If src also delivers
// unified pointer events, touch and pen contacts produce clicks too.
func Bind(src gpucontext.EventSource, t Target, opts ...Option) *Binding {
	b := New(t, opts...)

	src.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		if button == gpucontext.MouseButtonLeft {
			b.Click(x, y)
		}
	})
	src.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		b.Key(key)
	})
	if ps, ok := src.(gpucontext.PointerEventSource); ok {
		ps.OnPointer(b.pointer)
	}
	return b
}

// pointer handles unified pointer events. Mouse input arrives through
// OnMousePress and is skipped here to avoid double clicks.
func (b *Binding) pointer(ev gpucontext.PointerEvent) {
	if ev.Type != gpucontext.PointerDown || ev.PointerType == gpucontext.PointerTypeMouse {
		return
	}
	if !ev.IsPrimary || ev.Button != gpucontext.ButtonLeft {
		return
	}
	b.Click(ev.X, ev.Y)
}

// Click applies a click at window coordinates (x, y). Coordinates are
// scaled and floored to surface pixels.
func (b *Binding) Click(x, y float64) Event {
	px := int(math.Floor(x * b.scale))
	py := int(math.Floor(y * b.scale))
	ev := Event{
		Action:   ActionClick,
		X:        px,
		Y:        py,
		Accepted: b.target.HandleClick(px, py),
	}
	b.emit(ev)
	return ev
}

// Key applies the action bound to key. It reports false for unbound keys.
func (b *Binding) Key(key gpucontext.Key) (Event, bool) {
	action, ok := b.keys[key]
	if !ok {
		return Event{}, false
	}
	return b.Do(action), true
}

// Do applies a non-click action.
func (b *Binding) Do(action Action) Event {
	ev := Event{Action: action, Accepted: true}
	switch action {
	case ActionReset:
		b.target.Reset()
	case ActionToggleDim:
		ev.On = b.target.ToggleDim()
	case ActionToggleLabels:
		ev.On = b.target.ToggleLabels()
	default:
		ev.Accepted = false
	}
	b.emit(ev)
	return ev
}

func (b *Binding) emit(ev Event) {
	heatmap.Logger().Debug("input: action", "action", ev.Action.String(),
		"x", ev.X, "y", ev.Y, "accepted", ev.Accepted)
	if b.onChange != nil {
		b.onChange(ev)
	}
}
