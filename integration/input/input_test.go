package input

import (
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/heatmap"
)

// fakeSource records registered callbacks so tests can fire them.
type fakeSource struct {
	gpucontext.NullEventSource

	mousePress func(gpucontext.MouseButton, float64, float64)
	keyPress   func(gpucontext.Key, gpucontext.Modifiers)
	pointer    func(gpucontext.PointerEvent)
}

func (s *fakeSource) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	s.mousePress = fn
}

func (s *fakeSource) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	s.keyPress = fn
}

func (s *fakeSource) OnPointer(fn func(gpucontext.PointerEvent)) {
	s.pointer = fn
}

var (
	_ gpucontext.EventSource        = (*fakeSource)(nil)
	_ gpucontext.PointerEventSource = (*fakeSource)(nil)
)

func TestBind_MouseClicks(t *testing.T) {
	src := &fakeSource{}
	m := heatmap.New(100, 100)
	var events []Event
	Bind(src, m, OnChange(func(ev Event) { events = append(events, ev) }))

	src.mousePress(gpucontext.MouseButtonLeft, 10.7, 20.2)
	src.mousePress(gpucontext.MouseButtonRight, 30, 30)
	src.mousePress(gpucontext.MouseButtonLeft, 150, 20)

	if m.ClickCount() != 1 {
		t.Errorf("ClickCount() = %d, want 1", m.ClickCount())
	}
	if m.Points()[0] != (heatmap.Point{X: 10, Y: 20, Count: 1}) {
		t.Errorf("click recorded at %+v, want floored (10, 20)", m.Points()[0])
	}
	if len(events) != 2 || !events[0].Accepted || events[1].Accepted {
		t.Errorf("events = %+v, want one accepted and one rejected click", events)
	}
}

func TestBind_Keys(t *testing.T) {
	src := &fakeSource{}
	m := heatmap.New(100, 100)
	Bind(src, m)

	m.HandleClick(5, 5)
	src.keyPress(gpucontext.KeyD, 0)
	src.keyPress(gpucontext.KeyL, 0)
	src.keyPress(gpucontext.KeyR, 0)
	src.keyPress(gpucontext.KeyX, 0)

	if !m.Dimmed() {
		t.Error("D did not toggle dimming")
	}
	if m.LabelsShown() {
		t.Error("L did not toggle labels")
	}
	if m.ClickCount() != 0 {
		t.Error("R did not reset")
	}
}

func TestBind_TouchAndPen(t *testing.T) {
	src := &fakeSource{}
	m := heatmap.New(100, 100)
	Bind(src, m)

	down := func(pt gpucontext.PointerType, primary bool) gpucontext.PointerEvent {
		return gpucontext.PointerEvent{
			Type:        gpucontext.PointerDown,
			X:           40,
			Y:           50,
			PointerType: pt,
			IsPrimary:   primary,
			Button:      gpucontext.ButtonLeft,
		}
	}

	src.pointer(down(gpucontext.PointerTypeTouch, true))
	src.pointer(down(gpucontext.PointerTypePen, true))
	src.pointer(down(gpucontext.PointerTypeMouse, true))
	src.pointer(down(gpucontext.PointerTypeTouch, false))
	src.pointer(gpucontext.PointerEvent{Type: gpucontext.PointerMove, PointerType: gpucontext.PointerTypeTouch, IsPrimary: true})

	if m.ClickCount() != 2 {
		t.Errorf("ClickCount() = %d, want 2 (touch and pen only)", m.ClickCount())
	}
}

func TestBinding_Scale(t *testing.T) {
	m := heatmap.New(200, 200)
	ev := New(m, WithScale(2)).Click(10.6, 3.2)
	if ev.X != 21 || ev.Y != 6 || !ev.Accepted {
		t.Errorf("Click() = %+v, want (21, 6) accepted", ev)
	}
}

func TestBinding_CustomKeyMap(t *testing.T) {
	m := heatmap.New(50, 50)
	b := New(m, WithKeyMap(KeyMap{gpucontext.KeySpace: ActionToggleLabels}))

	if _, ok := b.Key(gpucontext.KeyL); ok {
		t.Error("default binding still active after WithKeyMap")
	}
	ev, ok := b.Key(gpucontext.KeySpace)
	if !ok || ev.Action != ActionToggleLabels || ev.On {
		t.Errorf("Key(Space) = %+v, %v", ev, ok)
	}
}

func TestBinding_DoUnknown(t *testing.T) {
	b := New(heatmap.New(10, 10))
	if ev := b.Do(ActionClick); ev.Accepted {
		t.Error("Do(ActionClick) must not be accepted")
	}
}

func TestAction_String(t *testing.T) {
	for a, want := range map[Action]string{
		ActionNone: "none", ActionClick: "click", ActionReset: "reset",
		ActionToggleDim: "toggle-dim", ActionToggleLabels: "toggle-labels", Action(42): "Action(42)",
	} {
		if got := a.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
