package systems

import (
	"testing"

	"github.com/decker502/rangeslider/pkg/components"
	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/decker502/rangeslider/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// mockPointerInput 模拟指针输入
type mockPointerInput struct {
	x, y    int
	pressed bool
	wheel   float64
}

func (m *mockPointerInput) CursorPosition() (int, int) { return m.x, m.y }

func (m *mockPointerInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return m.pressed
}

func (m *mockPointerInput) Wheel() (float64, float64) { return 0, m.wheel }

// eventRecorder 记录画布收到的事件
type eventRecorder struct {
	events []types.Event
}

func (r *eventRecorder) bindAll(em *ecs.EntityManager, s *InputSystem, canvas ecs.EntityID) {
	bindings, _ := ecs.GetComponent[*components.BindingComponent](em, canvas)
	for _, kind := range []types.EventKind{
		types.EventEnter, types.EventLeave, types.EventMotion,
		types.EventButtonPress, types.EventButtonRelease, types.EventWheel,
	} {
		bindings.Add(kind, s.NextListenerID(), func(e types.Event) {
			r.events = append(r.events, e)
		})
	}
}

func (r *eventRecorder) kinds() []types.EventKind {
	result := make([]types.EventKind, len(r.events))
	for i, e := range r.events {
		result[i] = e.Kind
	}
	return result
}

func (r *eventRecorder) reset() {
	r.events = nil
}

func equalKinds(a, b []types.EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestInputSystem() (*ecs.EntityManager, *InputSystem, *mockPointerInput) {
	em := ecs.NewEntityManager()
	input := &mockPointerInput{x: -100, y: -100}
	return em, NewInputSystemWithInput(em, input), input
}

func TestInputSystem_EnterMotionLeave(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 10, 10, 100, 20)
	rec := &eventRecorder{}
	rec.bindAll(em, s, canvas)

	tests := []struct {
		name  string
		x, y  int
		kinds []types.EventKind
	}{
		{"画布外", 0, 0, nil},
		{"进入画布", 20, 15, []types.EventKind{types.EventEnter, types.EventMotion}},
		{"画布内移动", 30, 15, []types.EventKind{types.EventMotion}},
		{"静止不动", 30, 15, nil},
		{"离开画布", 300, 15, []types.EventKind{types.EventLeave}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.reset()
			input.x, input.y = tt.x, tt.y
			s.Update(1.0 / 60.0)
			if !equalKinds(rec.kinds(), tt.kinds) {
				t.Errorf("events = %v, want %v", rec.kinds(), tt.kinds)
			}
		})
	}
}

func TestInputSystem_LocalCoordinates(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 10, 40, 100, 20)
	rec := &eventRecorder{}
	rec.bindAll(em, s, canvas)

	input.x, input.y = 25, 45
	s.Update(1.0 / 60.0)

	for _, e := range rec.events {
		if e.X != 15 || e.Y != 5 {
			t.Errorf("%v at (%v,%v), want (15,5)", e.Kind, e.X, e.Y)
		}
	}
}

func TestInputSystem_TopmostCanvas(t *testing.T) {
	em, s, input := newTestInputSystem()
	bottom := addTestCanvas(em, 0, 0, 100, 100)
	top := addTestCanvas(em, 50, 50, 100, 100)
	bottomRec, topRec := &eventRecorder{}, &eventRecorder{}
	bottomRec.bindAll(em, s, bottom)
	topRec.bindAll(em, s, top)

	input.x, input.y = 75, 75
	s.Update(1.0 / 60.0)

	if len(bottomRec.events) != 0 {
		t.Errorf("covered canvas got %v", bottomRec.kinds())
	}
	if !equalKinds(topRec.kinds(), []types.EventKind{types.EventEnter, types.EventMotion}) {
		t.Errorf("top canvas got %v", topRec.kinds())
	}
}

func TestInputSystem_GrabDefersLeave(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 0, 0, 100, 20)
	rec := &eventRecorder{}
	rec.bindAll(em, s, canvas)

	input.x, input.y = 10, 10
	s.Update(1.0 / 60.0)
	input.pressed = true
	s.Update(1.0 / 60.0)
	if s.GrabbedCanvas() != canvas {
		t.Fatalf("GrabbedCanvas() = %v, want %v", s.GrabbedCanvas(), canvas)
	}

	// 捕获期间移出画布：Motion 继续发给捕获画布，Leave 被推迟
	rec.reset()
	input.x, input.y = 300, 10
	s.Update(1.0 / 60.0)
	if !equalKinds(rec.kinds(), []types.EventKind{types.EventMotion}) {
		t.Errorf("events while grabbed = %v, want [Motion]", rec.kinds())
	}
	if rec.events[0].X != 300 {
		t.Errorf("motion X = %v, want 300", rec.events[0].X)
	}

	rec.reset()
	input.pressed = false
	s.Update(1.0 / 60.0)
	if !equalKinds(rec.kinds(), []types.EventKind{types.EventButtonRelease, types.EventLeave}) {
		t.Errorf("events on release = %v, want [ButtonRelease Leave]", rec.kinds())
	}
	if s.GrabbedCanvas() != ecs.InvalidEntity {
		t.Error("grab should be cleared after release")
	}
}

func TestInputSystem_PressOutsideCanvas(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 0, 0, 100, 20)
	rec := &eventRecorder{}
	rec.bindAll(em, s, canvas)

	// 在画布外按下后移入，不应收到按下/释放
	input.x, input.y, input.pressed = 300, 300, true
	s.Update(1.0 / 60.0)
	input.x, input.y = 10, 10
	s.Update(1.0 / 60.0)
	input.pressed = false
	s.Update(1.0 / 60.0)

	for _, e := range rec.events {
		if e.Kind == types.EventButtonPress || e.Kind == types.EventButtonRelease {
			t.Errorf("unexpected %v", e.Kind)
		}
	}
}

func TestInputSystem_Wheel(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 0, 0, 100, 20)
	rec := &eventRecorder{}
	rec.bindAll(em, s, canvas)

	input.x, input.y = 10, 10
	s.Update(1.0 / 60.0)

	rec.reset()
	input.wheel = -1
	s.Update(1.0 / 60.0)
	if len(rec.events) != 1 || rec.events[0].Kind != types.EventWheel || rec.events[0].Delta != -1 {
		t.Errorf("events = %+v, want one Wheel with delta -1", rec.events)
	}

	// 画布外的滚轮被忽略
	rec.reset()
	input.x, input.y = 300, 300
	s.Update(1.0 / 60.0)
	for _, e := range rec.events {
		if e.Kind == types.EventWheel {
			t.Error("wheel outside canvas should not be dispatched")
		}
	}
}

func TestInputSystem_GlobalBindings(t *testing.T) {
	_, s, input := newTestInputSystem()

	var got []types.Event
	id := s.BindAll(types.EventMotion, func(e types.Event) { got = append(got, e) })

	input.x, input.y = 7, 9
	s.Update(1.0 / 60.0)
	if len(got) != 1 || got[0].X != 7 || got[0].Y != 9 {
		t.Errorf("global events = %+v, want one at (7,9)", got)
	}

	if !s.UnbindAll(id) {
		t.Error("UnbindAll() should report existing binding")
	}
	if s.UnbindAll(id) {
		t.Error("second UnbindAll() should report missing binding")
	}
	if s.GlobalBindingCount() != 0 {
		t.Errorf("GlobalBindingCount() = %d", s.GlobalBindingCount())
	}
}

func TestInputSystem_DestroyDuringDispatch(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 0, 0, 100, 20)
	bindings, _ := ecs.GetComponent[*components.BindingComponent](em, canvas)

	secondCalled := false
	bindings.Add(types.EventButtonPress, s.NextListenerID(), func(types.Event) {
		em.DestroyEntity(canvas)
		s.ReleaseCanvas(canvas)
	})
	bindings.Add(types.EventButtonPress, s.NextListenerID(), func(types.Event) {
		secondCalled = true
	})

	input.x, input.y, input.pressed = 10, 10, true
	s.Update(1.0 / 60.0)

	if secondCalled {
		t.Error("handlers after destroy must not run")
	}
	if s.GrabbedCanvas() != ecs.InvalidEntity {
		t.Error("grab should be released for destroyed canvas")
	}

	input.pressed = false
	s.Update(1.0 / 60.0)
}

func TestInputSystem_CursorShape(t *testing.T) {
	em, s, input := newTestInputSystem()
	canvas := addTestCanvas(em, 0, 0, 100, 20)
	comp, _ := ecs.GetComponent[*components.CanvasComponent](em, canvas)
	comp.Cursor = ebiten.CursorShapeEWResize

	if s.CursorShape() != ebiten.CursorShapeDefault {
		t.Error("no canvas under pointer: default cursor expected")
	}

	input.x, input.y = 10, 10
	s.Update(1.0 / 60.0)
	if s.CursorShape() != ebiten.CursorShapeEWResize {
		t.Errorf("CursorShape() = %v, want EWResize", s.CursorShape())
	}
}
