package systems

import (
	"log"

	"github.com/decker502/rangeslider/pkg/components"
	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/decker502/rangeslider/pkg/types"
	"github.com/decker502/rangeslider/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerInput 输入系统的指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	// Wheel 返回本帧滚轮增量 (x, y)，y 为正表示向上
	Wheel() (float64, float64)
}

// ebitenPointerInput Ebitengine 默认实现
type ebitenPointerInput struct{}

func (e *ebitenPointerInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenPointerInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	// 使用支持触摸的按下检测
	return utils.IsPointerPressed()
}

func (e *ebitenPointerInput) Wheel() (float64, float64) {
	return 0, utils.GetWheelDelta()
}

// defaultPointerInput 默认指针输入实例
var defaultPointerInput PointerInput = &ebitenPointerInput{}

// InputSystem 画布输入分发系统
//
// Ebitengine 只提供逐帧轮询的输入状态，本系统每帧比较一次状态，
// 把变化转换为离散事件分发给画布上的绑定：
//   - 指针所在的最上层画布变化时发送 Leave / Enter
//   - 指针移动时向指针下的画布（或按下时捕获的画布）发送 Motion，
//     并向全局绑定发送屏幕坐标的 Motion
//   - 主按键按下时向指针下的画布发送 ButtonPress，并由该画布捕获指针
//   - 主按键释放时向捕获画布发送 ButtonRelease，此后补发被推迟的 Leave / Enter
//   - 滚轮向指针下的画布发送 Wheel
//
// 捕获期间，捕获画布的 Enter / Leave 被推迟到释放之后。
type InputSystem struct {
	entityManager *ecs.EntityManager
	mouseInput    PointerInput

	// 全局绑定（不限于某块画布），事件坐标为屏幕坐标
	globals      *components.BindingComponent
	nextListener types.ListenerID

	hasLast      bool
	lastX, lastY float64
	wasPressed   bool

	hover ecs.EntityID // 指针下的最上层画布
	grab  ecs.EntityID // 按下时捕获指针的画布
}

// NewInputSystem 创建输入分发系统
func NewInputSystem(em *ecs.EntityManager) *InputSystem {
	return NewInputSystemWithInput(em, defaultPointerInput)
}

// NewInputSystemWithInput 创建带自定义指针输入的输入系统（用于测试）
func NewInputSystemWithInput(em *ecs.EntityManager, input PointerInput) *InputSystem {
	return &InputSystem{
		entityManager: em,
		mouseInput:    input,
		globals:       components.NewBindingComponent(),
		nextListener:  1,
	}
}

// NextListenerID 分配一个新的绑定 ID（画布绑定与全局绑定共用同一序列）
func (s *InputSystem) NextListenerID() types.ListenerID {
	id := s.nextListener
	s.nextListener++
	return id
}

// BindAll 注册全局事件绑定，handler 收到的坐标为屏幕坐标
func (s *InputSystem) BindAll(kind types.EventKind, handler types.Handler) types.ListenerID {
	id := s.NextListenerID()
	s.globals.Add(kind, id, handler)
	return id
}

// UnbindAll 解除全局绑定，返回绑定是否存在
func (s *InputSystem) UnbindAll(id types.ListenerID) bool {
	return s.globals.Remove(id)
}

// GlobalBindingCount 返回全局绑定数量
func (s *InputSystem) GlobalBindingCount() int {
	return s.globals.Len()
}

// ReleaseCanvas 画布销毁时清除其捕获/悬停状态
func (s *InputSystem) ReleaseCanvas(canvas ecs.EntityID) {
	if s.grab == canvas {
		s.grab = ecs.InvalidEntity
	}
	if s.hover == canvas {
		s.hover = ecs.InvalidEntity
	}
}

// GrabbedCanvas 返回当前捕获指针的画布（无则为 InvalidEntity）
func (s *InputSystem) GrabbedCanvas() ecs.EntityID {
	return s.grab
}

// CursorShape 返回应显示的光标形状：捕获画布优先，其次是指针下的画布
func (s *InputSystem) CursorShape() ebiten.CursorShapeType {
	target := s.grab
	if target == ecs.InvalidEntity {
		target = s.hover
	}
	if canvas, ok := ecs.GetComponent[*components.CanvasComponent](s.entityManager, target); ok {
		return canvas.Cursor
	}
	return ebiten.CursorShapeDefault
}

// Update 轮询输入并分发事件
func (s *InputSystem) Update(deltaTime float64) {
	mx, my := s.mouseInput.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := s.mouseInput.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, wheelY := s.mouseInput.Wheel()

	moved := !s.hasLast || x != s.lastX || y != s.lastY
	s.hasLast, s.lastX, s.lastY = true, x, y

	// 1. Enter / Leave
	s.hover = s.topmostCanvasAt(x, y)
	s.syncPointerInside(x, y)

	// 2. Motion
	if moved {
		target := s.grab
		if target == ecs.InvalidEntity {
			target = s.hover
		}
		if target != ecs.InvalidEntity {
			s.dispatch(target, types.EventMotion, x, y, 0)
		}
		for _, h := range s.globals.Handlers(types.EventMotion) {
			h(types.Event{Kind: types.EventMotion, X: x, Y: y})
		}
	}

	// 3. 按下 / 释放
	if pressed && !s.wasPressed {
		if s.hover != ecs.InvalidEntity {
			s.grab = s.hover
			s.dispatch(s.grab, types.EventButtonPress, x, y, 0)
		}
	} else if !pressed && s.wasPressed {
		if grabbed := s.grab; grabbed != ecs.InvalidEntity {
			s.grab = ecs.InvalidEntity
			s.dispatch(grabbed, types.EventButtonRelease, x, y, 0)
			// 补发捕获期间被推迟的 Enter / Leave
			s.hover = s.topmostCanvasAt(x, y)
			s.syncPointerInside(x, y)
		}
	}
	s.wasPressed = pressed

	// 4. 滚轮
	if wheelY != 0 && s.hover != ecs.InvalidEntity {
		s.dispatch(s.hover, types.EventWheel, x, y, wheelY)
	}
}

// topmostCanvasAt 返回包含屏幕坐标 (x, y) 的最上层（最后创建的）画布
func (s *InputSystem) topmostCanvasAt(x, y float64) ecs.EntityID {
	top := ecs.InvalidEntity
	for _, id := range ecs.GetEntitiesWith2[*components.CanvasComponent, *components.PositionComponent](s.entityManager) {
		canvas, _ := ecs.GetComponent[*components.CanvasComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if canvas.Contains(x-pos.X, y-pos.Y) {
			top = id
		}
	}
	return top
}

// syncPointerInside 根据 hover 更新各画布的 PointerInside，并发送 Leave / Enter
// 捕获画布在捕获期间保持原状态
func (s *InputSystem) syncPointerInside(x, y float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CanvasComponent](s.entityManager) {
		if id == s.grab {
			continue
		}
		canvas, ok := ecs.GetComponent[*components.CanvasComponent](s.entityManager, id)
		if !ok {
			continue
		}
		inside := id == s.hover
		if inside == canvas.PointerInside {
			continue
		}
		canvas.PointerInside = inside
		if inside {
			s.dispatch(id, types.EventEnter, x, y, 0)
		} else {
			s.dispatch(id, types.EventLeave, x, y, 0)
		}
	}
}

// dispatch 向画布发送事件，坐标转换为画布局部坐标
func (s *InputSystem) dispatch(canvas ecs.EntityID, kind types.EventKind, x, y, delta float64) {
	bindings, ok := ecs.GetComponent[*components.BindingComponent](s.entityManager, canvas)
	if !ok {
		return
	}

	event := types.Event{Kind: kind, X: x, Y: y, Delta: delta}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, canvas); ok {
		event.X -= pos.X
		event.Y -= pos.Y
	}

	for _, h := range bindings.Handlers(kind) {
		// 处理函数可能销毁画布，之后的绑定不再调用
		if !s.entityManager.IsAlive(canvas) {
			log.Printf("[InputSystem] Canvas %d destroyed during %s dispatch", canvas, kind)
			return
		}
		h(event)
	}
}
