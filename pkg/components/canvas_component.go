package components

import (
	"github.com/decker502/rangeslider/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// PositionComponent 画布左上角在屏幕上的位置
type PositionComponent struct {
	X, Y float64
}

// CanvasComponent 标记实体是一块可绘制、可接收输入的画布
type CanvasComponent struct {
	Width, Height float64

	// Cursor 指针位于该画布上时请求的光标形状
	Cursor ebiten.CursorShapeType

	// PointerInside 指针当前是否在画布区域内（由 InputSystem 维护）
	PointerInside bool

	// NextOrder 下一个图元的绘制顺序
	NextOrder int
}

// Contains 检查画布局部坐标是否在画布范围内（含边界）
func (c *CanvasComponent) Contains(x, y float64) bool {
	return x >= 0 && x <= c.Width && y >= 0 && y <= c.Height
}

// binding 单个事件绑定
type binding struct {
	id      types.ListenerID
	handler types.Handler
}

// BindingComponent 保存画布上的事件绑定
// 同一事件类型的处理函数按绑定顺序调用
type BindingComponent struct {
	handlers map[types.EventKind][]binding
}

// NewBindingComponent 创建空的绑定表
func NewBindingComponent() *BindingComponent {
	return &BindingComponent{handlers: make(map[types.EventKind][]binding)}
}

// Add 添加绑定
func (b *BindingComponent) Add(kind types.EventKind, id types.ListenerID, handler types.Handler) {
	b.handlers[kind] = append(b.handlers[kind], binding{id: id, handler: handler})
}

// Remove 按 ID 删除绑定，返回是否存在
func (b *BindingComponent) Remove(id types.ListenerID) bool {
	for kind, list := range b.handlers {
		for i, bd := range list {
			if bd.id == id {
				b.handlers[kind] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Handlers 返回某类事件的处理函数快照
// 返回副本，处理函数在回调中解绑不会影响本次分发
func (b *BindingComponent) Handlers(kind types.EventKind) []types.Handler {
	list := b.handlers[kind]
	result := make([]types.Handler, len(list))
	for i, bd := range list {
		result[i] = bd.handler
	}
	return result
}

// Len 返回绑定总数
func (b *BindingComponent) Len() int {
	n := 0
	for _, list := range b.handlers {
		n += len(list)
	}
	return n
}
