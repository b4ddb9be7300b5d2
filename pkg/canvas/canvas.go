// Package canvas 提供以 ECS 存储的保留模式画布
//
// 一块 Canvas 对应屏幕上的一个矩形区域，上面可以创建矩形和文字图元，
// 之后通过 ID 修改坐标、颜色和文字。绘制由 systems.RenderSystem 完成，
// 输入事件由 systems.InputSystem 分发到 Bind/BindAll 注册的处理函数。
package canvas

import (
	"image/color"
	"log"

	"github.com/decker502/rangeslider/pkg/components"
	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/decker502/rangeslider/pkg/systems"
	"github.com/decker502/rangeslider/pkg/types"
	"github.com/decker502/rangeslider/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ItemID 画布图元标识
type ItemID = ecs.EntityID

// Canvas 画布
// 销毁后所有操作均为空操作
type Canvas struct {
	entityManager *ecs.EntityManager
	input         *systems.InputSystem
	id            ecs.EntityID

	items   []ItemID
	globals []types.ListenerID

	destroying bool
	destroyed  bool
}

// New 在屏幕 (x, y) 处创建 width x height 的画布
func New(em *ecs.EntityManager, input *systems.InputSystem, x, y, width, height float64) *Canvas {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CanvasComponent{
		Width:  width,
		Height: height,
		Cursor: ebiten.CursorShapeDefault,
	})
	ecs.AddComponent(em, id, components.NewBindingComponent())

	return &Canvas{
		entityManager: em,
		input:         input,
		id:            id,
	}
}

// ID 返回画布实体 ID
func (c *Canvas) ID() ecs.EntityID {
	return c.id
}

func (c *Canvas) component() (*components.CanvasComponent, bool) {
	if c.destroyed {
		return nil, false
	}
	return ecs.GetComponent[*components.CanvasComponent](c.entityManager, c.id)
}

// Size 返回画布尺寸
func (c *Canvas) Size() (width, height float64) {
	if comp, ok := c.component(); ok {
		return comp.Width, comp.Height
	}
	return 0, 0
}

// SetSize 修改画布尺寸
func (c *Canvas) SetSize(width, height float64) {
	if comp, ok := c.component(); ok {
		comp.Width, comp.Height = width, height
	}
}

// Position 返回画布左上角的屏幕坐标
func (c *Canvas) Position() (x, y float64) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](c.entityManager, c.id); ok && !c.destroyed {
		return pos.X, pos.Y
	}
	return 0, 0
}

// SetCursor 设置指针位于画布上时的光标形状
func (c *Canvas) SetCursor(shape ebiten.CursorShapeType) {
	if comp, ok := c.component(); ok {
		comp.Cursor = shape
	}
}

// Cursor 返回画布请求的光标形状
func (c *Canvas) Cursor() ebiten.CursorShapeType {
	if comp, ok := c.component(); ok {
		return comp.Cursor
	}
	return ebiten.CursorShapeDefault
}

// newItem 创建图元实体并分配绘制顺序
func (c *Canvas) newItem() (ItemID, bool) {
	comp, ok := c.component()
	if !ok {
		return ecs.InvalidEntity, false
	}
	id := c.entityManager.CreateEntity()
	ecs.AddComponent(c.entityManager, id, &components.CanvasItemComponent{
		Canvas: c.id,
		Order:  comp.NextOrder,
	})
	comp.NextOrder++
	c.items = append(c.items, id)
	return id, true
}

// CreateRectangle 创建填充矩形，(x0, y0) 与 (x1, y1) 为对角顶点
func (c *Canvas) CreateRectangle(x0, y0, x1, y1 float64, fill color.Color) ItemID {
	id, ok := c.newItem()
	if !ok {
		return ecs.InvalidEntity
	}
	ecs.AddComponent(c.entityManager, id, &components.RectComponent{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		Fill: fill,
	})
	return id
}

// CreateText 创建文字，(x, y) 为左边缘垂直居中的锚点
func (c *Canvas) CreateText(x, y float64, s string, face text.Face, fill color.Color) ItemID {
	id, ok := c.newItem()
	if !ok {
		return ecs.InvalidEntity
	}
	ecs.AddComponent(c.entityManager, id, &components.TextComponent{
		X: x, Y: y,
		Text:  s,
		Face:  face,
		Color: fill,
	})
	return id
}

// Coords 返回矩形图元的坐标
func (c *Canvas) Coords(item ItemID) (x0, y0, x1, y1 float64, ok bool) {
	rect, found := c.rect(item)
	if !found {
		return 0, 0, 0, 0, false
	}
	return rect.X0, rect.Y0, rect.X1, rect.Y1, true
}

// SetCoords 修改矩形图元的坐标
func (c *Canvas) SetCoords(item ItemID, x0, y0, x1, y1 float64) {
	if rect, ok := c.rect(item); ok {
		rect.X0, rect.Y0, rect.X1, rect.Y1 = x0, y0, x1, y1
	}
}

// Fill 返回图元颜色
func (c *Canvas) Fill(item ItemID) (color.Color, bool) {
	if rect, ok := c.rect(item); ok {
		return rect.Fill, true
	}
	if txt, ok := c.text(item); ok {
		return txt.Color, true
	}
	return nil, false
}

// SetFill 修改图元颜色（矩形填充色或文字颜色）
func (c *Canvas) SetFill(item ItemID, fill color.Color) {
	if rect, ok := c.rect(item); ok {
		rect.Fill = fill
		return
	}
	if txt, ok := c.text(item); ok {
		txt.Color = fill
	}
}

// Text 返回文字图元的内容
func (c *Canvas) Text(item ItemID) (string, bool) {
	if txt, ok := c.text(item); ok {
		return txt.Text, true
	}
	return "", false
}

// SetText 修改文字图元的内容
func (c *Canvas) SetText(item ItemID, s string) {
	if txt, ok := c.text(item); ok {
		txt.Text = s
	}
}

// MeasureText 测量文字宽度
func (c *Canvas) MeasureText(s string, face text.Face) float64 {
	return utils.MeasureTextWidth(s, face)
}

func (c *Canvas) rect(item ItemID) (*components.RectComponent, bool) {
	if !c.owns(item) {
		return nil, false
	}
	return ecs.GetComponent[*components.RectComponent](c.entityManager, item)
}

func (c *Canvas) text(item ItemID) (*components.TextComponent, bool) {
	if !c.owns(item) {
		return nil, false
	}
	return ecs.GetComponent[*components.TextComponent](c.entityManager, item)
}

// owns 检查图元属于本画布且画布未销毁
func (c *Canvas) owns(item ItemID) bool {
	if c.destroyed {
		return false
	}
	itemComp, ok := ecs.GetComponent[*components.CanvasItemComponent](c.entityManager, item)
	return ok && itemComp.Canvas == c.id
}

// Bind 注册画布事件绑定，handler 收到画布局部坐标
func (c *Canvas) Bind(kind types.EventKind, handler types.Handler) types.ListenerID {
	if c.destroyed {
		return 0
	}
	bindings, ok := ecs.GetComponent[*components.BindingComponent](c.entityManager, c.id)
	if !ok {
		return 0
	}
	id := c.input.NextListenerID()
	bindings.Add(kind, id, handler)
	return id
}

// BindAll 注册全局事件绑定（不限于指针在画布内）
// handler 收到的坐标已转换为本画布的局部坐标
func (c *Canvas) BindAll(kind types.EventKind, handler types.Handler) types.ListenerID {
	if c.destroyed {
		return 0
	}
	id := c.input.BindAll(kind, func(e types.Event) {
		x, y := c.Position()
		e.X -= x
		e.Y -= y
		handler(e)
	})
	c.globals = append(c.globals, id)
	return id
}

// Unbind 解除画布绑定或全局绑定，重复调用无副作用
func (c *Canvas) Unbind(id types.ListenerID) {
	for i, g := range c.globals {
		if g == id {
			c.globals = append(c.globals[:i], c.globals[i+1:]...)
			c.input.UnbindAll(id)
			return
		}
	}
	if bindings, ok := ecs.GetComponent[*components.BindingComponent](c.entityManager, c.id); ok {
		bindings.Remove(id)
	}
}

// BindingCount 返回画布绑定与本画布注册的全局绑定总数
func (c *Canvas) BindingCount() int {
	n := len(c.globals)
	if bindings, ok := ecs.GetComponent[*components.BindingComponent](c.entityManager, c.id); ok {
		n += bindings.Len()
	}
	return n
}

// Destroyed 返回画布是否已销毁
func (c *Canvas) Destroyed() bool {
	return c.destroyed
}

// Destroy 销毁画布
//
// 先向 Destroy 绑定发送事件，再删除全部图元、绑定和全局绑定。
// 重复调用无副作用。
func (c *Canvas) Destroy() {
	if c.destroyed || c.destroying {
		return
	}
	c.destroying = true

	if bindings, ok := ecs.GetComponent[*components.BindingComponent](c.entityManager, c.id); ok {
		for _, h := range bindings.Handlers(types.EventDestroy) {
			h(types.Event{Kind: types.EventDestroy})
		}
	}
	c.destroyed = true

	for _, id := range c.globals {
		c.input.UnbindAll(id)
	}
	c.globals = nil

	for _, item := range c.items {
		c.entityManager.DestroyEntity(item)
	}
	c.items = nil
	c.entityManager.DestroyEntity(c.id)
	c.input.ReleaseCanvas(c.id)

	log.Printf("[Canvas] Canvas %d destroyed", c.id)
}
