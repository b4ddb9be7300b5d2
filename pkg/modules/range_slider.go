package modules

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/rangeslider/pkg/config"
	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/decker502/rangeslider/pkg/observable"
	"github.com/decker502/rangeslider/pkg/types"
	"github.com/decker502/rangeslider/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Surface 滑块绘制所需的画布能力
// canvas.Canvas 是默认实现
type Surface interface {
	CreateRectangle(x0, y0, x1, y1 float64, fill color.Color) ecs.EntityID
	CreateText(x, y float64, s string, face text.Face, fill color.Color) ecs.EntityID
	SetCoords(item ecs.EntityID, x0, y0, x1, y1 float64)
	SetFill(item ecs.EntityID, fill color.Color)
	SetText(item ecs.EntityID, s string)
	MeasureText(s string, face text.Face) float64
	SetSize(width, height float64)
	SetCursor(shape ebiten.CursorShapeType)
	Bind(kind types.EventKind, handler types.Handler) types.ListenerID
	BindAll(kind types.EventKind, handler types.Handler) types.ListenerID
	Unbind(id types.ListenerID)
	Destroy()
}

// sliderState 交互状态
type sliderState int

const (
	stateIdle sliderState = iota
	stateHoverOutsideHandle
	stateHoverOnHandle
	stateDragging
)

func (s sliderState) String() string {
	switch s {
	case stateHoverOutsideHandle:
		return "HoverOutsideHandle"
	case stateHoverOnHandle:
		return "HoverOnHandle"
	case stateDragging:
		return "Dragging"
	default:
		return "Idle"
	}
}

// RangeSlider 自绘滑块控件
//
// 职责：
//   - 在画布上绘制轨道、已选区域、滑块和可选的数值标签
//   - 指针拖拽、点击跳转、滚轮步进修改绑定值
//   - 绑定值被外部修改时同步滑块位置与标签（不回调 OnChange）
//
// 画布坐标系：滑块左边缘 x ∈ [0, Length-HandleWidth]，
// 轨道在滑块高度内垂直居中。
type RangeSlider struct {
	surface Surface
	value   *observable.Float
	cfg     config.SliderConfig
	colors  config.SliderColors
	face    *text.GoTextFace // 仅 ShowValue 时非 nil

	width                 float64
	trackTop, trackBottom float64

	// 图元
	track  ecs.EntityID
	filled ecs.EntityID
	handle ecs.EntityID
	label  ecs.EntityID

	// 滑块左边缘像素位置
	posX float64

	// 交互状态
	pointerInside  bool
	dragging       bool
	hoveringHandle bool

	listeners    []types.ListenerID
	dragListener types.ListenerID // 拖拽期间的全局移动绑定
	subscription observable.Subscription
	destroyed    bool
}

// NewRangeSlider 创建滑块控件
//
// 参数：
//   - surface: 控件独占的画布，尺寸由控件设置
//   - value: 绑定值，控件读取并写入它
//   - cfg: 控件配置，构造后不可变
//
// 返回：
//   - *RangeSlider: 控件实例
//   - error: 配置非法时返回 *config.ConfigError（满足 errors.Is(err, config.ErrInvalidConfig)）
func NewRangeSlider(surface Surface, value *observable.Float, cfg config.SliderConfig) (*RangeSlider, error) {
	if surface == nil || value == nil {
		return nil, fmt.Errorf("range slider: surface and value are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("range slider: %w", err)
	}
	colors, err := cfg.ResolveColors()
	if err != nil {
		return nil, fmt.Errorf("range slider: %w", err)
	}

	s := &RangeSlider{
		surface: surface,
		value:   value,
		cfg:     cfg,
		colors:  colors,
	}

	if cfg.ShowValue {
		s.face, err = utils.LoadFace(cfg.LabelFont.Family, cfg.LabelFont.Size)
		if err != nil {
			return nil, fmt.Errorf("range slider: %w", err)
		}
	}

	s.layout()
	s.createItems()
	s.bindEvents()
	s.subscription = value.Subscribe(s.onValueChanged)

	log.Printf("[RangeSlider] Created (range %g..%g, precision %d, value %s)",
		cfg.From, cfg.To, cfg.Precision, utils.FormatValue(value.Get(), cfg.Precision))
	return s, nil
}

// layout 计算控件尺寸和轨道位置
//
// 宽度 = 轨道长度 + （显示数值时）间距 + 端点值文本的最大宽度。
// 文本宽度依赖字体渲染，只影响外观。
func (s *RangeSlider) layout() {
	s.width = s.cfg.Length
	if s.cfg.ShowValue {
		measure := func(str string) float64 {
			return s.surface.MeasureText(str, s.face)
		}
		widest := utils.WidestText(measure,
			utils.FormatValue(s.cfg.From, s.cfg.Precision),
			utils.FormatValue(s.cfg.To, s.cfg.Precision),
		)
		s.width += s.cfg.LabelPadding + math.Ceil(widest)
	}
	s.surface.SetSize(s.width, s.cfg.HandleHeight)

	s.trackTop = math.Floor((s.cfg.HandleHeight - s.cfg.TrackThickness) / 2)
	s.trackBottom = s.trackTop + s.cfg.TrackThickness
}

// createItems 创建轨道、已选区域、滑块和标签图元
func (s *RangeSlider) createItems() {
	current := s.value.Get()
	s.posX = s.displayPixel(current)

	s.track = s.surface.CreateRectangle(0, s.trackTop, s.cfg.Length, s.trackBottom, s.colors.Track)
	s.filled = s.surface.CreateRectangle(0, s.trackTop, s.posX, s.trackBottom, s.colors.Filled)
	s.handle = s.surface.CreateRectangle(s.posX, 0, s.posX+s.cfg.HandleWidth, s.cfg.HandleHeight, s.colors.Handle)

	if s.cfg.ShowValue {
		s.label = s.surface.CreateText(
			s.cfg.Length+s.cfg.LabelPadding, math.Floor(s.cfg.HandleHeight/2),
			utils.FormatValue(current, s.cfg.Precision), s.face, s.colors.Label,
		)
	}
}

// bindEvents 注册画布事件
func (s *RangeSlider) bindEvents() {
	s.listeners = []types.ListenerID{
		s.surface.Bind(types.EventEnter, s.onEnter),
		s.surface.Bind(types.EventMotion, s.onMotion),
		s.surface.Bind(types.EventLeave, s.onLeave),
		s.surface.Bind(types.EventButtonPress, s.onPress),
		s.surface.Bind(types.EventButtonRelease, s.onRelease),
		s.surface.Bind(types.EventWheel, s.onWheel),
		s.surface.Bind(types.EventDestroy, s.onDestroy),
	}
}

// Value 返回绑定值的当前值
func (s *RangeSlider) Value() float64 {
	return s.value.Get()
}

// HandleX 返回滑块左边缘的像素位置
func (s *RangeSlider) HandleX() float64 {
	return s.posX
}

// Size 返回控件尺寸
func (s *RangeSlider) Size() (width, height float64) {
	return s.width, s.cfg.HandleHeight
}

// Destroyed 返回控件是否已销毁
func (s *RangeSlider) Destroyed() bool {
	return s.destroyed
}

// Destroy 销毁控件及其画布，重复调用无副作用
func (s *RangeSlider) Destroy() {
	if s.destroyed {
		return
	}
	s.surface.Destroy()
	// 画布实现不一定回发 Destroy 事件
	s.teardown()
}

// state 根据内部标志推导当前交互状态
func (s *RangeSlider) state() sliderState {
	switch {
	case s.dragging:
		return stateDragging
	case !s.pointerInside:
		return stateIdle
	case s.hoveringHandle:
		return stateHoverOnHandle
	default:
		return stateHoverOutsideHandle
	}
}

func (s *RangeSlider) span() float64 {
	return s.cfg.Span()
}

func (s *RangeSlider) valueToPixel(v float64) float64 {
	return utils.ValueToPixel(v, s.cfg.From, s.cfg.To, s.span())
}

// displayPixel 绑定值对应的滑块位置，与标签一样先按 precision 舍入
func (s *RangeSlider) displayPixel(v float64) float64 {
	return s.valueToPixel(utils.RoundValue(v, s.cfg.Precision))
}

func (s *RangeSlider) pixelToValue(x float64) float64 {
	return utils.PixelToValue(x, s.cfg.From, s.cfg.To, s.span(), s.cfg.Precision)
}

// handleContains 检查画布坐标是否在滑块矩形内（含边界）
func (s *RangeSlider) handleContains(x, y float64) bool {
	return x >= s.posX && x <= s.posX+s.cfg.HandleWidth &&
		y >= 0 && y <= s.cfg.HandleHeight
}

// setHoveringHandle 切换悬停状态并更新滑块颜色
func (s *RangeSlider) setHoveringHandle(hovering bool) {
	s.hoveringHandle = hovering
	if hovering {
		s.surface.SetFill(s.handle, s.colors.HandleHover)
	} else {
		s.surface.SetFill(s.handle, s.colors.Handle)
	}
}

func (s *RangeSlider) onEnter(e types.Event) {
	s.pointerInside = true
	if !s.dragging {
		s.setHoveringHandle(s.handleContains(e.X, e.Y))
	}
}

// onMotion 画布内移动：只处理悬停，拖拽由全局绑定处理
func (s *RangeSlider) onMotion(e types.Event) {
	if !s.pointerInside || s.dragging {
		return
	}
	s.setHoveringHandle(s.handleContains(e.X, e.Y))
}

// onDragMotion 拖拽期间的全局移动，指针离开画布也继续跟随
func (s *RangeSlider) onDragMotion(e types.Event) {
	if !s.dragging {
		return
	}
	s.update(e.X)
}

func (s *RangeSlider) onLeave(e types.Event) {
	if s.dragging {
		return
	}
	s.pointerInside = false
	s.setHoveringHandle(false)
}

func (s *RangeSlider) onPress(e types.Event) {
	if s.dragging {
		return
	}
	if s.handleContains(e.X, e.Y) {
		s.startDrag()
		return
	}
	// 点击滑块之外：直接跳到点击位置
	s.update(e.X)
}

func (s *RangeSlider) onRelease(e types.Event) {
	if !s.dragging {
		return
	}
	s.stopDrag()
	s.hoveringHandle = s.handleContains(e.X, e.Y)
	// 释放时总是使用悬停色，即使指针已不在滑块上；下一次 Motion / Leave 会修正
	s.surface.SetFill(s.handle, s.colors.HandleHover)
}

// onWheel 滚轮步进，越过端点时被限制在端点
func (s *RangeSlider) onWheel(e types.Event) {
	if !s.pointerInside || s.dragging || e.Delta == 0 {
		return
	}
	v := s.value.Get()
	if e.Delta > 0 {
		v += s.cfg.WheelStep
	} else {
		v -= s.cfg.WheelStep
	}
	s.update(s.valueToPixel(v))
}

func (s *RangeSlider) onDestroy(types.Event) {
	s.teardown()
}

func (s *RangeSlider) startDrag() {
	s.dragging = true
	s.hoveringHandle = true
	s.surface.SetFill(s.handle, s.colors.HandlePressed)
	s.surface.SetCursor(ebiten.CursorShapeEWResize)
	s.dragListener = s.surface.BindAll(types.EventMotion, s.onDragMotion)
	log.Printf("[RangeSlider] Drag started at %s", utils.FormatValue(s.value.Get(), s.cfg.Precision))
}

func (s *RangeSlider) stopDrag() {
	s.dragging = false
	if s.dragListener != 0 {
		s.surface.Unbind(s.dragListener)
		s.dragListener = 0
	}
	s.surface.SetCursor(ebiten.CursorShapeDefault)
	log.Printf("[RangeSlider] Drag finished at %s", utils.FormatValue(s.value.Get(), s.cfg.Precision))
}

// update 拖拽、点击和滚轮的汇合点
//
// x 为未限制的滑块左边缘位置：限制到 [0, span] 后重绘，
// 换算为数值写入绑定值，刷新标签，最后调用 OnChange。
func (s *RangeSlider) update(x float64) {
	if s.destroyed {
		return
	}
	x = utils.Clamp(x, 0, s.span())
	s.render(x)

	s.value.Set(s.pixelToValue(x))

	s.renderLabel(s.value.Get())
	if s.cfg.OnChange != nil {
		s.cfg.OnChange()
	}
}

// onValueChanged 绑定值写入通知
// 只重绘，不写回绑定值，也不调用 OnChange；控件自身的写入也会进入这里
func (s *RangeSlider) onValueChanged(v float64) {
	if s.destroyed {
		return
	}
	s.render(s.displayPixel(v))
	s.renderLabel(v)
}

// render 把滑块和已选区域移动到 x
func (s *RangeSlider) render(x float64) {
	s.posX = x
	s.surface.SetCoords(s.handle, x, 0, x+s.cfg.HandleWidth, s.cfg.HandleHeight)
	s.surface.SetCoords(s.filled, 0, s.trackTop, x, s.trackBottom)
}

func (s *RangeSlider) renderLabel(v float64) {
	if s.cfg.ShowValue {
		s.surface.SetText(s.label, utils.FormatValue(v, s.cfg.Precision))
	}
}

// teardown 解除全部事件绑定与绑定值订阅，可在任意状态下调用
func (s *RangeSlider) teardown() {
	if s.destroyed {
		return
	}
	s.destroyed = true

	if s.dragListener != 0 {
		s.surface.Unbind(s.dragListener)
		s.dragListener = 0
	}
	for _, id := range s.listeners {
		s.surface.Unbind(id)
	}
	s.listeners = nil
	s.value.Unsubscribe(s.subscription)

	s.pointerInside = false
	s.dragging = false
	s.hoveringHandle = false

	log.Printf("[RangeSlider] Destroyed")
}
