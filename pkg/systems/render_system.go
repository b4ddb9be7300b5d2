package systems

import (
	"image"
	"math"
	"sort"

	"github.com/decker502/rangeslider/pkg/components"
	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 画布渲染系统
// 负责按创建顺序绘制每块画布上的矩形和文字图元
//
// 职责：
//   - 图元坐标相对于画布左上角，绘制时加上画布位置
//   - 绘制结果裁剪到画布范围内
//   - 矩形使用 vector 填充，文字左对齐、垂直居中
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建画布渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
	}
}

// DrawList 返回画布上需要绘制的图元，按绘制顺序排列
func (s *RenderSystem) DrawList(canvas ecs.EntityID) []ecs.EntityID {
	items := ecs.GetEntitiesWith1[*components.CanvasItemComponent](s.entityManager)

	result := make([]ecs.EntityID, 0, len(items))
	for _, id := range items {
		item, _ := ecs.GetComponent[*components.CanvasItemComponent](s.entityManager, id)
		if item.Canvas == canvas {
			result = append(result, id)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, _ := ecs.GetComponent[*components.CanvasItemComponent](s.entityManager, result[i])
		b, _ := ecs.GetComponent[*components.CanvasItemComponent](s.entityManager, result[j])
		return a.Order < b.Order
	})
	return result
}

// Draw 渲染所有画布
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	canvases := ecs.GetEntitiesWith2[*components.CanvasComponent, *components.PositionComponent](s.entityManager)

	for _, canvasID := range canvases {
		s.DrawCanvas(screen, canvasID)
	}
}

// DrawCanvas 渲染单块画布
func (s *RenderSystem) DrawCanvas(screen *ebiten.Image, canvasID ecs.EntityID) {
	canvas, ok := ecs.GetComponent[*components.CanvasComponent](s.entityManager, canvasID)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, canvasID)
	if !ok {
		return
	}

	bounds := image.Rect(
		int(math.Floor(pos.X)), int(math.Floor(pos.Y)),
		int(math.Ceil(pos.X+canvas.Width)), int(math.Ceil(pos.Y+canvas.Height)),
	).Intersect(screen.Bounds())
	if bounds.Empty() {
		return
	}
	// SubImage 保留屏幕坐标，只用于裁剪
	dst := screen.SubImage(bounds).(*ebiten.Image)

	for _, itemID := range s.DrawList(canvasID) {
		if rect, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, itemID); ok {
			s.drawRect(dst, rect, pos.X, pos.Y)
			continue
		}
		if txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, itemID); ok {
			s.drawText(dst, txt, pos.X, pos.Y)
		}
	}
}

// drawRect 绘制填充矩形，空矩形不绘制
func (s *RenderSystem) drawRect(dst *ebiten.Image, rect *components.RectComponent, originX, originY float64) {
	if rect.Fill == nil {
		return
	}
	x0, x1 := math.Min(rect.X0, rect.X1), math.Max(rect.X0, rect.X1)
	y0, y1 := math.Min(rect.Y0, rect.Y1), math.Max(rect.Y0, rect.Y1)
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return
	}

	vector.DrawFilledRect(
		dst,
		float32(originX+x0),
		float32(originY+y0),
		float32(x1-x0),
		float32(y1-y0),
		rect.Fill,
		false,
	)
}

// drawText 绘制文字，锚点为左边缘、垂直居中
func (s *RenderSystem) drawText(dst *ebiten.Image, txt *components.TextComponent, originX, originY float64) {
	if txt.Text == "" || txt.Face == nil || txt.Color == nil {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(originX+txt.X, originY+txt.Y)
	op.ColorScale.ScaleWithColor(txt.Color)
	op.PrimaryAlign = text.AlignStart
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, txt.Text, txt.Face, op)
}
