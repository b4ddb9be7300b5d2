package components

import (
	"image/color"

	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CanvasItemComponent 标记实体是某块画布上的图元
type CanvasItemComponent struct {
	Canvas ecs.EntityID // 所属画布
	Order  int          // 绘制顺序，越大越靠上
}

// RectComponent 填充矩形图元，坐标相对于画布左上角
type RectComponent struct {
	X0, Y0, X1, Y1 float64
	Fill           color.Color
}

// TextComponent 文字图元
// (X, Y) 为锚点：文字左边缘、垂直居中
type TextComponent struct {
	X, Y  float64
	Text  string
	Face  text.Face
	Color color.Color
}
