package utils

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureTextWidth 测量单行文本宽度（像素）
func MeasureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}

	width, _ := text.Measure(textStr, face, 0)
	return width
}

// WidestText 返回一组文本中的最大宽度
// 用于按端点值估算数值标签需要的宽度，measure 为单行文本测量函数
func WidestText(measure func(string) float64, texts ...string) float64 {
	widest := 0.0
	for _, s := range texts {
		if w := measure(s); w > widest {
			widest = w
		}
	}
	return widest
}
