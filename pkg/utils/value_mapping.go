package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// 像素 ↔ 数值映射
//
// span 为滑块可移动的像素范围（轨道长度 - 滑块宽度），必须大于 0；
// from < to 由配置校验保证。

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ValueToPixel 数值转换为滑块左边缘的像素偏移，结果限制在 [0, span]
//
// ValueToPixel(from) == 0，ValueToPixel(to) == span，均为精确相等
func ValueToPixel(value, from, to, span float64) float64 {
	return Clamp((value-from)/(to-from)*span, 0, span)
}

// PixelToValue 像素偏移转换为数值，并按 precision 位小数舍入
//
// 像素先被限制在 [0, span]；两个端点直接返回 from / to，
// 避免 from + (to-from) 的浮点误差
func PixelToValue(x, from, to, span float64, precision int) float64 {
	x = Clamp(x, 0, span)
	switch x {
	case 0:
		return RoundValue(from, precision)
	case span:
		return RoundValue(to, precision)
	}
	return RoundValue(from+(to-from)*(x/span), precision)
}

// RoundValue 按 precision 位小数做银行家舍入（四舍六入五成双）
func RoundValue(value float64, precision int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, _ := decimal.NewFromFloat(value).RoundBank(int32(precision)).Float64()
	return rounded
}

// FormatValue 将数值格式化为固定 precision 位小数的文本
func FormatValue(value float64, precision int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero.StringFixed(int32(precision))
	}
	return decimal.NewFromFloat(value).StringFixedBank(int32(precision))
}
