package config

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/rangeslider/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 支持的标签字体
const (
	FontGoRegular = "goregular"
	FontGoMono    = "gomono"
	FontGoBold    = "gobold"
)

// FontConfig 标签字体配置
type FontConfig struct {
	Family string  `yaml:"family"` // 字体名：goregular / gomono / gobold
	Size   float64 `yaml:"size"`   // 字号（像素）
}

// SliderConfig 滑块控件配置
// 构造后不可变；所有尺寸单位为像素
type SliderConfig struct {
	// 几何尺寸
	Length         float64 `yaml:"length"`         // 轨道长度
	TrackThickness float64 `yaml:"trackThickness"` // 轨道高度
	HandleWidth    float64 `yaml:"handleWidth"`    // 滑块宽度
	HandleHeight   float64 `yaml:"handleHeight"`   // 滑块高度，同时决定控件高度

	// 数值标签
	ShowValue    bool       `yaml:"showValue"`    // 是否显示数值
	LabelFont    FontConfig `yaml:"labelFont"`    // 标签字体
	LabelColor   string     `yaml:"labelColor"`   // 标签文字颜色
	LabelPadding float64    `yaml:"labelPadding"` // 标签与轨道的间距

	// 颜色
	TrackColor         string `yaml:"trackColor"`         // 轨道背景色
	FilledColor        string `yaml:"filledColor"`        // 已选区域颜色
	HandleColor        string `yaml:"handleColor"`        // 滑块常态颜色
	HandleHoverColor   string `yaml:"handleHoverColor"`   // 滑块悬停颜色
	HandlePressedColor string `yaml:"handlePressedColor"` // 滑块按下颜色

	// 数值范围
	From      float64 `yaml:"from"`      // 起始值
	To        float64 `yaml:"to"`        // 结束值
	Precision int     `yaml:"precision"` // 小数位数
	WheelStep float64 `yaml:"wheelStep"` // 滚轮步长

	// OnChange 数值被控件修改后调用（无参数，回调自行读取绑定值）
	OnChange func() `yaml:"-"`
}

// SliderColors 解析后的颜色
type SliderColors struct {
	Track         color.RGBA
	Filled        color.RGBA
	Handle        color.RGBA
	HandleHover   color.RGBA
	HandlePressed color.RGBA
	Label         color.RGBA
}

// DefaultSliderConfig 返回默认配置
func DefaultSliderConfig() SliderConfig {
	return SliderConfig{
		Length:             150,
		TrackThickness:     5,
		HandleWidth:        15,
		HandleHeight:       20,
		ShowValue:          true,
		LabelFont:          FontConfig{Family: FontGoRegular, Size: 10},
		LabelColor:         "black",
		LabelPadding:       10,
		TrackColor:         "white",
		FilledColor:        "red",
		HandleColor:        "#CDCDCD",
		HandleHoverColor:   "#A6A6A6",
		HandlePressedColor: "#606060",
		From:               0,
		To:                 100,
		Precision:          0,
		WheelStep:          1,
	}
}

// UnmarshalYAML 在默认配置之上覆盖 YAML 中出现的字段
func (c *SliderConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain SliderConfig
	p := plain(DefaultSliderConfig())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = SliderConfig(p)
	return nil
}

// ParseSliderConfig 从 YAML 数据解析滑块配置并校验
func ParseSliderConfig(data []byte) (SliderConfig, error) {
	cfg := DefaultSliderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SliderConfig{}, fmt.Errorf("failed to parse slider config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SliderConfig{}, err
	}
	return cfg, nil
}

// LoadSliderConfig 从 YAML 文件加载滑块配置
// 参数：
//
//	path - 配置文件路径，"data/" 前缀读取内置文件
//
// 返回：
//
//	SliderConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败
func LoadSliderConfig(path string) (SliderConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return SliderConfig{}, fmt.Errorf("failed to read slider config %s: %w", path, err)
	}

	cfg, err := ParseSliderConfig(data)
	if err != nil {
		return SliderConfig{}, fmt.Errorf("slider config %s: %w", path, err)
	}

	log.Printf("[Config] Loaded slider config from %s (range %g..%g, precision %d)", path, cfg.From, cfg.To, cfg.Precision)
	return cfg, nil
}

// MaxPrecision 小数位数上限（float64 可表示的十进制有效位数）
const MaxPrecision = 15

// Span 返回滑块可移动的像素范围（轨道长度 - 滑块宽度）
func (c SliderConfig) Span() float64 {
	return c.Length - c.HandleWidth
}

// Validate 校验配置
//
// 返回的错误均为 *ConfigError，满足 errors.Is(err, ErrInvalidConfig)
func (c SliderConfig) Validate() error {
	numbers := []struct {
		name  string
		value float64
	}{
		{"from", c.From},
		{"to", c.To},
		{"length", c.Length},
		{"trackThickness", c.TrackThickness},
		{"handleWidth", c.HandleWidth},
		{"handleHeight", c.HandleHeight},
		{"wheelStep", c.WheelStep},
		{"labelPadding", c.LabelPadding},
		{"labelFont.size", c.LabelFont.Size},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return newConfigError(n.name, n.value, "must be a finite number")
		}
	}

	if c.To <= c.From {
		return newConfigError("to", c.To, "must be greater than from (%g)", c.From)
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return newConfigError("precision", c.Precision, "must be between 0 and %d", MaxPrecision)
	}
	if c.HandleWidth <= 0 {
		return newConfigError("handleWidth", c.HandleWidth, "must be positive")
	}
	if c.Length <= c.HandleWidth {
		return newConfigError("length", c.Length, "must be greater than handleWidth (%g)", c.HandleWidth)
	}
	if c.HandleHeight <= 0 {
		return newConfigError("handleHeight", c.HandleHeight, "must be positive")
	}
	if c.TrackThickness <= 0 {
		return newConfigError("trackThickness", c.TrackThickness, "must be positive")
	}
	if c.WheelStep < 0 {
		return newConfigError("wheelStep", c.WheelStep, "must not be negative")
	}
	if c.ShowValue {
		if c.LabelFont.Size <= 0 {
			return newConfigError("labelFont.size", c.LabelFont.Size, "must be positive")
		}
		switch c.LabelFont.Family {
		case FontGoRegular, FontGoMono, FontGoBold:
		default:
			return newConfigError("labelFont.family", c.LabelFont.Family, "unknown font family")
		}
		if c.LabelPadding < 0 {
			return newConfigError("labelPadding", c.LabelPadding, "must not be negative")
		}
	}

	_, err := c.ResolveColors()
	return err
}

// ResolveColors 解析全部颜色字符串
func (c SliderConfig) ResolveColors() (SliderColors, error) {
	var colors SliderColors
	fields := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"trackColor", c.TrackColor, &colors.Track},
		{"filledColor", c.FilledColor, &colors.Filled},
		{"handleColor", c.HandleColor, &colors.Handle},
		{"handleHoverColor", c.HandleHoverColor, &colors.HandleHover},
		{"handlePressedColor", c.HandlePressedColor, &colors.HandlePressed},
		{"labelColor", c.LabelColor, &colors.Label},
	}

	for _, f := range fields {
		parsed, err := ParseColor(f.value)
		if err != nil {
			return SliderColors{}, newConfigError(f.name, f.value, "%v", err)
		}
		*f.dst = parsed
	}
	return colors, nil
}
