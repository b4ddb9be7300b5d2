package config

import (
	"fmt"
	"log"

	"github.com/decker502/rangeslider/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultAppConfigPath 内置演示配置路径
const DefaultAppConfigPath = "data/app.yaml"

// WindowConfig 窗口配置
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SliderEntry 演示窗口中的一个滑块
// 滑块配置可以内联在 slider 键下，也可以用 file 键引用单独的滑块配置文件，二者互斥
type SliderEntry struct {
	Name   string       `yaml:"name"`
	X      float64      `yaml:"x"`    // 控件左上角 X 坐标
	Y      float64      `yaml:"y"`    // 控件左上角 Y 坐标
	File   string       `yaml:"file"` // 滑块配置文件路径，"data/" 前缀读取内置文件
	Slider SliderConfig `yaml:"slider"`

	inline bool // 是否写了 slider 键
}

// UnmarshalYAML 未写 slider 键时使用默认滑块配置
func (e *SliderEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain SliderEntry
	p := plain{Slider: DefaultSliderConfig()}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = SliderEntry(p)

	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			if value.Content[i].Value == "slider" {
				e.inline = true
			}
		}
	}
	return nil
}

// resolve 加载 file 引用的滑块配置，或校验内联配置
func (e *SliderEntry) resolve() error {
	if e.File == "" {
		return e.Slider.Validate()
	}
	if e.inline {
		return newConfigError("file", e.File, "cannot be combined with an inline slider config")
	}

	cfg, err := LoadSliderConfig(e.File)
	if err != nil {
		return err
	}
	e.Slider = cfg
	return nil
}

// AppConfig 演示程序配置
// 所有滑块绑定同一个值，用于观察多个控件之间的同步
type AppConfig struct {
	Window       WindowConfig  `yaml:"window"`
	InitialValue float64       `yaml:"initialValue"`
	Sliders      []SliderEntry `yaml:"sliders"`
}

// LoadAppConfig 加载演示程序配置
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config %s: %w", path, err)
	}

	cfg, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("app config %s: %w", path, err)
	}

	log.Printf("[Config] Loaded app config from %s (%d sliders)", path, len(cfg.Sliders))
	return cfg, nil
}

// ParseAppConfig 解析并校验演示程序配置
// 滑块条目的 file 引用在此通过 LoadSliderConfig 加载
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg := &AppConfig{
		Window: WindowConfig{Title: "RangeSlider", Width: 320, Height: 160},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config YAML: %w", err)
	}

	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return nil, newConfigError("window", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height), "size must be positive")
	}
	if len(cfg.Sliders) == 0 {
		return nil, newConfigError("sliders", 0, "at least one slider is required")
	}
	for i := range cfg.Sliders {
		entry := &cfg.Sliders[i]
		if err := entry.resolve(); err != nil {
			return nil, fmt.Errorf("slider %d (%s): %w", i, entry.Name, err)
		}
	}

	return cfg, nil
}
