package config

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/decker502/rangeslider/pkg/embedded"
)

func TestParseAppConfig(t *testing.T) {
	data := []byte(`
window:
  title: demo
  width: 300
  height: 160
initialValue: 64
sliders:
  - name: primary
    x: 10
    y: 10
    slider:
      to: 255
  - name: plain
    x: 10
    y: 60
    slider:
      to: 255
      showValue: false
`)

	cfg, err := ParseAppConfig(data)
	if err != nil {
		t.Fatalf("ParseAppConfig() error: %v", err)
	}
	if cfg.Window.Title != "demo" || cfg.InitialValue != 64 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Sliders) != 2 {
		t.Fatalf("got %d sliders, want 2", len(cfg.Sliders))
	}
	// 每个滑块都应继承默认配置
	if cfg.Sliders[1].Slider.Length != 150 || cfg.Sliders[1].Slider.ShowValue {
		t.Errorf("slider[1] = %+v", cfg.Sliders[1].Slider)
	}
	if cfg.Sliders[0].Slider.To != 255 || !cfg.Sliders[0].Slider.ShowValue {
		t.Errorf("slider[0] = %+v", cfg.Sliders[0].Slider)
	}
}

func TestParseAppConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"没有滑块", "window: {width: 100, height: 100}\n"},
		{"窗口尺寸非法", "window: {width: 0, height: 100}\nsliders: [{name: a}]\n"},
		{"滑块配置非法", "sliders:\n  - name: bad\n    slider: {from: 3, to: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppConfig([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadAppConfig_Embedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		DefaultAppConfigPath: &fstest.MapFile{Data: []byte("sliders:\n  - name: only\n")},
	})

	cfg, err := LoadAppConfig(DefaultAppConfigPath)
	if err != nil {
		t.Fatalf("LoadAppConfig() error: %v", err)
	}
	if cfg.Window.Width != 320 || len(cfg.Sliders) != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseAppConfig_SliderFile(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/wide.yaml": &fstest.MapFile{Data: []byte("to: 255\nlength: 220\nwheelStep: 5\n")},
		"data/bad.yaml":  &fstest.MapFile{Data: []byte("from: 3\nto: 1\n")},
	})

	cfg, err := ParseAppConfig([]byte(`
sliders:
  - name: wide
    file: data/wide.yaml
  - name: inline
    slider:
      to: 10
`))
	if err != nil {
		t.Fatalf("ParseAppConfig() error: %v", err)
	}

	wide := cfg.Sliders[0].Slider
	if wide.To != 255 || wide.Length != 220 || wide.WheelStep != 5 {
		t.Errorf("file slider = %+v", wide)
	}
	// 文件中未写的字段使用默认值
	if wide.HandleWidth != 15 || !wide.ShowValue {
		t.Errorf("file slider lost defaults: %+v", wide)
	}
	if cfg.Sliders[1].Slider.To != 10 {
		t.Errorf("inline slider = %+v", cfg.Sliders[1].Slider)
	}

	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"文件与内联配置同时存在", "sliders:\n  - file: data/wide.yaml\n    slider: {to: 5}\n", true},
		{"文件中配置非法", "sliders:\n  - file: data/bad.yaml\n", true},
		{"文件不存在", "sliders:\n  - file: data/missing.yaml\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseAppConfig() should fail")
			}
			if errors.Is(err, ErrInvalidConfig) != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", !tt.invalid, tt.invalid, err)
			}
		})
	}
}
