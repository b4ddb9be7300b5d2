// Package app 提供演示程序的核心包装器
//
// 该包把窗口内的全部控件组装成一个 ebiten.Game：
// 按 AppConfig 创建画布和 RangeSlider，所有滑块共享同一个绑定值，
// 拖动任意一个滑块，其余滑块同步移动。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/rangeslider/pkg/canvas"
	"github.com/decker502/rangeslider/pkg/config"
	"github.com/decker502/rangeslider/pkg/ecs"
	"github.com/decker502/rangeslider/pkg/modules"
	"github.com/decker502/rangeslider/pkg/observable"
	"github.com/decker502/rangeslider/pkg/systems"
	"github.com/decker502/rangeslider/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// backgroundColor 窗口背景色
var backgroundColor = color.RGBA{R: 0xD9, G: 0xD9, B: 0xD9, A: 0xFF}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 演示配置路径，为空则使用内置配置
	ConfigPath string
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	inputSystem   *systems.InputSystem
	renderSystem  *systems.RenderSystem

	window   config.WindowConfig
	value    *observable.Float
	canvases []*canvas.Canvas
	sliders  []*modules.RangeSlider

	// 光标形状只在变化时设置
	cursor    ebiten.CursorShapeType
	setCursor func(ebiten.CursorShapeType)
	verbose   bool
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化内置数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultAppConfigPath
	}
	appConfig, err := config.LoadAppConfig(path)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	em := ecs.NewEntityManager()
	a, err := NewAppWithInput(em, appConfig, systems.NewInputSystem(em))
	if err != nil {
		return nil, err
	}
	a.verbose = cfg.Verbose
	return a, nil
}

// NewAppWithInput 使用给定的配置和输入系统创建演示程序（用于测试）
//
// 参数：
//   - em: 实体管理器
//   - appConfig: 已校验的演示配置
//   - input: 输入分发系统
//
// 返回：
//   - *App: 演示程序
//   - error: 任一滑块创建失败时返回错误，已创建的控件会被销毁
func NewAppWithInput(em *ecs.EntityManager, appConfig *config.AppConfig, input *systems.InputSystem) (*App, error) {
	a := &App{
		entityManager: em,
		inputSystem:   input,
		renderSystem:  systems.NewRenderSystem(em),
		window:        appConfig.Window,
		value:         observable.NewFloat(appConfig.InitialValue),
		cursor:        ebiten.CursorShapeDefault,
		setCursor:     ebiten.SetCursorShape,
	}

	for i, entry := range appConfig.Sliders {
		if err := a.addSlider(i, entry); err != nil {
			a.Close()
			return nil, err
		}
	}

	log.Printf("[App] Created %d sliders, initial value %v", len(a.sliders), a.value.Get())
	return a, nil
}

// addSlider 创建一块画布及其上的滑块
func (a *App) addSlider(index int, entry config.SliderEntry) error {
	name := entry.Name
	if name == "" {
		name = fmt.Sprintf("slider-%d", index)
	}

	sliderConfig := entry.Slider
	precision := sliderConfig.Precision
	sliderConfig.OnChange = func() {
		log.Printf("[App] %s changed value to %s", name, utils.FormatValue(a.value.Get(), precision))
	}

	// 画布尺寸由滑块按配置重新设置
	c := canvas.New(a.entityManager, a.inputSystem, entry.X, entry.Y, 0, 0)
	slider, err := modules.NewRangeSlider(c, a.value, sliderConfig)
	if err != nil {
		c.Destroy()
		return fmt.Errorf("滑块 %s 创建失败: %w", name, err)
	}

	a.canvases = append(a.canvases, c)
	a.sliders = append(a.sliders, slider)
	return nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	deltaTime := 1.0 / 60.0
	a.inputSystem.Update(deltaTime)

	if shape := a.inputSystem.CursorShape(); shape != a.cursor {
		a.cursor = shape
		a.setCursor(shape)
	}

	a.entityManager.RemoveMarkedEntities()
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.renderSystem.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸（与窗口尺寸一致）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.window.Width, a.window.Height
}

// Window 返回窗口配置
func (a *App) Window() config.WindowConfig {
	return a.window
}

// Value 返回所有滑块共享的绑定值
func (a *App) Value() *observable.Float {
	return a.value
}

// Sliders 返回已创建的滑块
func (a *App) Sliders() []*modules.RangeSlider {
	return a.sliders
}

// Canvases 返回滑块所在的画布，与 Sliders 一一对应
func (a *App) Canvases() []*canvas.Canvas {
	return a.canvases
}

// Close 销毁所有滑块
func (a *App) Close() {
	for _, s := range a.sliders {
		s.Destroy()
	}
	a.entityManager.RemoveMarkedEntities()
	log.Printf("[App] Closed %d sliders", len(a.sliders))
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
