package main

import (
	"flag"
	"log"

	"github.com/decker502/rangeslider/pkg/app"
	"github.com/decker502/rangeslider/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	configPath = flag.String("config", "", "演示配置文件路径（默认使用内置 data/app.yaml）")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	// 初始化内置数据
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	window := gameApp.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
