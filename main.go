// Package main 是 Tap Reward 的桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose        启用详细日志
//	--config <path>  界面配置路径（默认 data/ui.yaml）
//	--skip-loading   跳过加载场景，直接进入主界面
//
// Controls:
//
//	Click/Tap  - 点击宝箱领取奖励，点击设置按钮切换音效
//	F11        - 切换全屏
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tapreward/pkg/app"
	"github.com/decker502/tapreward/pkg/embedded"
)

var (
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag      = flag.String("config", "", "UI config path (default data/ui.yaml)")
	skipLoadingFlag = flag.Bool("skip-loading", false, "Load all resources synchronously and open the main scene")
)

func main() {
	flag.Parse()

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		ConfigPath:  *configFlag,
		SkipLoading: *skipLoadingFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	window := gameApp.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	if window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
