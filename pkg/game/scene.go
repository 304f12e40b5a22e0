package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个游戏场景（加载界面、主界面）
type Scene interface {
	// Update 推进场景逻辑，deltaTime 单位为秒
	Update(deltaTime float64)

	// Draw 绘制场景
	Draw(screen *ebiten.Image)
}

// Resizable 可选接口，逻辑屏幕尺寸变化时调用
type Resizable interface {
	Resize(width, height int)
}

// Disposable 可选接口，场景被切换掉时调用
type Disposable interface {
	Dispose()
}
