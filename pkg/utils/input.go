// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSnapshot 当前帧的指针状态
// 鼠标和触摸统一成一个指针，触摸优先
type PointerSnapshot struct {
	X, Y         int
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	IsTouch      bool
}

// 触摸释放时 ebiten 不再提供位置，保存最后一次触摸坐标
var lastTouchX, lastTouchY int

// ReadPointer 读取当前帧的指针状态，每帧调用一次
func ReadPointer() PointerSnapshot {
	var s PointerSnapshot

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		s.X, s.Y = ebiten.TouchPosition(ids[0])
		lastTouchX, lastTouchY = s.X, s.Y
		s.JustPressed, s.Pressed, s.IsTouch = true, true, true
		return s
	}

	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		s.X, s.Y = ebiten.TouchPosition(ids[0])
		lastTouchX, lastTouchY = s.X, s.Y
		s.Pressed, s.IsTouch = true, true
		return s
	}

	if ids := inpututil.AppendJustReleasedTouchIDs(nil); len(ids) > 0 {
		s.X, s.Y = lastTouchX, lastTouchY
		s.JustReleased, s.IsTouch = true, true
		return s
	}

	s.X, s.Y = ebiten.CursorPosition()
	s.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return s
}

// IsFullscreenToggleJustPressed F11 切换全屏
func IsFullscreenToggleJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF11)
}
