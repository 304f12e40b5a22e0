package input

import "github.com/decker502/tapreward/pkg/utils"

// EbitenSource 每帧轮询 ebiten 的鼠标和触摸状态并喂给 Router
type EbitenSource struct {
	lastX, lastY int
	seen         bool
}

// NewEbitenSource 创建 ebiten 输入源
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Update 读取当前帧的指针状态，在主循环 Update 中调用
func (s *EbitenSource) Update(r *Router) {
	s.Feed(r, utils.ReadPointer())
}

// Feed 将一帧指针快照转换为路由调用
func (s *EbitenSource) Feed(r *Router, p utils.PointerSnapshot) {
	x, y := float64(p.X), float64(p.Y)

	if !s.seen || p.X != s.lastX || p.Y != s.lastY {
		r.Move(x, y)
		s.lastX, s.lastY, s.seen = p.X, p.Y, true
	}
	if p.JustPressed {
		r.Down(x, y)
	}
	if p.JustReleased {
		r.Up(x, y)
	}
}
