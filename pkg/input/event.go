// Package input 把指针输入转换为显式的事件类型并分发给命中的目标
package input

import "github.com/decker502/tapreward/pkg/render"

// EventKind 指针事件类型
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerUp
	EventPointerOver
	EventPointerOut
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerOver:
		return "pointerover"
	case EventPointerOut:
		return "pointerout"
	default:
		return "unknown"
	}
}

// Event 一次指针事件，Target 由 Router 在命中测试后填入
type Event struct {
	Kind   EventKind
	X, Y   float64
	Target Target
}

// Target 可接收指针事件的对象
type Target interface {
	Bounds() render.Rect
	HandleInput(ev Event)
}

// Inside 事件坐标是否落在 r 内
func (ev Event) Inside(r render.Rect) bool {
	return r.Contains(ev.X, ev.Y)
}
