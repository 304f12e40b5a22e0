package input

// Router 对已注册的目标做命中测试并分发事件
//
// 后注册的目标位于上层，优先命中。指针移动时自动合成 over/out 事件。
type Router struct {
	targets []Target
	hovered Target
	pressed Target
	x, y    float64
}

// NewRouter 创建事件路由器
func NewRouter() *Router {
	return &Router{}
}

// Register 注册目标，重复注册被忽略
func (r *Router) Register(t Target) {
	for _, existing := range r.targets {
		if existing == t {
			return
		}
	}
	r.targets = append(r.targets, t)
}

// Unregister 移除目标
func (r *Router) Unregister(t Target) {
	for i, existing := range r.targets {
		if existing == t {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			break
		}
	}
	if r.hovered == t {
		r.hovered = nil
	}
	if r.pressed == t {
		r.pressed = nil
	}
}

// Clear 移除全部目标（切换场景时调用）
func (r *Router) Clear() {
	r.targets = nil
	r.hovered = nil
	r.pressed = nil
}

// HitTest 返回位于 (x, y) 的最上层目标
func (r *Router) HitTest(x, y float64) Target {
	for i := len(r.targets) - 1; i >= 0; i-- {
		if r.targets[i].Bounds().Contains(x, y) {
			return r.targets[i]
		}
	}
	return nil
}

// Move 处理指针移动，命中目标变化时依次发送 out 和 over
func (r *Router) Move(x, y float64) {
	r.x, r.y = x, y
	hit := r.HitTest(x, y)
	if hit == r.hovered {
		return
	}
	if r.hovered != nil {
		r.send(r.hovered, EventPointerOut)
	}
	r.hovered = hit
	if hit != nil {
		r.send(hit, EventPointerOver)
	}
}

// Down 处理指针按下
func (r *Router) Down(x, y float64) {
	r.Move(x, y)
	if r.hovered == nil {
		return
	}
	r.pressed = r.hovered
	r.send(r.hovered, EventPointerDown)
}

// Up 处理指针抬起
// 按下时命中的目标总会收到抬起事件，即使指针已经移出
func (r *Router) Up(x, y float64) {
	r.Move(x, y)
	target := r.pressed
	if target == nil {
		target = r.hovered
	}
	r.pressed = nil
	if target != nil {
		r.send(target, EventPointerUp)
	}
}

func (r *Router) send(t Target, kind EventKind) {
	t.HandleInput(Event{Kind: kind, X: r.x, Y: r.y, Target: t})
}
