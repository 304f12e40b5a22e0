package tween

// Driver 补间与定时器的创建接口
// 组件只依赖这个接口，由宿主决定驱动方式
type Driver interface {
	Tween(from, to, duration float64, ease EaseFunc, onUpdate func(v float64), onComplete func()) *Tween
	After(delay float64, fn func()) *Timer
}

// timeEpsilon 吸收逐帧累加 dt 带来的浮点误差
const timeEpsilon = 1e-9

type task interface {
	// step 推进 dt 秒，返回 true 表示任务已结束
	step(dt float64) bool
}

// Scheduler 由主循环驱动的单线程任务调度器
//
// 每个 Update(dt) 依次推进所有存活的补间和定时器一次。
// 新加入的任务（包括在回调中加入的）从下一次 Update 开始推进。
// 非线程安全：只应在游戏主循环中访问。
type Scheduler struct {
	tasks   []task
	pending []task
	now     float64
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Update 推进所有任务 dt 秒
func (s *Scheduler) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	s.tasks = append(s.tasks, s.pending...)
	s.pending = s.pending[:0]

	alive := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.step(dt) {
			alive = append(alive, t)
		}
	}
	// 释放被移除任务的引用
	for i := len(alive); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = alive
}

// Now 返回调度器累计推进的时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Len 返回存活和待启动的任务总数
func (s *Scheduler) Len() int {
	return len(s.tasks) + len(s.pending)
}

func (s *Scheduler) add(t task) {
	s.pending = append(s.pending, t)
}

// Tween 创建一个从 from 到 to、时长 duration 秒的补间
//
// 每次推进调用 onUpdate(当前值)；到达终点时先以终值调用 onUpdate，再调用 onComplete。
// duration <= 0 的补间在下一次 Update 时直接完成。ease 为 nil 时使用线性。
func (s *Scheduler) Tween(from, to, duration float64, ease EaseFunc, onUpdate func(v float64), onComplete func()) *Tween {
	if ease == nil {
		ease = EaseLinear
	}
	tw := &Tween{
		owner:      s,
		from:       from,
		to:         to,
		value:      from,
		duration:   duration,
		ease:       ease,
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
	tw.queued = true
	s.add(tw)
	return tw
}

// After 创建一个 delay 秒后执行 fn 的一次性定时器
func (s *Scheduler) After(delay float64, fn func()) *Timer {
	tm := &Timer{delay: delay, fn: fn}
	s.add(tm)
	return tm
}

// Tween 单个补间任务
type Tween struct {
	owner *Scheduler

	from, to   float64
	value      float64
	elapsed    float64
	duration   float64
	ease       EaseFunc
	onUpdate   func(v float64)
	onComplete func()

	queued   bool
	finished bool
	stopped  bool
}

func (tw *Tween) step(dt float64) bool {
	if tw.stopped {
		tw.queued = false
		return true
	}

	tw.elapsed += dt
	if tw.duration <= 0 || tw.elapsed >= tw.duration-timeEpsilon {
		// 往返类缓动在终点回到起点，其余缓动精确落在 to 上
		if e := tw.ease(1); e == 1 {
			tw.value = tw.to
		} else {
			tw.value = Lerp(tw.from, tw.to, e)
		}
		tw.finished = true
		tw.queued = false
		if tw.onUpdate != nil {
			tw.onUpdate(tw.value)
		}
		if tw.onComplete != nil {
			tw.onComplete()
		}
		// onComplete 中可能调用了 Redirect，此时任务已重新排队
		return true
	}

	tw.value = Lerp(tw.from, tw.to, tw.ease(tw.elapsed/tw.duration))
	if tw.onUpdate != nil {
		tw.onUpdate(tw.value)
	}
	return false
}

// Redirect 让补间从 from 重新开始朝 to 运动，时长和缓动不变
// 已结束或已停止的补间会重新排队
func (tw *Tween) Redirect(from, to float64) {
	tw.from, tw.to = from, to
	tw.value = from
	tw.elapsed = 0
	tw.finished = false
	tw.stopped = false
	if !tw.queued {
		tw.queued = true
		tw.owner.add(tw)
	}
}

// Stop 取消补间，不再调用任何回调
func (tw *Tween) Stop() {
	tw.stopped = true
}

// Value 返回补间最近一次计算的值
func (tw *Tween) Value() float64 {
	return tw.value
}

// Target 返回补间终点
func (tw *Tween) Target() float64 {
	return tw.to
}

// Running 补间是否仍在推进
func (tw *Tween) Running() bool {
	return !tw.finished && !tw.stopped
}

// Timer 一次性定时器
type Timer struct {
	delay   float64
	elapsed float64
	fn      func()
	fired   bool
	stopped bool
}

func (tm *Timer) step(dt float64) bool {
	if tm.stopped {
		return true
	}
	tm.elapsed += dt
	if tm.elapsed < tm.delay-timeEpsilon {
		return false
	}
	tm.fired = true
	if tm.fn != nil {
		tm.fn()
	}
	return true
}

// Stop 取消定时器
func (tm *Timer) Stop() {
	tm.stopped = true
}

// Fired 定时器是否已触发
func (tm *Timer) Fired() bool {
	return tm.fired
}
