package systems

import (
	"context"
	"log"
	"math"
	"math/rand"

	"github.com/looplab/fsm"

	"github.com/decker502/tapreward/internal/particle"
	"github.com/decker502/tapreward/pkg/input"
	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/tween"
)

// SequencerState 奖励序列状态
type SequencerState string

const (
	StateIdle         SequencerState = "Idle"
	StateOpening      SequencerState = "Opening"
	StateBurstPending SequencerState = "BurstPending"
	StateClosing      SequencerState = "Closing"
)

// 状态机事件
const (
	eventTap    = "tap"
	eventBurst  = "burst"
	eventClose  = "close"
	eventSettle = "settle"
)

const (
	OpenScale     = 1.3
	OpenDuration  = 0.5  // 打开动画时长（秒）
	BurstDelay    = 0.25 // 点击后多久爆发粒子，必须小于 OpenDuration
	CloseDuration = 0.3

	// 打开时的摇晃
	WobbleAngle  = 8.0 // 最大角度（度）
	WobbleCycles = 2.0

	DefaultChestTexture = "reward_chest"
	DefaultRewardSound  = "reward_open"
	DefaultPromptText   = "TAP!"

	chestWidth   = 120.0
	chestHeight  = 100.0
	promptOffset = 80.0
)

// AudioUnlocker 音频上下文解锁
// 浏览器和移动端需要在用户手势中恢复音频上下文，成功返回 true
type AudioUnlocker interface {
	Resume() bool
}

// RewardSequencerConfig 奖励序列配置
type RewardSequencerConfig struct {
	X, Y          float64
	Texture       string
	Width, Height float64
	SoundID       string
	PromptText    string
	// Rand 决定每次爆发的粒子数，nil 时使用全局随机源
	Rand *rand.Rand
	// OnReward 每次接受点击并爆发粒子时调用
	OnReward func()
	Z        int
}

// DefaultRewardSequencerConfig 以 (x, y) 为锚点的默认配置
func DefaultRewardSequencerConfig(x, y float64) RewardSequencerConfig {
	return RewardSequencerConfig{
		X:          x,
		Y:          y,
		Texture:    DefaultChestTexture,
		Width:      chestWidth,
		Height:     chestHeight,
		SoundID:    DefaultRewardSound,
		PromptText: DefaultPromptText,
		Z:          50,
	}
}

// RewardSequencer 点击宝箱 → 打开 → 彩纸爆发 → 关闭 的动画序列
//
// 一个周期进行中时的点击全部忽略。状态切换只发生在点击事件和
// driver 回调中，不会在 fsm 回调内再次触发事件。
type RewardSequencer struct {
	config  RewardSequencerConfig
	surface render.Surface
	driver  tween.Driver
	burst   Burster
	audio   AudioUnlocker

	machine *fsm.FSM

	chest  *render.Sprite
	prompt *render.Label
	hitbox render.Rect

	openTween  *tween.Tween
	closeTween *tween.Tween
	burstTimer *tween.Timer

	audioUnlocked bool
	promptHidden  bool
	cycles        int
}

// NewRewardSequencer 创建奖励序列并把节点加入 surface
// burst 和 audio 可为 nil
func NewRewardSequencer(surface render.Surface, driver tween.Driver, burst Burster, audio AudioUnlocker, config RewardSequencerConfig) *RewardSequencer {
	if config.Texture == "" {
		config.Texture = DefaultChestTexture
	}
	if config.Width <= 0 {
		config.Width = chestWidth
	}
	if config.Height <= 0 {
		config.Height = chestHeight
	}

	rs := &RewardSequencer{
		config:  config,
		surface: surface,
		driver:  driver,
		burst:   burst,
		audio:   audio,
	}

	rs.machine = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventTap, Src: []string{string(StateIdle)}, Dst: string(StateOpening)},
			{Name: eventBurst, Src: []string{string(StateOpening)}, Dst: string(StateBurstPending)},
			{Name: eventClose, Src: []string{string(StateOpening), string(StateBurstPending)}, Dst: string(StateClosing)},
			{Name: eventSettle, Src: []string{string(StateClosing)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("[RewardSequencer] %s: %s -> %s", e.Event, e.Src, e.Dst)
			},
		},
	)

	rs.chest = render.NewSprite(config.Texture, config.X, config.Y, config.Width, config.Height)
	rs.chest.Z = config.Z
	if !surface.HasTexture(config.Texture) {
		ph := render.NewShape(render.ShapePill, 0, 0, config.Width, config.Height*0.8, render.RGB(0xf1c40f))
		ph.StrokeColor = render.RGB(0x8e5a12)
		ph.StrokeWidth = 3
		rs.chest.Placeholder = ph
	}
	surface.Add(rs.chest)

	if config.PromptText != "" {
		rs.prompt = render.NewLabel(config.PromptText, config.X, config.Y+promptOffset, 24)
		rs.prompt.StrokeColor = render.RGB(0x000000)
		rs.prompt.StrokeWidth = 2
		rs.prompt.Z = config.Z + 1
		surface.Add(rs.prompt)
	} else {
		rs.promptHidden = true
	}

	rs.hitbox = rs.chest.Bounds()
	return rs
}

// State 返回当前状态
func (rs *RewardSequencer) State() SequencerState {
	return SequencerState(rs.machine.Current())
}

// Busy 是否有周期正在进行
func (rs *RewardSequencer) Busy() bool {
	return !rs.machine.Is(string(StateIdle))
}

// Cycles 已接受的点击次数
func (rs *RewardSequencer) Cycles() int {
	return rs.cycles
}

// Chest 返回宝箱精灵
func (rs *RewardSequencer) Chest() *render.Sprite {
	return rs.chest
}

// PromptVisible 点击提示是否可见
func (rs *RewardSequencer) PromptVisible() bool {
	return rs.prompt != nil && rs.prompt.Visible
}

// AudioUnlocked 音频是否已解锁
func (rs *RewardSequencer) AudioUnlocked() bool {
	return rs.audioUnlocked
}

// Bounds 点击区域，取宝箱静止时的包围盒
func (rs *RewardSequencer) Bounds() render.Rect {
	return rs.hitbox
}

// MoveTo 移动锚点（窗口尺寸变化时由宿主调用），只在 Idle 时生效
func (rs *RewardSequencer) MoveTo(x, y float64) bool {
	if rs.Busy() {
		return false
	}
	rs.config.X, rs.config.Y = x, y
	rs.chest.X, rs.chest.Y = x, y
	if rs.prompt != nil {
		rs.prompt.X, rs.prompt.Y = x, y+promptOffset
	}
	rs.hitbox = rs.chest.Bounds()
	return true
}

// Anchor 返回锚点坐标
func (rs *RewardSequencer) Anchor() (float64, float64) {
	return rs.config.X, rs.config.Y
}

// HandleInput 只响应落在宝箱上的按下事件
func (rs *RewardSequencer) HandleInput(ev input.Event) {
	if ev.Kind != input.EventPointerDown || !ev.Inside(rs.hitbox) {
		return
	}
	rs.Tap()
}

// Tap 尝试开始一个奖励周期，非 Idle 状态下返回 false 且没有任何副作用
func (rs *RewardSequencer) Tap() bool {
	if !rs.machine.Can(eventTap) {
		return false
	}
	if !rs.fire(eventTap) {
		return false
	}
	rs.cycles++

	rs.playCue()

	rs.openTween = rs.driver.Tween(0, 1, OpenDuration, tween.EaseLinear, func(t float64) {
		rs.chest.SetScale(tween.Lerp(1, OpenScale, tween.EaseOutBack(t)))
		rs.chest.Rotation = WobbleAngle * math.Sin(t*2*math.Pi*WobbleCycles) * (1 - t)
	}, rs.onOpened)

	rs.burstTimer = rs.driver.After(BurstDelay, rs.onBurst)
	return true
}

func (rs *RewardSequencer) playCue() {
	if rs.audio == nil {
		return
	}
	if !rs.audioUnlocked && rs.audio.Resume() {
		rs.audioUnlocked = true
		log.Printf("[RewardSequencer] Audio context unlocked")
	}
	if rs.audioUnlocked && rs.config.SoundID != "" {
		rs.surface.PlaySound(rs.config.SoundID)
	}
}

func (rs *RewardSequencer) onBurst() {
	if !rs.fire(eventBurst) {
		return
	}
	n := particle.RandomIntInRange(rs.config.Rand, BurstMinCount, BurstMaxCount)
	if rs.burst != nil {
		rs.burst.SpawnBurst(rs.config.X, rs.config.Y, n)
	}
	if rs.config.OnReward != nil {
		rs.config.OnReward()
	}
}

func (rs *RewardSequencer) onOpened() {
	if !rs.fire(eventClose) {
		return
	}
	rs.chest.Rotation = 0

	if !rs.promptHidden {
		rs.promptHidden = true
		rs.prompt.Visible = false
	}

	rs.closeTween = rs.driver.Tween(OpenScale, 1, CloseDuration, tween.EaseInBack, func(v float64) {
		rs.chest.SetScale(v)
	}, func() {
		rs.chest.SetScale(1)
		rs.fire(eventSettle)
	})
}

func (rs *RewardSequencer) fire(event string) bool {
	if err := rs.machine.Event(context.Background(), event); err != nil {
		log.Printf("[RewardSequencer] Event %q rejected in %s: %v", event, rs.machine.Current(), err)
		return false
	}
	return true
}

// Destroy 停止动画并移除节点
func (rs *RewardSequencer) Destroy() {
	for _, tw := range []*tween.Tween{rs.openTween, rs.closeTween} {
		if tw != nil {
			tw.Stop()
		}
	}
	if rs.burstTimer != nil {
		rs.burstTimer.Stop()
	}
	rs.surface.Remove(rs.chest)
	if rs.prompt != nil {
		rs.surface.Remove(rs.prompt)
	}
}
