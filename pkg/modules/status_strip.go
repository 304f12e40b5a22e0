package modules

import (
	"fmt"
	"log"

	"github.com/decker502/tapreward/pkg/input"
	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/tween"
	"github.com/decker502/tapreward/pkg/utils"
)

// 状态条布局常量（像素）
const (
	PillWidth       = 82.0
	PillHeight      = 36.0
	PillGap         = 4.0
	PillStartOffset = 70.0  // 头像区域宽度
	PillSideMargin  = 140.0 // 可用宽度 = 屏幕宽度 - PillSideMargin
	PillIconSize    = 28.0
	PillIconInset   = 4.0

	// 图标叠压样式
	OverlapIconSize   = 32.0
	OverlapPillWidth  = 75.0
	OverlapIconOffset = -8.0
	OverlapGap        = 8.0

	AvatarX          = 35.0
	AvatarRadius     = 24.0
	AvatarImageSize  = 42.0
	SettingsInset    = 30.0 // 设置按钮距右边缘
	SettingsSize     = 28.0
	SettingsFallback = 16.0 // 占位圆半径
)

// 数值变化时的脉冲动画
const (
	PulseDuration = 0.1 // 单程时长（秒），往返共 2 倍
	PulseScale    = 1.2
)

// 设置按钮交互参数
const (
	SettingsPressedScale = 0.9
)

var settingsHoverTint = render.RGB(0xdddddd)

// PillStyle 资源胶囊的排布样式
type PillStyle int

const (
	// PillStylePlain 等宽胶囊，图标嵌在胶囊左侧
	PillStylePlain PillStyle = iota
	// PillStyleIconOverlap 图标在胶囊外侧并与之叠压
	PillStyleIconOverlap
)

// ResourceEntry 状态条中的一项资源
type ResourceEntry struct {
	Key   string
	Icon  string
	Value int
}

// StatusStripConfig 状态条配置
type StatusStripConfig struct {
	// Resources 按显示顺序排列，Key 必须唯一
	Resources   []ResourceEntry
	ScreenWidth float64
	Y           float64
	Level       int

	AvatarTexture   string
	PillTexture     string
	PillInsets      render.Insets
	SettingsTexture string
	PillStyle       PillStyle

	OnSettingsClick func()

	Z int
}

// DefaultStatusStripConfig 返回默认配置（金币/能量/宝石）
func DefaultStatusStripConfig(screenWidth float64) StatusStripConfig {
	return StatusStripConfig{
		Resources: []ResourceEntry{
			{Key: "coins", Icon: "statusbar_coin"},
			{Key: "energy", Icon: "statusbar_energy"},
			{Key: "gems", Icon: "statusbar_gem"},
		},
		ScreenWidth:     screenWidth,
		Y:               40,
		Level:           1,
		AvatarTexture:   "avatar_default",
		PillTexture:     "label_oval",
		PillInsets:      render.Insets{Left: 18, Right: 18, Top: 18, Bottom: 18},
		SettingsTexture: "settings_icon",
	}
}

type resourceDisplay struct {
	entry ResourceEntry
	bg    *render.Sprite
	icon  *render.Sprite
	text  *render.Label
	pulse *tween.Tween
}

// StatusStrip 顶部资源状态条：头像 + 等级、资源胶囊、设置按钮
//
// 布局在构造时计算一次，窗口尺寸变化时由宿主调用 Relayout。
type StatusStrip struct {
	surface render.Surface
	driver  tween.Driver
	config  StatusStripConfig

	layout   utils.PillLayout
	displays []*resourceDisplay
	index    map[string]int

	avatarFrame *render.Shape
	avatar      *render.Sprite
	levelLabel  *render.Label
	settings    *render.Sprite
}

// NewStatusStrip 创建状态条并挂载到 surface
func NewStatusStrip(surface render.Surface, driver tween.Driver, config StatusStripConfig) *StatusStrip {
	if config.PillTexture == "" {
		config.PillTexture = "label_oval"
	}
	if config.PillInsets == (render.Insets{}) {
		config.PillInsets = render.Insets{Left: 18, Right: 18, Top: 18, Bottom: 18}
	}
	if config.SettingsTexture == "" {
		config.SettingsTexture = "settings_icon"
	}
	if config.Level <= 0 {
		config.Level = 1
	}

	s := &StatusStrip{
		surface: surface,
		driver:  driver,
		config:  config,
		index:   make(map[string]int, len(config.Resources)),
	}

	s.createAvatar()
	s.createResourceDisplays()
	s.createSettingsButton()
	s.Relayout(config.ScreenWidth)
	return s
}

func (s *StatusStrip) createAvatar() {
	c := s.config

	s.avatarFrame = render.NewCircle(AvatarX, c.Y, AvatarRadius, render.RGB(0x2c3e50))
	s.avatarFrame.StrokeColor = render.RGB(0xffffff)
	s.avatarFrame.StrokeWidth = 2
	s.avatarFrame.Z = c.Z
	s.surface.Add(s.avatarFrame)

	if c.AvatarTexture != "" && s.surface.HasTexture(c.AvatarTexture) {
		s.avatar = render.NewSprite(c.AvatarTexture, AvatarX, c.Y, AvatarImageSize, AvatarImageSize)
		s.avatar.Z = c.Z + 1
		s.surface.Add(s.avatar)
	}

	s.levelLabel = render.NewLabel(levelText(c.Level), AvatarX, c.Y+AvatarRadius, 9)
	s.levelLabel.StrokeColor = render.RGB(0x000000)
	s.levelLabel.StrokeWidth = 2
	s.levelLabel.Z = c.Z + 2
	s.surface.Add(s.levelLabel)
}

func (s *StatusStrip) createResourceDisplays() {
	c := s.config
	hasPill := s.surface.HasTexture(c.PillTexture)
	black := render.RGB(0x000000)

	for i, entry := range c.Resources {
		if entry.Value < 0 {
			entry.Value = 0
		}
		width := s.pillWidth()

		d := &resourceDisplay{entry: entry}
		d.bg = render.NewSprite(c.PillTexture, 0, c.Y, width, PillHeight)
		d.bg.NineSlice = &s.config.PillInsets
		d.bg.Tint = &black
		d.bg.Z = c.Z + 1
		if !hasPill {
			d.bg.Tint = nil
			d.bg.Placeholder = render.NewShape(render.ShapePill, 0, 0, width, PillHeight, black)
			d.bg.Alpha = 0.9
		}

		iconSize := s.iconSize()
		d.icon = render.NewSprite(entry.Icon, 0, c.Y, iconSize, iconSize)
		d.icon.Z = c.Z + 2
		if !s.surface.HasTexture(entry.Icon) {
			d.icon.Placeholder = render.NewCircle(0, 0, iconSize/2, render.RGB(0xf39c12))
		}

		d.text = render.NewLabel(utils.FormatNumber(entry.Value), 0, c.Y, 16)
		d.text.StrokeColor = black
		d.text.StrokeWidth = 2
		d.text.Z = c.Z + 2

		s.surface.Add(d.bg)
		s.surface.Add(d.icon)
		s.surface.Add(d.text)

		s.displays = append(s.displays, d)
		s.index[entry.Key] = i
	}
}

func (s *StatusStrip) createSettingsButton() {
	c := s.config
	s.settings = render.NewSprite(c.SettingsTexture, 0, c.Y, SettingsSize, SettingsSize)
	s.settings.Z = c.Z + 2
	if !s.surface.HasTexture(c.SettingsTexture) {
		s.settings.Width, s.settings.Height = SettingsFallback*2, SettingsFallback*2
		s.settings.Placeholder = render.NewCircle(0, 0, SettingsFallback, render.RGB(0x95a5a6))
	}
	s.surface.Add(s.settings)
}

func (s *StatusStrip) pillWidth() float64 {
	if s.config.PillStyle == PillStyleIconOverlap {
		return OverlapPillWidth
	}
	return PillWidth
}

func (s *StatusStrip) iconSize() float64 {
	if s.config.PillStyle == PillStyleIconOverlap {
		return OverlapIconSize
	}
	return PillIconSize
}

// Relayout 按新的屏幕宽度重新计算胶囊和设置按钮的位置
func (s *StatusStrip) Relayout(screenWidth float64) {
	s.config.ScreenWidth = screenWidth
	count := len(s.displays)
	available := screenWidth - PillSideMargin

	if s.config.PillStyle == PillStyleIconOverlap {
		itemWidth := OverlapIconSize + OverlapIconOffset + OverlapPillWidth
		s.layout = utils.CalculatePillLayout(count, itemWidth, PillHeight, OverlapGap, available, PillStartOffset)
		for i, d := range s.displays {
			x := s.layout.X(i)
			pillLeft := x + OverlapIconSize + OverlapIconOffset
			d.icon.X = x + OverlapIconSize/2
			d.bg.X = pillLeft + OverlapPillWidth/2
			d.text.X = pillLeft + OverlapPillWidth/2
		}
	} else {
		s.layout = utils.CalculatePillLayout(count, PillWidth, PillHeight, PillGap, available, PillStartOffset)
		textArea := PillWidth - PillIconInset - PillIconSize
		for i, d := range s.displays {
			x := s.layout.X(i)
			d.bg.X = x + PillWidth/2
			d.icon.X = x + PillIconInset + PillIconSize/2
			d.text.X = x + PillIconInset + PillIconSize + textArea/2
		}
	}

	s.settings.X = screenWidth - SettingsInset
}

// Layout 返回当前的胶囊布局
func (s *StatusStrip) Layout() utils.PillLayout {
	return s.layout
}

// SetResource 更新资源数值
//
// 未知 key 不做任何修改，仅记录警告。负数按 0 处理。
// animate 为 true 时数值文字做一次 1 → 1.2 → 1 的脉冲，同一项的新脉冲会重启正在进行的脉冲。
func (s *StatusStrip) SetResource(key string, value int, animate bool) {
	i, ok := s.index[key]
	if !ok {
		log.Printf("[StatusStrip] Unknown resource key %q, ignored", key)
		return
	}
	if value < 0 {
		value = 0
	}

	d := s.displays[i]
	d.entry.Value = value
	d.text.Text = utils.FormatNumber(value)

	if !animate || s.driver == nil {
		return
	}
	if d.pulse != nil && d.pulse.Running() {
		d.pulse.Redirect(0, 1)
		return
	}
	text := d.text
	d.pulse = s.driver.Tween(0, 1, PulseDuration*2, tween.Yoyo(tween.EaseLinear), func(v float64) {
		text.Scale = 1 + (PulseScale-1)*v
	}, func() {
		text.Scale = 1
	})
}

// Resource 返回资源数值，未知 key 返回 0
func (s *StatusStrip) Resource(key string) int {
	i, ok := s.index[key]
	if !ok {
		return 0
	}
	return s.displays[i].entry.Value
}

// ResourceText 返回资源当前显示的文字，未知 key 返回空串
func (s *StatusStrip) ResourceText(key string) string {
	i, ok := s.index[key]
	if !ok {
		return ""
	}
	return s.displays[i].text.Text
}

// Entries 返回按显示顺序排列的资源快照
func (s *StatusStrip) Entries() []ResourceEntry {
	out := make([]ResourceEntry, len(s.displays))
	for i, d := range s.displays {
		out[i] = d.entry
	}
	return out
}

// SetLevel 更新等级文字
func (s *StatusStrip) SetLevel(level int) {
	s.config.Level = level
	s.levelLabel.Text = levelText(level)
}

// Level 返回当前等级
func (s *StatusStrip) Level() int {
	return s.config.Level
}

// SettingsButton 返回设置按钮节点
func (s *StatusStrip) SettingsButton() *render.Sprite {
	return s.settings
}

// Bounds 设置按钮的点击区域（不受按下缩放影响）
func (s *StatusStrip) Bounds() render.Rect {
	w, h := s.settings.Width, s.settings.Height
	return render.Rect{X: s.settings.X - w/2, Y: s.settings.Y - h/2, W: w, H: h}
}

// HandleInput 处理设置按钮的指针事件
func (s *StatusStrip) HandleInput(ev input.Event) {
	switch ev.Kind {
	case input.EventPointerOver:
		tint := settingsHoverTint
		s.settings.Tint = &tint
	case input.EventPointerOut:
		s.settings.Tint = nil
	case input.EventPointerDown:
		if !ev.Inside(s.Bounds()) {
			return
		}
		s.settings.SetScale(SettingsPressedScale)
		if s.config.OnSettingsClick != nil {
			s.config.OnSettingsClick()
		}
	case input.EventPointerUp:
		s.settings.SetScale(1)
	}
}

// UpdateVisual 根据存储的数值刷新所有文字
func (s *StatusStrip) UpdateVisual() {
	for _, d := range s.displays {
		d.text.Text = utils.FormatNumber(d.entry.Value)
	}
	s.levelLabel.Text = levelText(s.config.Level)
}

// Destroy 移除所有节点并停止脉冲动画
func (s *StatusStrip) Destroy() {
	for _, d := range s.displays {
		if d.pulse != nil {
			d.pulse.Stop()
		}
		s.surface.Remove(d.bg)
		s.surface.Remove(d.icon)
		s.surface.Remove(d.text)
	}
	s.surface.Remove(s.avatarFrame)
	if s.avatar != nil {
		s.surface.Remove(s.avatar)
	}
	s.surface.Remove(s.levelLabel)
	s.surface.Remove(s.settings)
}

func levelText(level int) string {
	return fmt.Sprintf("%d LVL", level)
}
