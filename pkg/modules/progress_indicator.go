package modules

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/tween"
	"github.com/decker502/tapreward/pkg/utils"
)

// ProgressTweenDuration 进度动画时长（秒）
const ProgressTweenDuration = 0.3

// TextFormat 进度文字格式
type TextFormat int

const (
	// TextFormatFraction "45 / 100"
	TextFormatFraction TextFormat = iota
	// TextFormatPercentage "45%"
	TextFormatPercentage
)

// ProgressIndicatorConfig 进度条配置，零值字段使用默认值
type ProgressIndicatorConfig struct {
	X, Y          float64
	Width, Height float64

	BgTexture   string
	BgInsets    render.Insets
	FillTexture string
	FillInsets  render.Insets

	TextFormat TextFormat
	// HideText 为 true 时不创建文字
	HideText    bool
	FontSize    float64
	TextColor   color.RGBA
	StrokeColor color.RGBA
	StrokeWidth float64

	Z int
}

// DefaultProgressIndicatorConfig 返回默认配置（400x50，slider_bg / slider_fill）
func DefaultProgressIndicatorConfig() ProgressIndicatorConfig {
	return ProgressIndicatorConfig{
		Width:       400,
		Height:      50,
		BgTexture:   "slider_bg",
		BgInsets:    render.Insets{Left: 13, Right: 13, Top: 34, Bottom: 34},
		FillTexture: "slider_fill",
		FillInsets:  render.Insets{Left: 9, Right: 9, Top: 30, Bottom: 30},
		TextFormat:  TextFormatFraction,
		FontSize:    20,
		TextColor:   render.RGB(0xffffff),
		StrokeColor: render.RGB(0x000000),
		StrokeWidth: 3,
	}
}

func (c *ProgressIndicatorConfig) applyDefaults() {
	d := DefaultProgressIndicatorConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.BgTexture == "" {
		c.BgTexture, c.BgInsets = d.BgTexture, d.BgInsets
	}
	if c.FillTexture == "" {
		c.FillTexture, c.FillInsets = d.FillTexture, d.FillInsets
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	if c.TextColor == (color.RGBA{}) {
		c.TextColor = d.TextColor
	}
}

// ProgressIndicator 遮罩式进度条
//
// 填充图始终以完整尺寸绘制，通过裁剪矩形从左向右显露，纹理不会被拉伸。
// 进度值始终被限制在 [0, 1]。
type ProgressIndicator struct {
	surface render.Surface
	driver  tween.Driver
	config  ProgressIndicatorConfig

	background *render.Sprite
	fill       *render.Sprite
	label      *render.Label

	current float64
	target  float64
	tween   *tween.Tween
	clip    render.Rect
}

// NewProgressIndicator 创建进度条并挂载到 surface，初始进度为 0
func NewProgressIndicator(surface render.Surface, driver tween.Driver, config ProgressIndicatorConfig) *ProgressIndicator {
	config.applyDefaults()
	p := &ProgressIndicator{
		surface: surface,
		driver:  driver,
		config:  config,
	}

	p.background = render.NewSprite(config.BgTexture, config.X, config.Y, config.Width, config.Height)
	p.background.NineSlice = &config.BgInsets
	p.background.Z = config.Z
	if !surface.HasTexture(config.BgTexture) {
		p.background.Placeholder = render.NewShape(render.ShapePill, 0, 0, config.Width, config.Height, render.RGB(0x2c2c3e))
	}

	p.fill = render.NewSprite(config.FillTexture, config.X, config.Y, config.Width, config.Height)
	p.fill.NineSlice = &config.FillInsets
	p.fill.Z = config.Z + 1
	p.fill.Clip = &p.clip
	if !surface.HasTexture(config.FillTexture) {
		p.fill.Placeholder = render.NewShape(render.ShapePill, 0, 0, config.Width, config.Height, render.RGB(0x4cd964))
	}

	surface.Add(p.background)
	surface.Add(p.fill)

	if !config.HideText {
		p.label = render.NewLabel("", config.X, config.Y, config.FontSize)
		p.label.Color = config.TextColor
		p.label.StrokeColor = config.StrokeColor
		p.label.StrokeWidth = config.StrokeWidth
		p.label.Z = config.Z + 2
		surface.Add(p.label)
	}

	p.UpdateVisual()
	return p
}

// SetProgress 设置目标进度
//
// animate 为 false 时立即生效；为 true 时在 ProgressTweenDuration 内以 EaseOutCubic 过渡。
// 动画进行中再次调用会从当前值重定向已有动画，不会叠加第二个动画。
func (p *ProgressIndicator) SetProgress(value float64, animate bool) {
	p.target = utils.Clamp01(value)

	if !animate || p.driver == nil {
		if p.tween != nil {
			p.tween.Stop()
		}
		p.current = p.target
		p.UpdateVisual()
		return
	}

	if p.tween != nil && p.tween.Running() {
		p.tween.Redirect(p.current, p.target)
		return
	}
	p.tween = p.driver.Tween(p.current, p.target, ProgressTweenDuration, tween.EaseOutCubic, func(v float64) {
		p.current = v
		p.UpdateVisual()
	}, nil)
}

// Progress 返回当前显示的进度
func (p *ProgressIndicator) Progress() float64 {
	return p.current
}

// Target 返回目标进度
func (p *ProgressIndicator) Target() float64 {
	return p.target
}

// Text 返回当前文字，未显示文字时返回空串
func (p *ProgressIndicator) Text() string {
	if p.label == nil {
		return ""
	}
	return p.label.Text
}

// FillClip 返回填充图当前的可见区域
func (p *ProgressIndicator) FillClip() render.Rect {
	return p.clip
}

// SetPosition 移动进度条（宿主重新布局时调用）
func (p *ProgressIndicator) SetPosition(x, y float64) {
	p.config.X, p.config.Y = x, y
	p.background.X, p.background.Y = x, y
	p.fill.X, p.fill.Y = x, y
	if p.label != nil {
		p.label.X, p.label.Y = x, y
	}
	p.UpdateVisual()
}

// UpdateVisual 根据 current 刷新裁剪矩形和文字
func (p *ProgressIndicator) UpdateVisual() {
	c := p.config
	p.clip = utils.ComputeRevealRect(c.X, c.Y, c.Width, c.Height, p.current)

	if p.label == nil {
		return
	}
	percentage := int(math.Floor(p.current * 100))
	switch c.TextFormat {
	case TextFormatPercentage:
		p.label.Text = fmt.Sprintf("%d%%", percentage)
	default:
		p.label.Text = fmt.Sprintf("%d / 100", percentage)
	}
}

// Destroy 移除节点并停止动画
func (p *ProgressIndicator) Destroy() {
	if p.tween != nil {
		p.tween.Stop()
		p.tween = nil
	}
	p.surface.Remove(p.background)
	p.surface.Remove(p.fill)
	if p.label != nil {
		p.surface.Remove(p.label)
	}
}
