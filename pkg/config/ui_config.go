package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/tapreward/pkg/embedded"
)

// DefaultUIConfigPath 默认 UI 配置文件
const DefaultUIConfigPath = "data/ui.yaml"

// 文本格式与胶囊样式的取值
const (
	TextFormatPercentage = "percentage"
	TextFormatFraction   = "fraction"

	PillStylePlain       = "plain"
	PillStyleIconOverlap = "icon_overlap"
)

// UIConfig 界面配置，对应 data/ui.yaml
// 动画时长和物理参数是代码常量，不在这里配置
type UIConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Assets   AssetsConfig   `yaml:"assets"`
	Loading  LoadingConfig  `yaml:"loading"`
	Main     MainConfig     `yaml:"main"`
	Progress ProgressConfig `yaml:"progress"`
	Strip    StripConfig    `yaml:"strip"`
	Reward   RewardConfig   `yaml:"reward"`
	Audio    AudioConfig    `yaml:"audio"`
}

// WindowConfig 窗口与背景
type WindowConfig struct {
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
	Title             string `yaml:"title"`
	Background        string `yaml:"background"`         // #rrggbb，无背景图时的底色
	BackgroundTexture string `yaml:"background_texture"` // 可选
	Resizable         bool   `yaml:"resizable"`
}

// AssetsConfig 资源清单
type AssetsConfig struct {
	Manifest string   `yaml:"manifest"`
	Groups   []string `yaml:"groups"` // 加载顺序，为空时加载清单中全部组
}

// LoadingConfig 加载场景
type LoadingConfig struct {
	Title string  `yaml:"title"`
	Text  string  `yaml:"text"`
	Delay float64 `yaml:"delay"` // 加载完成后停留的秒数
}

// MainConfig 主界面标题，Title 为空时不显示
type MainConfig struct {
	Title     string  `yaml:"title"`
	TitleY    float64 `yaml:"title_y"`
	TitleSize float64 `yaml:"title_size"`
}

// ProgressConfig 能量进度条
type ProgressConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	OffsetY     float64 `yaml:"offset_y"` // 相对屏幕中心
	BgTexture   string  `yaml:"bg_texture"`
	FillTexture string  `yaml:"fill_texture"`
	TextFormat  string  `yaml:"text_format"`
	ShowText    bool    `yaml:"show_text"`
	FontSize    float64 `yaml:"font_size"`
	TextColor   string  `yaml:"text_color"`
	StrokeColor string  `yaml:"stroke_color"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Initial     float64 `yaml:"initial"`
}

// StripResource 状态栏中的一种资源
type StripResource struct {
	Key   string `yaml:"key"`
	Icon  string `yaml:"icon"`
	Value int    `yaml:"value"`
}

// StripConfig 顶部资源状态栏
type StripConfig struct {
	Y               float64         `yaml:"y"`
	Level           int             `yaml:"level"`
	AvatarTexture   string          `yaml:"avatar_texture"`
	PillTexture     string          `yaml:"pill_texture"`
	SettingsTexture string          `yaml:"settings_texture"`
	PillStyle       string          `yaml:"pill_style"`
	Resources       []StripResource `yaml:"resources"`
}

// RewardConfig 奖励宝箱
type RewardConfig struct {
	OffsetY         float64 `yaml:"offset_y"` // 相对屏幕中心
	Texture         string  `yaml:"texture"`
	SoundID         string  `yaml:"sound_id"`
	PromptText      string  `yaml:"prompt_text"`
	RewardKey       string  `yaml:"reward_key"` // 每次奖励增加的资源
	RewardAmount    int     `yaml:"reward_amount"`
	EnergyPerReward float64 `yaml:"energy_per_reward"`
}

// AudioConfig 音效
type AudioConfig struct {
	SampleRate   int     `yaml:"sample_rate"`
	SoundEnabled bool    `yaml:"sound_enabled"`
	SoundVolume  float64 `yaml:"sound_volume"`
}

// DefaultUIConfig 返回完整的默认配置
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Window: WindowConfig{
			Width:      740,
			Height:     900,
			Title:      "Tap Reward",
			Background: "#1a1a2e",
			Resizable:  true,
		},
		Assets: AssetsConfig{
			Manifest: "assets/config/resources.yaml",
			Groups:   []string{"ui", "sounds"},
		},
		Loading: LoadingConfig{
			Title: "TAP REWARD",
			Text:  "LOADING...",
			Delay: 0.8,
		},
		Main: MainConfig{
			Title:     "Tap Reward",
			TitleY:    100,
			TitleSize: 28,
		},
		Progress: ProgressConfig{
			Width:       400,
			Height:      50,
			OffsetY:     150,
			BgTexture:   "slider_bg",
			FillTexture: "slider_fill",
			TextFormat:  TextFormatPercentage,
			ShowText:    true,
			FontSize:    20,
			TextColor:   "#ffffff",
			StrokeColor: "#000000",
			StrokeWidth: 3,
			Initial:     0.4,
		},
		Strip: StripConfig{
			Y:               40,
			Level:           1,
			AvatarTexture:   "avatar",
			PillTexture:     "label_oval",
			SettingsTexture: "settings_icon",
			PillStyle:       PillStylePlain,
			Resources: []StripResource{
				{Key: "coins", Icon: "statusbar_coin", Value: 37720},
				{Key: "energy", Icon: "statusbar_energy", Value: 25},
				{Key: "gems", Icon: "statusbar_gem", Value: 120},
			},
		},
		Reward: RewardConfig{
			OffsetY:         -100,
			Texture:         "reward_chest",
			SoundID:         "reward_open",
			PromptText:      "TAP!",
			RewardKey:       "coins",
			RewardAmount:    250,
			EnergyPerReward: 0.1,
		},
		Audio: AudioConfig{
			SampleRate:   48000,
			SoundEnabled: true,
			SoundVolume:  0.8,
		},
	}
}

// LoadUIConfig 读取 YAML 并覆盖到默认配置上
func LoadUIConfig(path string) (*UIConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ui config file %s: %w", path, err)
	}
	cfg, err := ParseUIConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadUIConfigOrDefault 读取界面配置
// path 为空时读取 DefaultUIConfigPath，文件不存在则返回默认配置；
// 显式指定的路径读取失败时返回错误
func LoadUIConfigOrDefault(path string) (*UIConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultUIConfigPath
	}

	cfg, err := LoadUIConfig(path)
	if err == nil {
		log.Printf("[Config] Loaded ui config: %s", path)
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] %s not found, using defaults", path)
		return DefaultUIConfig(), nil
	}
	return nil, fmt.Errorf("ui config load failed: %w", err)
}

// ParseUIConfig 解析 YAML，未出现的字段保留默认值
func ParseUIConfig(data []byte) (*UIConfig, error) {
	cfg := DefaultUIConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ui config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ui config: %w", err)
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *UIConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Manifest == "" {
		return fmt.Errorf("assets.manifest is required")
	}
	if c.Loading.Delay < 0 {
		return fmt.Errorf("loading.delay cannot be negative, got %v", c.Loading.Delay)
	}

	if c.Main.Title != "" && c.Main.TitleSize <= 0 {
		return fmt.Errorf("main.title_size must be positive, got %v", c.Main.TitleSize)
	}

	p := c.Progress
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("progress size must be positive, got %vx%v", p.Width, p.Height)
	}
	if p.TextFormat != TextFormatPercentage && p.TextFormat != TextFormatFraction {
		return fmt.Errorf("progress.text_format must be %q or %q, got %q", TextFormatPercentage, TextFormatFraction, p.TextFormat)
	}
	if p.Initial < 0 || p.Initial > 1 {
		return fmt.Errorf("progress.initial must be within [0, 1], got %v", p.Initial)
	}

	s := c.Strip
	if s.PillStyle != PillStylePlain && s.PillStyle != PillStyleIconOverlap {
		return fmt.Errorf("strip.pill_style must be %q or %q, got %q", PillStylePlain, PillStyleIconOverlap, s.PillStyle)
	}
	if len(s.Resources) == 0 {
		return fmt.Errorf("strip.resources: at least one resource is required")
	}
	seen := make(map[string]bool, len(s.Resources))
	for i, r := range s.Resources {
		if r.Key == "" {
			return fmt.Errorf("strip.resources[%d]: key is required", i)
		}
		if seen[r.Key] {
			return fmt.Errorf("strip.resources[%d]: duplicate key %q", i, r.Key)
		}
		if r.Value < 0 {
			return fmt.Errorf("strip.resources[%d] %s: value cannot be negative, got %d", i, r.Key, r.Value)
		}
		seen[r.Key] = true
	}

	if c.Reward.RewardKey != "" && !seen[c.Reward.RewardKey] {
		return fmt.Errorf("reward.reward_key %q is not a strip resource", c.Reward.RewardKey)
	}
	if c.Reward.RewardAmount < 0 {
		return fmt.Errorf("reward.reward_amount cannot be negative, got %d", c.Reward.RewardAmount)
	}

	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.SoundVolume < 0 || c.Audio.SoundVolume > 1 {
		return fmt.Errorf("audio.sound_volume must be within [0, 1], got %v", c.Audio.SoundVolume)
	}

	for name, hex := range map[string]string{
		"window.background":     c.Window.Background,
		"progress.text_color":   p.TextColor,
		"progress.stroke_color": p.StrokeColor,
	} {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa"
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor 解析已校验过的颜色，失败时返回白色
func MustColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}
