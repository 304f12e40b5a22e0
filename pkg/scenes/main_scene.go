package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tapreward/pkg/config"
	"github.com/decker502/tapreward/pkg/ecs"
	"github.com/decker502/tapreward/pkg/input"
	"github.com/decker502/tapreward/pkg/modules"
	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/systems"
	"github.com/decker502/tapreward/pkg/tween"
)

// MainScene 主界面：状态栏、能量条、奖励宝箱和彩纸粒子
type MainScene struct {
	env       *Env
	surface   Surface
	scheduler *tween.Scheduler
	router    *input.Router
	bg        color.RGBA

	entityManager *ecs.EntityManager
	particles     *systems.ParticleBurstSystem

	background *render.Sprite
	title      *render.Label
	strip      *modules.StatusStrip
	energy     *modules.ProgressIndicator
	sequencer  *systems.RewardSequencer

	width, height float64
	// 周期进行中收到的尺寸变化，回到 Idle 后再移动宝箱
	anchorPending bool
}

// NewMainScene 创建主场景
func NewMainScene(env *Env) *MainScene {
	cfg := env.Config
	w, h := env.screenSize()

	s := &MainScene{
		env:           env,
		surface:       env.surface(),
		scheduler:     tween.NewScheduler(),
		router:        input.NewRouter(),
		bg:            config.MustColor(cfg.Window.Background),
		entityManager: ecs.NewEntityManager(),
		width:         w,
		height:        h,
	}

	if tex := cfg.Window.BackgroundTexture; tex != "" && s.surface.HasTexture(tex) {
		s.background = render.NewSprite(tex, w/2, h/2, w, h)
		s.background.Z = -100
		s.layoutBackground()
		s.surface.Add(s.background)
	}

	if cfg.Main.Title != "" {
		s.title = render.NewLabel(cfg.Main.Title, w/2, cfg.Main.TitleY, cfg.Main.TitleSize)
		s.title.Z = 10
		s.surface.Add(s.title)
	}

	s.particles = systems.NewParticleBurstSystem(s.entityManager, s.surface, env.Rand)

	s.strip = modules.NewStatusStrip(s.surface, s.scheduler, s.stripConfig(w))

	pc := progressConfig(cfg.Progress)
	pc.X, pc.Y = w/2, h/2+cfg.Progress.OffsetY
	s.energy = modules.NewProgressIndicator(s.surface, s.scheduler, pc)
	s.energy.SetProgress(cfg.Progress.Initial, false)

	rc := systems.DefaultRewardSequencerConfig(w/2, h/2+cfg.Reward.OffsetY)
	if cfg.Reward.Texture != "" {
		rc.Texture = cfg.Reward.Texture
	}
	rc.SoundID = cfg.Reward.SoundID
	rc.PromptText = cfg.Reward.PromptText
	rc.Rand = env.Rand
	rc.OnReward = s.onReward

	var unlocker systems.AudioUnlocker
	if env.Audio != nil {
		unlocker = env.Audio
	}
	s.sequencer = systems.NewRewardSequencer(s.surface, s.scheduler, s.particles, unlocker, rc)

	s.router.Register(s.strip)
	s.router.Register(s.sequencer)

	log.Printf("[MainScene] Created (%.0fx%.0f)", w, h)
	return s
}

func (s *MainScene) stripConfig(width float64) modules.StatusStripConfig {
	c := s.env.Config.Strip
	sc := modules.DefaultStatusStripConfig(width)
	sc.Y = c.Y
	sc.Level = c.Level
	if c.AvatarTexture != "" {
		sc.AvatarTexture = c.AvatarTexture
	}
	if c.PillTexture != "" {
		sc.PillTexture = c.PillTexture
	}
	if c.SettingsTexture != "" {
		sc.SettingsTexture = c.SettingsTexture
	}
	if c.PillStyle == config.PillStyleIconOverlap {
		sc.PillStyle = modules.PillStyleIconOverlap
	}
	sc.Resources = make([]modules.ResourceEntry, 0, len(c.Resources))
	for _, r := range c.Resources {
		sc.Resources = append(sc.Resources, modules.ResourceEntry{Key: r.Key, Icon: r.Icon, Value: r.Value})
	}
	sc.OnSettingsClick = s.onSettingsClick
	return sc
}

// onReward 每次奖励：增加资源并推进能量条，能量满后从头开始
func (s *MainScene) onReward() {
	rc := s.env.Config.Reward
	if rc.RewardKey != "" {
		s.strip.SetResource(rc.RewardKey, s.strip.Resource(rc.RewardKey)+rc.RewardAmount, true)
	}
	if rc.EnergyPerReward > 0 {
		next := s.energy.Target() + rc.EnergyPerReward
		if s.energy.Target() >= 1 {
			s.energy.SetProgress(0, false)
			next = rc.EnergyPerReward
		}
		s.energy.SetProgress(next, true)
	}
}

func (s *MainScene) onSettingsClick() {
	if s.env.Audio == nil {
		return
	}
	enabled := !s.env.Audio.Settings().SoundEnabled
	s.env.Audio.SetSoundEnabled(enabled)
	log.Printf("[MainScene] Sound enabled: %v", enabled)
}

// Update 输入 → 动画 → 粒子
func (s *MainScene) Update(deltaTime float64) {
	if s.env.Pointer != nil {
		s.env.Pointer.Update(s.router)
	}
	s.scheduler.Update(deltaTime)
	s.particles.Update(deltaTime)
	if s.anchorPending && !s.sequencer.Busy() {
		s.moveSequencer()
	}
}

func (s *MainScene) moveSequencer() {
	x, y := s.width/2, s.height/2+s.env.Config.Reward.OffsetY
	s.anchorPending = !s.sequencer.MoveTo(x, y)
}

// Draw 绘制主界面
func (s *MainScene) Draw(screen *ebiten.Image) {
	drawSurface(screen, s.bg, s.surface)
}

// Resize 重新布局状态栏，并在空闲时重新居中宝箱
func (s *MainScene) Resize(width, height int) {
	w, h := float64(width), float64(height)
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	cfg := s.env.Config

	s.strip.Relayout(w)
	s.energy.SetPosition(w/2, h/2+cfg.Progress.OffsetY)
	s.moveSequencer()
	if s.background != nil {
		s.layoutBackground()
	}
	if s.title != nil {
		s.title.X = w / 2
	}
}

// layoutBackground 居中背景图并等比缩放到铺满屏幕，超出部分被裁掉
// 表面无法报告纹理尺寸时直接拉伸到屏幕大小
func (s *MainScene) layoutBackground() {
	bg := s.background
	bg.X, bg.Y = s.width/2, s.height/2

	var tw, th float64
	sizer, ok := s.surface.(render.TextureSizer)
	if ok {
		tw, th, ok = sizer.TextureSize(bg.Texture)
	}
	if !ok || tw <= 0 || th <= 0 {
		bg.Width, bg.Height = s.width, s.height
		bg.SetScale(1)
		return
	}
	bg.Width, bg.Height = tw, th
	bg.SetScale(math.Max(s.width/tw, s.height/th))
}

// Dispose 释放节点
func (s *MainScene) Dispose() {
	s.sequencer.Destroy()
	s.energy.Destroy()
	s.strip.Destroy()
	s.particles.Clear()
	s.router.Clear()
	s.surface.Clear()
}

// Router 返回输入路由
func (s *MainScene) Router() *input.Router { return s.router }

// Strip 返回资源状态栏
func (s *MainScene) Strip() *modules.StatusStrip { return s.strip }

// Energy 返回能量进度条
func (s *MainScene) Energy() *modules.ProgressIndicator { return s.energy }

// Sequencer 返回奖励序列
func (s *MainScene) Sequencer() *systems.RewardSequencer { return s.sequencer }

// Title 返回标题文本，未配置标题时为 nil
func (s *MainScene) Title() *render.Label { return s.title }

// Background 返回背景精灵，没有背景图时为 nil
func (s *MainScene) Background() *render.Sprite { return s.background }

// Particles 返回粒子系统
func (s *MainScene) Particles() *systems.ParticleBurstSystem { return s.particles }
