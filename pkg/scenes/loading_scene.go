package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tapreward/pkg/config"
	"github.com/decker502/tapreward/pkg/game"
	"github.com/decker502/tapreward/pkg/modules"
	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/tween"
)

const (
	loadingTitleSize  = 40.0
	loadingTextSize   = 18.0
	loadingTitleShift = -120.0
	loadingTextShift  = 60.0
)

// LoadingScene 启动加载界面：标题、分数格式的进度条和 LOADING 文字
//
// 每帧加载一个资源，全部完成后停留 Loading.Delay 秒再切换到主场景。
type LoadingScene struct {
	env       *Env
	surface   Surface
	scheduler *tween.Scheduler
	bg        color.RGBA

	title    *render.Label
	text     *render.Label
	progress *modules.ProgressIndicator

	loaders []*game.GroupLoader
	current int
	loaded  int
	total   int

	complete bool
	switched bool
}

// NewLoadingScene 创建加载场景
func NewLoadingScene(env *Env) *LoadingScene {
	cfg := env.Config
	s := &LoadingScene{
		env:       env,
		surface:   env.surface(),
		scheduler: tween.NewScheduler(),
		bg:        config.MustColor(cfg.Window.Background),
	}

	w, h := env.screenSize()

	s.title = render.NewLabel(cfg.Loading.Title, w/2, h/2+loadingTitleShift, loadingTitleSize)
	s.title.StrokeColor = render.RGB(0x000000)
	s.title.StrokeWidth = 3
	s.surface.Add(s.title)

	pc := progressConfig(cfg.Progress)
	pc.X, pc.Y = w/2, h/2
	pc.TextFormat = modules.TextFormatFraction
	pc.HideText = false
	s.progress = modules.NewProgressIndicator(s.surface, s.scheduler, pc)

	s.text = render.NewLabel(cfg.Loading.Text, w/2, h/2+loadingTextShift, loadingTextSize)
	s.surface.Add(s.text)

	s.prepareLoaders()
	return s
}

func (s *LoadingScene) prepareLoaders() {
	rm := s.env.Resources
	if rm == nil {
		return
	}
	groups := s.env.Config.Assets.Groups
	if len(groups) == 0 {
		groups = rm.GroupNames()
	}
	for _, name := range groups {
		gl, err := rm.NewGroupLoader(name)
		if err != nil {
			log.Printf("[LoadingScene] Warning: %v", err)
			continue
		}
		_, n := gl.Progress()
		s.total += n
		s.loaders = append(s.loaders, gl)
	}
	log.Printf("[LoadingScene] %d resources in %d groups", s.total, len(s.loaders))
}

// Update 每帧加载一个资源并推进动画
func (s *LoadingScene) Update(deltaTime float64) {
	s.scheduler.Update(deltaTime)
	if s.complete {
		return
	}

	for s.current < len(s.loaders) && s.loaders[s.current].Done() {
		s.current++
	}
	if s.current < len(s.loaders) {
		s.loaders[s.current].Step()
		s.loaded++
		s.progress.SetProgress(float64(s.loaded)/float64(s.total), true)
		return
	}

	s.finish()
}

func (s *LoadingScene) finish() {
	s.complete = true
	s.progress.SetProgress(1, true)
	log.Printf("[LoadingScene] Loading complete, switching in %.1fs", s.env.Config.Loading.Delay)

	s.scheduler.After(s.env.Config.Loading.Delay, func() {
		if s.switched || s.env.Scenes == nil {
			return
		}
		s.switched = true
		if err := s.env.Scenes.Load(game.SceneMain); err != nil {
			log.Printf("[LoadingScene] Failed to switch scene: %v", err)
		}
	})
}

// Draw 绘制加载界面
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	drawSurface(screen, s.bg, s.surface)
}

// Resize 居中所有元素
func (s *LoadingScene) Resize(width, height int) {
	w, h := float64(width), float64(height)
	s.title.X, s.title.Y = w/2, h/2+loadingTitleShift
	s.text.X, s.text.Y = w/2, h/2+loadingTextShift
	s.progress.SetPosition(w/2, h/2)
}

// Dispose 释放节点
func (s *LoadingScene) Dispose() {
	s.progress.Destroy()
	s.surface.Clear()
}

// Progress 当前显示的进度
func (s *LoadingScene) Progress() *modules.ProgressIndicator {
	return s.progress
}

// Complete 资源是否已全部处理
func (s *LoadingScene) Complete() bool {
	return s.complete
}

// progressConfig 将 YAML 配置转换为进度条配置
func progressConfig(c config.ProgressConfig) modules.ProgressIndicatorConfig {
	pc := modules.DefaultProgressIndicatorConfig()
	pc.Width, pc.Height = c.Width, c.Height
	if c.BgTexture != "" {
		pc.BgTexture = c.BgTexture
	}
	if c.FillTexture != "" {
		pc.FillTexture = c.FillTexture
	}
	if c.TextFormat == config.TextFormatPercentage {
		pc.TextFormat = modules.TextFormatPercentage
	} else {
		pc.TextFormat = modules.TextFormatFraction
	}
	pc.HideText = !c.ShowText
	pc.FontSize = c.FontSize
	pc.TextColor = config.MustColor(c.TextColor)
	pc.StrokeColor = config.MustColor(c.StrokeColor)
	pc.StrokeWidth = c.StrokeWidth
	return pc
}
