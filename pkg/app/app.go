// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/tapreward/pkg/config"
	"github.com/decker502/tapreward/pkg/embedded"
	"github.com/decker502/tapreward/pkg/game"
	"github.com/decker502/tapreward/pkg/input"
	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/scenes"
	"github.com/decker502/tapreward/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 界面配置路径，为空时使用 data/ui.yaml（不存在则用默认值）
	ConfigPath string
	// SkipLoading 同步加载全部资源并直接进入主界面
	SkipLoading bool
}

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	config       *config.UIConfig
	sceneManager *game.SceneManager
	audioManager *game.AudioManager
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if !embedded.IsInitialized() {
		return nil, errors.New("embedded resources not initialized")
	}

	uiConfig, err := config.LoadUIConfigOrDefault(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	audioContext := audio.NewContext(uiConfig.Audio.SampleRate)

	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig(uiConfig.Assets.Manifest); err != nil {
		// 没有清单时界面全部使用占位形状
		log.Printf("[App] Resource manifest unavailable, using placeholders: %v", err)
	}

	audioManager := game.NewAudioManager(resourceManager, audioContext, game.AudioSettings{
		SoundEnabled: uiConfig.Audio.SoundEnabled,
		SoundVolume:  uiConfig.Audio.SoundVolume,
	})
	audioManager.RegisterFallback(uiConfig.Reward.SoundID, game.RenderChime(uiConfig.Audio.SampleRate))
	log.Printf("[App] AudioManager initialized (rate=%d)", uiConfig.Audio.SampleRate)

	sceneManager := game.NewSceneManager()
	env := &scenes.Env{
		Config:    uiConfig,
		Resources: resourceManager,
		Audio:     audioManager,
		Scenes:    sceneManager,
		Pointer:   input.NewEbitenSource(),
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		NewSurface: func() scenes.Surface {
			return render.NewEbitenSurface(resourceManager, audioManager)
		},
	}
	registerScenes(sceneManager, env)

	start := game.SceneLoading
	if cfg.SkipLoading {
		log.Printf("[App] SkipLoading enabled, loading all groups synchronously")
		loadAllGroups(resourceManager, uiConfig.Assets.Groups)
		start = game.SceneMain
	}
	if err := sceneManager.Load(start); err != nil {
		return nil, fmt.Errorf("failed to start scene %s: %w", start, err)
	}

	return &App{
		config:       uiConfig,
		sceneManager: sceneManager,
		audioManager: audioManager,
		verbose:      cfg.Verbose,
	}, nil
}

func registerScenes(sm *game.SceneManager, env *scenes.Env) {
	sm.Register(game.SceneLoading, func() game.Scene { return scenes.NewLoadingScene(env) })
	sm.Register(game.SceneMain, func() game.Scene { return scenes.NewMainScene(env) })
}

func loadAllGroups(rm *game.ResourceManager, groups []string) {
	if len(groups) == 0 {
		groups = rm.GroupNames()
	}
	for _, name := range groups {
		if err := rm.LoadResourceGroup(name, nil); err != nil {
			log.Printf("[App] Group %s loaded with errors: %v", name, err)
		}
	}
}

// Update 每个 tick 调用一次（每秒 60 次）
func (a *App) Update() error {
	if utils.IsFullscreenToggleJustPressed() {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.DefaultTPS)
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 可调整大小的窗口和移动端直接使用外部尺寸，并通知场景重新布局
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	adaptive := a.config.Window.Resizable || utils.IsMobile()
	if !adaptive || outsideWidth <= 0 || outsideHeight <= 0 {
		return a.config.Window.Width, a.config.Window.Height
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// WindowConfig 返回窗口配置，供 main 设置窗口属性
func (a *App) WindowConfig() config.WindowConfig {
	return a.config.Window
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
