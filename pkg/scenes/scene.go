package scenes

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tapreward/pkg/config"
	"github.com/decker502/tapreward/pkg/game"
	"github.com/decker502/tapreward/pkg/input"
	"github.com/decker502/tapreward/pkg/render"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Surface 场景使用的绘制表面
type Surface interface {
	render.Surface
	Clear()
}

// drawer 能绘制到 ebiten 屏幕的表面（EbitenSurface）
type drawer interface {
	Draw(screen *ebiten.Image)
}

// PointerSource 每帧把指针状态喂给路由
type PointerSource interface {
	Update(r *input.Router)
}

// AudioController 场景使用的音频控制，*game.AudioManager 实现了它
type AudioController interface {
	Resume() bool
	Settings() game.AudioSettings
	SetSoundEnabled(enabled bool)
}

// Env 场景共享的依赖
// Resources、Audio、Pointer 可为 nil（测试和无头运行）
type Env struct {
	Config    *config.UIConfig
	Resources *game.ResourceManager
	Audio     AudioController
	Scenes    *game.SceneManager
	Pointer   PointerSource
	Rand      *rand.Rand

	// NewSurface 为每个场景创建绘制表面
	NewSurface func() Surface
}

func (e *Env) screenSize() (float64, float64) {
	if e.Scenes != nil {
		if w, h := e.Scenes.Size(); w > 0 && h > 0 {
			return float64(w), float64(h)
		}
	}
	return float64(e.Config.Window.Width), float64(e.Config.Window.Height)
}

func (e *Env) surface() Surface {
	if e.NewSurface != nil {
		return e.NewSurface()
	}
	return render.NewMemorySurface()
}

func drawSurface(screen *ebiten.Image, bg color.RGBA, s Surface) {
	screen.Fill(bg)
	if d, ok := s.(drawer); ok {
		d.Draw(screen)
	}
}
