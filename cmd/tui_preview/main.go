// Package main 在终端中预览主界面
//
// 使用 tcell 把状态栏、能量条、宝箱和彩纸粒子栅格化为字符单元格，
// 逻辑与图形版共用同一个 MainScene，用于对照调试动画时序。
// 场景包仍然链接 ebiten，构建时需要与图形版相同的 cgo 工具链。
//
// Usage:
//
//	go run ./cmd/tui_preview [flags]
//
// Flags:
//
//	--root <dir>     assets/ 和 data/ 所在目录（默认当前目录）
//	--config <path>  界面配置路径（默认 data/ui.yaml）
//	--mute           不播放合成提示音
//	--log <file>     日志输出文件（默认丢弃）
//
// Controls:
//
//	Click      - 点击宝箱或设置按钮
//	Space      - 点击宝箱
//	Esc/Ctrl-C - 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/tapreward/pkg/config"
	"github.com/decker502/tapreward/pkg/embedded"
	"github.com/decker502/tapreward/pkg/game"
	"github.com/decker502/tapreward/pkg/scenes"
)

const tickRate = 60

var (
	rootFlag   = flag.String("root", ".", "Directory containing assets/ and data/")
	configFlag = flag.String("config", "", "UI config path (default data/ui.yaml)")
	muteFlag   = flag.Bool("mute", false, "Disable the synthesized reward chime")
	logFlag    = flag.String("log", "", "Write logs to this file")
)

// chimeAudio 用 beep speaker 播放合成提示音
type chimeAudio struct {
	rate     beep.SampleRate
	ready    bool
	settings game.AudioSettings
}

func newChimeAudio(sampleRate int, enabled bool) *chimeAudio {
	a := &chimeAudio{
		rate:     beep.SampleRate(sampleRate),
		settings: game.AudioSettings{SoundEnabled: enabled, SoundVolume: 1},
	}
	if err := speaker.Init(a.rate, a.rate.N(time.Second/10)); err != nil {
		// 没有声卡时静音运行
		log.Printf("[Preview] Audio initialization failed: %v", err)
		return a
	}
	a.ready = true
	return a
}

func (a *chimeAudio) Resume() bool                 { return a.ready }
func (a *chimeAudio) Settings() game.AudioSettings { return a.settings }
func (a *chimeAudio) SetSoundEnabled(enabled bool) { a.settings.SoundEnabled = enabled }

func (a *chimeAudio) play(id string) {
	if !a.ready || !a.settings.SoundEnabled {
		return
	}
	speaker.Play(game.ChimeStreamer(a.rate))
}

func (a *chimeAudio) close() {
	if a.ready {
		speaker.Close()
	}
}

// Preview 终端预览程序
type Preview struct {
	screen  tcell.Screen
	surface *TerminalSurface
	scene   *scenes.MainScene
	audio   *chimeAudio

	pressed bool
}

// NewPreview 创建主场景并初始化终端
func NewPreview(cfg *config.UIConfig, mute bool) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	p := &Preview{
		screen:  screen,
		surface: NewTerminalSurface(float64(cfg.Window.Width), float64(cfg.Window.Height), config.MustColor(cfg.Window.Background)),
		audio:   newChimeAudio(cfg.Audio.SampleRate, cfg.Audio.SoundEnabled && !mute),
	}
	p.surface.OnSound = p.audio.play
	p.surface.SetCells(screen.Size())

	env := &scenes.Env{
		Config: cfg,
		Audio:  p.audio,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		NewSurface: func() scenes.Surface {
			return p.surface
		},
	}
	p.scene = scenes.NewMainScene(env)
	return p, nil
}

// handleEvent 处理终端事件，返回 false 表示退出
func (p *Preview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			p.scene.Sequencer().Tap()
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := p.surface.ToLogical(col, row)
		down := ev.Buttons()&tcell.Button1 != 0

		router := p.scene.Router()
		switch {
		case down && !p.pressed:
			router.Down(x, y)
		case !down && p.pressed:
			router.Up(x, y)
		default:
			router.Move(x, y)
		}
		p.pressed = down

	case *tcell.EventResize:
		p.surface.SetCells(p.screen.Size())
		p.screen.Sync()
	}
	return true
}

func (p *Preview) run() {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	dt := 1.0 / tickRate
	for {
		select {
		case ev := <-eventChan:
			if !p.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			p.scene.Update(dt)
			p.surface.Render(p.screen)
			p.screen.Show()
		}
	}
}

func (p *Preview) cleanup() {
	p.scene.Dispose()
	p.audio.close()
	p.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.InitFromDisk(*rootFlag)
	cfg, err := config.LoadUIConfigOrDefault(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	preview, err := NewPreview(cfg, *muteFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer preview.cleanup()

	preview.run()
}
