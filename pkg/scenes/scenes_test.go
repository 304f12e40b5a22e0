package scenes

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/tapreward/pkg/config"
	"github.com/decker502/tapreward/pkg/embedded"
	"github.com/decker502/tapreward/pkg/game"
	"github.com/decker502/tapreward/pkg/render"
	"github.com/decker502/tapreward/pkg/systems"
)

const frame = 1.0 / 60.0

type stubScene struct{ updates int }

func (s *stubScene) Update(float64)     { s.updates++ }
func (s *stubScene) Draw(*ebiten.Image) {}

func newTestEnv(t *testing.T) (*Env, *[]*render.MemorySurface) {
	t.Helper()
	var surfaces []*render.MemorySurface
	env := &Env{
		Config: config.DefaultUIConfig(),
		Scenes: game.NewSceneManager(),
		Rand:   rand.New(rand.NewSource(1)),
		NewSurface: func() Surface {
			ms := render.NewMemorySurface(systems.DefaultChestTexture, systems.ConfettiTexture, "label_oval")
			surfaces = append(surfaces, ms)
			return ms
		},
	}
	return env, &surfaces
}

func TestLoadingScene_NoResourcesSwitchesAfterDelay(t *testing.T) {
	env, surfaces := newTestEnv(t)
	main := &stubScene{}
	env.Scenes.Register(game.SceneMain, func() Scene { return main })

	ls := NewLoadingScene(env)
	env.Scenes.SwitchTo(ls)
	require.Len(t, *surfaces, 1)
	ms := (*surfaces)[0]
	assert.NotNil(t, ms.Label("TAP REWARD"))
	assert.NotNil(t, ms.Label("LOADING..."))
	assert.NotNil(t, ms.Label("0 / 100"), "加载界面使用分数格式")

	env.Scenes.Update(frame)
	assert.True(t, ls.Complete())
	assert.Equal(t, 1.0, ls.Progress().Target())

	// 0.8 秒延迟
	for i := 0; i < 47; i++ {
		env.Scenes.Update(frame)
	}
	assert.Same(t, Scene(ls), env.Scenes.GetCurrentScene())

	env.Scenes.Update(frame)
	assert.Same(t, Scene(main), env.Scenes.GetCurrentScene())
	assert.Equal(t, 0, ms.Len(), "切换后释放加载界面的节点")
}

func TestLoadingScene_StepsOneResourcePerFrame(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte(`
base_path: assets
groups:
  ui:
    images:
      - {id: a, path: images/a}
      - {id: b, path: images/b}
  sounds:
    images:
      - {id: c, path: images/c}
`)},
	}, fstest.MapFS{})

	rm := game.NewResourceManager(nil)
	require.NoError(t, rm.LoadResourceConfig("assets/config/resources.yaml"))

	env, _ := newTestEnv(t)
	env.Resources = rm
	ls := NewLoadingScene(env)

	want := []float64{1.0 / 3, 2.0 / 3, 1}
	for i, w := range want {
		ls.Update(frame)
		assert.InDelta(t, w, ls.Progress().Target(), 1e-9, "frame %d", i)
		assert.False(t, ls.Complete())
	}
	ls.Update(frame)
	assert.True(t, ls.Complete())
}

func TestMainScene_Composition(t *testing.T) {
	env, surfaces := newTestEnv(t)
	s := NewMainScene(env)
	ms := (*surfaces)[0]

	assert.Equal(t, 37720, s.Strip().Resource("coins"))
	assert.Equal(t, "37.72K", s.Strip().ResourceText("coins"))
	assert.InDelta(t, 0.4, s.Energy().Progress(), 1e-12)
	assert.NotNil(t, ms.Label("40%"), "能量条使用百分比格式")

	x, y := s.Sequencer().Anchor()
	assert.Equal(t, 370.0, x)
	assert.Equal(t, 350.0, y, "宝箱在屏幕中心上方 100")
	assert.Equal(t, systems.StateIdle, s.Sequencer().State())
}

func TestMainScene_TapGrantsReward(t *testing.T) {
	env, surfaces := newTestEnv(t)
	s := NewMainScene(env)
	ms := (*surfaces)[0]

	s.Router().Down(370, 350)
	assert.Equal(t, systems.StateOpening, s.Sequencer().State())
	assert.Empty(t, ms.Sounds, "没有音频管理器时不播放")

	for i := 0; i < 15; i++ {
		s.Update(frame)
	}
	live := s.Particles().LiveCount()
	assert.GreaterOrEqual(t, live, systems.BurstMinCount)
	assert.LessOrEqual(t, live, systems.BurstMaxCount)
	assert.Equal(t, 37970, s.Strip().Resource("coins"))
	assert.InDelta(t, 0.5, s.Energy().Target(), 1e-9)

	// 周期中再次点击被忽略
	s.Router().Up(370, 350)
	s.Router().Down(370, 350)
	for i := 0; i < 60; i++ {
		s.Update(frame)
	}
	assert.Equal(t, systems.StateIdle, s.Sequencer().State())
	assert.Equal(t, 37970, s.Strip().Resource("coins"))

	// 粒子寿命结束后全部移除
	for i := 0; i < 60; i++ {
		s.Update(frame)
	}
	assert.Equal(t, 0, s.Particles().LiveCount())
}

func TestMainScene_EnergyWrapsWhenFull(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Config.Progress.Initial = 1
	s := NewMainScene(env)

	s.Sequencer().Tap()
	for i := 0; i < 15; i++ {
		s.Update(frame)
	}
	assert.InDelta(t, 0.1, s.Energy().Target(), 1e-9)
}

func TestMainScene_ResizeAndDispose(t *testing.T) {
	env, surfaces := newTestEnv(t)
	s := NewMainScene(env)
	env.Scenes.SwitchTo(s)

	before := s.Strip().Layout().StartX
	env.Scenes.Resize(800, 1000)
	x, y := s.Sequencer().Anchor()
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 400.0, y)
	assert.Equal(t, before+30, s.Strip().Layout().StartX, "可用宽度增加 60，起点右移 30")

	// 设置按钮在没有音频管理器时不会 panic
	b := s.Strip().Bounds()
	s.Router().Down(b.X+b.W/2, b.Y+b.H/2)
	s.Router().Up(b.X+b.W/2, b.Y+b.H/2)

	s.Dispose()
	assert.Equal(t, 0, (*surfaces)[0].Len())
	assert.Nil(t, s.Router().HitTest(x, y))
}

type fakeAudio struct {
	ready    bool
	settings game.AudioSettings
}

func (a *fakeAudio) Resume() bool                 { return a.ready }
func (a *fakeAudio) Settings() game.AudioSettings { return a.settings }
func (a *fakeAudio) SetSoundEnabled(enabled bool) { a.settings.SoundEnabled = enabled }

func TestMainScene_AudioControls(t *testing.T) {
	env, surfaces := newTestEnv(t)
	audio := &fakeAudio{ready: true, settings: game.DefaultAudioSettings()}
	env.Audio = audio
	s := NewMainScene(env)
	ms := (*surfaces)[0]

	s.Router().Down(370, 350)
	assert.Equal(t, []string{"reward_open"}, ms.Sounds)
	assert.True(t, s.Sequencer().AudioUnlocked())

	b := s.Strip().Bounds()
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	s.Router().Down(cx, cy)
	s.Router().Up(cx, cy)
	assert.False(t, audio.settings.SoundEnabled, "设置按钮切换音效开关")

	s.Router().Down(cx, cy)
	s.Router().Up(cx, cy)
	assert.True(t, audio.settings.SoundEnabled)
}

func TestMainScene_ResizeDuringCycleMovesChestWhenIdle(t *testing.T) {
	env, _ := newTestEnv(t)
	s := NewMainScene(env)
	env.Scenes.SwitchTo(s)

	s.Router().Down(370, 350)
	require.Equal(t, systems.StateOpening, s.Sequencer().State())

	env.Scenes.Resize(1000, 800)
	x, y := s.Sequencer().Anchor()
	assert.Equal(t, 370.0, x, "周期进行中宝箱不移动")
	assert.Equal(t, 350.0, y)

	for i := 0; i < 60; i++ {
		env.Scenes.Update(frame)
		env.Scenes.Resize(1000, 800)
	}
	require.Equal(t, systems.StateIdle, s.Sequencer().State())

	x, y = s.Sequencer().Anchor()
	assert.Equal(t, 500.0, x, "回到 Idle 后移动到新的中心")
	assert.Equal(t, 300.0, y)
	assert.Equal(t, s.Sequencer(), s.Router().HitTest(500, 300), "点击区域随宝箱移动")
}

func TestMainScene_TitleFollowsWidth(t *testing.T) {
	env, surfaces := newTestEnv(t)
	s := NewMainScene(env)
	env.Scenes.SwitchTo(s)

	title := (*surfaces)[0].Label("Tap Reward")
	require.NotNil(t, title)
	assert.Same(t, title, s.Title())
	assert.Equal(t, 370.0, title.X)
	assert.Equal(t, 100.0, title.Y)
	assert.Equal(t, 28.0, title.FontSize)

	env.Scenes.Resize(800, 1000)
	assert.Equal(t, 400.0, title.X)
}

func TestMainScene_NoTitleWhenEmpty(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Config.Main.Title = ""
	s := NewMainScene(env)
	assert.Nil(t, s.Title())
}

func TestMainScene_BackgroundCoversScreen(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Config.Window.BackgroundTexture = "background"
	env.NewSurface = func() Surface {
		ms := render.NewMemorySurface()
		ms.SetTextureSize("background", 1000, 500)
		return ms
	}
	s := NewMainScene(env)
	env.Scenes.SwitchTo(s)

	bg := s.Background()
	require.NotNil(t, bg)
	assert.Equal(t, 1000.0, bg.Width, "保留纹理原始尺寸")
	assert.Equal(t, 500.0, bg.Height)
	assert.InDelta(t, 1.8, bg.ScaleX, 1e-12, "取 max(740/1000, 900/500)")
	assert.Equal(t, bg.ScaleX, bg.ScaleY, "等比缩放")
	b := bg.Bounds()
	assert.InDelta(t, -530, b.X, 1e-9, "两侧溢出被裁掉")
	assert.InDelta(t, 0, b.Y, 1e-9)

	env.Scenes.Resize(800, 1000)
	assert.InDelta(t, 2.0, bg.ScaleX, 1e-12)
	assert.Equal(t, 400.0, bg.X)
	assert.Equal(t, 500.0, bg.Y)
}
