package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/tapreward/pkg/embedded"
)

// Ebitengine 只允许创建一个音频上下文，所有测试共用
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

const testManifest = `
version: "1.0"
base_path: assets
order: [ui]
groups:
  ui:
    images:
      - id: slider_bg
        path: images/ui/slider_bg
      - id: broken
        path: images/ui/broken.png
      - id: missing
        path: images/ui/missing
    sounds:
      - id: reward_open
        path: sounds/reward_open
  extra:
    fonts:
      - id: title
        path: fonts/title.ttf
        size: 32
`

// testPNG 生成一张 10x10 的蓝色 PNG
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupTestAssets(t *testing.T) {
	t.Helper()
	assets := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte(testManifest)},
		"assets/images/ui/slider_bg.png": {Data: testPNG(t)},
		"assets/images/ui/broken.png":    {Data: []byte("not a png")},
	}
	embedded.Init(assets, fstest.MapFS{})
}

func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	require.NotNil(t, rm)
	assert.NotNil(t, rm.imageCache)
	assert.NotNil(t, rm.audioCache)
	assert.Equal(t, testAudioContext, rm.AudioContext())
}

func TestLoadResourceConfig(t *testing.T) {
	setupTestAssets(t)
	rm := NewResourceManager(testAudioContext)

	require.NoError(t, rm.LoadResourceConfig("assets/config/resources.yaml"))
	assert.Equal(t, "assets", rm.config.BasePath)

	tests := []struct {
		id   string
		want string
	}{
		{"slider_bg", "assets/images/ui/slider_bg.png"},
		{"broken", "assets/images/ui/broken.png"},
		{"reward_open", "assets/sounds/reward_open.ogg"},
		{"title", "assets/fonts/title.ttf"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := rm.ResolvePath(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"ui", "extra"}, rm.GroupNames())
}

func TestParseResourceConfig_Errors(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	assert.Error(t, rm.ParseResourceConfig([]byte("groups: [unclosed")))
	assert.ErrorContains(t, rm.ParseResourceConfig([]byte("order: [nope]\ngroups: {}\n")), "unknown group")

	setupTestAssets(t)
	assert.Error(t, rm.LoadResourceConfig("assets/config/absent.yaml"))
}

func TestLoadImageByID(t *testing.T) {
	setupTestAssets(t)
	rm := NewResourceManager(testAudioContext)

	_, err := rm.LoadImageByID("slider_bg")
	assert.ErrorContains(t, err, "not loaded", "加载清单之前")

	require.NoError(t, rm.LoadResourceConfig("assets/config/resources.yaml"))

	img, err := rm.LoadImageByID("slider_bg")
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())

	again, err := rm.LoadImageByID("slider_bg")
	require.NoError(t, err)
	assert.Same(t, img, again, "图片被缓存")
	assert.Same(t, img, rm.GetImageByID("slider_bg"))

	_, err = rm.LoadImageByID("broken")
	assert.ErrorContains(t, err, "decode")

	_, err = rm.LoadImageByID("nope")
	assert.ErrorContains(t, err, "not found")
	assert.Nil(t, rm.GetImageByID("nope"))
	assert.Nil(t, rm.GetImageByID("missing"), "加载失败的图片返回 nil")
}

func TestLoadSoundEffect_Errors(t *testing.T) {
	setupTestAssets(t)

	rm := NewResourceManager(testAudioContext)
	_, err := rm.LoadSoundEffect("assets/sounds/missing.ogg")
	assert.Error(t, err)

	noAudio := NewResourceManager(nil)
	_, err = noAudio.LoadSoundEffect("assets/sounds/missing.ogg")
	assert.ErrorContains(t, err, "no audio context")

	_, err = decodeAudio("x.flac", bytes.NewReader(nil))
	assert.ErrorContains(t, err, "unsupported audio format")
}

func TestGroupLoader_StepsThroughEveryResource(t *testing.T) {
	setupTestAssets(t)
	rm := NewResourceManager(testAudioContext)
	require.NoError(t, rm.LoadResourceConfig("assets/config/resources.yaml"))

	gl, err := rm.NewGroupLoader("ui")
	require.NoError(t, err)

	loaded, total := gl.Progress()
	assert.Equal(t, 0, loaded)
	assert.Equal(t, 4, total)

	steps := 0
	for !gl.Step() {
		steps++
	}
	steps++
	assert.Equal(t, 4, steps)
	assert.True(t, gl.Done())
	assert.True(t, gl.Step(), "完成后再调用保持完成")
	assert.Equal(t, 3, gl.Failed(), "broken、missing 和音效文件都不存在")
	assert.NotNil(t, rm.GetImageByID("slider_bg"))

	_, err = rm.NewGroupLoader("absent")
	assert.Error(t, err)
}

func TestLoadResourceGroup_ReportsProgress(t *testing.T) {
	setupTestAssets(t)
	rm := NewResourceManager(testAudioContext)
	require.NoError(t, rm.LoadResourceConfig("assets/config/resources.yaml"))

	var seen []int
	require.NoError(t, rm.LoadResourceGroup("ui", func(loaded, total int) {
		assert.Equal(t, 4, total)
		seen = append(seen, loaded)
	}))
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
}
