package config

import (
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/tapreward/pkg/embedded"
)

func TestDefaultUIConfig_IsValid(t *testing.T) {
	cfg := DefaultUIConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 740, cfg.Window.Width)
	assert.Equal(t, 0.8, cfg.Loading.Delay)
	assert.Equal(t, -100.0, cfg.Reward.OffsetY)
	assert.Len(t, cfg.Strip.Resources, 3)
	assert.Equal(t, PillStylePlain, cfg.Strip.PillStyle)
}

func TestParseUIConfig_MergesOverDefaults(t *testing.T) {
	cfg, err := ParseUIConfig([]byte(`
window:
  title: Custom
progress:
  text_format: fraction
strip:
  pill_style: icon_overlap
  resources:
    - key: coins
      icon: statusbar_coin
      value: 5
`))
	require.NoError(t, err)

	assert.Equal(t, "Custom", cfg.Window.Title)
	assert.Equal(t, 740, cfg.Window.Width, "未设置的字段保留默认值")
	assert.Equal(t, TextFormatFraction, cfg.Progress.TextFormat)
	assert.Equal(t, "slider_bg", cfg.Progress.BgTexture)
	assert.Equal(t, PillStyleIconOverlap, cfg.Strip.PillStyle)
	require.Len(t, cfg.Strip.Resources, 1, "列表整体替换")
	assert.Equal(t, 5, cfg.Strip.Resources[0].Value)
}

func TestParseUIConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "window: [", "parse"},
		{"zero width", "window: {width: 0}", "window size"},
		{"text format", "progress: {text_format: ratio}", "text_format"},
		{"pill style", "strip: {pill_style: round}", "pill_style"},
		{"duplicate key", "strip: {resources: [{key: a}, {key: a}]}", "duplicate key"},
		{"empty resources", "strip: {resources: []}", "at least one"},
		{"negative value", "strip: {resources: [{key: coins, value: -1}]}", "negative"},
		{"reward key", "reward: {reward_key: stars}", "not a strip resource"},
		{"volume", "audio: {sound_volume: 1.5}", "sound_volume"},
		{"color", "window: {background: '#12'}", "window.background"},
		{"initial", "progress: {initial: 2}", "progress.initial"},
		{"delay", "loading: {delay: -1}", "loading.delay"},
		{"title size", "main: {title_size: 0}", "main.title_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUIConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadUIConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/ui.yaml": {Data: []byte("loading:\n  delay: 0.5\n")},
	})

	cfg, err := LoadUIConfig(DefaultUIConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Loading.Delay)

	_, err = LoadUIConfig("data/missing.yaml")
	assert.ErrorContains(t, err, "failed to read")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#1a1a2e", color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}, false},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#00000080", color.RGBA{A: 0x80}, false},
		{"#zzzzzz", color.RGBA{}, true},
		{"#123", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, MustColor("bad"))
}
